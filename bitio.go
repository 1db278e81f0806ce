package codehuff

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
)

// bitWriter packs codes most significant bit first and counts the bits
// written so the padding of the last byte is known on close.
type bitWriter struct {
	w     *bitio.Writer
	nbits uint64
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: bitio.NewWriter(w)}
}

func (w *bitWriter) writeCode(c Code) error {
	w.nbits += uint64(c.Len)
	return w.w.WriteBits(c.Bits, c.Len)
}

// close zero-pads the final byte, flushes it and reports how many
// padding bits were added.
func (w *bitWriter) close() (uint8, error) {
	pad := uint8((8 - w.nbits%8) % 8)
	return pad, w.w.Close()
}

// bitReader yields exactly n bits of a packed payload, in the order
// bitWriter wrote them.
type bitReader struct {
	r         *bitio.Reader
	remaining uint64
}

func newBitReader(payload []byte, n uint64) *bitReader {
	return &bitReader{r: bitio.NewReader(bytes.NewReader(payload)), remaining: n}
}

// readBit returns io.EOF once n bits were read.
func (r *bitReader) readBit() (bool, error) {
	if r.remaining == 0 {
		return false, io.EOF
	}
	b, err := r.r.ReadBool()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return false, err
	}
	r.remaining--
	return b, nil
}
