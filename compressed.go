package codehuff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Wire format:
//
//	original_size = uint32 little-endian
//	padding       = uint32 little-endian, 0-7
//	payload       = packed code bits, most significant bit first
//
// There is no magic number or version; the decoder must be given the
// same frequency table the encoder used.
const headerSize = 8

// Compressed is an encoded file: a small header followed by the packed
// payload.
type Compressed struct {
	OriginalSize uint32 // length of the content in bytes
	Padding      uint32 // zero bits appended to fill the last payload byte
	Payload      []byte
}

// Bits returns the number of meaningful bits in the payload.
func (c *Compressed) Bits() uint64 {
	return uint64(len(c.Payload))*8 - uint64(c.Padding)
}

// Size returns the size of the serialized container in bytes.
func (c *Compressed) Size() int {
	return headerSize + len(c.Payload)
}

func (c *Compressed) validate() error {
	if c.Padding > 7 {
		return fmt.Errorf("%w: padding %d out of range", ErrMalformedHeader, c.Padding)
	}
	if c.Padding > 0 && len(c.Payload) == 0 {
		return fmt.Errorf("%w: padding %d with empty payload", ErrMalformedHeader, c.Padding)
	}
	return nil
}

func (c *Compressed) appendHeader(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, c.OriginalSize)
	return binary.LittleEndian.AppendUint32(dst, c.Padding)
}

// WriteTo serializes the container to w.
func (c *Compressed) WriteTo(w io.Writer) (int64, error) {
	if err := c.validate(); err != nil {
		return 0, err
	}
	var total int64
	n, err := writeBytes(w, c.appendHeader(make([]byte, 0, headerSize)))
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeBytes(w, c.Payload)
	total += n
	return total, err
}

// ReadFrom deserializes a container, consuming r to EOF.
func (c *Compressed) ReadFrom(r io.Reader) (int64, error) {
	var hdr [headerSize]byte
	n, err := io.ReadFull(r, hdr[:])
	total := int64(n)
	if err != nil {
		return total, fmt.Errorf("%w: read header at offset %d: %w", ErrMalformedHeader, total, err)
	}
	var payload bytes.Buffer
	m, err := payload.ReadFrom(r)
	total += m
	if err != nil {
		return total, fmt.Errorf("read payload at offset %d: %w", headerSize, err)
	}
	tmp := Compressed{
		OriginalSize: binary.LittleEndian.Uint32(hdr[0:]),
		Padding:      binary.LittleEndian.Uint32(hdr[4:]),
		Payload:      payload.Bytes(),
	}
	if err := tmp.validate(); err != nil {
		return total, err
	}
	*c = tmp
	return total, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Compressed) MarshalBinary() ([]byte, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, c.Size())
	buf = c.appendHeader(buf)
	return append(buf, c.Payload...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// The payload is copied out of data.
func (c *Compressed) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("%w: %d bytes, need %d", ErrMalformedHeader, len(data), headerSize)
	}
	tmp := Compressed{
		OriginalSize: binary.LittleEndian.Uint32(data[0:]),
		Padding:      binary.LittleEndian.Uint32(data[4:]),
		Payload:      append([]byte(nil), data[headerSize:]...),
	}
	if err := tmp.validate(); err != nil {
		return err
	}
	*c = tmp
	return nil
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}
