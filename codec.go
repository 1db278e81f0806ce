package codehuff

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// UnknownSymbolError reports a symbol of the content that the code
// table has no code for.
type UnknownSymbolError struct {
	Symbol string
	Offset int // byte offset of the symbol in the content
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("symbol %q at offset %d has no code", e.Symbol, e.Offset)
}

func (e *UnknownSymbolError) Unwrap() error { return ErrUnknownSymbol }

// Codec compresses and decompresses content with the Huffman code of a
// fixed frequency table. A Codec is immutable and safe for concurrent
// use.
type Codec struct {
	config Config
	table  *FrequencyTable
	tree   *Tree
	codes  CodeTable
}

// NewCodec builds the tree and code table for t. The table is cloned;
// later changes to t do not affect the Codec.
func NewCodec(t *FrequencyTable, opts ...Option) (*Codec, error) {
	tree, err := BuildTree(t)
	if err != nil {
		return nil, err
	}
	codes, err := tree.Codes()
	if err != nil {
		return nil, err
	}
	return &Codec{
		config: newConfig(opts),
		table:  t.Clone(),
		tree:   tree,
		codes:  codes,
	}, nil
}

// Table returns a copy of the frequency table the codec was built from.
func (c *Codec) Table() *FrequencyTable { return c.table.Clone() }

// Tree returns the Huffman tree.
func (c *Codec) Tree() *Tree { return c.tree }

// Codes returns the code table. Callers must not modify it.
func (c *Codec) Codes() CodeTable { return c.codes }

// Encode compresses content.
//
// Content is tokenized with the codec's table as the vocabulary, so a
// word run is one symbol exactly when the table holds it. A symbol
// without a code is an *UnknownSymbolError unless the codec was built
// with WithLossyEncode, in which case it is logged and left out.
func (c *Codec) Encode(content []byte) (*Compressed, error) {
	if uint64(len(content)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(content))
	}
	var payload bytes.Buffer
	payload.Grow(len(content) / 2)
	bw := newBitWriter(&payload)
	offset := 0
	for _, sym := range Tokenize(content, c.table) {
		code, ok := c.codes[sym]
		if !ok {
			if !c.config.LossyEncode {
				return nil, &UnknownSymbolError{Symbol: sym, Offset: offset}
			}
			c.config.Logger.Printf("codehuff: warning: symbol %q at offset %d has no code; skipped", sym, offset)
		} else if err := bw.writeCode(code); err != nil {
			return nil, err
		}
		offset += len(sym)
	}
	pad, err := bw.close()
	if err != nil {
		return nil, err
	}
	return &Compressed{
		OriginalSize: uint32(len(content)),
		Padding:      uint32(pad),
		Payload:      payload.Bytes(),
	}, nil
}

// Decode restores the content of cf.
//
// The payload must end on a code boundary; a final partial code is
// ErrTruncatedStream. The restored length must match the header unless
// the codec is lossy, in which case a mismatch is only logged.
func (c *Codec) Decode(cf *Compressed) ([]byte, error) {
	if err := cf.validate(); err != nil {
		return nil, err
	}
	nbits := cf.Bits()
	out := make([]byte, 0, min(uint64(cf.OriginalSize), nbits*2))
	br := newBitReader(cf.Payload, nbits)
	w := c.tree.walker()
	for i := uint64(0); i < nbits; i++ {
		bit, err := br.readBit()
		if err != nil {
			return nil, fmt.Errorf("read bit %d: %w", i, err)
		}
		sym, ok, err := w.step(bit)
		if err != nil {
			return nil, fmt.Errorf("bit %d: %w", i, err)
		}
		if ok {
			out = append(out, sym...)
		}
	}
	if !w.atRoot() {
		return nil, fmt.Errorf("%w after %d bits", ErrTruncatedStream, nbits)
	}
	if uint64(len(out)) != uint64(cf.OriginalSize) {
		if !c.config.LossyEncode {
			return nil, fmt.Errorf("%w: decoded %d bytes, header says %d", ErrSizeMismatch, len(out), cf.OriginalSize)
		}
		c.config.Logger.Printf("codehuff: warning: decoded %d bytes, header says %d", len(out), cf.OriginalSize)
	}
	return out, nil
}

// Compress reads r to EOF, encodes it and writes the container to w.
func (c *Codec) Compress(w io.Writer, r io.Reader) (*Compressed, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	cf, err := c.Encode(content)
	if err != nil {
		return nil, err
	}
	if _, err := cf.WriteTo(w); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	return cf, nil
}

// Decompress reads a container from r and writes the restored content
// to w. It returns the number of bytes written.
func (c *Codec) Decompress(w io.Writer, r io.Reader) (int64, error) {
	var cf Compressed
	if _, err := cf.ReadFrom(r); err != nil {
		return 0, err
	}
	out, err := c.Decode(&cf)
	if err != nil {
		return 0, err
	}
	n, err := writeBytes(w, out)
	if err != nil {
		return n, fmt.Errorf("write output: %w", err)
	}
	return n, nil
}
