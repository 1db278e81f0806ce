package codehuff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompressedMarshal(t *testing.T) {
	cf := &Compressed{OriginalSize: 0x01020304, Padding: 3, Payload: []byte{0xaa, 0xb0}}
	data, err := cf.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x04, 0x03, 0x02, 0x01, 0x03, 0, 0, 0, 0xaa, 0xb0}
	if !bytes.Equal(data, want) {
		t.Errorf("MarshalBinary = % x, want % x", data, want)
	}
	if cf.Size() != len(want) || cf.Bits() != 13 {
		t.Errorf("Size() = %d, Bits() = %d", cf.Size(), cf.Bits())
	}

	var got Compressed
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cf, &got); diff != "" {
		t.Errorf("UnmarshalBinary mismatch (-want +got):\n%s", diff)
	}
	data[8] = 0
	if got.Payload[0] != 0xaa {
		t.Error("UnmarshalBinary aliases its input")
	}
}

func TestCompressedEmpty(t *testing.T) {
	var buf bytes.Buffer
	cf := &Compressed{}
	n, err := cf.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != headerSize || !bytes.Equal(buf.Bytes(), make([]byte, headerSize)) {
		t.Errorf("WriteTo wrote % x (%d)", buf.Bytes(), n)
	}
	var got Compressed
	if _, err := got.ReadFrom(&buf); err != nil {
		t.Fatal(err)
	}
	if got.OriginalSize != 0 || got.Padding != 0 || len(got.Payload) != 0 {
		t.Errorf("ReadFrom = %+v", got)
	}
}

func TestCompressedWriteReadFrom(t *testing.T) {
	cf := &Compressed{OriginalSize: 9, Padding: 7, Payload: []byte{0x12, 0x34, 0x80}}
	var buf bytes.Buffer
	wn, err := cf.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	var got Compressed
	rn, err := got.ReadFrom(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if wn != rn || wn != int64(cf.Size()) {
		t.Errorf("wrote %d, read %d, Size() %d", wn, rn, cf.Size())
	}
	if diff := cmp.Diff(cf, &got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCompressedMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", []byte{1, 0, 0, 0, 0, 0, 0}},
		{"padding out of range", []byte{1, 0, 0, 0, 8, 0, 0, 0, 0xff}},
		{"padding without payload", []byte{0, 0, 0, 0, 1, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cf Compressed
			if err := cf.UnmarshalBinary(tt.data); !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("UnmarshalBinary error = %v, want ErrMalformedHeader", err)
			}
			if _, err := cf.ReadFrom(bytes.NewReader(tt.data)); !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("ReadFrom error = %v, want ErrMalformedHeader", err)
			}
		})
	}

	bad := &Compressed{Padding: 9, Payload: []byte{0}}
	if _, err := bad.MarshalBinary(); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("MarshalBinary error = %v", err)
	}
	if _, err := bad.WriteTo(io.Discard); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("WriteTo error = %v", err)
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestCompressedShortWrite(t *testing.T) {
	cf := &Compressed{OriginalSize: 1, Padding: 7, Payload: []byte{0}}
	if _, err := cf.WriteTo(shortWriter{}); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("WriteTo error = %v, want io.ErrShortWrite", err)
	}
}

func TestBitWriterReader(t *testing.T) {
	codes := []Code{
		{Bits: 0b1, Len: 1},
		{Bits: 0b0110, Len: 4},
		{Bits: 1<<63 | 1, Len: 64},
		{Bits: 0, Len: 2},
	}
	var buf bytes.Buffer
	w := newBitWriter(&buf)
	var nbits uint64
	for _, c := range codes {
		if err := w.writeCode(c); err != nil {
			t.Fatal(err)
		}
		nbits += uint64(c.Len)
	}
	pad, err := w.close()
	if err != nil {
		t.Fatal(err)
	}
	if want := uint8((8 - nbits%8) % 8); pad != want {
		t.Errorf("padding = %d, want %d", pad, want)
	}
	if uint64(buf.Len())*8 != nbits+uint64(pad) {
		t.Errorf("wrote %d bytes for %d bits", buf.Len(), nbits)
	}
	if buf.Bytes()[0] != 0b10110100 {
		t.Errorf("first byte = %08b, want MSB-first 10110100", buf.Bytes()[0])
	}

	r := newBitReader(buf.Bytes(), nbits)
	var got Code
	for i := uint64(0); i < 5; i++ {
		bit, err := r.readBit()
		if err != nil {
			t.Fatal(err)
		}
		b := uint64(0)
		if bit {
			b = 1
		}
		got = got.append(b)
	}
	if got.String() != "10110" {
		t.Errorf("first five bits = %s", got)
	}
	for i := uint64(5); i < nbits; i++ {
		if _, err := r.readBit(); err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
	}
	if _, err := r.readBit(); err != io.EOF {
		t.Errorf("read past the last bit: %v, want io.EOF", err)
	}
}
