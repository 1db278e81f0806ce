package codehuff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/seiflotfy/codehuff/vocab"
)

// Fuzz test for tokenization: tokens always reassemble the input
func FuzzTokenize(f *testing.F) {
	f.Add("for (int i = 0; i < n; i++) {}")
	f.Add("formatted while_ std::cout")
	f.Add("")
	f.Add("\t\n\r ")
	f.Add("null\x00byte")
	f.Add("héllo世界")

	cpp := vocab.CPP()
	f.Fuzz(func(t *testing.T, input string) {
		tokens := Tokenize([]byte(input), cpp)
		if got := strings.Join(tokens, ""); got != input {
			t.Fatalf("tokens of %q join to %q", input, got)
		}
		for _, tok := range tokens {
			if len(tok) > 1 && !cpp.Contains(tok) {
				t.Fatalf("multi-byte token %q is not a keyword", tok)
			}
		}
	})
}

// Fuzz test for compression/decompression with a table built from the
// input itself
func FuzzRoundTrip(f *testing.F) {
	f.Add("int main() {\n\treturn 0;\n}\n")
	f.Add("a")
	f.Add("aaaa")
	f.Add("for|for\\s\\p")
	f.Add("🚀rocket")

	f.Fuzz(func(t *testing.T, input string) {
		table := NewFrequencyTable()
		table.AddText([]byte(input), vocab.CPP())
		if table.Len() == 0 {
			return
		}
		c, err := NewCodec(table)
		if err != nil {
			t.Fatal(err)
		}
		cf, err := c.Encode([]byte(input))
		if err != nil {
			t.Fatal(err)
		}
		data, err := cf.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		var back Compressed
		if err := back.UnmarshalBinary(data); err != nil {
			t.Fatal(err)
		}
		out, err := c.Decode(&back)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(out, []byte(input)) {
			t.Fatalf("got %q, want %q", out, input)
		}

		// the table survives its text form
		var buf bytes.Buffer
		if _, err := table.WriteTo(&buf); err != nil {
			t.Fatal(err)
		}
		reread := NewFrequencyTable()
		if _, err := reread.ReadFrom(&buf); err != nil {
			t.Fatal(err)
		}
		if !reread.Equal(table) {
			t.Fatalf("table of %q changed through WriteTo/ReadFrom", input)
		}
	})
}

// Fuzz test for decoding arbitrary containers: errors are fine, panics
// are not
func FuzzDecode(f *testing.F) {
	f.Add([]byte{4, 0, 0, 0, 4, 0, 0, 0, 0x60})
	f.Add([]byte{})
	f.Add([]byte{1, 0, 0, 0, 7, 0, 0, 0, 0x80})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0, 0xff, 0xff})

	c, err := NewCodec(tableOf(map[string]int64{"a": 1, "b": 1, "c": 2, "for": 3}))
	if err != nil {
		f.Fatal(err)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		var cf Compressed
		if err := cf.UnmarshalBinary(data); err != nil {
			return
		}
		out, err := c.Decode(&cf)
		if err == nil && uint32(len(out)) != cf.OriginalSize {
			t.Fatalf("decoded %d bytes, header says %d", len(out), cf.OriginalSize)
		}
	})
}
