package codehuff

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/dchest/siphash"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FrequencyTable maps symbols to occurrence counts.
//
// Counts are always positive. Symbols are iterated in canonical order:
// ascending byte order of the symbol text. The zero value is not usable;
// call NewFrequencyTable.
type FrequencyTable struct {
	counts map[string]int64
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int64)}
}

// Add increases the count of sym by n. Non-positive n and empty
// symbols are ignored.
func (t *FrequencyTable) Add(sym string, n int64) {
	if n <= 0 || sym == "" {
		return
	}
	t.counts[sym] += n
}

// AddTokens counts each symbol in tokens once per occurrence.
func (t *FrequencyTable) AddTokens(tokens []string) {
	for _, tok := range tokens {
		t.Add(tok, 1)
	}
}

// AddText tokenizes text with v and counts the resulting symbols.
func (t *FrequencyTable) AddText(text []byte, v Vocabulary) {
	t.AddTokens(Tokenize(text, v))
}

// AddLines counts r line by line. Each line, including a final line
// without a line feed, is terminated with "\n" before tokenizing, so the
// line feed is always counted as a symbol of its own.
func (t *FrequencyTable) AddLines(r io.Reader, v Vocabulary) error {
	br := bufio.NewReader(r)
	var tokens []string
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if line[len(line)-1] != '\n' {
				line = append(line, '\n')
			}
			tokens = AppendTokens(tokens[:0], line, v)
			t.AddTokens(tokens)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Count returns the count of sym, or 0 if sym is absent.
func (t *FrequencyTable) Count(sym string) int64 {
	if t == nil {
		return 0
	}
	return t.counts[sym]
}

// Contains reports whether sym has a count in t.
// It lets a table act as the Vocabulary for encoding.
func (t *FrequencyTable) Contains(sym string) bool {
	if t == nil {
		return false
	}
	_, ok := t.counts[sym]
	return ok
}

// Len returns the number of distinct symbols.
func (t *FrequencyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.counts)
}

// Total returns the sum of all counts.
func (t *FrequencyTable) Total() int64 {
	var n int64
	if t == nil {
		return n
	}
	for _, c := range t.counts {
		n += c
	}
	return n
}

// Symbols returns every symbol in canonical order.
func (t *FrequencyTable) Symbols() []string {
	if t == nil {
		return nil
	}
	syms := maps.Keys(t.counts)
	slices.Sort(syms)
	return syms
}

// Merge adds the counts of o into t.
func (t *FrequencyTable) Merge(o *FrequencyTable) {
	if o == nil {
		return
	}
	for sym, n := range o.counts {
		t.counts[sym] += n
	}
}

// Clear removes every symbol.
func (t *FrequencyTable) Clear() {
	maps.Clear(t.counts)
}

// Clone returns an independent copy of t.
func (t *FrequencyTable) Clone() *FrequencyTable {
	return &FrequencyTable{counts: maps.Clone(t.counts)}
}

// Equal reports whether t and o hold the same symbols and counts.
func (t *FrequencyTable) Equal(o *FrequencyTable) bool {
	return maps.Equal(t.counts, o.counts)
}

// fingerprint keys, fixed so digests are stable across processes.
const (
	fingerprintK0 = 0x636f646568756666 // "codehuff"
	fingerprintK1 = 0x7461626c65763031 // "tablev01"
)

// Fingerprint returns a SipHash-2-4 digest of the symbols and counts in
// canonical order. Equal tables have equal fingerprints.
func (t *FrequencyTable) Fingerprint() uint64 {
	h := siphash.New(fingerprintKey())
	var buf [binary.MaxVarintLen64]byte
	for _, sym := range t.Symbols() {
		n := binary.PutUvarint(buf[:], uint64(len(sym)))
		h.Write(buf[:n])
		h.Write([]byte(sym))
		n = binary.PutVarint(buf[:], t.counts[sym])
		h.Write(buf[:n])
	}
	return h.Sum64()
}

func fingerprintKey() []byte {
	key := make([]byte, 16)
	binary.LittleEndian.PutUint64(key[0:], fingerprintK0)
	binary.LittleEndian.PutUint64(key[8:], fingerprintK1)
	return key
}
