package codehuff

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// maxCodeLen is the longest code a Code can hold.
const maxCodeLen = 64

// Code is the bit sequence assigned to a symbol. The low Len bits of
// Bits hold the sequence, first bit in the most significant position.
type Code struct {
	Bits uint64
	Len  uint8
}

func (c Code) append(bit uint64) Code {
	return Code{Bits: c.Bits<<1 | bit, Len: c.Len + 1}
}

// String renders c as a string of '0' and '1'.
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(int(c.Len))
	for i := int(c.Len) - 1; i >= 0; i-- {
		if c.Bits>>i&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Bits>>(c.Len-p.Len) == p.Bits
}

// CodeTable maps symbols to codes.
type CodeTable map[string]Code

// Lookup returns the code of sym.
func (ct CodeTable) Lookup(sym string) (Code, bool) {
	c, ok := ct[sym]
	return c, ok
}

// Len returns the number of symbols.
func (ct CodeTable) Len() int { return len(ct) }

// Symbols returns the symbols of ct in canonical order.
func (ct CodeTable) Symbols() []string {
	syms := maps.Keys(ct)
	slices.Sort(syms)
	return syms
}

// PrefixFree reports whether no code in ct is a prefix of another.
func (ct CodeTable) PrefixFree() bool {
	codes := maps.Values(ct)
	// Sorted by their bit strings, a prefix sorts right before the
	// codes it prefixes, so neighbours are enough.
	strs := make([]string, len(codes))
	for i, c := range codes {
		strs[i] = c.String()
	}
	slices.Sort(strs)
	for i := 1; i < len(strs); i++ {
		if strings.HasPrefix(strs[i], strs[i-1]) {
			return false
		}
	}
	return true
}

// WriteTo writes a listing of symbol, code and code length in
// canonical order.
func (ct CodeTable) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	n, _ := fmt.Fprintf(bw, "%-20s %-24s %s\n", "symbol", "code", "bits")
	total += int64(n)
	for _, sym := range ct.Symbols() {
		c := ct[sym]
		n, _ = fmt.Fprintf(bw, "%-20s %-24s %d\n", DisplaySymbol(sym), c, c.Len)
		total += int64(n)
	}
	return total, bw.Flush()
}
