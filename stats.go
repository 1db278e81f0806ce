package codehuff

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

// SymbolCount is one symbol of a table together with its share of all
// occurrences.
type SymbolCount struct {
	Symbol  string
	Count   int64
	Percent float64
}

// Stats summarises a frequency table.
type Stats struct {
	Symbols     int   // distinct symbols
	Occurrences int64 // sum of all counts
	Top         []SymbolCount
}

// Stats returns the summary of t with its n most frequent symbols,
// most frequent first. Equal counts keep canonical order.
func (t *FrequencyTable) Stats(n int) Stats {
	st := Stats{Symbols: t.Len(), Occurrences: t.Total()}
	syms := t.Symbols()
	slices.SortStableFunc(syms, func(a, b string) int {
		ca, cb := t.counts[a], t.counts[b]
		switch {
		case ca > cb:
			return -1
		case ca < cb:
			return 1
		}
		return 0
	})
	if n < len(syms) {
		syms = syms[:max(n, 0)]
	}
	st.Top = make([]SymbolCount, len(syms))
	for i, sym := range syms {
		c := t.counts[sym]
		st.Top[i] = SymbolCount{
			Symbol:  sym,
			Count:   c,
			Percent: float64(c) * 100 / float64(st.Occurrences),
		}
	}
	return st
}

// WriteTo writes a human readable report of st.
func (st Stats) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	p := func(format string, args ...any) {
		n, _ := fmt.Fprintf(bw, format, args...)
		total += int64(n)
	}
	p("distinct symbols:  %d\n", st.Symbols)
	p("total occurrences: %d\n", st.Occurrences)
	if len(st.Top) > 0 {
		p("\ntop %d symbols:\n", len(st.Top))
		p("%-20s %-15s %s\n", "symbol", "count", "percent")
		p("%s\n", strings.Repeat("-", 50))
		for _, sc := range st.Top {
			p("%-20s %-15d %.2f%%\n", DisplaySymbol(sc.Symbol), sc.Count, sc.Percent)
		}
	}
	return total, bw.Flush()
}

// DisplaySymbol renders whitespace symbols readably for listings.
func DisplaySymbol(sym string) string {
	switch sym {
	case "\n":
		return `\n`
	case "\t":
		return `\t`
	case "\r":
		return `\r`
	case " ":
		return "[space]"
	}
	return sym
}
