package codehuff

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Text format, one record per line in canonical order:
//
//	<escaped-symbol>|<count>
//
// Only four symbols are escaped: line feed as \n, tab as \t, space as \s
// and pipe as \p. Everything else is written verbatim.
const recordSep = '|'

var (
	escapes = map[string]string{
		"\n": `\n`,
		"\t": `\t`,
		" ":  `\s`,
		"|":  `\p`,
	}
	unescapes = map[string]string{
		`\n`: "\n",
		`\t`: "\t",
		`\s`: " ",
		`\p`: "|",
	}
)

func escapeSymbol(sym string) string {
	if e, ok := escapes[sym]; ok {
		return e
	}
	return sym
}

func unescapeSymbol(s string) string {
	if u, ok := unescapes[s]; ok {
		return u
	}
	return s
}

// ErrTableFormat is wrapped by every *TableFormatError.
var ErrTableFormat = errors.New("invalid frequency table record")

// TableFormatError reports a record that could not be parsed.
type TableFormatError struct {
	Line   int    // 1-based line number
	Record string // the offending line, without its line feed
	Reason string
}

func (e *TableFormatError) Error() string {
	return fmt.Sprintf("frequency table line %d %q: %s", e.Line, e.Record, e.Reason)
}

func (e *TableFormatError) Unwrap() error { return ErrTableFormat }

// WriteTo serializes t in the text format.
func (t *FrequencyTable) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	var num []byte
	for _, sym := range t.Symbols() {
		n, _ := bw.WriteString(escapeSymbol(sym))
		total += int64(n)
		bw.WriteByte(recordSep)
		num = strconv.AppendInt(num[:0], t.counts[sym], 10)
		num = append(num, '\n')
		n, _ = bw.Write(num)
		total += int64(n) + 1
	}
	if err := bw.Flush(); err != nil {
		return total, err
	}
	return total, nil
}

// ReadFrom parses records in the text format and adds them to t.
// Blank lines are skipped and CRLF line endings are accepted. A record without a separator, with a count
// that is not a positive integer, or repeating a symbol already read is
// a *TableFormatError.
func (t *FrequencyTable) ReadFrom(r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	seen := make(map[string]struct{})
	var total int64
	for lineno := 1; ; lineno++ {
		line, err := br.ReadBytes('\n')
		total += int64(len(line))
		if len(line) > 0 {
			if perr := t.readRecord(line, lineno, seen); perr != nil {
				return total, perr
			}
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

func (t *FrequencyTable) readRecord(line []byte, lineno int, seen map[string]struct{}) error {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	if len(line) == 0 || (len(line) == 1 && line[0] == '\r') {
		return nil
	}
	fail := func(reason string) error {
		return &TableFormatError{Line: lineno, Record: string(line), Reason: reason}
	}
	sep := bytes.IndexByte(line, recordSep)
	if sep < 0 {
		return fail("missing separator")
	}
	if sep == 0 {
		return fail("empty symbol")
	}
	sym := unescapeSymbol(string(line[:sep]))
	// CRLF files: the carriage return belongs to the line ending, not
	// the count. Symbols are left alone so "\r" keeps its own record.
	field := bytes.TrimSuffix(line[sep+1:], []byte{'\r'})
	count, err := strconv.ParseInt(string(field), 10, 64)
	if err != nil {
		return fail("bad count")
	}
	if count <= 0 {
		return fail("count must be positive")
	}
	if _, dup := seen[sym]; dup {
		return fail("duplicate symbol")
	}
	seen[sym] = struct{}{}
	t.counts[sym] += count
	return nil
}

// LoadFrequencyTable reads a table file.
func LoadFrequencyTable(path string) (*FrequencyTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t := NewFrequencyTable()
	if _, err := t.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// SaveFrequencyTable writes t to path, replacing any existing file.
func SaveFrequencyTable(path string, t *FrequencyTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := t.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
