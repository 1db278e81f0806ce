package codehuff

import "github.com/seiflotfy/codehuff/vocab"

// Vocabulary decides which word runs are kept as a single symbol.
// Both vocab.Set and *FrequencyTable implement it.
type Vocabulary interface {
	Contains(symbol string) bool
}

// Tokenize splits text into symbols.
//
// Maximal runs of word bytes (ASCII letters, digits and '_') that v
// contains exactly become one symbol; any other run is split into one
// symbol per byte. Every non-word byte is a symbol of its own.
// Concatenating the result always yields text. A nil v matches nothing.
func Tokenize(text []byte, v Vocabulary) []string {
	return AppendTokens(nil, text, v)
}

// AppendTokens appends the symbols of text to dst and returns the
// extended slice.
func AppendTokens(dst []string, text []byte, v Vocabulary) []string {
	start := -1
	for i := 0; i < len(text); i++ {
		c := text[i]
		if vocab.IsWordByte(c) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			dst = appendRun(dst, text[start:i], v)
			start = -1
		}
		dst = append(dst, byteSymbol(c))
	}
	if start >= 0 {
		dst = appendRun(dst, text[start:], v)
	}
	return dst
}

func appendRun(dst []string, run []byte, v Vocabulary) []string {
	if len(run) > 1 && v != nil {
		if word := string(run); v.Contains(word) {
			return append(dst, word)
		}
	}
	for _, c := range run {
		dst = append(dst, byteSymbol(c))
	}
	return dst
}

// byteSymbols avoids allocating a string per single-byte symbol.
var byteSymbols = func() (s [256]string) {
	for i := range s {
		s[i] = string([]byte{byte(i)})
	}
	return s
}()

func byteSymbol(c byte) string { return byteSymbols[c] }
