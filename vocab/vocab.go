// Package vocab provides the word lists that the tokenizer treats as
// single symbols.
//
// A vocabulary is plain configuration: the built-in C++ list is returned
// by [CPP], and custom lists can be loaded from YAML or JSON files with
// [Load] or [Parse].
package vocab

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"sigs.k8s.io/yaml"
)

// Set is a case-sensitive set of multi-byte words.
type Set map[string]struct{}

// New returns a Set holding words.
func New(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Contains reports whether word is in s.
// A nil Set contains nothing.
func (s Set) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Add inserts words into s.
func (s Set) Add(words ...string) {
	for _, w := range words {
		s[w] = struct{}{}
	}
}

// Len returns the number of words in s.
func (s Set) Len() int { return len(s) }

// Words returns the words of s in ascending byte order.
func (s Set) Words() []string {
	words := maps.Keys(s)
	slices.Sort(words)
	return words
}

// Union returns a new Set holding the words of s and o.
func (s Set) Union(o Set) Set {
	out := make(Set, len(s)+len(o))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range o {
		out[w] = struct{}{}
	}
	return out
}

// NameCPP is the name of the built-in C++ vocabulary.
const NameCPP = "cpp"

var cppWords = []string{
	"alignas", "alignof", "and", "and_eq", "asm", "auto",
	"bitand", "bitor", "bool", "break", "case", "catch",
	"char", "char8_t", "char16_t", "char32_t", "class", "compl",
	"concept", "const", "consteval", "constexpr", "constinit", "const_cast",
	"continue", "co_await", "co_return", "co_yield", "decltype", "default",
	"delete", "do", "double", "dynamic_cast", "else", "enum",
	"explicit", "export", "extern", "false", "float", "for",
	"friend", "goto", "if", "inline", "int", "long",
	"mutable", "namespace", "new", "noexcept", "not", "not_eq",
	"nullptr", "operator", "or", "or_eq", "private", "protected",
	"public", "register", "reinterpret_cast", "requires", "return", "short",
	"signed", "sizeof", "static", "static_assert", "static_cast", "struct",
	"switch", "template", "this", "thread_local", "throw", "true",
	"try", "typedef", "typeid", "typename", "union", "unsigned",
	"using", "virtual", "void", "volatile", "wchar_t", "while",
	"xor", "xor_eq",

	// common library and preprocessor words
	"std", "cout", "cin", "endl", "vector", "map", "string",
	"include", "define", "ifdef", "ifndef", "endif", "pragma",
}

// CPP returns a fresh copy of the built-in C++ vocabulary.
func CPP() Set { return New(cppWords...) }

// builtin resolves the name of a built-in vocabulary.
func builtin(name string) (Set, bool) {
	switch name {
	case NameCPP, "c++":
		return CPP(), true
	}
	return nil, false
}

// File is the on-disk shape of a vocabulary document.
//
//	name: embedded-c
//	extends: cpp
//	words: [uint8_t, uint16_t, volatile]
type File struct {
	Name    string   `json:"name,omitempty"`
	Extends string   `json:"extends,omitempty"`
	Words   []string `json:"words"`
}

// ErrInvalidWord is returned for vocabulary entries that can never
// be produced as a single token.
var ErrInvalidWord = errors.New("invalid vocabulary word")

// IsWordByte reports whether b can be part of a vocabulary word:
// an ASCII letter, digit or underscore.
func IsWordByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

func validWord(w string) bool {
	if len(w) == 0 {
		return false
	}
	for i := 0; i < len(w); i++ {
		if !IsWordByte(w[i]) {
			return false
		}
	}
	return true
}

// Parse decodes a YAML or JSON vocabulary document.
func Parse(data []byte) (Set, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	s := make(Set, len(f.Words))
	if f.Extends != "" {
		base, ok := builtin(f.Extends)
		if !ok {
			return nil, fmt.Errorf("vocabulary %q: unknown base %q", f.Name, f.Extends)
		}
		s = base
	}
	for i, w := range f.Words {
		if !validWord(w) {
			return nil, fmt.Errorf("vocabulary %q entry %d %q: %w", f.Name, i, w, ErrInvalidWord)
		}
		s.Add(w)
	}
	return s, nil
}

// Load reads a vocabulary document from path. The names of built-in
// vocabularies ("cpp") are accepted in place of a path.
func Load(path string) (Set, error) {
	if s, ok := builtin(path); ok {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
