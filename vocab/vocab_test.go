package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCPP(t *testing.T) {
	s := CPP()
	for _, w := range []string{"for", "while", "std", "include", "char16_t", "co_await"} {
		if !s.Contains(w) {
			t.Errorf("CPP() missing %q", w)
		}
	}
	for _, w := range []string{"For", "fo", "form", "main", ""} {
		if s.Contains(w) {
			t.Errorf("CPP() unexpectedly contains %q", w)
		}
	}
	// callers may mutate the result
	s.Add("main")
	if CPP().Contains("main") {
		t.Error("CPP() shares state between calls")
	}
}

func TestNilSet(t *testing.T) {
	var s Set
	if s.Contains("for") {
		t.Error("nil set contains a word")
	}
	if s.Len() != 0 {
		t.Errorf("nil set Len() = %d", s.Len())
	}
}

func TestWordsSorted(t *testing.T) {
	s := New("while", "for", "_x", "Zeta", "a1")
	want := []string{"Zeta", "_x", "a1", "for", "while"}
	if diff := cmp.Diff(want, s.Words()); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    []string
		has     []string
		wantErr error
	}{
		{
			name: "yaml",
			doc:  "name: go\nwords:\n  - func\n  - package\n  - chan\n",
			want: []string{"chan", "func", "package"},
		},
		{
			name: "json",
			doc:  `{"words": ["def", "lambda"]}`,
			want: []string{"def", "lambda"},
		},
		{
			name: "extends",
			doc:  "extends: cpp\nwords: [uint8_t]\n",
			has:  []string{"uint8_t", "for", "std"},
		},
		{
			name:    "punctuation",
			doc:     "words: [\"a-b\"]\n",
			wantErr: ErrInvalidWord,
		},
		{
			name:    "empty word",
			doc:     "words: [\"\"]\n",
			wantErr: ErrInvalidWord,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.doc))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tt.want != nil {
				if diff := cmp.Diff(tt.want, s.Words()); diff != "" {
					t.Errorf("Words() mismatch (-want +got):\n%s", diff)
				}
			}
			for _, w := range tt.has {
				if !s.Contains(w) {
					t.Errorf("missing %q", w)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		"extends: cobol\nwords: []\n",
		"words: [for]\nunknown: 1\n",
		"words: {a: b}\n",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", doc)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	if err := os.WriteFile(path, []byte("words: [select, from, where]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 || !s.Contains("where") {
		t.Errorf("Load() = %v", s.Words())
	}

	s, err = Load("cpp")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains("namespace") {
		t.Error("Load(\"cpp\") did not return the built-in list")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}
