// Package collect builds frequency tables from source files on disk.
package collect

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/seiflotfy/codehuff"
	"github.com/seiflotfy/codehuff/vocab"
)

// Extensions lists the file extensions Dir counts by default.
var Extensions = []string{".cpp", ".hpp", ".h", ".cc", ".cxx"}

// ErrNotFound is returned by Path for a path that is neither a regular
// file nor a directory.
var ErrNotFound = errors.New("not a file or directory")

type config struct {
	vocab      codehuff.Vocabulary
	extensions []string
	workers    int
	logger     codehuff.Logger
}

// Option configures collection.
type Option func(*config)

// WithVocabulary sets the words kept as single symbols (default vocab.CPP()).
func WithVocabulary(v codehuff.Vocabulary) Option {
	return func(c *config) { c.vocab = v }
}

// WithExtensions restricts Dir to files with one of exts.
func WithExtensions(exts ...string) Option {
	return func(c *config) { c.extensions = exts }
}

// WithWorkers sets how many files are counted at once (default GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithLogger reports every file as it is processed.
func WithLogger(l codehuff.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts []Option) config {
	c := config{extensions: Extensions}
	for _, opt := range opts {
		opt(&c)
	}
	if c.vocab == nil {
		c.vocab = vocab.CPP()
	}
	if c.workers <= 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return c
}

func (c *config) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func (c *config) match(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// File counts the symbols of one file, line by line.
func File(path string, v codehuff.Vocabulary) (*codehuff.FrequencyTable, error) {
	t := codehuff.NewFrequencyTable()
	if err := addFile(t, path, v); err != nil {
		return nil, err
	}
	return t, nil
}

func addFile(t *codehuff.FrequencyTable, path string, v codehuff.Vocabulary) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.AddLines(f, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Path counts a single file, or every matching file below a directory.
func Path(ctx context.Context, path string, opts ...Option) (*codehuff.FrequencyTable, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	switch {
	case info.IsDir():
		return Dir(ctx, path, opts...)
	case info.Mode().IsRegular():
		c := newConfig(opts)
		c.logf("processing %s", path)
		return File(path, c.vocab)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
}

// Dir walks root and counts every regular file with a matching
// extension. Files are counted concurrently; each worker fills its own
// partial table and the partial tables are merged once all workers are
// done. The first error stops the walk.
func Dir(ctx context.Context, root string, opts ...Option) (*codehuff.FrequencyTable, error) {
	c := newConfig(opts)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	paths := make(chan string)
	partials := make([]*codehuff.FrequencyTable, c.workers)
	errs := make([]error, c.workers)
	var wg sync.WaitGroup
	for i := range partials {
		partials[i] = codehuff.NewFrequencyTable()
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for path := range paths {
				if errs[i] != nil {
					continue
				}
				c.logf("processing %s", path)
				if err := addFile(partials[i], path, c.vocab); err != nil {
					errs[i] = err
					cancel()
				}
			}
		}(i)
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() || !c.match(path) {
			return nil
		}
		select {
		case paths <- path:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(paths)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if walkErr != nil {
		return nil, walkErr
	}

	t := codehuff.NewFrequencyTable()
	for _, p := range partials {
		t.Merge(p)
	}
	return t, nil
}
