// Package codehuff is a Huffman compressor specialised for source code.
//
// Text is split into symbols by [Tokenize]: recognised language keywords
// become single symbols and every other byte stands alone. A
// [FrequencyTable] counts symbols over a corpus, [BuildTree] derives a
// prefix-free code from it, and a [Codec] uses that code to pack content
// into a [Compressed] container and to restore it.
package codehuff

import (
	"errors"

	"github.com/seiflotfy/codehuff/vocab"
)

// Logger receives warnings and progress messages.
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type discard struct{}

func (discard) Printf(string, ...any) {}

// Config holds configuration for codecs and models.
type Config struct {
	Vocabulary  Vocabulary // Words kept whole while training (nil = vocab.CPP())
	LossyEncode bool       // Skip symbols without a code instead of failing
	Logger      Logger     // Destination for warnings (nil = discard)
}

// Option is a functional option for configuring a Codec or Model.
type Option func(*Config)

// WithVocabulary sets the words that training keeps as single symbols.
func WithVocabulary(v Vocabulary) Option {
	return func(c *Config) {
		c.Vocabulary = v
	}
}

// WithLossyEncode makes Encode warn about and drop symbols that have no
// code, instead of returning an error. The output then no longer decodes
// to the original content.
func WithLossyEncode(lossy bool) Option {
	return func(c *Config) {
		c.LossyEncode = lossy
	}
}

// WithLogger sets the destination for warnings.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func newConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Vocabulary == nil {
		cfg.Vocabulary = vocab.CPP()
	}
	if cfg.Logger == nil {
		cfg.Logger = discard{}
	}
	return cfg
}

var (
	// ErrEmptyTable indicates a tree was requested for a table with no symbols.
	ErrEmptyTable = errors.New("empty frequency table")
	// ErrUnknownSymbol indicates content holds a symbol the code cannot represent.
	ErrUnknownSymbol = errors.New("symbol has no code")
	// ErrMalformedHeader indicates a compressed container header could not be parsed.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrTruncatedStream indicates the bitstream ended inside a code.
	ErrTruncatedStream = errors.New("bitstream ends mid-code")
	// ErrInvalidCode indicates a bit sequence that no code starts with.
	ErrInvalidCode = errors.New("invalid code in bitstream")
	// ErrSizeMismatch indicates the decoded length differs from the recorded size.
	ErrSizeMismatch = errors.New("decoded size does not match header")
	// ErrCodeTooLong indicates a code deeper than maxCodeLen bits.
	ErrCodeTooLong = errors.New("code too long")
	// ErrInputTooLarge indicates content whose size does not fit the header.
	ErrInputTooLarge = errors.New("input too large")
	// ErrUntrainedModel indicates Encode was called before a model was trained.
	ErrUntrainedModel = errors.New("model is not trained")
)
