package codehuff

import (
	"io"
	"strings"
)

// Model is a reusable trained code: it counts symbols over sample
// content with a vocabulary and keeps the resulting Codec.
type Model struct {
	config Config
	opts   []Option
	table  *FrequencyTable
	codec  *Codec
}

// NewModel creates an untrained model with the provided options.
func NewModel(opts ...Option) *Model {
	return &Model{
		config: newConfig(opts),
		opts:   opts,
		table:  NewFrequencyTable(),
	}
}

// TrainModel trains a model from sample strings.
func TrainModel(samples []string, opts ...Option) (*Model, error) {
	m := NewModel(opts...)
	if err := m.Train(samples); err != nil {
		return nil, err
	}
	return m, nil
}

// Train adds samples to the model's counts and rebuilds its codec.
// Each sample is counted line by line, like a file. On error the model
// keeps its previous counts and codec.
func (m *Model) Train(samples []string) error {
	table := m.table.Clone()
	for _, s := range samples {
		if err := table.AddLines(strings.NewReader(s), m.config.Vocabulary); err != nil {
			return err
		}
	}
	return m.rebuild(table)
}

// TrainReader adds the lines of r to the model's counts and rebuilds
// its codec. On error the model is unchanged.
func (m *Model) TrainReader(r io.Reader) error {
	table := m.table.Clone()
	if err := table.AddLines(r, m.config.Vocabulary); err != nil {
		return err
	}
	return m.rebuild(table)
}

func (m *Model) rebuild(table *FrequencyTable) error {
	codec, err := NewCodec(table, m.opts...)
	if err != nil {
		return err
	}
	m.table, m.codec = table, codec
	return nil
}

// Table returns a copy of the counts gathered so far.
func (m *Model) Table() *FrequencyTable { return m.table.Clone() }

// Codec returns the trained codec, or nil before training.
func (m *Model) Codec() *Codec { return m.codec }

// Trained reports whether the model is ready for Encode.
func (m *Model) Trained() bool {
	return m.codec != nil
}

// Encode compresses content using the trained code.
func (m *Model) Encode(content []byte) (*Compressed, error) {
	if m.codec == nil {
		return nil, ErrUntrainedModel
	}
	return m.codec.Encode(content)
}

// Decode restores content compressed by Encode.
func (m *Model) Decode(c *Compressed) ([]byte, error) {
	if m.codec == nil {
		return nil, ErrUntrainedModel
	}
	return m.codec.Decode(c)
}
