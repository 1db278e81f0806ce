package codehuff

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	fingerprint uint64
	symbols     int
	total       int64
}

// CodecCache keeps recently built codecs keyed by the content of their
// frequency table, so tables loaded repeatedly are only built once.
// It is safe for concurrent use.
type CodecCache struct {
	opts   []Option
	codecs *lru.Cache[cacheKey, *Codec]
}

// NewCodecCache returns a cache holding at most size codecs, each built
// with opts.
func NewCodecCache(size int, opts ...Option) (*CodecCache, error) {
	codecs, err := lru.New[cacheKey, *Codec](size)
	if err != nil {
		return nil, err
	}
	return &CodecCache{opts: opts, codecs: codecs}, nil
}

// Codec returns the codec for t, building it on a miss.
func (cc *CodecCache) Codec(t *FrequencyTable) (*Codec, error) {
	key := cacheKey{fingerprint: t.Fingerprint(), symbols: t.Len(), total: t.Total()}
	if c, ok := cc.codecs.Get(key); ok && c.table.Equal(t) {
		return c, nil
	}
	c, err := NewCodec(t, cc.opts...)
	if err != nil {
		return nil, err
	}
	cc.codecs.Add(key, c)
	return c, nil
}

// Len returns the number of cached codecs.
func (cc *CodecCache) Len() int { return cc.codecs.Len() }
