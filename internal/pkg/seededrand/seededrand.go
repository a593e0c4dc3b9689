// Package seededrand provides a small deterministic random source derived
// from a string seed. It is not suitable for anything security related.
package seededrand

import "crypto/sha256"

// Hasher turns a seed into the byte buffer the source cycles through.
type Hasher func(seed []byte) []byte

// SHA256 is the default hasher.
func SHA256(seed []byte) []byte {
	sum := sha256.Sum256(seed)
	return sum[:]
}

type Option func(*Source)

// WithHasher swaps the seeding hash. A hasher that returns no bytes is ignored.
func WithHasher(h Hasher) Option {
	return func(s *Source) {
		if h != nil {
			s.hash = h
		}
	}
}

// Source yields a fixed, cyclic sequence of floats for a given seed.
// It is not safe for concurrent use.
type Source struct {
	hash  Hasher
	buf   []byte
	index int
}

func New(seed string, opts ...Option) *Source {
	s := &Source{hash: SHA256}
	for _, opt := range opts {
		opt(s)
	}
	s.buf = s.hash([]byte(seed))
	if len(s.buf) == 0 {
		s.buf = SHA256([]byte(seed))
	}
	return s
}

// Float64 consumes the next byte, wrapping around the buffer, and maps it to [0,1).
func (s *Source) Float64() float64 {
	b := s.buf[s.index%len(s.buf)]
	s.index++
	return float64(b) / 256
}
