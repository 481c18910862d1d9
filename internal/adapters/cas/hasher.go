package cas

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Hasher implements ports.Hasher with xxhash64.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Sum returns the zero-padded hex xxhash64 of data.
func (h *Hasher) Sum(data []byte) string {
	s := strconv.FormatUint(xxhash.Sum64(data), 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}
