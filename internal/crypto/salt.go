package crypto

import (
	"fmt"
	"io"
)

// NewSalt implements [SaltGenerator]. It reads length bytes (16 when
// length <= 0) from the provider's secure random source.
func (k *keyChainService) NewSalt(length int) ([]byte, error) {
	if length <= 0 {
		length = DefaultSaltLength
	}
	return readRandom(k.provider, length)
}

// readRandom reads n bytes from p's secure random source.
func readRandom(p Provider, n int) ([]byte, error) {
	src := p.Random()
	if src == nil {
		return nil, ErrEntropyUnavailable
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(src, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return b, nil
}
