// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/pbkdf2"
)

// Provider is the cryptographic capability injected into the key chain:
// a secure random source, the slow hash and the authenticated cipher.
type Provider interface {
	// Random returns the secure random source. A nil reader means no
	// source is available.
	Random() io.Reader

	// DeriveBits runs PBKDF2-HMAC-SHA256 and returns length bytes.
	DeriveBits(secret, salt []byte, iterations, length int) ([]byte, error)

	// NewAEAD builds an AES-GCM AEAD for a 32-byte key.
	NewAEAD(key []byte) (cipher.AEAD, error)
}

type systemProvider struct{}

// NewSystemProvider returns the provider backed by the operating system
// CSPRNG, x/crypto PBKDF2 and AES-GCM.
func NewSystemProvider() Provider {
	return systemProvider{}
}

func (systemProvider) Random() io.Reader {
	return rand.Reader
}

func (systemProvider) DeriveBits(secret, salt []byte, iterations, length int) ([]byte, error) {
	if iterations <= 0 || length <= 0 {
		return nil, errors.New("invalid pbkdf2 parameters")
	}
	return pbkdf2.Key(secret, salt, iterations, length, sha256.New), nil
}

func (systemProvider) NewAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeyLength {
		return nil, errors.New("aes-256 key must be 32 bytes")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// seededProvider replaces the random source with a ChaCha20 keystream keyed
// by a fixed seed. Derivation and encryption are the real primitives.
type seededProvider struct {
	systemProvider
	random *seededReader
}

// NewSeededProvider returns a deterministic provider for tests. Two providers
// built from the same seed produce the same salts and IVs. Never use it
// outside tests.
func NewSeededProvider(seed []byte) Provider {
	key := sha256.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)

	stream, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		// key and nonce sizes are fixed above
		panic(err)
	}

	return &seededProvider{random: &seededReader{stream: stream}}
}

func (p *seededProvider) Random() io.Reader {
	return p.random
}

type seededReader struct {
	mu     sync.Mutex
	stream *chacha20.Cipher
}

func (r *seededReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(p)
	r.stream.XORKeyStream(p, p)
	return len(p), nil
}
