// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/cipher"
	"sync"
)

const (
	// DefaultSaltLength is the salt size used when the caller asks for 0.
	DefaultSaltLength = 16

	// KeyLength is the AES-256 key size.
	KeyLength = 32

	// VerifierLength is the size of a derived verifier.
	VerifierLength = 32

	// IVLength is the AES-GCM nonce size (96 bits).
	IVLength = 12

	// DefaultKeyIterations is the floor for encryption-key derivation.
	DefaultKeyIterations = 250_000

	// DefaultVerifierIterations is the floor for verifier derivation. It is
	// lower than the key floor because it runs on every login.
	DefaultVerifierIterations = 100_000
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	provider Provider

	// Iteration floors. Derivation below them is refused.
	minKeyIterations      int
	minVerifierIterations int
}

// Option configures a [KeyChainService].
type Option func(*keyChainService)

// WithProvider replaces the system provider, e.g. with [NewSeededProvider].
func WithProvider(p Provider) Option {
	return func(k *keyChainService) {
		k.provider = p
	}
}

// WithIterationFloors overrides the minimum iteration counts. Values <= 0
// keep the defaults.
func WithIterationFloors(keyIterations, verifierIterations int) Option {
	return func(k *keyChainService) {
		if keyIterations > 0 {
			k.minKeyIterations = keyIterations
		}
		if verifierIterations > 0 {
			k.minVerifierIterations = verifierIterations
		}
	}
}

// NewKeyChainService constructs a [KeyChainService] with the system provider
// and the default iteration floors (250,000 for keys, 100,000 for
// verifiers) unless overridden by opts.
func NewKeyChainService(opts ...Option) KeyChainService {
	k := &keyChainService{
		provider:              NewSystemProvider(),
		minKeyIterations:      DefaultKeyIterations,
		minVerifierIterations: DefaultVerifierIterations,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// EncryptionKey is a derived vault key. It can only be used through a
// [VaultCipher]; its bytes are never handed out.
type EncryptionKey struct {
	mu   sync.RWMutex
	raw  []byte
	aead cipher.AEAD
}

func newEncryptionKey(raw []byte, aead cipher.AEAD) *EncryptionKey {
	return &EncryptionKey{raw: raw, aead: aead}
}

// Destroy zeroes the retained key bytes and drops the cipher. Later use
// fails with ErrKeyDestroyed. Safe to call more than once and on nil.
func (k *EncryptionKey) Destroy() {
	if k == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	clear(k.raw)
	k.raw = nil
	k.aead = nil
}

// Destroyed reports whether Destroy has been called.
func (k *EncryptionKey) Destroyed() bool {
	if k == nil {
		return true
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.aead == nil
}

func (k *EncryptionKey) cipher() (cipher.AEAD, error) {
	if k == nil {
		return nil, ErrKeyDestroyed
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.aead == nil {
		return nil, ErrKeyDestroyed
	}
	return k.aead, nil
}
