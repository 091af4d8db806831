// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/MKhiriev/go-zk-vault/internal/codec"
)

// HardeningParams are the Argon2id parameters the storage service applies to
// a received verifier before persisting it.
type HardeningParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultHardeningParams is 1 pass over 64 MiB with 4 lanes.
var DefaultHardeningParams = HardeningParams{Time: 1, Memory: 64 * 1024, Threads: 4}

const hardenedLength = 32

// VerifierHasher is the server side of verifier storage. A leaked accounts
// table then holds Argon2id outputs instead of raw verifiers.
type VerifierHasher struct {
	params   HardeningParams
	provider Provider
}

// NewVerifierHasher returns a hasher. A nil provider means the system one;
// zero fields in params fall back to DefaultHardeningParams.
func NewVerifierHasher(params HardeningParams, provider Provider) *VerifierHasher {
	if params.Time == 0 {
		params.Time = DefaultHardeningParams.Time
	}
	if params.Memory == 0 {
		params.Memory = DefaultHardeningParams.Memory
	}
	if params.Threads == 0 {
		params.Threads = DefaultHardeningParams.Threads
	}
	if provider == nil {
		provider = NewSystemProvider()
	}
	return &VerifierHasher{params: params, provider: provider}
}

// Harden hashes an encoded verifier under a fresh random salt. Both results
// are codec-encoded.
func (h *VerifierHasher) Harden(verifier string) (hash, salt string, err error) {
	if verifier == "" {
		return "", "", fmt.Errorf("%w: empty verifier", ErrDerivationFailed)
	}

	rawSalt, err := readRandom(h.provider, DefaultSaltLength)
	if err != nil {
		return "", "", err
	}

	sum := h.sum(verifier, rawSalt)
	return codec.Encode(sum), codec.Encode(rawSalt), nil
}

// Matches reports whether verifier hashes to hash under salt. The comparison
// is constant time; malformed stored values never match.
func (h *VerifierHasher) Matches(verifier, hash, salt string) bool {
	rawSalt, err := codec.Decode(salt)
	if err != nil || len(rawSalt) == 0 {
		return false
	}
	want, err := codec.Decode(hash)
	if err != nil {
		return false
	}

	got := h.sum(verifier, rawSalt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// Burn spends the same work as a real comparison. It keeps the response
// time for unknown identifiers close to that of a wrong verifier.
func (h *VerifierHasher) Burn(verifier string) {
	_ = h.sum(verifier, make([]byte, DefaultSaltLength))
}

func (h *VerifierHasher) sum(verifier string, salt []byte) []byte {
	return argon2.IDKey([]byte(verifier), salt, h.params.Time, h.params.Memory, h.params.Threads, hardenedLength)
}
