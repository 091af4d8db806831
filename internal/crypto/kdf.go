// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-zk-vault/internal/codec"
	"github.com/MKhiriev/go-zk-vault/models"
)

// DeriveKey implements [KeyDerivationEngine]. It derives 32 bytes with
// PBKDF2-HMAC-SHA256 and binds them to an AES-GCM cipher right away.
func (k *keyChainService) DeriveKey(secret, salt []byte, iterations int) (*EncryptionKey, error) {
	if err := checkDerivationInput(secret, salt, iterations, k.minKeyIterations); err != nil {
		return nil, err
	}

	raw, err := k.provider.DeriveBits(secret, salt, iterations, KeyLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivationFailed, err)
	}

	aead, err := k.provider.NewAEAD(raw)
	if err != nil {
		clear(raw)
		return nil, fmt.Errorf("%w: %v", ErrDerivationFailed, err)
	}

	return newEncryptionKey(raw, aead), nil
}

// DeriveKeyWithParams implements [KeyDerivationEngine].
func (k *keyChainService) DeriveKeyWithParams(secret []byte, params models.KdfParams) (*EncryptionKey, error) {
	if err := ValidateKdfParams(params); err != nil {
		return nil, err
	}

	salt, err := codec.Decode(params.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: kdf salt: %v", ErrDerivationFailed, err)
	}

	return k.DeriveKey(secret, salt, params.Iterations)
}

// DeriveVerifier implements [KeyDerivationEngine]. The result is raw bytes
// meant to be codec-encoded and sent to the storage service.
func (k *keyChainService) DeriveVerifier(input, salt []byte, iterations int) ([]byte, error) {
	if err := checkDerivationInput(input, salt, iterations, k.minVerifierIterations); err != nil {
		return nil, err
	}

	verifier, err := k.provider.DeriveBits(input, salt, iterations, VerifierLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivationFailed, err)
	}
	return verifier, nil
}

// VerifierInput binds the account identifier to the secret so that two
// accounts sharing a master secret still get unrelated verifiers. The
// caller owns the returned slice and should clear it after use.
func VerifierInput(secret []byte, identifier string) []byte {
	id := NormalizeIdentifier(identifier)

	input := make([]byte, 0, len(secret)+len(id))
	input = append(input, secret...)
	return append(input, id...)
}

// NormalizeIdentifier trims and lower-cases an account identifier.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// ValidateKdfParams rejects unknown algorithms, missing or malformed salts and
// non-positive iteration counts. It does not apply iteration floors.
func ValidateKdfParams(params models.KdfParams) error {
	if params.Algorithm != models.AlgorithmPBKDF2SHA256 {
		return fmt.Errorf("%w: %w %q", ErrDerivationFailed, ErrUnsupportedAlgorithm, params.Algorithm)
	}
	if params.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive", ErrDerivationFailed)
	}
	salt, err := codec.Decode(params.Salt)
	if err != nil || len(salt) == 0 {
		return fmt.Errorf("%w: missing or malformed kdf salt", ErrDerivationFailed)
	}
	return nil
}

func checkDerivationInput(secret, salt []byte, iterations, floor int) error {
	switch {
	case len(secret) == 0:
		return fmt.Errorf("%w: empty secret", ErrDerivationFailed)
	case len(salt) == 0:
		return fmt.Errorf("%w: empty salt", ErrDerivationFailed)
	case iterations < floor:
		return fmt.Errorf("%w: %d iterations is below the floor of %d", ErrDerivationFailed, iterations, floor)
	}
	return nil
}
