// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AlgorithmPBKDF2SHA256 is the only key-derivation algorithm the client
// understands. Any other value in [KdfParams.Algorithm] is rejected.
const AlgorithmPBKDF2SHA256 = "PBKDF2-SHA256"

// KdfParams describes how the vault encryption key is derived from the master
// secret. It is owned by the account record and travels alongside the
// encrypted vault so that old ciphertexts stay decryptable after the policy
// moves upwards.
type KdfParams struct {
	// Algorithm names the derivation function, e.g. "PBKDF2-SHA256".
	Algorithm string `json:"algorithm"`

	// Salt is the codec-encoded KdfSalt. Never shared with the verifier domain.
	Salt string `json:"salt"`

	// Iterations is the PBKDF2 iteration count used for this salt.
	Iterations int `json:"iterations"`
}

// IsZero reports whether no parameters were set at all.
func (p KdfParams) IsZero() bool {
	return p.Algorithm == "" && p.Salt == "" && p.Iterations == 0
}

// HasSalt reports whether a KdfSalt has already been generated.
func (p KdfParams) HasSalt() bool {
	return p.Salt != ""
}
