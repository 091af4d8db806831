// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Registration is the payload a client sends to create an account. It never
// contains the master secret or anything invertible to it.
type Registration struct {
	// Identifier is the normalised account name (typically an e-mail).
	Identifier string `json:"identifier"`

	// AuthVerifier is the codec-encoded 32-byte client verifier.
	AuthVerifier string `json:"auth_verifier"`

	// AuthSalt is the codec-encoded verifier-domain salt.
	AuthSalt string `json:"auth_salt"`

	// AuthIterations is the PBKDF2 iteration count used for AuthVerifier.
	AuthIterations int `json:"auth_iterations"`

	// KdfParams are the encryption-domain parameters.
	KdfParams KdfParams `json:"kdf_params"`
}

// AuthParams is returned by FetchAuthSalt so the client can recompute its
// verifier with exactly the parameters used at registration.
type AuthParams struct {
	Identifier     string    `json:"identifier"`
	AuthSalt       string    `json:"auth_salt"`
	AuthIterations int       `json:"auth_iterations"`
	KdfParams      KdfParams `json:"kdf_params"`
}

// Credentials carries the identifier and recomputed verifier on login.
type Credentials struct {
	Identifier   string `json:"identifier"`
	AuthVerifier string `json:"auth_verifier"`
}

// ParamsRequest asks for the AuthParams of one identifier.
type ParamsRequest struct {
	Identifier string `json:"identifier"`
}

// Account is the server-side account record. The verifier is stored only in
// its hardened form.
type Account struct {
	// AccountID is the internal identifier. Not exposed via JSON.
	AccountID int64 `json:"-"`

	Identifier string `json:"identifier"`

	// VerifierHash is the hardened verifier (argon2id output, codec-encoded).
	VerifierHash string `json:"-"`

	// VerifierSalt is the per-record hardening salt, codec-encoded.
	VerifierSalt string `json:"-"`

	AuthSalt       string    `json:"auth_salt"`
	AuthIterations int       `json:"auth_iterations"`
	KdfParams      KdfParams `json:"kdf_params"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// StoredVault is the server-side vault row: one per account, replaced on
// every save.
type StoredVault struct {
	AccountID int64          `json:"account_id"`
	Vault     EncryptedVault `json:"vault"`
	KdfParams KdfParams      `json:"kdf_params"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the StoredVault model.
func (v StoredVault) TableName() string {
	return "vaults"
}
