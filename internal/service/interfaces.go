// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-zk-vault/models"
)

// AuthService is the storage service side of registration and login. It only
// ever receives verifiers, never a master secret.
type AuthService interface {
	// Register validates the registration payload, hardens the verifier and
	// persists the account.
	Register(ctx context.Context, registration models.Registration) (models.Account, error)

	// Params returns the public derivation parameters of an account.
	Params(ctx context.Context, identifier string) (models.AuthParams, error)

	// Login compares the verifier against the hardened one. Unknown
	// identifiers and wrong verifiers both fail with ErrInvalidCredentials.
	Login(ctx context.Context, credentials models.Credentials) (models.Account, error)

	CreateToken(ctx context.Context, account models.Account) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService stores one opaque encrypted vault per account.
type VaultService interface {
	// Fetch returns the stored vault with the parameters of its key. Vault
	// is nil when the account has not saved yet; KdfParams then come from
	// the account record.
	Fetch(ctx context.Context, accountID int64) (models.VaultEnvelope, error)

	// Save replaces the stored vault. There is no version check: the last
	// writer wins.
	Save(ctx context.Context, accountID int64, envelope models.VaultEnvelope) error
}

// AppInfoService reports build information of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
