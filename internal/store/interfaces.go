// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists accounts and encrypted vaults for the storage
// service. It never sees plaintext: a vault is an opaque (iv, ciphertext)
// pair plus the public KDF parameters needed to derive its key.
package store

import (
	"context"

	"github.com/MKhiriev/go-zk-vault/models"
)

// AccountRepository stores registered accounts.
type AccountRepository interface {
	// CreateAccount inserts account and returns it with AccountID and
	// CreatedAt set. Returns ErrIdentifierAlreadyExists for a taken
	// identifier.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	// FindAccountByIdentifier returns ErrAccountNotFound when nothing matches.
	FindAccountByIdentifier(ctx context.Context, identifier string) (models.Account, error)

	// FindAccountByID returns ErrAccountNotFound when nothing matches.
	FindAccountByID(ctx context.Context, accountID int64) (models.Account, error)
}

// VaultRepository stores one encrypted vault per account.
type VaultRepository interface {
	// GetVault returns ErrVaultNotFound when the account has not saved yet.
	GetVault(ctx context.Context, accountID int64) (models.StoredVault, error)

	// SaveVault inserts or replaces the account's vault. There is no
	// version check.
	SaveVault(ctx context.Context, vault models.StoredVault) error
}
