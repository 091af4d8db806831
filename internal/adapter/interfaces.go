// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's view of the remote Storage Service.
//
// [StorageService] decouples the client session from the transport. The
// package ships an HTTP/REST implementation ([NewHTTPStorageService]); an
// in-process implementation over the server services lives in the service
// package and is used by tests and single-binary setups.
//
// Transport results are mapped onto the sentinel errors in errors.go so that
// callers can use [errors.Is] regardless of the implementation.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-zk-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/storage_service_mock.go -package=mock

// StorageService is the remote party that stores accounts and encrypted
// vaults. It never sees the master secret, the encryption key or any
// plaintext.
type StorageService interface {
	// Register creates an account. Fails with ErrDuplicateIdentifier when the
	// identifier is taken and ErrInvalidInput when the payload is rejected.
	Register(ctx context.Context, registration models.Registration) error

	// FetchAuthSalt returns the public parameters needed to recompute the
	// verifier for identifier. Fails with ErrAccountNotFound.
	FetchAuthSalt(ctx context.Context, identifier string) (models.AuthParams, error)

	// Authenticate checks the verifier and returns an opaque session
	// identifier. Fails with ErrInvalidCredentials.
	Authenticate(ctx context.Context, credentials models.Credentials) (string, error)

	// FetchVault returns the stored envelope. Vault is nil when nothing was
	// saved yet.
	FetchVault(ctx context.Context, sessionID string) (models.VaultEnvelope, error)

	// SaveVault replaces the stored vault unconditionally. The last writer
	// wins.
	SaveVault(ctx context.Context, sessionID string, envelope models.VaultEnvelope) error
}
