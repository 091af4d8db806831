package config

import "errors"

// Validation errors returned when a configuration group is incomplete.
var (
	// ErrInvalidAdapterConfigs indicates a missing server address or timeout
	// on the client.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates an unknown backend, a missing DSN or
	// an object store without a bucket.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing token settings or a
	// non-positive autosave delay.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidCryptoConfigs indicates iteration counts below the allowed
	// minimum or zero hardening parameters.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
)
