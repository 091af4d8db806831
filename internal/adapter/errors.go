package adapter

import "errors"

var (
	ErrDuplicateIdentifier = errors.New("identifier already registered")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("session unauthorized")

	// ErrStorageUnavailable covers transport failures and unexpected server
	// responses.
	ErrStorageUnavailable = errors.New("storage service unavailable")
)
