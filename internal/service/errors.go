package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/crypto"
)

// Storage service errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Client session errors.
var (
	// ErrSessionBusy is returned when Register or Login is called while
	// another one is running or the session is already unlocked.
	ErrSessionBusy = errors.New("session is busy")

	// ErrSessionLocked is returned by vault operations before Login or
	// after Logout.
	ErrSessionLocked = errors.New("session is locked")

	// ErrSessionClosed is returned by a save whose session was logged out
	// while it ran. Its result is discarded.
	ErrSessionClosed = errors.New("session was closed")

	ErrEmptyIdentifier = errors.New("identifier is empty")
	ErrItemNotFound    = errors.New("vault item not found")
	ErrItemTitleEmpty  = errors.New("vault item title is empty")

	// ErrWrongSecretOrCorrupted is what Load reports for any decryption
	// failure. It matches crypto.ErrDecryptionFailed.
	ErrWrongSecretOrCorrupted = fmt.Errorf("wrong master secret or corrupted vault: %w", crypto.ErrDecryptionFailed)
)
