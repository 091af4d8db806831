package store

import "errors"

// Sentinel errors returned by repositories. Callers match them with
// [errors.Is].
var (
	// ErrIdentifierAlreadyExists is returned when an account with the same
	// identifier is already registered.
	ErrIdentifierAlreadyExists = errors.New("identifier already exists")

	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrVaultNotFound is returned when the account has no stored vault.
	ErrVaultNotFound = errors.New("vault not found")

	// ErrUnavailable wraps transient backend failures (lost connection,
	// serialization failure, busy database).
	ErrUnavailable = errors.New("storage backend unavailable")
)

// Low-level errors wrapped by the SQL repositories.
var (
	ErrBuildingSQLQuery = errors.New("error building sql query")
	ErrExecutingQuery   = errors.New("error executing sql query")
	ErrScanningRow      = errors.New("failed to scan row")
)
