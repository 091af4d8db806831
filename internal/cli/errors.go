package cli

import (
	"errors"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/service"
)

var (
	ErrSecretMismatch = errors.New("secrets do not match")
	ErrEmptySecret    = errors.New("master secret is empty")
	ErrNothingToEdit  = errors.New("nothing to edit")
)

// userMessages is checked in order; the first match wins.
var userMessages = []struct {
	err error
	msg string
}{
	{adapter.ErrInvalidCredentials, "wrong identifier or master secret"},
	{adapter.ErrAccountNotFound, "no account with that identifier"},
	{adapter.ErrDuplicateIdentifier, "this identifier is already registered"},
	{service.ErrWrongSecretOrCorrupted, "the vault could not be decrypted: wrong master secret or corrupted data"},
	{adapter.ErrUnauthorized, "the session expired, run the command again"},
	{adapter.ErrInvalidInput, "the storage service rejected the request"},
	{adapter.ErrStorageUnavailable, "the storage service is unavailable, try again later"},
	{service.ErrItemNotFound, "no item with that id"},
	{service.ErrItemTitleEmpty, "an item needs a title"},
	{service.ErrEmptyIdentifier, "an identifier is required"},
	{ErrSecretMismatch, "the secrets do not match"},
	{ErrEmptySecret, "the master secret must not be empty"},
	{ErrNothingToEdit, "nothing to change, pass at least one flag"},
}

// Describe turns err into a message for the terminal. Unknown errors are
// returned as is.
func Describe(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}
