package service

import (
	"context"

	"github.com/MKhiriev/go-zk-vault/models"
)

// ClientAuthService is the registration/login state machine of the client.
//
//	Anonymous -> Registering -> Anonymous
//	Anonymous -> Authenticating -> Unlocked -> (Logout) -> Anonymous
type ClientAuthService interface {
	// Register creates an account for identifier. The secret is used to
	// derive the verifier and is never sent. The session stays Anonymous.
	Register(ctx context.Context, identifier string, secret []byte) error

	// Login proves knowledge of secret and unlocks the session. The
	// encryption key is not derived here but on first vault access.
	Login(ctx context.Context, identifier string, secret []byte) error

	// Logout wipes the secret and key, cancels a pending autosave and
	// discards the in-memory vault. Results of saves still in flight are
	// ignored afterwards.
	Logout()

	State() SessionState
}

// ClientVaultService works on the decrypted vault of an unlocked session.
type ClientVaultService interface {
	// Load fetches and decrypts the stored vault. On failure the session
	// stays Unlocked with the last record that decrypted (empty if none).
	Load(ctx context.Context) (models.VaultRecord, error)

	// Save uploads the current record now.
	Save(ctx context.Context) error

	// Flush cancels the pending autosave and saves if there are unsaved
	// changes.
	Flush(ctx context.Context) error

	// AutosaveErr is the result of the last background save.
	AutosaveErr() error

	// Add assigns a fresh id to item and appends it.
	Add(item models.VaultItem) (models.VaultItem, error)
	Update(item models.VaultItem) error
	Delete(id string) error

	Get(id string) (models.VaultItem, error)
	List() ([]models.VaultItem, error)
}

// idGenerator issues vault item ids.
type idGenerator interface {
	Generate() string
}
