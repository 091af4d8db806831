package crypto

import "github.com/MKhiriev/go-zk-vault/models"

// SaltGenerator produces unpredictable salts from the provider's secure
// random source.
type SaltGenerator interface {
	// NewSalt returns length random bytes (DefaultSaltLength when length <= 0).
	// Fails with ErrEntropyUnavailable; never falls back to a weaker source.
	NewSalt(length int) ([]byte, error)
}

// KeyDerivationEngine turns (secret, salt, iterations) into either an
// encryption key or a verifier, using PBKDF2-HMAC-SHA256 in both cases.
//
// The two outputs live in separate domains: the verifier input binds the
// account identifier and uses AuthSalt, the key uses KdfSalt.
type KeyDerivationEngine interface {
	// DeriveKey derives a 256-bit AES-GCM key. The raw bytes are not
	// exposed to the caller.
	DeriveKey(secret, salt []byte, iterations int) (*EncryptionKey, error)

	// DeriveKeyWithParams validates params (algorithm, salt, iterations)
	// and derives the key they describe.
	DeriveKeyWithParams(secret []byte, params models.KdfParams) (*EncryptionKey, error)

	// DeriveVerifier derives the 32-byte deterministic verifier. input is
	// expected to come from VerifierInput.
	DeriveVerifier(input, salt []byte, iterations int) ([]byte, error)
}

// VaultCipher is authenticated encryption of a whole vault record.
type VaultCipher interface {
	// Encrypt serializes record and seals it under key with a fresh IV.
	Encrypt(record models.VaultRecord, key *EncryptionKey) (models.EncryptedVault, error)

	// Decrypt opens vault with key. Every failure is reported as the same
	// ErrDecryptionFailed and no partial plaintext is returned.
	Decrypt(vault models.EncryptedVault, key *EncryptionKey) (models.VaultRecord, error)
}

// KeyChainService is the whole client-side crypto surface. It knows nothing
// about the network, storage or users.
//
//	AuthSalt, KdfSalt = NewSalt(), NewSalt()
//	Verifier          = DeriveVerifier(VerifierInput(secret, id), AuthSalt, n)
//	Key               = DeriveKey(secret, KdfSalt, m)
//	Vault             = Encrypt(record, Key)
type KeyChainService interface {
	SaltGenerator
	KeyDerivationEngine
	VaultCipher
}
