package crypto

import "errors"

var (
	// ErrEntropyUnavailable is returned when the secure random source fails
	// or is missing.
	ErrEntropyUnavailable = errors.New("secure random source unavailable")

	// ErrDerivationFailed is returned when a key or verifier cannot be
	// derived: empty secret or salt, insecure iteration count, unknown
	// algorithm or a provider failure.
	ErrDerivationFailed = errors.New("key derivation failed")

	// ErrUnsupportedAlgorithm is wrapped into ErrDerivationFailed when
	// KdfParams name an algorithm other than PBKDF2-SHA256.
	ErrUnsupportedAlgorithm = errors.New("unsupported key derivation algorithm")

	// ErrDecryptionFailed is the single opaque decryption error. It does not
	// say whether the key was wrong or the data was altered.
	ErrDecryptionFailed = errors.New("vault could not be decrypted")

	// ErrEncryptionFailed is returned when sealing a record fails.
	ErrEncryptionFailed = errors.New("vault could not be encrypted")

	// ErrKeyDestroyed is returned when a key is used after Destroy.
	ErrKeyDestroyed = errors.New("encryption key destroyed")
)
