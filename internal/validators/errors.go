package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyIdentifier   = errors.New("identifier is required")
	ErrInvalidVerifier   = errors.New("invalid auth verifier")
	ErrInvalidAuthSalt   = errors.New("invalid auth salt")
	ErrIterationsTooLow  = errors.New("iteration count below minimum")
	ErrInvalidKdfParams  = errors.New("invalid kdf params")
	ErrNoVault           = errors.New("vault is required")
	ErrNoKdfParams       = errors.New("kdf params are required")
	ErrInvalidIV         = errors.New("invalid iv")
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)
