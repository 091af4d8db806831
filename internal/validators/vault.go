package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/codec"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/models"
)

// Field names accepted by [VaultValidator].
const (
	FieldIdentifier     = "identifier"
	FieldAuthVerifier   = "auth_verifier"
	FieldAuthSalt       = "auth_salt"
	FieldAuthIterations = "auth_iterations"
	FieldKdfParams      = "kdf_params"
	FieldKdfIterations  = "kdf_iterations"
	FieldVault          = "vault"
	FieldIV             = "iv"
	FieldCiphertext     = "ciphertext"
)

// gcmTagLength is the AES-GCM tag size. Anything shorter cannot have come
// from the vault cipher.
const gcmTagLength = 16

// VaultValidator handles registrations, KDF params and vault envelopes.
// Iteration floors apply to registrations only; stored envelopes keep
// whatever count the client chose.
type VaultValidator struct {
	minKeyIterations      int
	minVerifierIterations int
}

func NewVaultValidator(minKeyIterations, minVerifierIterations int) Validator {
	return &VaultValidator{
		minKeyIterations:      minKeyIterations,
		minVerifierIterations: minVerifierIterations,
	}
}

func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Registration:
		return v.validateRegistration(value, fields...)
	case *models.Registration:
		return v.validateRegistration(*value, fields...)

	case models.KdfParams:
		return v.validateKdfParams(value, fields...)
	case *models.KdfParams:
		return v.validateKdfParams(*value, fields...)

	case models.VaultEnvelope:
		return v.validateEnvelope(value, fields...)
	case *models.VaultEnvelope:
		return v.validateEnvelope(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultValidator) validateRegistration(r models.Registration, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIdentifier, FieldAuthVerifier, FieldAuthSalt, FieldAuthIterations, FieldKdfParams}
	}

	for _, f := range fields {
		switch f {
		case FieldIdentifier:
			if crypto.NormalizeIdentifier(r.Identifier) == "" {
				return ErrEmptyIdentifier
			}
		case FieldAuthVerifier:
			if _, err := codec.DecodeLen(r.AuthVerifier, crypto.VerifierLength); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidVerifier, err)
			}
		case FieldAuthSalt:
			if salt, err := codec.Decode(r.AuthSalt); err != nil || len(salt) == 0 {
				return ErrInvalidAuthSalt
			}
		case FieldAuthIterations:
			if r.AuthIterations < v.minVerifierIterations {
				return fmt.Errorf("%w: auth iterations %d < %d", ErrIterationsTooLow, r.AuthIterations, v.minVerifierIterations)
			}
		case FieldKdfParams:
			if err := v.validateKdfParams(r.KdfParams); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateKdfParams(p models.KdfParams, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKdfParams, FieldKdfIterations}
	}

	for _, f := range fields {
		switch f {
		case FieldKdfParams:
			if err := crypto.ValidateKdfParams(p); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidKdfParams, err)
			}
		case FieldKdfIterations:
			if p.Iterations < v.minKeyIterations {
				return fmt.Errorf("%w: kdf iterations %d < %d", ErrIterationsTooLow, p.Iterations, v.minKeyIterations)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateEnvelope(e models.VaultEnvelope, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVault, FieldIV, FieldCiphertext, FieldKdfParams}
	}

	for _, f := range fields {
		switch f {
		case FieldVault:
			if e.Vault == nil {
				return ErrNoVault
			}
		case FieldIV:
			if e.Vault == nil {
				return ErrNoVault
			}
			if _, err := codec.DecodeLen(e.Vault.IV, crypto.IVLength); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidIV, err)
			}
		case FieldCiphertext:
			if e.Vault == nil {
				return ErrNoVault
			}
			if ciphertext, err := codec.Decode(e.Vault.Ciphertext); err != nil || len(ciphertext) < gcmTagLength {
				return ErrInvalidCiphertext
			}
		case FieldKdfParams:
			if e.KdfParams == nil {
				return ErrNoKdfParams
			}
			if err := v.validateKdfParams(*e.KdfParams, FieldKdfParams); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
