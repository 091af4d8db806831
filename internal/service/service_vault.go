package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/validators"
	"github.com/MKhiriev/go-zk-vault/models"
)

type vaultService struct {
	accountRepository store.AccountRepository
	vaultRepository   store.VaultRepository
	validator         validators.Validator

	logger *logger.Logger
}

// NewVaultService constructs a VaultService over the given repositories.
func NewVaultService(accounts store.AccountRepository, vaults store.VaultRepository, validator validators.Validator, logger *logger.Logger) VaultService {
	return &vaultService{
		accountRepository: accounts,
		vaultRepository:   vaults,
		validator:         validator,
		logger:            logger,
	}
}

// Fetch implements VaultService. A missing account is reported as a wrapped
// store.ErrAccountNotFound.
func (s *vaultService) Fetch(ctx context.Context, accountID int64) (models.VaultEnvelope, error) {
	log := logger.FromContext(ctx)

	account, err := s.accountRepository.FindAccountByID(ctx, accountID)
	if err != nil {
		log.Err(err).Int64("account_id", accountID).Msg("account search by id failed")
		return models.VaultEnvelope{}, fmt.Errorf("account search by id failed: %w", err)
	}

	stored, err := s.vaultRepository.GetVault(ctx, accountID)
	if errors.Is(err, store.ErrVaultNotFound) {
		var envelope models.VaultEnvelope
		if !account.KdfParams.IsZero() {
			params := account.KdfParams
			envelope.KdfParams = &params
		}
		return envelope, nil
	}
	if err != nil {
		log.Err(err).Int64("account_id", accountID).Msg("vault fetch failed")
		return models.VaultEnvelope{}, fmt.Errorf("vault fetch failed: %w", err)
	}

	return models.VaultEnvelope{
		Vault:     &stored.Vault,
		KdfParams: &stored.KdfParams,
	}, nil
}

// Save implements VaultService. Both the vault and its KdfParams are
// required; malformed input fails with ErrInvalidDataProvided.
func (s *vaultService) Save(ctx context.Context, accountID int64, envelope models.VaultEnvelope) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, envelope); err != nil {
		log.Error().Err(err).Int64("account_id", accountID).Msg("invalid vault provided")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := s.accountRepository.FindAccountByID(ctx, accountID); err != nil {
		log.Err(err).Int64("account_id", accountID).Msg("account search by id failed")
		return fmt.Errorf("account search by id failed: %w", err)
	}

	err := s.vaultRepository.SaveVault(ctx, models.StoredVault{
		AccountID: accountID,
		Vault:     *envelope.Vault,
		KdfParams: *envelope.KdfParams,
	})
	if err != nil {
		log.Err(err).Int64("account_id", accountID).Msg("vault save failed")
		return fmt.Errorf("vault save failed: %w", err)
	}

	log.Debug().Int64("account_id", accountID).Msg("vault replaced")
	return nil
}
