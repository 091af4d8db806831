package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/models"
)

type inProcessStorage struct {
	auth  AuthService
	vault VaultService
}

// NewInProcessStorage exposes the storage service side as an
// adapter.StorageService without any transport. Session identifiers are
// the same JWTs the HTTP API hands out.
func NewInProcessStorage(services *Services) adapter.StorageService {
	return &inProcessStorage{auth: services.AuthService, vault: services.VaultService}
}

func (s *inProcessStorage) Register(ctx context.Context, registration models.Registration) error {
	_, err := s.auth.Register(ctx, registration)
	return mapServiceError(err)
}

func (s *inProcessStorage) FetchAuthSalt(ctx context.Context, identifier string) (models.AuthParams, error) {
	params, err := s.auth.Params(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return models.AuthParams{}, fmt.Errorf("%w: %w", adapter.ErrAccountNotFound, err)
		}
		return models.AuthParams{}, mapServiceError(err)
	}
	return params, nil
}

func (s *inProcessStorage) Authenticate(ctx context.Context, credentials models.Credentials) (string, error) {
	account, err := s.auth.Login(ctx, credentials)
	if err != nil {
		return "", mapServiceError(err)
	}

	token, err := s.auth.CreateToken(ctx, account)
	if err != nil {
		return "", mapServiceError(err)
	}
	return token.String(), nil
}

func (s *inProcessStorage) FetchVault(ctx context.Context, sessionID string) (models.VaultEnvelope, error) {
	token, err := s.auth.ParseToken(ctx, sessionID)
	if err != nil {
		return models.VaultEnvelope{}, mapServiceError(err)
	}

	envelope, err := s.vault.Fetch(ctx, token.AccountID)
	if err != nil {
		return models.VaultEnvelope{}, mapServiceError(err)
	}
	return envelope, nil
}

func (s *inProcessStorage) SaveVault(ctx context.Context, sessionID string, envelope models.VaultEnvelope) error {
	token, err := s.auth.ParseToken(ctx, sessionID)
	if err != nil {
		return mapServiceError(err)
	}

	return mapServiceError(s.vault.Save(ctx, token.AccountID, envelope))
}

// mapServiceError translates service and store errors into the adapter
// taxonomy, keeping the original error in the chain.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	var target error
	switch {
	case errors.Is(err, store.ErrIdentifierAlreadyExists):
		target = adapter.ErrDuplicateIdentifier
	case errors.Is(err, ErrInvalidDataProvided):
		target = adapter.ErrInvalidInput
	case errors.Is(err, ErrInvalidCredentials):
		target = adapter.ErrInvalidCredentials
	case errors.Is(err, ErrTokenIsExpiredOrInvalid):
		target = adapter.ErrUnauthorized
	case errors.Is(err, store.ErrAccountNotFound), errors.Is(err, store.ErrVaultNotFound):
		target = adapter.ErrNotFound
	default:
		target = adapter.ErrStorageUnavailable
	}

	return fmt.Errorf("%w: %w", target, err)
}
