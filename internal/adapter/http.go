package adapter

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/models"
)

const (
	registerPath = "/api/auth/register"
	paramsPath   = "/api/auth/params"
	loginPath    = "/api/auth/login"
	vaultPath    = "/api/vault"
)

type httpStorageService struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPStorageService constructs the HTTP/REST [StorageService] for the
// server at cfg.ServerAddress. Returns an error if the address is empty or
// not a valid URL.
func NewHTTPStorageService(cfg config.ClientAdapter, log *logger.Logger) (StorageService, error) {
	client, err := utils.NewHTTPClient(cfg.ServerAddress, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server address: %w", err)
	}

	return &httpStorageService{client: client, logger: log}, nil
}

// Register implements [StorageService]. POST /api/auth/register.
func (h *httpStorageService) Register(ctx context.Context, registration models.Registration) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(registration).
		Post(registerPath)
	if err != nil {
		return h.transportError("register", err)
	}

	return mapHTTPError(resp, registerErrors)
}

// FetchAuthSalt implements [StorageService]. POST /api/auth/params with the
// identifier in the body, so it never ends up in access logs.
func (h *httpStorageService) FetchAuthSalt(ctx context.Context, identifier string) (models.AuthParams, error) {
	var params models.AuthParams

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ParamsRequest{Identifier: identifier}).
		SetResult(&params).
		Post(paramsPath)
	if err != nil {
		return models.AuthParams{}, h.transportError("params", err)
	}
	if err = mapHTTPError(resp, paramsErrors); err != nil {
		return models.AuthParams{}, err
	}

	return params, nil
}

// Authenticate implements [StorageService]. POST /api/auth/login; the session
// identifier comes back in the Authorization response header.
func (h *httpStorageService) Authenticate(ctx context.Context, credentials models.Credentials) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		Post(loginPath)
	if err != nil {
		return "", h.transportError("login", err)
	}
	if err = mapHTTPError(resp, loginErrors); err != nil {
		return "", err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return "", fmt.Errorf("%w: login response: %v", ErrStorageUnavailable, err)
	}

	return token, nil
}

// FetchVault implements [StorageService]. GET /api/vault.
func (h *httpStorageService) FetchVault(ctx context.Context, sessionID string) (models.VaultEnvelope, error) {
	var envelope models.VaultEnvelope

	resp, err := h.authedRequest(ctx, sessionID).
		SetResult(&envelope).
		Get(vaultPath)
	if err != nil {
		return models.VaultEnvelope{}, h.transportError("fetch vault", err)
	}
	if err = mapHTTPError(resp, vaultErrors); err != nil {
		return models.VaultEnvelope{}, err
	}

	return envelope, nil
}

// SaveVault implements [StorageService]. PUT /api/vault.
func (h *httpStorageService) SaveVault(ctx context.Context, sessionID string, envelope models.VaultEnvelope) error {
	resp, err := h.authedRequest(ctx, sessionID).
		SetHeader("Content-Type", "application/json").
		SetBody(envelope).
		Put(vaultPath)
	if err != nil {
		return h.transportError("save vault", err)
	}

	return mapHTTPError(resp, vaultErrors)
}

func (h *httpStorageService) authedRequest(ctx context.Context, sessionID string) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if sessionID != "" {
		req.SetHeader("Authorization", utils.BearerHeader(sessionID))
	}
	return req
}

func (h *httpStorageService) transportError(op string, err error) error {
	h.logger.Debug().Str("op", op).Err(err).Msg("storage request failed")
	return fmt.Errorf("%w: %s request: %w", ErrStorageUnavailable, op, err)
}
