// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
)

func newTestStorage(t *testing.T, handler http.HandlerFunc) StorageService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewHTTPStorageService(config.ClientAdapter{ServerAddress: srv.URL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return s
}

func statusHandler(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
}

func TestNewHTTPStorageService_BadAddress(t *testing.T) {
	_, err := NewHTTPStorageService(config.ClientAdapter{}, logger.Nop())
	assert.Error(t, err)
}

// ── Register ────────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	reg := models.Registration{
		Identifier:     "alice",
		AuthVerifier:   "dmVyaWZpZXI=",
		AuthSalt:       "c2FsdA==",
		AuthIterations: 100_000,
		KdfParams:      models.KdfParams{Algorithm: models.AlgorithmPBKDF2SHA256, Salt: "a2Rm", Iterations: 250_000},
	}

	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var got models.Registration
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, reg, got)

		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, s.Register(context.Background(), reg))
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name string
		code int
		want error
	}{
		{name: "conflict", code: http.StatusConflict, want: ErrDuplicateIdentifier},
		{name: "bad request", code: http.StatusBadRequest, want: ErrInvalidInput},
		{name: "server error", code: http.StatusInternalServerError, want: ErrStorageUnavailable},
		{name: "bad gateway", code: http.StatusBadGateway, want: ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStorage(t, statusHandler(tt.code, "nope"))
			err := s.Register(context.Background(), models.Registration{Identifier: "alice"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ── FetchAuthSalt ───────────────────────────────────────────────────────────

func TestFetchAuthSalt_Success(t *testing.T) {
	want := models.AuthParams{
		Identifier:     "alice",
		AuthSalt:       "c2FsdA==",
		AuthIterations: 100_000,
		KdfParams:      models.KdfParams{Algorithm: models.AlgorithmPBKDF2SHA256, Salt: "a2Rm", Iterations: 250_000},
	}

	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/params", r.URL.Path)

		var req models.ParamsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Identifier)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	})

	got, err := s.FetchAuthSalt(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFetchAuthSalt_NotFound(t *testing.T) {
	s := newTestStorage(t, statusHandler(http.StatusNotFound, "account not found"))

	_, err := s.FetchAuthSalt(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

// ── Authenticate ────────────────────────────────────────────────────────────

func TestAuthenticate_Success(t *testing.T) {
	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "dmVyaWZpZXI=", creds.AuthVerifier)

		w.Header().Set("Authorization", "Bearer session-token")
		w.WriteHeader(http.StatusOK)
	})

	token, err := s.Authenticate(context.Background(), models.Credentials{Identifier: "alice", AuthVerifier: "dmVyaWZpZXI="})
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)
}

func TestAuthenticate_Errors(t *testing.T) {
	t.Run("invalid credentials", func(t *testing.T) {
		s := newTestStorage(t, statusHandler(http.StatusUnauthorized, "invalid credentials"))
		_, err := s.Authenticate(context.Background(), models.Credentials{Identifier: "alice"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing token header", func(t *testing.T) {
		s := newTestStorage(t, statusHandler(http.StatusOK, ""))
		_, err := s.Authenticate(context.Background(), models.Credentials{Identifier: "alice"})
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}

// ── Vault ───────────────────────────────────────────────────────────────────

func TestFetchVault(t *testing.T) {
	want := models.VaultEnvelope{
		Vault:     &models.EncryptedVault{IV: "aXY=", Ciphertext: "Y3Q="},
		KdfParams: &models.KdfParams{Algorithm: models.AlgorithmPBKDF2SHA256, Salt: "a2Rm", Iterations: 250_000},
	}

	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/vault", r.URL.Path)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	})

	got, err := s.FetchVault(context.Background(), "session-token")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFetchVault_Empty(t *testing.T) {
	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"vault":null,"kdf_params":null}`))
	})

	got, err := s.FetchVault(context.Background(), "session-token")
	require.NoError(t, err)
	assert.Nil(t, got.Vault)
	assert.Nil(t, got.KdfParams)
}

func TestSaveVault(t *testing.T) {
	envelope := models.VaultEnvelope{
		Vault:     &models.EncryptedVault{IV: "aXY=", Ciphertext: "Y3Q="},
		KdfParams: &models.KdfParams{Algorithm: models.AlgorithmPBKDF2SHA256, Salt: "a2Rm", Iterations: 250_000},
	}

	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		var got models.VaultEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, envelope, got)

		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, s.SaveVault(context.Background(), "session-token", envelope))
}

func TestVault_Errors(t *testing.T) {
	tests := []struct {
		name string
		code int
		want error
	}{
		{name: "unauthorized", code: http.StatusUnauthorized, want: ErrUnauthorized},
		{name: "not found", code: http.StatusNotFound, want: ErrNotFound},
		{name: "bad request", code: http.StatusBadRequest, want: ErrInvalidInput},
		{name: "internal", code: http.StatusInternalServerError, want: ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStorage(t, statusHandler(tt.code, ""))

			_, err := s.FetchVault(context.Background(), "t")
			assert.ErrorIs(t, err, tt.want)

			err = s.SaveVault(context.Background(), "t", models.VaultEnvelope{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	s, err := NewHTTPStorageService(config.ClientAdapter{ServerAddress: addr, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	_, err = s.FetchAuthSalt(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestCanceledContext(t *testing.T) {
	s := newTestStorage(t, statusHandler(http.StatusOK, ""))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchVault(ctx, "t")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}
