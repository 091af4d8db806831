package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/app"
	"github.com/MKhiriev/go-zk-vault/internal/codec"
	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIterations = 1000

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	accounts, vaults := store.NewMemoryRepositories()
	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "zk-vault-test",
			TokenDuration: time.Hour,
			Version:       "1.2.3",
		},
		Crypto: config.Crypto{
			KeyIterations:      testIterations,
			VerifierIterations: testIterations,
			HardeningTime:      1,
			HardeningMemory:    1024,
			HardeningThreads:   1,
		},
	}
	services, err := service.NewServices(&store.Storages{AccountRepository: accounts, VaultRepository: vaults}, cfg, logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(services, 5*time.Second, logger.Nop()).Init())
	t.Cleanup(srv.Close)
	return srv
}

func testRegistration() models.Registration {
	return models.Registration{
		Identifier:     "a@x.com",
		AuthVerifier:   codec.Encode(bytes.Repeat([]byte{7}, 32)),
		AuthSalt:       codec.Encode(bytes.Repeat([]byte{1}, 16)),
		AuthIterations: testIterations,
		KdfParams: models.KdfParams{
			Algorithm:  models.AlgorithmPBKDF2SHA256,
			Salt:       codec.Encode(bytes.Repeat([]byte{2}, 16)),
			Iterations: testIterations,
		},
	}
}

func doJSON(t *testing.T, method, url string, body any, header http.Header) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func registerAndLogin(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	reg := testRegistration()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", reg, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", models.Credentials{Identifier: reg.Identifier, AuthVerifier: reg.AuthVerifier}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	authHeader := resp.Header.Get("Authorization")
	require.True(t, strings.HasPrefix(authHeader, "Bearer "))
	return authHeader
}

// ─────────────────────────────────────────────
// Auth routes
// ─────────────────────────────────────────────

func TestAuthRoutes(t *testing.T) {
	srv := newTestServer(t)
	reg := testRegistration()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", reg, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", reg, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	bad := reg
	bad.Identifier = "b@x.com"
	bad.KdfParams.Algorithm = "MD5"
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", bad, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/params", models.ParamsRequest{Identifier: "A@X.com"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var params models.AuthParams
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&params))
	assert.Equal(t, reg.AuthSalt, params.AuthSalt)
	assert.Equal(t, reg.KdfParams, params.KdfParams)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/params", models.ParamsRequest{Identifier: "nobody@x.com"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", models.Credentials{
		Identifier:   reg.Identifier,
		AuthVerifier: codec.Encode(bytes.Repeat([]byte{8}, 32)),
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Authorization"))

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]string{"unknown": "field"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ─────────────────────────────────────────────
// Vault routes
// ─────────────────────────────────────────────

func TestVaultRoutes(t *testing.T) {
	srv := newTestServer(t)
	auth := http.Header{"Authorization": {registerAndLogin(t, srv)}}

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/vault", nil, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var envelope models.VaultEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Nil(t, envelope.Vault)
	require.NotNil(t, envelope.KdfParams)

	saved := models.VaultEnvelope{
		Vault: &models.EncryptedVault{
			IV:         codec.Encode(bytes.Repeat([]byte{3}, 12)),
			Ciphertext: codec.Encode(bytes.Repeat([]byte{4}, 48)),
		},
		KdfParams: envelope.KdfParams,
	}
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/vault", saved, auth)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/vault", nil, auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, *saved.Vault, *envelope.Vault)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/vault", models.VaultEnvelope{}, auth)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVaultRoutes_RequireAuthorization(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		header http.Header
	}{
		{"no header", nil},
		{"wrong scheme", http.Header{"Authorization": {"Basic abc"}}},
		{"invalid token", http.Header{"Authorization": {"Bearer not-a-jwt"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodGet, srv.URL+"/api/vault", nil, tt.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

// ─────────────────────────────────────────────
// Middlewares and misc routes
// ─────────────────────────────────────────────

func TestVersionRoute(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/version", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", string(body))
}

func TestUnsupportedMethodIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/vault", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTraceIDIsEchoedOrGenerated(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/version", nil, http.Header{"X-Trace-Id": {"trace-1"}})
	assert.Equal(t, "trace-1", resp.Header.Get(traceIDHeader))

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/version", nil, nil)
	assert.Len(t, resp.Header.Get(traceIDHeader), 36)
}

func TestResponsesAreCompressed(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", testRegistration(), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/auth/params", strings.NewReader(`{"identifier":"a@x.com"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	var params models.AuthParams
	require.NoError(t, json.NewDecoder(zr).Decode(&params))
	assert.Equal(t, "a@x.com", params.Identifier)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
		{store.ErrIdentifierAlreadyExists, http.StatusConflict, app.MsgIdentifierTaken},
		{store.ErrAccountNotFound, http.StatusNotFound, app.MsgAccountNotFound},
		{store.ErrUnavailable, http.StatusServiceUnavailable, app.MsgStorageUnavailable},
		{io.EOF, http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		status, msg := statusFromError(tt.err)
		assert.Equal(t, tt.status, status)
		assert.Equal(t, tt.msg, msg)
	}
}

func TestErrorBodyHidesDetails(t *testing.T) {
	srv := newTestServer(t)

	bad := testRegistration()
	bad.AuthVerifier = codec.Encode([]byte("short"))
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", bad, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, app.MsgInvalidDataProvided, strings.TrimSpace(string(body)))
}

// ─────────────────────────────────────────────
// Client over HTTP
// ─────────────────────────────────────────────

func TestClientSessionOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	storage, err := adapter.NewHTTPStorageService(config.ClientAdapter{ServerAddress: srv.URL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)

	keyChain := crypto.NewKeyChainService(crypto.WithIterationFloors(testIterations, testIterations))
	clientCfg := config.ClientConfig{
		App:    config.ClientApp{AutosaveDelay: time.Hour},
		Crypto: config.ClientCrypto{KeyIterations: testIterations, VerifierIterations: testIterations},
	}
	client := service.NewClientServices(storage, keyChain, clientCfg, logger.Nop())

	require.NoError(t, client.AuthService.Register(ctx, "a@x.com", []byte("Sunshine1!")))
	require.NoError(t, client.AuthService.Login(ctx, "a@x.com", []byte("Sunshine1!")))
	_, err = client.VaultService.Load(ctx)
	require.NoError(t, err)

	item, err := client.VaultService.Add(models.VaultItem{Title: "Mail", Username: "u", Password: "p"})
	require.NoError(t, err)
	require.NoError(t, client.VaultService.Flush(ctx))
	client.AuthService.Logout()

	err = client.AuthService.Login(ctx, "a@x.com", []byte("wrong"))
	assert.ErrorIs(t, err, adapter.ErrInvalidCredentials)

	require.NoError(t, client.AuthService.Login(ctx, "a@x.com", []byte("Sunshine1!")))
	record, err := client.VaultService.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.VaultItem{item}, record.Items)
}
