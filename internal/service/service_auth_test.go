package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/codec"
	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testIterations keeps PBKDF2 fast in tests. Production floors are checked
// in the crypto package.
const testIterations = 1000

var testHardening = crypto.HardeningParams{Time: 1, Memory: 1024, Threads: 1}

func newTestServices(t *testing.T) *Services {
	t.Helper()

	accounts, vaults := store.NewMemoryRepositories()
	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "zk-vault-test",
			TokenDuration: time.Hour,
			Version:       "test",
		},
		Crypto: config.Crypto{
			KeyIterations:      testIterations,
			VerifierIterations: testIterations,
			HardeningTime:      testHardening.Time,
			HardeningMemory:    testHardening.Memory,
			HardeningThreads:   testHardening.Threads,
		},
	}

	services, err := NewServices(&store.Storages{AccountRepository: accounts, VaultRepository: vaults}, cfg, logger.Nop())
	require.NoError(t, err)
	return services
}

func testRegistration(identifier string, verifier []byte) models.Registration {
	return models.Registration{
		Identifier:     identifier,
		AuthVerifier:   codec.Encode(verifier),
		AuthSalt:       codec.Encode(bytes.Repeat([]byte{1}, 16)),
		AuthIterations: testIterations,
		KdfParams: models.KdfParams{
			Algorithm:  models.AlgorithmPBKDF2SHA256,
			Salt:       codec.Encode(bytes.Repeat([]byte{2}, 16)),
			Iterations: testIterations,
		},
	}
}

func testVerifier(b byte) []byte {
	return bytes.Repeat([]byte{b}, crypto.VerifierLength)
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_StoresOnlyHardenedVerifier(t *testing.T) {
	svc := newTestServices(t).AuthService
	reg := testRegistration("  A@X.com ", testVerifier(7))

	account, err := svc.Register(context.Background(), reg)
	require.NoError(t, err)

	assert.NotZero(t, account.AccountID)
	assert.Equal(t, "a@x.com", account.Identifier)
	assert.NotEmpty(t, account.VerifierHash)
	assert.NotEmpty(t, account.VerifierSalt)
	assert.NotEqual(t, reg.AuthVerifier, account.VerifierHash)
	assert.Equal(t, reg.KdfParams, account.KdfParams)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestServices(t).AuthService
	ctx := context.Background()

	_, err := svc.Register(ctx, testRegistration("a@x.com", testVerifier(1)))
	require.NoError(t, err)

	_, err = svc.Register(ctx, testRegistration("A@x.com", testVerifier(2)))
	assert.ErrorIs(t, err, store.ErrIdentifierAlreadyExists)
}

func TestAuthService_Register_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.Registration)
	}{
		{"empty identifier", func(r *models.Registration) { r.Identifier = "  " }},
		{"short verifier", func(r *models.Registration) { r.AuthVerifier = codec.Encode([]byte("short")) }},
		{"malformed verifier", func(r *models.Registration) { r.AuthVerifier = "%%%" }},
		{"missing auth salt", func(r *models.Registration) { r.AuthSalt = "" }},
		{"auth iterations below floor", func(r *models.Registration) { r.AuthIterations = testIterations - 1 }},
		{"unknown algorithm", func(r *models.Registration) { r.KdfParams.Algorithm = "MD5" }},
		{"missing kdf salt", func(r *models.Registration) { r.KdfParams.Salt = "" }},
		{"kdf iterations below floor", func(r *models.Registration) { r.KdfParams.Iterations = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t).AuthService
			reg := testRegistration("a@x.com", testVerifier(1))
			tt.mutate(&reg)

			_, err := svc.Register(context.Background(), reg)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

// ── Params ───────────────────────────────────────────────────────────────────

func TestAuthService_Params(t *testing.T) {
	svc := newTestServices(t).AuthService
	ctx := context.Background()
	reg := testRegistration("a@x.com", testVerifier(1))
	_, err := svc.Register(ctx, reg)
	require.NoError(t, err)

	params, err := svc.Params(ctx, "A@X.COM")
	require.NoError(t, err)
	assert.Equal(t, models.AuthParams{
		Identifier:     "a@x.com",
		AuthSalt:       reg.AuthSalt,
		AuthIterations: reg.AuthIterations,
		KdfParams:      reg.KdfParams,
	}, params)

	_, err = svc.Params(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	svc := newTestServices(t).AuthService
	ctx := context.Background()
	registered, err := svc.Register(ctx, testRegistration("a@x.com", testVerifier(1)))
	require.NoError(t, err)

	account, err := svc.Login(ctx, models.Credentials{Identifier: "a@x.com", AuthVerifier: codec.Encode(testVerifier(1))})
	require.NoError(t, err)
	assert.Equal(t, registered.AccountID, account.AccountID)

	_, err = svc.Login(ctx, models.Credentials{Identifier: "a@x.com", AuthVerifier: codec.Encode(testVerifier(2))})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.Credentials{Identifier: "b@x.com", AuthVerifier: codec.Encode(testVerifier(1))})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.Credentials{Identifier: "a@x.com"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestServices(t).AuthService
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.Account{AccountID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.String())

	parsed, err := svc.ParseToken(ctx, token.String())
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.AccountID)

	_, err = svc.ParseToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
