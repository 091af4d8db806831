package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
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

// harness runs commands against an in-process storage service that
// survives between invocations.
type harness struct {
	services  *service.Services
	clipboard string

	// Counts the CLI is configured with and the key chain it builds.
	keyIterations      int
	verifierIterations int
	newKeyChain        func() crypto.KeyChainService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	accounts, vaults := store.NewMemoryRepositories()
	services, err := service.NewServices(&store.Storages{AccountRepository: accounts, VaultRepository: vaults}, config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "zk-vault-test",
			TokenDuration: time.Hour,
			Version:       "test",
		},
		Crypto: config.Crypto{
			KeyIterations:      testIterations,
			VerifierIterations: testIterations,
			HardeningTime:      1,
			HardeningMemory:    1024,
			HardeningThreads:   1,
		},
	}, logger.Nop())
	require.NoError(t, err)

	return &harness{
		services:           services,
		keyIterations:      testIterations,
		verifierIterations: testIterations,
		newKeyChain: func() crypto.KeyChainService {
			return crypto.NewKeyChainService(crypto.WithIterationFloors(testIterations, testIterations))
		},
	}
}

func (h *harness) loadConfig(o config.ClientOverrides) (*config.ClientConfig, error) {
	return &config.ClientConfig{
		App: config.ClientApp{
			Identifier:    o.Identifier,
			AutosaveDelay: time.Hour,
		},
		Crypto: config.ClientCrypto{
			KeyIterations:      h.keyIterations,
			VerifierIterations: h.verifierIterations,
		},
	}, nil
}

func (h *harness) session(cfg *config.ClientConfig, log *logger.Logger) (*service.ClientServices, error) {
	return service.NewClientServices(service.NewInProcessStorage(h.services), h.newKeyChain(), *cfg, log), nil
}

// run executes one command. secrets feed the no-echo prompts in order.
func (h *harness) run(t *testing.T, stdin string, secrets []string, args ...string) (string, error) {
	t.Helper()
	stubSecrets(t, secrets...)

	var out bytes.Buffer
	app := NewApp(strings.NewReader(stdin), &out, models.NewAppBuildInfo("1.0.0", "", ""),
		WithConfigLoader(h.loadConfig),
		WithSessionFactory(h.session),
		WithClipboard(func(s string) error {
			h.clipboard = s
			return nil
		}),
		WithLogger(logger.Nop()),
	)

	cmd := app.Command()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func stubSecrets(t *testing.T, secrets ...string) {
	t.Helper()

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	next := 0
	readPassword = func(int) ([]byte, error) {
		if next >= len(secrets) {
			return nil, io.EOF
		}
		s := secrets[next]
		next++
		return []byte(s), nil
	}
}

func secrets(s ...string) []string { return s }

var addedID = regexp.MustCompile(`Added (\S+)\.`)

func (h *harness) register(t *testing.T) {
	t.Helper()
	out, err := h.run(t, "", secrets("master", "master"), "register", "-u", "a@x.com")
	require.NoError(t, err)
	require.Contains(t, out, "Account a@x.com registered.")
}

func TestRegisterAndListEmpty(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	out, err := h.run(t, "", secrets("master"), "list", "-u", "a@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "The vault is empty.")
}

func TestItemLifecycle(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	out, err := h.run(t, "", secrets("master", "hunter2", "hunter2"),
		"add", "-u", "a@x.com", "--title", "mail", "--username", "alice", "-p")
	require.NoError(t, err)
	match := addedID.FindStringSubmatch(out)
	require.Len(t, match, 2, out)
	id := match[1]

	out, err = h.run(t, "", secrets("master"), "list", "-u", "a@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "mail")
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "hunter2")

	out, err = h.run(t, "", secrets("master"), "get", id, "-u", "a@x.com")
	require.NoError(t, err)
	assert.Regexp(t, `Password:\s+hunter2`, out)

	out, err = h.run(t, "", secrets("master"), "edit", id, "-u", "a@x.com", "--title", "work mail", "--notes", "2fa on")
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Updated %s.", id))

	out, err = h.run(t, "", secrets("master"), "get", id, "--copy", "-u", "a@x.com")
	require.NoError(t, err)
	assert.Regexp(t, `Title:\s+work mail`, out)
	assert.Regexp(t, `Username:\s+alice`, out)
	assert.Regexp(t, `Notes:\s+2fa on`, out)
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "Password copied to clipboard.")
	assert.Equal(t, "hunter2", h.clipboard)

	_, err = h.run(t, "", secrets("master"), "rm", id, "-u", "a@x.com")
	require.NoError(t, err)

	_, err = h.run(t, "", secrets("master"), "get", id, "-u", "a@x.com")
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestRaisedIterationsKeepOldAccountsReadable(t *testing.T) {
	h := newHarness(t)
	h.newKeyChain = newClientKeyChain
	h.keyIterations, h.verifierIterations = config.MinKeyIterations, config.MinVerifierIterations

	h.register(t)
	out, err := h.run(t, "", secrets("master"), "add", "-u", "a@x.com", "--title", "mail")
	require.NoError(t, err)
	require.Regexp(t, addedID, out)

	h.keyIterations, h.verifierIterations = 2*config.MinKeyIterations, 2*config.MinVerifierIterations

	out, err = h.run(t, "", secrets("master"), "list", "-u", "a@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "mail")
}

func TestIdentifierIsPromptedWithoutFlag(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	out, err := h.run(t, "a@x.com\n", secrets("master"), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Identifier: ")
	assert.Contains(t, out, "The vault is empty.")
}

func TestRegister_SecretMismatch(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", secrets("one", "two"), "register", "-u", "a@x.com")
	assert.ErrorIs(t, err, ErrSecretMismatch)
}

func TestRegister_EmptySecret(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", secrets("", ""), "register", "-u", "a@x.com")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestRegister_Duplicate(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	_, err := h.run(t, "", secrets("other", "other"), "register", "-u", "A@x.com")
	assert.ErrorIs(t, err, adapter.ErrDuplicateIdentifier)
}

func TestWrongSecretIsRejected(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	_, err := h.run(t, "", secrets("wrong"), "list", "-u", "a@x.com")
	require.ErrorIs(t, err, adapter.ErrInvalidCredentials)
	assert.Equal(t, "wrong identifier or master secret", Describe(err))
}

func TestEditWithoutFlags(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", nil, "edit", "some-id", "-u", "a@x.com")
	assert.ErrorIs(t, err, ErrNothingToEdit)
}

func TestAddRequiresTitle(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", secrets("master"), "add", "-u", "a@x.com")
	assert.Error(t, err)
}

func TestVersionSkipsConfig(t *testing.T) {
	var out bytes.Buffer
	app := NewApp(strings.NewReader(""), &out, models.NewAppBuildInfo("1.2.3", "", "abc"),
		WithConfigLoader(func(config.ClientOverrides) (*config.ClientConfig, error) {
			return nil, errors.New("config must not be loaded")
		}),
	)

	cmd := app.Command()
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Build version: 1.2.3")
	assert.Contains(t, out.String(), "Build date: N/A")
	assert.Contains(t, out.String(), "Build commit: abc")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("login: %w", adapter.ErrAccountNotFound), "no account with that identifier"},
		{fmt.Errorf("load: %w", service.ErrWrongSecretOrCorrupted), "the vault could not be decrypted: wrong master secret or corrupted data"},
		{fmt.Errorf("%w: dial", adapter.ErrStorageUnavailable), "the storage service is unavailable, try again later"},
		{errors.New("something else"), "something else"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(tt.err))
	}
}
