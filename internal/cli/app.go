package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/models"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// SessionFactory opens a fresh client session for one command.
type SessionFactory func(cfg *config.ClientConfig, log *logger.Logger) (*service.ClientServices, error)

// App holds what the commands share. Fields left nil by NewApp get their
// defaults in Command.
type App struct {
	in  *bufio.Reader
	out io.Writer

	build     models.AppBuildInfo
	overrides config.ClientOverrides

	loadConfig func(config.ClientOverrides) (*config.ClientConfig, error)
	newSession SessionFactory
	copyText   func(string) error

	cfg *config.ClientConfig
	log *logger.Logger
}

// Option customizes an [App].
type Option func(*App)

// WithSessionFactory replaces the HTTP-backed session.
func WithSessionFactory(f SessionFactory) Option {
	return func(a *App) { a.newSession = f }
}

// WithConfigLoader replaces config.GetClientConfig.
func WithConfigLoader(f func(config.ClientOverrides) (*config.ClientConfig, error)) Option {
	return func(a *App) { a.loadConfig = f }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(f func(string) error) Option {
	return func(a *App) { a.copyText = f }
}

// WithLogger skips creating the log file.
func WithLogger(log *logger.Logger) Option {
	return func(a *App) { a.log = log }
}

func NewApp(in io.Reader, out io.Writer, build models.AppBuildInfo, opts ...Option) *App {
	a := &App{
		in:         bufio.NewReader(in),
		out:        out,
		build:      build,
		loadConfig: config.GetClientConfig,
		newSession: newHTTPSession,
		copyText:   clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// newHTTPSession talks to the storage service at cfg.Adapter.ServerAddress.
func newHTTPSession(cfg *config.ClientConfig, log *logger.Logger) (*service.ClientServices, error) {
	storage, err := adapter.NewHTTPStorageService(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create storage adapter: %w", err)
	}

	return service.NewClientServices(storage, newClientKeyChain(), *cfg, log), nil
}

// newClientKeyChain enforces fixed floors rather than the configured counts:
// logins and vault loads re-derive with whatever the server stored.
func newClientKeyChain() crypto.KeyChainService {
	return crypto.NewKeyChainService(crypto.WithIterationFloors(config.MinKeyIterations, config.MinVerifierIterations))
}

// Command builds the "vault" command tree.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "vault",
		Short:         "Zero-knowledge password vault",
		Long:          "vault keeps passwords in a vault that is encrypted on this machine before it is uploaded.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.out)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.overrides.JSONFilePath, "config", "c", "", "path to a JSON config file")
	flags.StringVar(&a.overrides.ServerAddress, "server", "", "storage service address")
	flags.StringVarP(&a.overrides.Identifier, "user", "u", "", "account identifier")

	root.AddCommand(
		a.registerCommand(),
		a.listCommand(),
		a.addCommand(),
		a.editCommand(),
		a.removeCommand(),
		a.getCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *App) setup() error {
	cfg, err := a.loadConfig(a.overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if a.log == nil {
		a.log = logger.NewClientLogger("zk-vault-cli", cfg.App.LogFile, cfg.App.LogLevel)
	}
	return nil
}

func (a *App) identifier() (string, error) {
	if a.cfg.App.Identifier != "" {
		return a.cfg.App.Identifier, nil
	}
	return a.promptLine("Identifier")
}

// withVault runs fn on an unlocked, loaded vault and flushes afterwards.
// The session is logged out on every path.
func (a *App) withVault(ctx context.Context, fn func(vault service.ClientVaultService) error) error {
	identifier, err := a.identifier()
	if err != nil {
		return err
	}

	secret, err := a.promptSecret("Master secret")
	if err != nil {
		return err
	}
	defer clear(secret)

	session, err := a.newSession(a.cfg, a.log)
	if err != nil {
		return err
	}

	if err = session.AuthService.Login(ctx, identifier, secret); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer session.AuthService.Logout()

	if _, err = session.VaultService.Load(ctx); err != nil {
		return err
	}

	if err = fn(session.VaultService); err != nil {
		return err
	}

	if err = session.VaultService.Flush(ctx); err != nil {
		return fmt.Errorf("save vault: %w", err)
	}
	return nil
}
