package config

import (
	"fmt"
	"time"
)

// ClientApp holds CLI runtime settings.
type ClientApp struct {
	Identifier    string
	AutosaveDelay time.Duration
	LogFile       string
	LogLevel      string
	Version       string
}

// ClientCrypto holds the iteration counts chosen for new registrations and
// new KdfSalts. Stored parameters are reused as they are.
type ClientCrypto struct {
	KeyIterations      int
	VerifierIterations int
}

// ClientAdapter holds the storage service endpoint settings.
type ClientAdapter struct {
	// ServerAddress is the base URL; a bare host:port gets "http://".
	ServerAddress string
	// RequestTimeout bounds every outbound request.
	RequestTimeout time.Duration
}

// ClientConfig is the CLI view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Crypto  ClientCrypto
	Adapter ClientAdapter
}

// ClientOverrides carries values given on the CLI command line. Empty fields
// are ignored.
type ClientOverrides struct {
	JSONFilePath  string
	ServerAddress string
	Identifier    string
}

// GetClientConfig builds the CLI configuration. Priority, lowest to
// highest: defaults, JSON file, environment, overrides.
func GetClientConfig(overrides ClientOverrides) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withConfig(&StructuredConfig{
			JSONFilePath: overrides.JSONFilePath,
			Client: Client{
				ServerAddress: overrides.ServerAddress,
				Identifier:    overrides.Identifier,
			},
		}).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			Identifier:    cfg.Client.Identifier,
			AutosaveDelay: cfg.Client.AutosaveDelay,
			LogFile:       cfg.Client.LogFile,
			LogLevel:      cfg.App.LogLevel,
			Version:       cfg.App.Version,
		},
		Crypto: ClientCrypto{
			KeyIterations:      cfg.Crypto.KeyIterations,
			VerifierIterations: cfg.Crypto.VerifierIterations,
		},
		Adapter: ClientAdapter{
			ServerAddress:  cfg.Client.ServerAddress,
			RequestTimeout: cfg.Client.RequestTimeout,
		},
	}
}
