// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// zk-vault server and CLI. It is populated by merging defaults, an optional
// JSON file, environment variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, the version string and the log level.
	App App `envPrefix:"APP_"`

	// Crypto holds iteration counts and server-side verifier hardening.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Storage selects and configures the persistence backends.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and the request timeout.
	Server Server `envPrefix:"SERVER_"`

	// Client holds CLI settings.
	Client Client `envPrefix:"CLIENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// TokenSignKey signs and verifies session tokens. Must be kept secret.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every session token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a session token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is reported by GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Crypto holds derivation and hardening parameters.
type Crypto struct {
	// KeyIterations is the PBKDF2 count for new encryption keys. The server
	// requires at least this much from new registrations.
	// Env: CRYPTO_KEY_ITERATIONS
	KeyIterations int `env:"KEY_ITERATIONS"`

	// VerifierIterations is the PBKDF2 count for new verifiers. The server
	// requires at least this much from new registrations.
	// Env: CRYPTO_VERIFIER_ITERATIONS
	VerifierIterations int `env:"VERIFIER_ITERATIONS"`

	// Argon2id parameters applied by the server to received verifiers.
	// Env: CRYPTO_HARDENING_TIME, CRYPTO_HARDENING_MEMORY, CRYPTO_HARDENING_THREADS
	HardeningTime    uint32 `env:"HARDENING_TIME"`
	HardeningMemory  uint32 `env:"HARDENING_MEMORY"`
	HardeningThreads uint8  `env:"HARDENING_THREADS"`
}

// Storage backend names.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Storage groups the persistence settings.
type Storage struct {
	// Backend is one of "postgres", "sqlite" or "memory".
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Object, when Endpoint is set, moves encrypted vault blobs to an
	// S3-compatible bucket. Accounts stay in the relational backend.
	Object Object `envPrefix:"OBJECT_"`
}

// DB holds connection settings for the relational backend.
type DB struct {
	// DSN is a Postgres URL or a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Object holds S3-compatible object storage settings.
type Object struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the HTTP listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress, when set, starts the gRPC health listener.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Client holds the CLI settings.
type Client struct {
	// ServerAddress is the storage service base URL.
	// Env: CLIENT_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Identifier is the default account identifier.
	// Env: CLIENT_IDENTIFIER
	Identifier string `env:"IDENTIFIER"`

	// AutosaveDelay is the debounce window between the last edit and the
	// background save.
	// Env: CLIENT_AUTOSAVE_DELAY
	AutosaveDelay time.Duration `env:"AUTOSAVE_DELAY"`

	// LogFile is where the CLI writes its log. Empty means next to the
	// executable.
	// Env: CLIENT_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// defaults are merged first; every other source overrides them.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "zk-vault",
			TokenDuration: time.Hour,
			Version:       "dev",
			LogLevel:      "info",
		},
		Crypto: Crypto{
			KeyIterations:      250_000,
			VerifierIterations: 100_000,
			HardeningTime:      1,
			HardeningMemory:    64 * 1024,
			HardeningThreads:   4,
		},
		Storage: Storage{
			Backend: BackendMemory,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Client: Client{
			ServerAddress:  "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
			AutosaveDelay:  1500 * time.Millisecond,
		},
	}
}

// GetStructuredConfig loads the server configuration. Priority, lowest to
// highest: defaults, JSON file, environment, command-line flags (args are
// typically os.Args[1:]).
//
// Returns an error if any source fails to load or the result fails
// validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
