// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// Lowest iteration counts a deployment may configure. Clients also use them
// as the floors for parameters returned by the server, so raising the
// configured counts never locks out accounts created under older ones.
const (
	MinKeyIterations      = 100_000
	MinVerifierIterations = 10_000
)

// validate checks the merged server configuration before startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	switch cfg.Storage.Backend {
	case BackendMemory:
	case BackendPostgres, BackendSQLite:
		if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Object.Endpoint != "" && cfg.Storage.Object.Bucket == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Crypto.HardeningTime == 0 || cfg.Crypto.HardeningMemory == 0 || cfg.Crypto.HardeningThreads == 0 {
		return ErrInvalidCryptoConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.ServerAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.AutosaveDelay <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Crypto.KeyIterations < MinKeyIterations || cfg.Crypto.VerifierIterations < MinVerifierIterations {
		return ErrInvalidCryptoConfigs
	}

	return nil
}
