// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds both sides of the vault protocol.
//
// The storage service side ([AuthService], [VaultService],
// [AppInfoService]) validates what clients send and persists it through the
// store package. It only ever handles verifiers and opaque ciphertext.
//
// The client side (files prefixed client_) is the session state machine
// that derives keys, encrypts the vault and talks to an
// [adapter.StorageService]. [NewInProcessStorage] connects the two without
// a network in between.
package service

import (
	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/validators"
)

// Services groups the storage service side.
type Services struct {
	AuthService    AuthService
	VaultService   VaultService
	AppInfoService AppInfoService
}

// NewServices wires the services to storages using cfg.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	hasher := crypto.NewVerifierHasher(crypto.HardeningParams{
		Time:    cfg.Crypto.HardeningTime,
		Memory:  cfg.Crypto.HardeningMemory,
		Threads: cfg.Crypto.HardeningThreads,
	}, nil)
	validator := validators.NewVaultValidator(cfg.Crypto.KeyIterations, cfg.Crypto.VerifierIterations)

	return &Services{
		AuthService:    NewAuthService(storages.AccountRepository, hasher, validator, cfg.App, logger),
		VaultService:   NewVaultService(storages.AccountRepository, storages.VaultRepository, validator, logger),
		AppInfoService: appInfo,
	}, nil
}
