package service

import (
	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
)

// ClientServices is one client session seen through its two roles.
type ClientServices struct {
	AuthService  ClientAuthService
	VaultService ClientVaultService
}

// NewClientServices builds a session that talks to storage. Iteration
// counts and the autosave delay come from cfg.
func NewClientServices(storage adapter.StorageService, keyChain crypto.KeyChainService, cfg config.ClientConfig, log *logger.Logger) *ClientServices {
	session := newClientSession(
		storage,
		keyChain,
		utils.NewUUIDGenerator(),
		cfg.Crypto.KeyIterations,
		cfg.Crypto.VerifierIterations,
		cfg.App.AutosaveDelay,
		log,
	)

	return &ClientServices{
		AuthService:  session,
		VaultService: session,
	}
}
