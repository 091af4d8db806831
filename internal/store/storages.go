package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
)

// Storages bundles the repositories selected by configuration.
type Storages struct {
	AccountRepository AccountRepository
	VaultRepository   VaultRepository

	db *DB
}

// NewStorages opens the configured backend, applies migrations and builds
// the repositories. With an object endpoint configured, vaults go to the
// bucket and only accounts stay in the relational backend.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	s := &Storages{}

	switch cfg.Backend {
	case config.BackendMemory, "":
		s.AccountRepository, s.VaultRepository = NewMemoryRepositories()
	case config.BackendPostgres, config.BackendSQLite:
		db, err := connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("error migrating database: %w", err)
		}
		s.db = db
		s.AccountRepository = NewAccountRepository(db, log)
		s.VaultRepository = NewVaultRepository(db, log)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}

	if cfg.Object.Endpoint != "" {
		vaults, err := NewObjectVaultRepository(ctx, cfg.Object)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.VaultRepository = vaults
		log.Info().Str("bucket", cfg.Object.Bucket).Msg("vault blobs stored in object storage")
	}

	return s, nil
}

func connect(ctx context.Context, cfg config.Storage, log *logger.Logger) (*DB, error) {
	if cfg.Backend == config.BackendPostgres {
		return NewConnectPostgres(ctx, cfg.DB, log)
	}
	return NewConnectSQLite(ctx, cfg.DB, log)
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
