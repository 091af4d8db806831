package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
)

// vaultRepository is the SQL implementation of [VaultRepository].
type vaultRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewVaultRepository(db *DB, log *logger.Logger) VaultRepository {
	log.Debug().Str("dialect", db.Dialect()).Msg("creating vault repository")
	return &vaultRepository{db: db, logger: log}
}

// GetVault implements [VaultRepository].
func (r *vaultRepository) GetVault(ctx context.Context, accountID int64) (models.StoredVault, error) {
	query, args, err := buildGetVault(r.db.builder, accountID)
	if err != nil {
		return models.StoredVault{}, err
	}

	vault, err := scanVault(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredVault{}, ErrVaultNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("account_id", accountID).Msg("error reading vault")
		return models.StoredVault{}, r.db.wrap(ErrScanningRow, err)
	}

	return vault, nil
}

// SaveVault implements [VaultRepository] as a single upsert.
func (r *vaultRepository) SaveVault(ctx context.Context, vault models.StoredVault) error {
	if vault.UpdatedAt.IsZero() {
		vault.UpdatedAt = time.Now().UTC()
	}

	query, args, err := buildSaveVault(r.db.builder, vault)
	if err != nil {
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Int64("account_id", vault.AccountID).Msg("error saving vault")
		return r.db.wrap(ErrExecutingQuery, err)
	}

	return nil
}
