package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-zk-vault/models"
)

var accountColumns = []string{
	"account_id",
	"identifier",
	"verifier_hash",
	"verifier_salt",
	"auth_salt",
	"auth_iterations",
	"kdf_algorithm",
	"kdf_salt",
	"kdf_iterations",
	"created_at",
}

var vaultColumns = []string{
	"account_id",
	"iv",
	"ciphertext",
	"kdf_algorithm",
	"kdf_salt",
	"kdf_iterations",
	"updated_at",
}

// upsertVaultSuffix replaces every column of an existing row. Supported by
// Postgres and SQLite >= 3.24.
const upsertVaultSuffix = `ON CONFLICT (account_id) DO UPDATE SET
		iv = excluded.iv,
		ciphertext = excluded.ciphertext,
		kdf_algorithm = excluded.kdf_algorithm,
		kdf_salt = excluded.kdf_salt,
		kdf_iterations = excluded.kdf_iterations,
		updated_at = excluded.updated_at`

func buildCreateAccount(b sq.StatementBuilderType, a models.Account) (string, []any, error) {
	query, args, err := b.Insert(a.TableName()).
		Columns(accountColumns[1:]...).
		Values(
			a.Identifier,
			a.VerifierHash,
			a.VerifierSalt,
			a.AuthSalt,
			a.AuthIterations,
			a.KdfParams.Algorithm,
			a.KdfParams.Salt,
			a.KdfParams.Iterations,
			a.CreatedAt,
		).
		Suffix("RETURNING account_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFindAccount(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	query, args, err := b.Select(accountColumns...).
		From(models.Account{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildGetVault(b sq.StatementBuilderType, accountID int64) (string, []any, error) {
	query, args, err := b.Select(vaultColumns...).
		From(models.StoredVault{}.TableName()).
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSaveVault(b sq.StatementBuilderType, v models.StoredVault) (string, []any, error) {
	query, args, err := b.Insert(v.TableName()).
		Columns(vaultColumns...).
		Values(
			v.AccountID,
			v.Vault.IV,
			v.Vault.Ciphertext,
			v.KdfParams.Algorithm,
			v.KdfParams.Salt,
			v.KdfParams.Iterations,
			v.UpdatedAt,
		).
		Suffix(upsertVaultSuffix).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.AccountID,
		&a.Identifier,
		&a.VerifierHash,
		&a.VerifierSalt,
		&a.AuthSalt,
		&a.AuthIterations,
		&a.KdfParams.Algorithm,
		&a.KdfParams.Salt,
		&a.KdfParams.Iterations,
		&a.CreatedAt,
	)
	return a, err
}

func scanVault(row rowScanner) (models.StoredVault, error) {
	var v models.StoredVault
	err := row.Scan(
		&v.AccountID,
		&v.Vault.IV,
		&v.Vault.Ciphertext,
		&v.KdfParams.Algorithm,
		&v.KdfParams.Salt,
		&v.KdfParams.Iterations,
		&v.UpdatedAt,
	)
	return v, err
}
