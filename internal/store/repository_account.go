package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
)

// accountRepository is the SQL implementation of [AccountRepository]. The
// dialect comes from the *DB it is built with.
type accountRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewAccountRepository(db *DB, log *logger.Logger) AccountRepository {
	log.Debug().Str("dialect", db.Dialect()).Msg("creating account repository")
	return &accountRepository{db: db, logger: log}
}

// CreateAccount implements [AccountRepository].
//
// A unique violation on identifier → [ErrIdentifierAlreadyExists].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	query, args, err := buildCreateAccount(r.db.builder, account)
	if err != nil {
		return models.Account{}, err
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&account.AccountID); err != nil {
		if r.db.isUniqueViolation(err) {
			return models.Account{}, ErrIdentifierAlreadyExists
		}
		log.Err(err).Msg("error creating account")
		return models.Account{}, r.db.wrap(ErrExecutingQuery, err)
	}

	return account, nil
}

// FindAccountByIdentifier implements [AccountRepository].
func (r *accountRepository) FindAccountByIdentifier(ctx context.Context, identifier string) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"identifier": identifier})
}

// FindAccountByID implements [AccountRepository].
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID int64) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"account_id": accountID})
}

func (r *accountRepository) findAccount(ctx context.Context, where sq.Eq) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindAccount(r.db.builder, where)
	if err != nil {
		return models.Account{}, err
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Msg("error finding account")
		return models.Account{}, r.db.wrap(ErrScanningRow, err)
	}

	return account, nil
}
