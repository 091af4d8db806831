package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/migrations"
)

// ErrorClassification tells the repositories how to report a driver error.
type ErrorClassification int

const (
	// Permanent errors are wrapped and returned as they are.
	Permanent ErrorClassification = iota
	// Transient errors are reported as ErrUnavailable.
	Transient
	// UniqueViolation marks a duplicate key.
	UniqueViolation
)

// ErrorClassificator maps driver-specific errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is a database/sql handle together with the dialect-specific pieces the
// repositories need: the squirrel placeholder format, the error classifier
// and the migrations directory.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect string, placeholder sq.PlaceholderFormat, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Dialect returns the migrations dialect name.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies the embedded schema for this dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// wrap turns a driver error into a store error: transient failures become
// ErrUnavailable, anything else keeps base as its sentinel.
func (db *DB) wrap(base, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Transient {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %w", base, err)
}

func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == UniqueViolation
}
