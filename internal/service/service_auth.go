package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/internal/validators"
	"github.com/MKhiriev/go-zk-vault/models"
)

// authService is the concrete implementation of AuthService.
// It validates what clients send, hardens verifiers with Argon2id before
// they reach the AccountRepository and issues JWT session tokens.
type authService struct {
	// accountRepository is the data-access layer used to create and look up accounts.
	accountRepository store.AccountRepository

	// hasher applies the server-side one-way hardening to verifiers.
	hasher *crypto.VerifierHasher

	// validator rejects malformed registrations and enforces iteration floors.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// AccountRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(accountRepository store.AccountRepository, hasher *crypto.VerifierHasher, validator validators.Validator, app config.App, logger *logger.Logger) AuthService {
	return &authService{
		accountRepository: accountRepository,
		hasher:            hasher,
		validator:         validator,
		tokenSignKey:      app.TokenSignKey,
		tokenIssuer:       app.TokenIssuer,
		tokenDuration:     app.TokenDuration,
		logger:            logger,
	}
}

// Register creates a new account.
//
// The verifier must decode to exactly 32 bytes, the salts must be present and
// the iteration counts must not be below the configured floors. Only the
// hardened verifier and its per-record salt are persisted.
//
// Returns the persisted account or:
//   - ErrInvalidDataProvided if any field is missing or malformed.
//   - store.ErrIdentifierAlreadyExists (wrapped) for a taken identifier.
func (a *authService) Register(ctx context.Context, registration models.Registration) (models.Account, error) {
	log := logger.FromContext(ctx)

	identifier := crypto.NormalizeIdentifier(registration.Identifier)
	if err := a.validator.Validate(ctx, registration); err != nil {
		log.Error().Err(err).Str("identifier", identifier).Msg("invalid registration provided")
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, salt, err := a.hasher.Harden(registration.AuthVerifier)
	if err != nil {
		log.Err(err).Msg("verifier hardening failed")
		return models.Account{}, fmt.Errorf("verifier hardening failed: %w", err)
	}

	account, err := a.accountRepository.CreateAccount(ctx, models.Account{
		Identifier:     identifier,
		VerifierHash:   hash,
		VerifierSalt:   salt,
		AuthSalt:       registration.AuthSalt,
		AuthIterations: registration.AuthIterations,
		KdfParams:      registration.KdfParams,
	})
	if err != nil {
		log.Err(err).Str("identifier", identifier).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	return account, nil
}

// Params returns the public parameters of identifier, or a wrapped
// store.ErrAccountNotFound.
func (a *authService) Params(ctx context.Context, identifier string) (models.AuthParams, error) {
	log := logger.FromContext(ctx)

	identifier = crypto.NormalizeIdentifier(identifier)
	if identifier == "" {
		log.Error().Msg("empty identifier provided")
		return models.AuthParams{}, fmt.Errorf("%w: empty identifier", ErrInvalidDataProvided)
	}

	account, err := a.accountRepository.FindAccountByIdentifier(ctx, identifier)
	if err != nil {
		log.Err(err).Str("identifier", identifier).Msg("account search by identifier failed")
		return models.AuthParams{}, fmt.Errorf("account search by identifier failed: %w", err)
	}

	return models.AuthParams{
		Identifier:     account.Identifier,
		AuthSalt:       account.AuthSalt,
		AuthIterations: account.AuthIterations,
		KdfParams:      account.KdfParams,
	}, nil
}

// Login authenticates credentials.
//
// An unknown identifier costs the same hardening pass as a wrong verifier
// and yields the same ErrInvalidCredentials. Backend failures other than
// "not found" are returned wrapped.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.Account, error) {
	log := logger.FromContext(ctx)

	identifier := crypto.NormalizeIdentifier(credentials.Identifier)
	if identifier == "" || credentials.AuthVerifier == "" {
		log.Error().Msg("invalid credentials provided")
		return models.Account{}, ErrInvalidCredentials
	}

	account, err := a.accountRepository.FindAccountByIdentifier(ctx, identifier)
	if errors.Is(err, store.ErrAccountNotFound) {
		a.hasher.Burn(credentials.AuthVerifier)
		log.Info().Str("identifier", identifier).Msg("login for unknown identifier")
		return models.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("identifier", identifier).Msg("account search by identifier failed")
		return models.Account{}, fmt.Errorf("account search by identifier failed: %w", err)
	}

	if !a.hasher.Matches(credentials.AuthVerifier, account.VerifierHash, account.VerifierSalt) {
		log.Info().Int64("account_id", account.AccountID).Msg("wrong verifier")
		return models.Account{}, ErrInvalidCredentials
	}

	return account, nil
}

// CreateToken issues a signed JWT whose "sub" is the account id.
func (a *authService) CreateToken(ctx context.Context, account models.Account) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, account.AccountID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
