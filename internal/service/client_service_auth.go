package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/codec"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/models"
)

// Register implements ClientAuthService.
//
// AuthSalt and KdfSalt are drawn independently. Only the verifier, the two
// salts and the iteration counts leave the process.
func (s *clientSession) Register(ctx context.Context, identifier string, secret []byte) error {
	identifier = crypto.NormalizeIdentifier(identifier)
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	if err := s.enter(StateRegistering); err != nil {
		return err
	}
	defer s.leave(StateRegistering)

	authSalt, err := s.keyChain.NewSalt(crypto.DefaultSaltLength)
	if err != nil {
		return fmt.Errorf("auth salt: %w", err)
	}
	kdfSalt, err := s.keyChain.NewSalt(crypto.DefaultSaltLength)
	if err != nil {
		return fmt.Errorf("kdf salt: %w", err)
	}

	verifier, err := s.verifier(secret, identifier, authSalt, s.verifierIterations)
	if err != nil {
		return err
	}

	err = s.storage.Register(ctx, models.Registration{
		Identifier:     identifier,
		AuthVerifier:   codec.Encode(verifier),
		AuthSalt:       codec.Encode(authSalt),
		AuthIterations: s.verifierIterations,
		KdfParams: models.KdfParams{
			Algorithm:  models.AlgorithmPBKDF2SHA256,
			Salt:       codec.Encode(kdfSalt),
			Iterations: s.keyIterations,
		},
	})
	clear(verifier)
	if err != nil {
		s.logger.Err(err).Str("identifier", identifier).Msg("registration failed")
		return fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Str("identifier", identifier).Msg("account registered")
	return nil
}

// Login implements ClientAuthService.
//
// The verifier is recomputed with the salt and count the storage service
// returned, never with fresh ones. A missing count means the verifier
// default.
func (s *clientSession) Login(ctx context.Context, identifier string, secret []byte) error {
	identifier = crypto.NormalizeIdentifier(identifier)
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	if err := s.enter(StateAuthenticating); err != nil {
		return err
	}
	unlocked := false
	defer func() {
		if !unlocked {
			s.leave(StateAuthenticating)
		}
	}()

	params, err := s.storage.FetchAuthSalt(ctx, identifier)
	if err != nil {
		s.logger.Err(err).Str("identifier", identifier).Msg("fetching auth params failed")
		return fmt.Errorf("login: %w", err)
	}

	authSalt, err := codec.Decode(params.AuthSalt)
	if err != nil {
		return fmt.Errorf("login: %w: auth salt: %v", crypto.ErrDerivationFailed, err)
	}
	iterations := params.AuthIterations
	if iterations == 0 {
		iterations = crypto.DefaultVerifierIterations
	}

	verifier, err := s.verifier(secret, identifier, authSalt, iterations)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	sessionID, err := s.storage.Authenticate(ctx, models.Credentials{
		Identifier:   identifier,
		AuthVerifier: codec.Encode(verifier),
	})
	clear(verifier)
	if err != nil {
		s.logger.Err(err).Str("identifier", identifier).Msg("authentication failed")
		return fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	s.generation++
	s.state = StateUnlocked
	s.identifier = identifier
	s.secret = bytes.Clone(secret)
	s.sessionID = sessionID
	s.kdfParams = params.KdfParams
	s.mu.Unlock()
	unlocked = true

	s.logger.Info().Str("identifier", identifier).Msg("session unlocked")
	return nil
}

// Logout implements ClientAuthService.
func (s *clientSession) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnlocked {
		return
	}
	s.wipeLocked()
	s.state = StateAnonymous

	s.logger.Info().Msg("session locked")
}

// enter moves an anonymous session to a transient state.
func (s *clientSession) enter(state SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAnonymous {
		return fmt.Errorf("%w: %s", ErrSessionBusy, s.state)
	}
	s.state = state
	return nil
}

// leave returns from a transient state to Anonymous.
func (s *clientSession) leave(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == state {
		s.state = StateAnonymous
	}
}

func (s *clientSession) verifier(secret []byte, identifier string, authSalt []byte, iterations int) ([]byte, error) {
	input := crypto.VerifierInput(secret, identifier)
	defer clear(input)

	// an empty secret would still give a non-empty input
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret", crypto.ErrDerivationFailed)
	}

	return s.keyChain.DeriveVerifier(input, authSalt, iterations)
}
