package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/codec"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/models"
)

// Load implements ClientVaultService.
//
// A missing vault loads as an empty record. Decryption failures are
// reported as ErrWrongSecretOrCorrupted whatever their cause; storage
// failures keep their adapter error. In both cases the session keeps its
// previous record and a copy of it is returned with the error.
func (s *clientSession) Load(ctx context.Context) (models.VaultRecord, error) {
	s.mu.Lock()
	if err := s.unlockedLocked(); err != nil {
		s.mu.Unlock()
		return models.VaultRecord{}, err
	}
	generation, sessionID := s.generation, s.sessionID
	s.mu.Unlock()

	envelope, err := s.storage.FetchVault(ctx, sessionID)
	if err != nil {
		s.logger.Err(err).Msg("vault fetch failed")
		return s.lastKnownGood(), fmt.Errorf("load vault: %w", err)
	}

	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return models.VaultRecord{}, ErrSessionClosed
	}
	if envelope.KdfParams != nil && !envelope.KdfParams.IsZero() {
		s.kdfParams = *envelope.KdfParams
	}
	params := s.kdfParams
	s.mu.Unlock()

	record := models.NewVaultRecord()
	if envelope.Vault != nil {
		key, err := s.keyFor(generation, params)
		if errors.Is(err, ErrSessionClosed) {
			return models.VaultRecord{}, err
		}
		if err != nil {
			// params arrived with the ciphertext; if they cannot be used the
			// vault cannot be opened either
			s.logger.Err(err).Msg("vault key derivation failed")
			return s.lastKnownGood(), ErrWrongSecretOrCorrupted
		}

		record, err = s.keyChain.Decrypt(*envelope.Vault, key)
		if err != nil {
			s.logger.Warn().Msg("vault decryption failed")
			return s.lastKnownGood(), ErrWrongSecretOrCorrupted
		}
		if record.Items == nil {
			record.Items = make([]models.VaultItem, 0)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return models.VaultRecord{}, ErrSessionClosed
	}
	s.stopAutosaveLocked()
	s.record = record
	s.savedRevision = s.revision

	s.logger.Debug().Int("items", len(record.Items)).Msg("vault loaded")
	return record.Clone(), nil
}

func (s *clientSession) lastKnownGood() models.VaultRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// Save implements ClientVaultService. It may run concurrently with an
// autosave; each uploads the record as it was when it started.
func (s *clientSession) Save(ctx context.Context) error {
	s.mu.Lock()
	if err := s.unlockedLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	generation := s.generation
	s.mu.Unlock()

	return s.save(ctx, generation)
}

// Flush implements ClientVaultService.
func (s *clientSession) Flush(ctx context.Context) error {
	s.mu.Lock()
	if err := s.unlockedLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.stopAutosaveLocked()
	dirty := s.revision != s.savedRevision
	generation := s.generation
	s.mu.Unlock()

	if !dirty {
		return nil
	}
	return s.save(ctx, generation)
}

// save encrypts a snapshot of the record and replaces the stored vault.
// There is no version check: whoever saves last wins.
func (s *clientSession) save(ctx context.Context, generation uint64) error {
	s.mu.Lock()
	if generation != s.generation || s.state != StateUnlocked {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	snapshot := s.record.Clone()
	revision := s.revision
	sessionID := s.sessionID
	params := s.kdfParams
	s.mu.Unlock()

	params, err := s.ensureKdfParams(generation, params)
	if err != nil {
		return err
	}

	key, err := s.keyFor(generation, params)
	if err != nil {
		return fmt.Errorf("save vault: %w", err)
	}

	vault, err := s.keyChain.Encrypt(snapshot, key)
	clear(snapshot.Items)
	if err != nil {
		return fmt.Errorf("save vault: %w", err)
	}

	err = s.storage.SaveVault(ctx, sessionID, models.VaultEnvelope{Vault: &vault, KdfParams: &params})
	if err != nil {
		s.logger.Err(err).Msg("vault upload failed")
		return fmt.Errorf("save vault: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return nil
	}
	if revision > s.savedRevision {
		s.savedRevision = revision
	}

	s.logger.Debug().Uint64("revision", revision).Msg("vault saved")
	return nil
}

// ensureKdfParams fills in a KdfSalt (and algorithm and count) when the
// account has none yet. The first generated salt wins if two saves race.
func (s *clientSession) ensureKdfParams(generation uint64, params models.KdfParams) (models.KdfParams, error) {
	if params.HasSalt() {
		return params, nil
	}

	salt, err := s.keyChain.NewSalt(crypto.DefaultSaltLength)
	if err != nil {
		return models.KdfParams{}, fmt.Errorf("kdf salt: %w", err)
	}

	fresh := models.KdfParams{
		Algorithm:  models.AlgorithmPBKDF2SHA256,
		Salt:       codec.Encode(salt),
		Iterations: max(params.Iterations, s.keyIterations),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return models.KdfParams{}, ErrSessionClosed
	}
	if !s.kdfParams.HasSalt() {
		s.kdfParams = fresh
	}
	return s.kdfParams, nil
}
