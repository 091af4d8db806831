package service

import (
	"bytes"
	"sync"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
)

// SessionState is the position of a client session in the login state
// machine.
type SessionState int

const (
	StateAnonymous SessionState = iota
	StateRegistering
	StateAuthenticating
	StateUnlocked
)

func (s SessionState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateRegistering:
		return "registering"
	case StateAuthenticating:
		return "authenticating"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// DefaultAutosaveDelay is the debounce window between the last edit and the
// upload.
const DefaultAutosaveDelay = 1500 * time.Millisecond

// clientSession implements ClientAuthService and ClientVaultService.
//
// Everything below mu is guarded by it. Derivation, encryption and network
// calls run outside the lock on copies, so editing never waits for a save.
type clientSession struct {
	storage  adapter.StorageService
	keyChain crypto.KeyChainService
	ids      idGenerator
	logger   *logger.Logger

	// Counts used for new registrations and for first saves.
	keyIterations      int
	verifierIterations int
	autosaveDelay      time.Duration

	mu         sync.Mutex
	state      SessionState
	identifier string
	secret     []byte
	sessionID  string

	// kdfParams describe the key of the stored vault. keyParams are the
	// ones key was derived with; the key is re-derived when they differ.
	kdfParams models.KdfParams
	key       *crypto.EncryptionKey
	keyParams models.KdfParams

	record models.VaultRecord
	// retired holds ids deleted in this session so they are never handed
	// out again.
	retired map[string]struct{}

	// generation changes on every login and logout. Work started under an
	// older generation must not touch the session.
	generation uint64

	// revision counts mutations; savedRevision is the last one uploaded.
	revision      uint64
	savedRevision uint64

	autosave    *time.Timer
	autosaveErr error
}

func newClientSession(storage adapter.StorageService, keyChain crypto.KeyChainService, ids idGenerator, keyIterations, verifierIterations int, autosaveDelay time.Duration, log *logger.Logger) *clientSession {
	if keyIterations <= 0 {
		keyIterations = crypto.DefaultKeyIterations
	}
	if verifierIterations <= 0 {
		verifierIterations = crypto.DefaultVerifierIterations
	}
	if autosaveDelay <= 0 {
		autosaveDelay = DefaultAutosaveDelay
	}

	return &clientSession{
		storage:            storage,
		keyChain:           keyChain,
		ids:                ids,
		logger:             log,
		keyIterations:      keyIterations,
		verifierIterations: verifierIterations,
		autosaveDelay:      autosaveDelay,
		record:             models.NewVaultRecord(),
		retired:            make(map[string]struct{}),
	}
}

// State implements ClientAuthService.
func (s *clientSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// unlockedLocked returns ErrSessionLocked unless the session is unlocked.
// Callers hold mu.
func (s *clientSession) unlockedLocked() error {
	if s.state != StateUnlocked {
		return ErrSessionLocked
	}
	return nil
}

// keyFor returns the key for params, deriving it outside the lock when the
// cached one was made from different params.
func (s *clientSession) keyFor(generation uint64, params models.KdfParams) (*crypto.EncryptionKey, error) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.key != nil && s.keyParams == params && !s.key.Destroyed() {
		key := s.key
		s.mu.Unlock()
		return key, nil
	}
	secret := bytes.Clone(s.secret)
	s.mu.Unlock()

	key, err := s.keyChain.DeriveKeyWithParams(secret, params)
	clear(secret)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		key.Destroy()
		return nil, ErrSessionClosed
	}
	// A concurrent save may have cached the same key meanwhile and be using it.
	if s.key != nil && s.keyParams == params && !s.key.Destroyed() {
		key.Destroy()
		return s.key, nil
	}
	s.key.Destroy()
	s.key, s.keyParams = key, params
	return key, nil
}

// wipeLocked drops every secret the session holds. Callers hold mu.
func (s *clientSession) wipeLocked() {
	s.stopAutosaveLocked()

	clear(s.secret)
	s.secret = nil
	s.key.Destroy()
	s.key = nil
	s.keyParams = models.KdfParams{}
	s.kdfParams = models.KdfParams{}

	clear(s.record.Items)
	s.record = models.NewVaultRecord()
	s.retired = make(map[string]struct{})

	s.identifier = ""
	s.sessionID = ""
	s.revision, s.savedRevision = 0, 0
	s.autosaveErr = nil
	s.generation++
}
