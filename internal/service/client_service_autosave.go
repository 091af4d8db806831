package service

import (
	"context"
	"errors"
	"time"
)

// autosaveTimeout bounds one background save. Flush and Save use the
// caller's context instead.
const autosaveTimeout = time.Minute

// scheduleAutosaveLocked replaces the pending autosave with one that fires
// after autosaveDelay. A burst of edits therefore produces one upload.
// Callers hold mu.
func (s *clientSession) scheduleAutosaveLocked() {
	s.stopAutosaveLocked()

	generation := s.generation
	s.autosave = time.AfterFunc(s.autosaveDelay, func() {
		s.runAutosave(generation)
	})
}

// stopAutosaveLocked cancels the pending autosave, if any. A save that has
// already started is not interrupted. Callers hold mu.
func (s *clientSession) stopAutosaveLocked() {
	if s.autosave != nil {
		s.autosave.Stop()
		s.autosave = nil
	}
}

func (s *clientSession) runAutosave(generation uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
	defer cancel()

	err := s.save(ctx, generation)
	if errors.Is(err, ErrSessionClosed) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return
	}
	s.autosaveErr = err
	if err != nil {
		s.logger.Err(err).Msg("autosave failed")
	}
}

// AutosaveErr returns the result of the last background save. Flush
// retries whatever it left unsaved.
func (s *clientSession) AutosaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autosaveErr
}
