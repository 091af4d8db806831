package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-zk-vault/models"
)

// Add implements ClientVaultService. Any id on item is replaced.
func (s *clientSession) Add(item models.VaultItem) (models.VaultItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return models.VaultItem{}, ErrItemTitleEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.unlockedLocked(); err != nil {
		return models.VaultItem{}, err
	}

	item.ID = s.newIDLocked()
	s.record.Items = append(s.record.Items, item)
	s.mutatedLocked()

	return item, nil
}

// Update implements ClientVaultService. The item is matched by id.
func (s *clientSession) Update(item models.VaultItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return ErrItemTitleEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.unlockedLocked(); err != nil {
		return err
	}

	i := s.record.Find(item.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, item.ID)
	}
	s.record.Items[i] = item
	s.mutatedLocked()

	return nil
}

// Delete implements ClientVaultService. The id is retired for the rest of
// the session.
func (s *clientSession) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.unlockedLocked(); err != nil {
		return err
	}

	i := s.record.Find(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	s.record.Items = slices.Delete(s.record.Items, i, i+1)
	s.retired[id] = struct{}{}
	s.mutatedLocked()

	return nil
}

// Get implements ClientVaultService.
func (s *clientSession) Get(id string) (models.VaultItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.unlockedLocked(); err != nil {
		return models.VaultItem{}, err
	}

	i := s.record.Find(id)
	if i < 0 {
		return models.VaultItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return s.record.Items[i], nil
}

// List implements ClientVaultService. The slice is a copy.
func (s *clientSession) List() ([]models.VaultItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.unlockedLocked(); err != nil {
		return nil, err
	}
	return s.record.Clone().Items, nil
}

func (s *clientSession) newIDLocked() string {
	for {
		id := s.ids.Generate()
		if _, used := s.retired[id]; used {
			continue
		}
		if s.record.Find(id) >= 0 {
			continue
		}
		return id
	}
}

// mutatedLocked records a change and (re)schedules the autosave.
func (s *clientSession) mutatedLocked() {
	s.revision++
	s.scheduleAutosaveLocked()
}
