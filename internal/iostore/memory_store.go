package iostore

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// MemoryStore is an in-process RecordStore. Nothing survives Close.
type MemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	properties map[int64]schema.Property
	settings   *schema.Settings
}

var _ contract.RecordStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{properties: make(map[int64]schema.Property)}
}

// CreateProperty stores a copy of the property under a fresh id.
func (ms *MemoryStore) CreateProperty(p schema.Property) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.nextID++
	p = p.Clone()
	p.ID = ms.nextID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.Answers == nil {
		p.Answers = schema.Answers{}
	}
	ms.properties[p.ID] = p
	return p.ID, nil
}

// GetProperty returns a copy of the stored property.
func (ms *MemoryStore) GetProperty(id int64) (schema.Property, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	p, ok := ms.properties[id]
	if !ok {
		return schema.Property{}, fmt.Errorf("property %d: %w", id, contract.ErrPropertyNotFound)
	}
	return p.Clone(), nil
}

// UpdateProperty replaces the stored property, keeping its created-at.
func (ms *MemoryStore) UpdateProperty(p schema.Property) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	existing, ok := ms.properties[p.ID]
	if !ok {
		return fmt.Errorf("property %d: %w", p.ID, contract.ErrPropertyNotFound)
	}
	p = p.Clone()
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	if p.Answers == nil {
		p.Answers = schema.Answers{}
	}
	ms.properties[p.ID] = p
	return nil
}

// DeleteProperty removes a property by id.
func (ms *MemoryStore) DeleteProperty(id int64) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.properties[id]; !ok {
		return fmt.Errorf("property %d: %w", id, contract.ErrPropertyNotFound)
	}
	delete(ms.properties, id)
	return nil
}

// ListProperties returns copies of all properties, newest first.
func (ms *MemoryStore) ListProperties() ([]schema.Property, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	results := make([]schema.Property, 0, len(ms.properties))
	for _, p := range ms.properties {
		results = append(results, p.Clone())
	}
	slices.SortFunc(results, func(a, b schema.Property) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return results, nil
}

// GetSettings returns the stored settings and whether a record exists.
func (ms *MemoryStore) GetSettings() (schema.Settings, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.settings == nil {
		return schema.Settings{}, false, nil
	}
	return ms.settings.Clone(), true, nil
}

// SaveSettings replaces the settings record.
func (ms *MemoryStore) SaveSettings(s schema.Settings) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	s = s.Clone()
	s.ID = schema.SettingsID
	if s.Theme == "" {
		s.Theme = schema.SystemTheme
	}
	ms.settings = &s
	return nil
}

// GetStatus returns counts and the created-at range.
func (ms *MemoryStore) GetStatus() (schema.RecordStatus, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	status := schema.RecordStatus{
		Backend:          string(schema.MemoryBackend),
		Connected:        true,
		TotalProperties:  len(ms.properties),
		SettingsModified: ms.settings != nil,
	}
	for _, p := range ms.properties {
		if status.NewestCreatedAt.IsZero() || p.CreatedAt.After(status.NewestCreatedAt) {
			status.NewestCreatedAt = p.CreatedAt
		}
		if status.OldestCreatedAt.IsZero() || p.CreatedAt.Before(status.OldestCreatedAt) {
			status.OldestCreatedAt = p.CreatedAt
		}
	}
	return status, nil
}

// Close drops everything held by the store.
func (ms *MemoryStore) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	clear(ms.properties)
	ms.settings = nil
	return nil
}
