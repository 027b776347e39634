package submission

import (
	"context"
	"sort"
	"sync"
	"time"

	"layanan.org/internal/ids"
)

// Memory is an in-process Store used for development and tests.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]map[string]Record // category path -> id -> record
	now  func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string]map[string]Record),
		now:  time.Now,
	}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, cat Category, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.docs[cat.Path][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec.Clone(), nil
}

// List implements Store.
func (m *Memory) List(_ context.Context, cat Category) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.docs[cat.Path]))
	for _, rec := range m.docs[cat.Path] {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.Before(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Update implements Store.
func (m *Memory) Update(_ context.Context, cat Category, id string, patch Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.docs[cat.Path][id]
	if !ok {
		return ErrNotFound
	}
	if patch.ReferenceNumber != nil {
		rec.ReferenceNumber = *patch.ReferenceNumber
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	m.docs[cat.Path][id] = rec
	return nil
}

// Create implements Store. A missing id is assigned; a missing status
// defaults to not-processed.
func (m *Memory) Create(_ context.Context, cat Category, rec Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec = rec.Clone()
	if rec.ID == "" {
		rec.ID = ids.New()
	}
	if rec.Status == "" {
		rec.Status = StatusNotProcessed
	}
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = m.now().UTC()
	}
	if m.docs[cat.Path] == nil {
		m.docs[cat.Path] = make(map[string]Record)
	}
	m.docs[cat.Path][rec.ID] = rec
	return rec.ID, nil
}
