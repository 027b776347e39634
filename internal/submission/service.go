package submission

import (
	"context"
	"fmt"
	"strings"
)

// Service applies the portal's validation and read-back rules on top of a
// Store. It is safe for concurrent use when the underlying store is.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Update validates and applies a partial update, then re-reads the record
// so the caller sees the stored state rather than an echo of the request.
func (s *Service) Update(ctx context.Context, cat Category, id string, patch Patch) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, fmt.Errorf("%w: submission id is required", ErrInvalidInput)
	}
	if patch.Empty() {
		return Record{}, fmt.Errorf("%w: at least one field must be provided", ErrInvalidInput)
	}

	if _, err := s.store.Get(ctx, cat, id); err != nil {
		return Record{}, err
	}
	if err := s.store.Update(ctx, cat, id, patch); err != nil {
		return Record{}, err
	}

	rec, err := s.store.Get(ctx, cat, id)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns every submission in the category with timestamps
// normalized to UTC. An empty category yields an empty slice, never nil.
func (s *Service) List(ctx context.Context, cat Category) ([]Record, error) {
	recs, err := s.store.List(ctx, cat)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []Record{}
	}
	for i := range recs {
		recs[i].SubmittedAt = recs[i].SubmittedAt.UTC()
	}
	return recs, nil
}
