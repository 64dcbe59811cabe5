package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory store for development and testing. It is
// safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	datasets   map[string]*DatasetRecord
	animations map[string]*AnimationRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		datasets:   make(map[string]*DatasetRecord),
		animations: make(map[string]*AnimationRecord),
	}
}

// PutDataset stores a dataset record.
func (s *MemoryStore) PutDataset(ctx context.Context, rec *DatasetRecord) error {
	if rec.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.datasets[rec.ID] = &cp
	return nil
}

// GetDataset retrieves a dataset record by ID.
func (s *MemoryStore) GetDataset(ctx context.Context, id string) (*DatasetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.datasets[id]
	if !ok {
		return nil, fmt.Errorf("dataset %s: %w", id, ErrNotFound)
	}
	cp := *rec
	return &cp, nil
}

// DeleteDataset removes a dataset record.
func (s *MemoryStore) DeleteDataset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return fmt.Errorf("dataset %s: %w", id, ErrNotFound)
	}
	delete(s.datasets, id)
	return nil
}

// ListDatasets returns all dataset records, newest first.
func (s *MemoryStore) ListDatasets(ctx context.Context) ([]*DatasetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*DatasetRecord, 0, len(s.datasets))
	for _, rec := range s.datasets {
		cp := *rec
		out = append(out, &cp)
	}
	sortNewestFirst(out, func(r *DatasetRecord) recordOrder {
		return recordOrder{r.CreatedAt, r.ID}
	})
	return out, nil
}

// PutAnimation stores an animation record.
func (s *MemoryStore) PutAnimation(ctx context.Context, rec *AnimationRecord) error {
	if rec.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.animations[rec.ID] = &cp
	return nil
}

// GetAnimation retrieves an animation record by ID.
func (s *MemoryStore) GetAnimation(ctx context.Context, id string) (*AnimationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.animations[id]
	if !ok {
		return nil, fmt.Errorf("animation %s: %w", id, ErrNotFound)
	}
	cp := *rec
	return &cp, nil
}

// DeleteAnimation removes an animation record.
func (s *MemoryStore) DeleteAnimation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.animations[id]; !ok {
		return fmt.Errorf("animation %s: %w", id, ErrNotFound)
	}
	delete(s.animations, id)
	return nil
}

// ListAnimations returns animation records for a dataset, newest first.
func (s *MemoryStore) ListAnimations(ctx context.Context, datasetID string) ([]*AnimationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*AnimationRecord, 0)
	for _, rec := range s.animations {
		if datasetID != "" && rec.DatasetID != datasetID {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	sortNewestFirst(out, func(r *AnimationRecord) recordOrder {
		return recordOrder{r.CreatedAt, r.ID}
	})
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// recordOrder sorts by creation time, breaking ties by ID so listings are
// stable.
type recordOrder struct {
	at time.Time
	id string
}

func sortNewestFirst[T any](recs []T, order func(T) recordOrder) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := order(recs[i]), order(recs[j])
		if !a.at.Equal(b.at) {
			return a.at.After(b.at)
		}
		return a.id < b.id
	})
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
