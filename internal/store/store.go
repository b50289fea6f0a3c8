// Package store holds the published dataset. Records accumulate while the
// load pipeline runs; Complete freezes them into an immutable
// domain.Dataset that readers fetch lock-free.
package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
)

// ErrNotLoaded is returned by readiness checks before the dataset is published.
var ErrNotLoaded = errors.New("dataset has not been loaded yet")

// Store implements pipeline.BatchLoader and pipeline.Completer.
type Store struct {
	mu      sync.Mutex
	pending []domain.Record

	current atomic.Pointer[domain.Dataset]
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// LoadBatch buffers records until Complete is called.
func (s *Store) LoadBatch(_ context.Context, records []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, records...)
	return nil
}

// Complete publishes the buffered records as the current dataset.
func (s *Store) Complete(_ context.Context) error {
	s.mu.Lock()
	records := s.pending
	s.pending = nil
	s.mu.Unlock()

	s.current.Store(domain.NewDataset(records))
	return nil
}

// Dataset returns the published dataset, or false before Complete.
func (s *Store) Dataset() (*domain.Dataset, bool) {
	d := s.current.Load()
	return d, d != nil
}

// CheckReadiness returns nil once a dataset has been published.
func (s *Store) CheckReadiness(_ context.Context) error {
	if s.current.Load() == nil {
		return ErrNotLoaded
	}
	return nil
}
