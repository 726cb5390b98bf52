package snapshot

import (
	"context"
	"sync"

	"github.com/teacherpoli/backoffice/core/bonus"
)

// MemoryStore keeps the encoded snapshot in memory. It is used by tests and by
// deployments that do not need the catalog to survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	data     []byte
	failNext error
	saves    int
}

var _ bonus.Store = (*MemoryStore)(nil) // interface compliance check

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// FailNext makes the next Save return err.
func (s *MemoryStore) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

// Saves counts successful writes.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Load(context.Context) ([]bonus.Resource, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, false, nil
	}
	catalog, err := decode(s.data)
	if err != nil {
		return nil, false, err
	}
	return catalog, true, nil
}

func (s *MemoryStore) Save(_ context.Context, catalog []bonus.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failNext; err != nil {
		s.failNext = nil
		return err
	}
	data, err := encode(catalog)
	if err != nil {
		return err
	}
	s.data = data
	s.saves++
	return nil
}
