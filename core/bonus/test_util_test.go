package bonus

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/teacherpoli/backoffice/core"
)

var errDiskFull = errors.New("quota exceeded")

// jsonStore keeps the snapshot as encoded bytes, like a real blob store would.
type jsonStore struct {
	mu        sync.Mutex
	blob      []byte
	saves     int
	failSave  error
	failLoad  error
	loadCalls int
}

func (s *jsonStore) Load(context.Context) ([]Resource, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadCalls++
	if s.failLoad != nil {
		return nil, false, s.failLoad
	}
	if s.blob == nil {
		return nil, false, nil
	}
	var catalog []Resource
	if err := json.Unmarshal(s.blob, &catalog); err != nil {
		return nil, false, err
	}
	return catalog, true, nil
}

func (s *jsonStore) Save(_ context.Context, catalog []Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSave != nil {
		return s.failSave
	}
	blob, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	s.blob = blob
	s.saves++
	return nil
}

// emptyStore returns a store holding an empty catalog, so tests do not see the defaults.
func emptyStore() *jsonStore {
	return &jsonStore{blob: []byte("[]")}
}

func newTestService(store Store) *Service {
	validate, translator := core.NewValidator()
	return NewService(store, validate, translator, core.NopLogger)
}

type opRecord struct {
	op  string
	err error
}

type recorderMock struct {
	ops []opRecord
}

func (r *recorderMock) RecordCatalogOp(op string, err error) {
	r.ops = append(r.ops, opRecord{op, err})
}

// freezeNow pins the id clock so ids collide and the uniqueness fallback kicks in.
func freezeNow(t *testing.T) {
	t.Helper()
	frozen := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return frozen }
	t.Cleanup(func() { nowFunc = time.Now })
}

func validExercise() NewExercise {
	return NewExercise{
		Question:      "Which one is a verb?",
		Options:       []string{"run", "blue", "table", "quickly"},
		CorrectAnswer: 0,
	}
}
