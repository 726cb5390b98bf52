package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/teacherpoli/backoffice/core"
	"github.com/teacherpoli/backoffice/core/bonus"
	"github.com/teacherpoli/backoffice/core/student"
	inmemdb "github.com/teacherpoli/backoffice/storage/database/inmem"
	"github.com/teacherpoli/backoffice/storage/snapshot"
)

// NewCatalog returns a catalog service backed by a memory snapshot holding resources.
// With no resources, the snapshot is an empty catalog (not the defaults).
func NewCatalog(t *testing.T, resources ...bonus.Resource) (*bonus.Service, *snapshot.MemoryStore) {
	t.Helper()
	if resources == nil {
		resources = []bonus.Resource{}
	}
	store := snapshot.NewMemoryStore()
	if err := store.Save(context.Background(), resources); err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	validate, translator := core.NewValidator()
	return bonus.NewService(store, validate, translator, core.NopLogger), store
}

// NewDirectory returns a student directory over an in-memory roster.
func NewDirectory(t *testing.T) *student.Directory {
	t.Helper()
	validate, translator := core.NewValidator()
	return student.NewDirectory(inmemdb.NewStudentRepository(inmemdb.Open()), validate, translator, core.NopLogger)
}

func AddStudent(t *testing.T, dir *student.Directory, name, email, addedBy string) student.Student {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := dir.Add(ctx, student.NewStudent{Name: name, Email: email, AddedBy: addedBy})
	if err != nil {
		t.Fatalf("AddStudent() failed: %v", err)
	}
	return s
}
