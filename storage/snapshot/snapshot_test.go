package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teacherpoli/backoffice/core"
	"github.com/teacherpoli/backoffice/core/bonus"
)

func newService(store bonus.Store) *bonus.Service {
	validate, translator := core.NewValidator()
	return bonus.NewService(store, validate, translator, core.NopLogger)
}

// buildCatalog runs a few mutations so the snapshot has nested, ordered content.
func buildCatalog(t *testing.T, svc *bonus.Service) []bonus.Resource {
	t.Helper()
	ctx := context.Background()

	res, err := svc.Create(ctx, bonus.NewResource{Title: "Curso A", Type: bonus.TypeCourse, WithStarterLesson: true})
	require.NoError(t, err)
	for _, title := range []string{"Aula 2", "Aula 3"} {
		lesson, err := svc.AddLesson(ctx, res.ID, bonus.NewLesson{Title: title})
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			_, err = svc.AddExercise(ctx, res.ID, lesson.ID, bonus.NewExercise{
				Question:      title,
				Options:       []string{"a", "b", "c", "d"},
				CorrectAnswer: i,
			})
			require.NoError(t, err)
		}
	}
	catalog, err := svc.List(ctx)
	require.NoError(t, err)
	return catalog
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "teacherpoli_bonus_data.json")

	store := NewFileStore(path)
	_, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	want := buildCatalog(t, newService(store))

	// simulated restart
	got, err := newService(NewFileStore(path)).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files must be cleaned up")
}

func TestFileStore_corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)

	_, err = newService(NewFileStore(path)).List(context.Background())
	assert.True(t, core.IsPersistence(err), "got %v", err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := newService(store)

	want := buildCatalog(t, svc)
	saves := store.Saves()

	store.FailNext(errors.New("quota exceeded"))
	_, err := svc.Create(ctx, bonus.NewResource{Title: "lost"})
	assert.True(t, core.IsPersistence(err), "got %v", err)
	assert.Equal(t, saves, store.Saves())

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// failure is one-shot
	_, err = svc.Create(ctx, bonus.NewResource{Title: "kept"})
	require.NoError(t, err)

	restarted, err := newService(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, restarted, len(want)+1)
	assert.Equal(t, want, restarted[:len(want)])
	assert.Equal(t, "kept", restarted[len(want)].Title)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	client, err := NewRedisClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	key := "teacherpoli_bonus_data_test"
	require.NoError(t, client.Del(ctx, key).Err())
	t.Cleanup(func() { _ = client.Del(context.Background(), key).Err() })

	store := NewRedisStore(client, key)
	_, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	want := buildCatalog(t, newService(store))
	got, err := newService(NewRedisStore(client, key)).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
