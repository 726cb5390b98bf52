package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/teacherpoli/backoffice/core/bonus"
)

// FileStore keeps the catalog as one JSON document on disk.
type FileStore struct {
	path string
}

var _ bonus.Store = (*FileStore)(nil) // interface compliance check

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(context.Context) ([]bonus.Resource, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "reading snapshot")
	}
	catalog, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return catalog, true, nil
}

// Save writes to a temporary file in the same directory and renames it over the
// snapshot, so readers never see a partial write.
func (s *FileStore) Save(_ context.Context, catalog []bonus.Resource) error {
	data, err := encode(catalog)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating snapshot dir")
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp snapshot")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing snapshot")
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "syncing snapshot")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing snapshot")
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "replacing snapshot")
	}
	return nil
}

func encode(catalog []bonus.Resource) ([]byte, error) {
	if catalog == nil {
		catalog = []bonus.Resource{}
	}
	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, errors.Wrap(err, "encoding snapshot")
	}
	return data, nil
}

func decode(data []byte) ([]bonus.Resource, error) {
	var catalog []bonus.Resource
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot")
	}
	return catalog, nil
}
