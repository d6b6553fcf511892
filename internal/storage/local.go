package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes images under a media directory on disk; the router
// serves that directory at /media/.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "posts"), 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) SaveImage(_ context.Context, filename string, r io.Reader, _ int64) (string, error) {
	name := objectName(filename)
	f, err := os.Create(filepath.Join(s.dir, filepath.FromSlash(name)))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return name, nil
}
