package storage

import (
	"context"
	"os"
	"path/filepath"
)

// LocalStore writes files under dir and returns URLs below baseURL. The
// server serves dir at baseURL via a static route, so the returned URL is
// retrievable immediately.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if baseURL == "" {
		baseURL = "/uploads"
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalStore) Save(_ context.Context, key, _ string, data []byte) (string, error) {
	dest := filepath.Join(s.dir, key)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

// Dir returns the directory files are written to, for the static route.
func (s *LocalStore) Dir() string {
	return s.dir
}
