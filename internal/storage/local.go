package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps uploads on the local disk under root. The files are served
// by the HTTP layer under baseURL, so PublicURL is a string concatenation.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Upload(path string, blob []byte) error {
	dst, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, blob, 0o644)
}

func (s *LocalStore) Remove(path string) error {
	dst, err := s.resolve(path)
	if err != nil {
		return err
	}
	return os.Remove(dst)
}

func (s *LocalStore) PublicURL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

// resolve rejects paths that would escape the upload root.
func (s *LocalStore) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if clean == "/" || strings.Contains(path, "..") {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}
