package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrTooLarge is returned when an upload exceeds the configured size cap.
var ErrTooLarge = errors.New("file exceeds upload size limit")

// FileStore persists uploaded book files.
type FileStore interface {
	Save(name string, r io.Reader, maxBytes int64) (path string, size int64, err error)
	Remove(path string) error
}

// LocalStore keeps uploads on the local filesystem under a base directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Save(name string, r io.Reader, maxBytes int64) (string, int64, error) {
	dir := filepath.Join(s.dir, "books")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	// Copy one byte past the cap so oversized uploads are detected.
	size, err := io.Copy(f, io.LimitReader(r, maxBytes+1))
	if err != nil {
		os.Remove(path)
		return "", 0, err
	}
	if size > maxBytes {
		os.Remove(path)
		return "", 0, ErrTooLarge
	}
	return path, size, nil
}

func (s *LocalStore) Remove(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
