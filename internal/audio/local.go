package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps audio files in a directory that the HTTP server exposes
// under URLPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	baseDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", dir, err)
	}
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create audio directory %s: %w", baseDir, err)
	}

	return &LocalStore{
		dir:       baseDir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes data to a temporary file and renames it over name, so readers
// never observe a partially written file.
func (s *LocalStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-"+uuid.NewString()+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	return s.urlPrefix + "/" + name, nil
}

func validateName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return errors.New("invalid audio file name: " + name)
	}
	return nil
}
