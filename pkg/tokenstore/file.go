package tokenstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore persists the token as a single 0600 file on disk.
// It is the durable default: the token survives process restarts the way
// browser-local storage survives page reloads.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// DefaultTokenPath returns the conventional token location under the
// user's config directory.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Join(ErrStorageFailure, err)
	}
	return filepath.Join(dir, "learnkit", "session-token"), nil
}

// NewFileStore creates a file-backed store at the given path.
// The parent directory is created lazily on first Write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read returns the persisted token. A missing or empty file reports
// ErrTokenNotFound; any other filesystem failure reports ErrStorageFailure
// so callers can fail closed.
func (s *FileStore) Read(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", ErrTokenNotFound
	case err != nil:
		return "", errors.Join(ErrStorageFailure, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// Write persists the token with owner-only permissions.
// The write goes through a temp file and rename so a crash mid-write
// cannot leave a truncated token behind.
func (s *FileStore) Write(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Join(ErrStorageFailure, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-token-*")
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Join(ErrStorageFailure, err)
	}
	if _, err := tmp.WriteString(token); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Join(ErrStorageFailure, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Join(ErrStorageFailure, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}
