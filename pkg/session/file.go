package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/relgraph/pkg/errors"
)

// FileStore keeps one JSON file per session in a directory. Writes go
// through a temp file and a rename, so readers never see half a session.
type FileStore struct {
	dir string
	mu  sync.Mutex // serializes writers and Cleanup
}

// NewFileStore opens (creating if needed) a session directory. An empty dir
// uses relgraph/sessions under the user config directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate config dir: %w", err)
		}
		dir = filepath.Join(base, "relgraph", "sessions")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the session directory.
func (s *FileStore) Dir() string { return s.dir }

// file maps an id to its path. Only UUIDs map, so an id can never name a
// file outside dir.
func (s *FileStore) file(id string) (string, bool) {
	if !ValidID(id) {
		return "", false
	}
	return filepath.Join(s.dir, id+".json"), true
}

func readSession(path string) (*Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sess := new(Session)
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return sess, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Session, error) {
	path, ok := s.file(id)
	if !ok {
		return nil, notFound(id)
	}
	sess, err := readSession(path)
	switch {
	case os.IsNotExist(err):
		return nil, notFound(id)
	case err != nil:
		return nil, err
	case sess.IsExpired():
		_ = s.Delete(ctx, id)
		return nil, notFound(id)
	}
	return sess, nil
}

func (s *FileStore) Set(ctx context.Context, sess *Session) error {
	path, ok := s.file(sess.ID)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid session id %q", sess.ID)
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.dir, ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, ok := s.file(id)
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Cleanup removes expired and unreadable session files.
func (s *FileStore) Cleanup(ctx context.Context) error {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		sess, err := readSession(path)
		if err != nil || sess.IsExpired() {
			_ = os.Remove(path)
		}
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
