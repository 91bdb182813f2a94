package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/relgraph/pkg/errors"
)

func stores(t *testing.T) map[string]Store {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Store{"memory": NewMemoryStore(), "file": fs}
}

func TestNew(t *testing.T) {
	s := New(time.Hour)
	if !ValidID(s.ID) {
		t.Errorf("ID %q is not a uuid", s.ID)
	}
	if s.IsExpired() {
		t.Error("new session should not be expired")
	}
	if New(time.Hour).ID == s.ID {
		t.Error("ids should be unique")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			sess := New(time.Hour)
			sess.State = sess.State.Select("ada")
			if err := store.Set(ctx, sess); err != nil {
				t.Fatalf("Set: %v", err)
			}

			got, err := store.Get(ctx, sess.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.State.Selected != "ada" {
				t.Errorf("Selected = %q, want ada", got.State.Selected)
			}

			got.State = got.State.Select("babbage")
			again, _ := store.Get(ctx, sess.ID)
			if again.State.Selected != "ada" {
				t.Error("Get should return a copy")
			}

			if err := store.Delete(ctx, sess.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := store.Get(ctx, sess.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
				t.Errorf("Get(deleted) error = %v, want %v", err, errors.ErrCodeSessionNotFound)
			}
		})
	}
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			live := New(time.Hour)
			dead := New(time.Hour)
			dead.ExpiresAt = time.Now().Add(-time.Minute)
			_ = store.Set(ctx, live)
			_ = store.Set(ctx, dead)

			if _, err := store.Get(ctx, dead.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
				t.Errorf("Get(expired) error = %v, want %v", err, errors.ErrCodeSessionNotFound)
			}
			if err := store.Cleanup(ctx); err != nil {
				t.Fatalf("Cleanup: %v", err)
			}
			if _, err := store.Get(ctx, live.ID); err != nil {
				t.Errorf("Get(live) after cleanup: %v", err)
			}
		})
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	dead := New(time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Second)
	_ = s.Set(ctx, dead)
	_ = s.Set(ctx, New(time.Hour))

	_ = s.Cleanup(ctx)
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestFileStoreRejectsPathIDs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "..", "escape.json"), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Get(ctx, "../escape"); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get(../escape) error = %v, want not found", err)
	}
	if err := s.Set(ctx, &Session{ID: "../escape"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Set(../escape) error = %v, want INVALID_INPUT", err)
	}
}

func TestFileStoreCleanupRemovesCorrupt(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(s.Dir(), New(time.Hour).ID+".json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	live := New(time.Hour)
	if err := s.Set(ctx, live); err != nil {
		t.Fatal(err)
	}

	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Error("corrupt session file should be removed")
	}
	if _, err := s.Get(ctx, live.ID); err != nil {
		t.Errorf("Get(live): %v", err)
	}
	if tmp, _ := filepath.Glob(filepath.Join(s.Dir(), ".session-*")); len(tmp) != 0 {
		t.Errorf("temp files left behind: %v", tmp)
	}
}

func TestTouch(t *testing.T) {
	s := New(time.Millisecond)
	s.ExpiresAt = time.Now().Add(-time.Second)
	s.Touch(time.Hour)
	if s.IsExpired() {
		t.Error("Touch should extend expiry")
	}
}
