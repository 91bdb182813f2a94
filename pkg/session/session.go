// Package session keeps per-viewer interaction state for the server.
//
// Each browser gets a [Session] identified by a random UUID (carried in a
// cookie) holding its interaction.State, so selections and search focus
// survive reconnects. Two [Store] backends exist:
//   - [MemoryStore]: in-process map, the default
//   - [FileStore]: JSON files in a directory, for restarts of a single
//     instance
//
// Usage:
//
//	store := session.NewMemoryStore()
//	sess := session.New(session.DefaultTTL)
//	sess.State = sess.State.Select("ada")
//	_ = store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeSessionNotFound) {
//	    // unknown or expired
//	}
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/interaction"
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 24 * time.Hour

// Session is one viewer's interaction state.
type Session struct {
	ID        string            `json:"id"`
	State     interaction.State `json:"state"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// New creates a session with a fresh id.
func New(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session by ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl)
}

// ValidID reports whether id looks like a session id.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Store is the interface for session storage backends.
type Store interface {
	// Get returns the session or a SESSION_NOT_FOUND error when it is
	// unknown or expired.
	Get(ctx context.Context, id string) (*Session, error)
	// Set stores a copy of the session.
	Set(ctx context.Context, s *Session) error
	// Delete removes a session.
	Delete(ctx context.Context, id string) error
	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
	// Close releases resources.
	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
}
