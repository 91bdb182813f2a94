package server

import (
	"context"
	"net/http"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/interaction"
	"github.com/matzehuels/relgraph/pkg/session"
)

// event is an interaction event from the viewer. Select and hover carry
// an id; focus and change carry the search candidate (null clears).
type event struct {
	Type      string                 `json:"type"`
	ID        string                 `json:"id,omitempty"`
	Candidate *interaction.Candidate `json:"candidate,omitempty"`
}

// reply is the session's state after an event.
type reply struct {
	Instruction interaction.Instruction `json:"instruction"`
	Value       *interaction.Candidate  `json:"value"`
	State       interaction.State       `json:"state"`
}

func replyFor(c *interaction.Coordinator) reply {
	return reply{Instruction: c.Instruction(), Value: c.Value(), State: c.State()}
}

// session returns the caller's session. A missing, malformed, unknown or
// expired cookie gets a new session; the returned cookie is non-nil then
// and must be sent back.
func (s *Server) session(ctx context.Context, r *http.Request) (*session.Session, *http.Cookie, error) {
	if c, err := r.Cookie(cookieName); err == nil && session.ValidID(c.Value) {
		sess, err := s.sessions.Get(ctx, c.Value)
		if err == nil {
			return sess, nil, nil
		}
		if !errors.Is(err, errors.ErrCodeSessionNotFound) {
			return nil, nil, err
		}
	}

	sess := session.New(s.opts.SessionTTL)
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, nil, err
	}
	s.logger.Debug("new session", "session", sess.ID)
	return sess, &http.Cookie{
		Name:     cookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// apply runs ev through a coordinator restored from the session and stores
// the new state. Camera instruction changes go to the session's sockets.
func (s *Server) apply(ctx context.Context, sessionID string, ev event) (reply, error) {
	if err := s.checkEvent(ev); err != nil {
		return reply{}, err
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return reply{}, err
	}

	coord := interaction.Restore(sess.State, interaction.FollowerFunc(func(target string, animate bool) {
		s.hub.broadcast(sess.ID, cameraMessage{Type: "camera", Target: target, Animate: animate})
	}))
	switch ev.Type {
	case "select":
		coord.Select(ev.ID)
	case "hover":
		coord.Hover(ev.ID)
	case "focus":
		coord.OnFocus(ev.Candidate)
	case "change":
		coord.OnChange(ev.Candidate)
	}

	sess.State = coord.State()
	sess.Touch(s.opts.SessionTTL)
	if err := s.sessions.Set(ctx, sess); err != nil {
		return reply{}, err
	}
	return replyFor(coord), nil
}

// checkEvent rejects unknown event types and node ids the graph lacks.
// Message candidates pass through; the coordinator ignores them.
func (s *Server) checkEvent(ev event) error {
	id := ev.ID
	switch ev.Type {
	case "select", "hover":
	case "focus", "change":
		id = ""
		if ev.Candidate != nil && ev.Candidate.Selectable() {
			id = ev.Candidate.ID
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown event %q", ev.Type)
	}
	if id == "" {
		return nil
	}
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	if _, ok := s.graph().Graph.Node(id); !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	return nil
}
