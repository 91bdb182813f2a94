package server

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/relgraph/pkg/errors"
)

const writeWait = 5 * time.Second

// cameraMessage pushes an instruction change. An empty target means no
// node.
type cameraMessage struct {
	Type    string `json:"type"`
	Target  string `json:"target"`
	Animate bool   `json:"animate"`
}

type reloadMessage struct {
	Type    string `json:"type"`
	Version string `json:"version"`
}

type stateMessage struct {
	Type string `json:"type"`
	reply
}

type errorMessage struct {
	Type  string      `json:"type"`
	Code  errors.Code `json:"code,omitempty"`
	Error string      `json:"error"`
	Event string      `json:"event,omitempty"`
}

// client is one open socket. Writes are serialized per connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// hub tracks open sockets per session.
type hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[string]map[*client]struct{})}
}

func (h *hub) add(sessionID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[sessionID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[sessionID] = set
	}
	set[c] = struct{}{}
}

func (h *hub) remove(sessionID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[sessionID]
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, sessionID)
	}
}

func (h *hub) count(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func (h *hub) snapshot(sessionID string) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []*client
	for id, set := range h.clients {
		if sessionID != "" && id != sessionID {
			continue
		}
		for c := range set {
			out = append(out, c)
		}
	}
	return out
}

// broadcast sends v to every socket of one session.
func (h *hub) broadcast(sessionID string, v any) {
	for _, c := range h.snapshot(sessionID) {
		_ = c.send(v)
	}
}

// broadcastAll sends v to every socket.
func (h *hub) broadcastAll(v any) {
	h.broadcast("", v)
}

func (h *hub) closeAll() {
	for _, c := range h.snapshot("") {
		c.mu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		c.mu.Unlock()
		_ = c.conn.Close()
	}
}

// sameOrigin accepts requests without an Origin header (non-browser
// clients) and those whose Origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// handleWS upgrades to a WebSocket and runs the session's interaction
// events until the socket closes.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, cookie, err := s.session(r.Context(), r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var header http.Header
	if cookie != nil {
		header = http.Header{"Set-Cookie": {cookie.String()}}
	}

	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		s.logger.Warn("websocket upgrade", "error", err)
		return
	}
	c := &client{conn: conn}
	s.hub.add(sess.ID, c)
	defer func() {
		s.hub.remove(sess.ID, c)
		conn.Close()
	}()
	s.logger.Debug("viewer connected", "session", sess.ID, "sockets", s.hub.count(sess.ID))

	ctx := context.WithoutCancel(r.Context())
	for {
		var ev event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", "session", sess.ID, "error", err)
			}
			return
		}
		rep, err := s.apply(ctx, sess.ID, ev)
		if err != nil {
			_ = c.send(errorMessage{Type: "error", Code: errors.GetCode(err), Error: errors.UserMessage(err), Event: ev.Type})
			continue
		}
		if err := c.send(stateMessage{Type: "state", reply: rep}); err != nil {
			return
		}
	}
}
