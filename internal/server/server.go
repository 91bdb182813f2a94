// Package server serves the interactive graph viewer.
//
// The viewer is a page that shows the current frame of the graph plus a
// search box. Interaction events arrive over plain HTTP (POST /api/select,
// /api/focus, /api/change) or over a WebSocket at /ws; both run through an
// [interaction.Coordinator] restored from the caller's session, and every
// camera instruction change is pushed to the session's open sockets.
//
// With Options.Watch the graph file is reloaded when it changes on disk and
// connected viewers are told to refresh.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/pipeline"
	"github.com/matzehuels/relgraph/pkg/session"
)

const (
	cookieName      = "relgraph_session"
	reloadDebounce  = 100 * time.Millisecond
	cleanupInterval = 10 * time.Minute
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 20
)

// Options configures a Server.
type Options struct {
	Addr      string
	GraphPath string
	Watch     bool

	SessionTTL time.Duration
	Pipeline   pipeline.Options

	Runner   *pipeline.Runner // nil uses an uncached runner
	Sessions session.Store    // nil uses an in-memory store
	Logger   *log.Logger
}

// Server is the viewer backend. Create it with New.
type Server struct {
	opts     Options
	logger   *log.Logger
	runner   *pipeline.Runner
	sessions session.Store
	upgrader websocket.Upgrader
	hub      *hub

	mu       sync.RWMutex
	prepared *pipeline.Prepared

	// stateMu serializes session read-modify-write cycles.
	stateMu sync.Mutex
}

// New loads the graph at opts.GraphPath and returns a server for it.
func New(ctx context.Context, opts Options) (*Server, error) {
	if opts.GraphPath == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph path is required")
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = session.DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, opts.Logger)
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewMemoryStore()
	}

	s := &Server{
		opts:     opts,
		logger:   opts.Logger,
		runner:   opts.Runner,
		sessions: opts.Sessions,
		hub:      newHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Only pages served by this host may connect.
			CheckOrigin: sameOrigin,
		},
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload reads the graph file again and tells connected viewers.
func (s *Server) Reload(ctx context.Context) error {
	p, err := s.runner.Load(ctx, s.opts.GraphPath, s.opts.Pipeline)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.prepared = p
	s.mu.Unlock()
	s.hub.broadcastAll(reloadMessage{Type: "reload", Version: p.Hash})
	return nil
}

// graph returns the current prepared graph.
func (s *Server) graph() *pipeline.Prepared {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prepared
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.opts.Watch {
		stop, err := s.watch(ctx)
		if err != nil {
			return err
		}
		defer stop()
	}
	go s.cleanupLoop(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("viewer listening", "addr", s.opts.Addr, "graph", s.opts.GraphPath, "watch", s.opts.Watch)

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.hub.closeAll()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.sessions.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup", "error", err)
			}
		}
	}
}

// Close releases the session store.
func (s *Server) Close() error {
	s.hub.closeAll()
	return s.sessions.Close()
}
