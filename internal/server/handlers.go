package server

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/relgraph/pkg/buildinfo"
	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/interaction"
	"github.com/matzehuels/relgraph/pkg/pipeline"
	"github.com/matzehuels/relgraph/pkg/render"
)

//go:embed static/index.html
var indexHTML []byte

// Handler returns the viewer's HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/frame.{format}", s.handleFrame)
	r.Get("/ws", s.handleWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/state", s.handleState)
		r.Get("/color", s.handleColor)
		r.Post("/select", s.handleEvent("select"))
		r.Post("/hover", s.handleEvent("hover"))
		r.Post("/focus", s.handleEvent("focus"))
		r.Post("/change", s.handleEvent("change"))
	})
	return r
}

// logRequests logs each request at debug level, and server errors at
// error level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		kv := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("request", kv...)
			return
		}
		s.logger.Debug("request", kv...)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, cookie, err := s.session(r.Context(), r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	p := s.graph()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"graph":   p.Hash,
		"nodes":   p.Stats.NodeCount,
		"edges":   p.Stats.EdgeCount,
	})
}

// handleFrame renders the session's current view. The state's target is
// highlighted and the camera is centered on it.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	hover := r.URL.Query().Get("hover")
	if hover != "" {
		if err := errors.ValidateNodeID(hover); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	sess, cookie, err := s.session(r.Context(), r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, hit, err := s.runner.Frame(r.Context(), s.graph(), pipeline.FrameRequest{
		State:   sess.State,
		Hovered: hover,
		Format:  format,
	}, s.opts.Pipeline)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(data)
}

// handleSearch returns the search widget's results for q.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := errors.ValidateQuery(q); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, cookie, err := s.session(r.Context(), r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if cookie != nil {
		http.SetCookie(w, cookie)
	}

	results := interaction.Restore(sess.State, nil).PostSearchResult(s.graph().Graph.Search(q))
	if results == nil {
		results = []interaction.Candidate{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, cookie, err := s.session(r.Context(), r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	writeJSON(w, http.StatusOK, replyFor(interaction.Restore(sess.State, nil)))
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	mode, err := colors.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"color": colors.RandomColor(mode, nil)})
}

// handleEvent returns the handler for one interaction event type. The body
// is {"id": ...} for select and hover or {"candidate": ...} for focus and
// change.
func (s *Server) handleEvent(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev event
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&ev); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
			return
		}
		ev.Type = kind

		sess, cookie, err := s.session(r.Context(), r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		rep, err := s.apply(r.Context(), sess.ID, ev)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if cookie != nil {
			http.SetCookie(w, cookie)
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("handler failed", "path", r.URL.Path, "error", err)
	}
	body := map[string]string{"error": errors.UserMessage(err)}
	if code := errors.GetCode(err); code != "" {
		body["code"] = string(code)
	}
	writeJSON(w, status, body)
}
