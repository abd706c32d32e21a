// Package server exposes the annotation workflow over HTTP.
//
// Three endpoints drive the browser editor: upload a project file, save a
// connection list, download a generated artifact. All project state lives in
// a session store keyed by opaque IDs, so multiple users can annotate
// different projects against the same server.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/edalab/pinwire/internal/config"
	"github.com/edalab/pinwire/internal/session"
	"github.com/edalab/pinwire/internal/storage"
	"github.com/edalab/pinwire/pkg/errors"
)

// Server wires the extraction pipeline and export emitter to HTTP handlers.
type Server struct {
	cfg      config.Config
	storage  *storage.Store
	sessions session.Store
	logger   *charmlog.Logger
}

// New creates a Server. The logger must not be nil.
func New(cfg config.Config, st *storage.Store, sessions session.Store, logger *charmlog.Logger) *Server {
	return &Server{cfg: cfg, storage: st, sessions: sessions, logger: logger}
}

// Router builds the chi router with middleware and all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Post("/connections", s.handleSaveConnections)
		r.Get("/download/{filename}", s.handleDownload)
	})

	return r
}

// logRequests logs one line per request with method, path, status and elapsed
// time, tagged with the chi request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes onto HTTP statuses and emits the
// browser-facing {"error": ...} body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidUpload,
		errors.ErrCodeInvalidPath, errors.ErrCodeSessionNotFound:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": errors.UserMessage(err)})
}
