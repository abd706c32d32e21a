package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edalab/pinwire/internal/session"
	"github.com/edalab/pinwire/pkg/errors"
	"github.com/edalab/pinwire/pkg/export"
	"github.com/edalab/pinwire/pkg/extract"
	"github.com/edalab/pinwire/pkg/schematic"
	"github.com/edalab/pinwire/pkg/sniff"
)

type uploadResponse struct {
	Status     string                `json:"status"`
	Message    string                `json:"message"`
	SessionID  string                `json:"session_id"`
	Filename   string                `json:"filename"`
	Components []schematic.Component `json:"components"`
	FileInfo   sniff.FileInfo        `json:"file_info"`
}

// handleUpload accepts a multipart project file, runs the extraction
// pipeline on it, and opens a new session holding the result.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidUpload, "no file uploaded"))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidUpload, "no file selected"))
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdsprj") {
		s.writeError(w, errors.New(errors.ErrCodeInvalidUpload, "please upload a .pdsprj file"))
		return
	}

	path, err := s.storage.SaveUpload(header.Filename, file)
	if err != nil {
		s.writeError(w, err)
		return
	}

	info := sniff.Classify(path)
	components := extract.Components(path, info, extract.Options{Logger: s.logger.Debugf})
	if len(components) == 0 {
		// Extraction found nothing usable; hand the user a demo board so
		// the editor stays functional.
		s.logger.Warn("no components extracted, using demo board", "file", header.Filename)
		components = schematic.DemoBoard()
	}

	proj := session.New(header.Filename, path, info, components, s.cfg.SessionTTL())
	if err := s.sessions.Set(r.Context(), proj); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorageFailed, err, "error processing file"))
		return
	}

	s.logger.Info("project loaded",
		"session", proj.ID, "file", proj.Filename,
		"format", info.Format, "components", len(components))

	writeJSON(w, http.StatusOK, uploadResponse{
		Status:     "success",
		Message:    fmt.Sprintf("Successfully parsed %d components from %s", len(components), proj.Filename),
		SessionID:  proj.ID,
		Filename:   proj.Filename,
		Components: components,
		FileInfo:   info,
	})
}

type saveRequest struct {
	SessionID   string                 `json:"session_id"`
	Connections []schematic.Connection `json:"connections"`
}

type saveResponse struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	UpdatedFile      string `json:"updated_file"`
	ConnectionsCount int    `json:"connections_count"`
}

// handleSaveConnections replaces the session's connection list and emits the
// export artifacts into the storage root.
func (s *Server) handleSaveConnections(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	id := req.SessionID
	if id == "" {
		id = r.Header.Get("X-Session-ID")
	}
	if id == "" {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "no Proteus file loaded"))
		return
	}

	proj, err := s.sessions.Get(r.Context(), id)
	if err != nil && err != session.ErrExpired {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorageFailed, err, "error saving connections"))
		return
	}
	if proj == nil || err == session.ErrExpired {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "no Proteus file loaded"))
		return
	}

	emitter := &export.Emitter{Dir: s.storage.Root(), Logger: s.logger.Warnf}
	res, err := emitter.Save(r.Context(), proj.ArtifactPath, proj.Components, req.Connections)
	if err != nil {
		s.writeError(w, err)
		return
	}

	proj.Connections = req.Connections
	if err := s.sessions.Set(r.Context(), proj); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorageFailed, err, "error saving connections"))
		return
	}

	s.logger.Info("connections saved",
		"session", proj.ID, "count", len(req.Connections), "file", res.CopyFile)

	writeJSON(w, http.StatusOK, saveResponse{
		Status:           "success",
		Message:          "Proteus-compatible file created successfully!",
		UpdatedFile:      res.CopyFile,
		ConnectionsCount: len(req.Connections),
	})
}

// handleDownload streams a generated artifact as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	path, err := s.storage.Resolve(name)
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			s.writeError(w, errors.New(errors.ErrCodeFileNotFound, "file not found"))
			return
		}
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}
