// Package session holds per-upload editor state.
//
// Each successful upload creates a [Project] keyed by an opaque UUID; the
// save endpoint resolves the project by that ID. Keeping state session-scoped
// (instead of one process-wide current project) lets multiple editors work
// against the same server and lets deployments with more than one instance
// share state through Redis or MongoDB.
//
// # Backends
//
//   - memory: in-process map, the default for single-instance deployments
//   - redis: Redis-backed storage with native TTL expiry
//   - mongo: MongoDB-backed storage for deployments that already run Mongo
//
// All backends implement [Store]. Get returns nil, nil for unknown IDs and
// ErrExpired for sessions past their TTL.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/edalab/pinwire/pkg/schematic"
	"github.com/edalab/pinwire/pkg/sniff"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// Project is the state of one uploaded artifact being edited.
//
// Components is the extracted (or fallback) component list; Connections is
// replaced wholesale on every save. ArtifactPath points at the stored copy
// of the upload inside the storage root — never at a user-controlled path.
type Project struct {
	ID           string                  `json:"id" bson:"_id"`
	Filename     string                  `json:"filename" bson:"filename"`
	ArtifactPath string                  `json:"artifact_path" bson:"artifact_path"`
	FileInfo     sniff.FileInfo          `json:"file_info" bson:"file_info"`
	Components   []schematic.Component   `json:"components" bson:"components"`
	Connections  []schematic.Connection  `json:"connections" bson:"connections"`
	CreatedAt    time.Time               `json:"created_at" bson:"created_at"`
	ExpiresAt    time.Time               `json:"expires_at" bson:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (p *Project) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a project session by ID.
	// Returns nil, nil if the session doesn't exist.
	// Returns nil, ErrExpired if the session exists but has expired.
	Get(ctx context.Context, id string) (*Project, error)

	// Set stores a project session.
	Set(ctx context.Context, p *Project) error

	// Delete removes a project session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op for backends with
	// native expiry).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// New creates a project session for a freshly uploaded artifact.
func New(filename, artifactPath string, info sniff.FileInfo, components []schematic.Component, ttl time.Duration) *Project {
	now := time.Now()
	return &Project{
		ID:           uuid.NewString(),
		Filename:     filename,
		ArtifactPath: artifactPath,
		FileInfo:     info,
		Components:   components,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}
}
