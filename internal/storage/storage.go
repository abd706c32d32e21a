// Package storage manages the on-disk directory holding uploaded artifacts
// and generated export files.
//
// All filenames pass through sanitization before touching the filesystem and
// all lookups are confined to the storage root, so a request can never read
// or write outside the managed directory.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edalab/pinwire/pkg/errors"
)

// Store is a managed storage root.
type Store struct {
	root string
}

// New creates the storage root if needed and returns a Store for it.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageFailed, err, "create storage root %s", root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageFailed, err, "resolve storage root %s", root)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute storage root path.
func (s *Store) Root() string {
	return s.root
}

// SaveUpload streams r into the storage root under a sanitized version of
// name and returns the absolute path of the stored file.
func (s *Store) SaveUpload(name string, r io.Reader) (string, error) {
	path := filepath.Join(s.root, Sanitize(name))

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorageFailed, err, "store upload %s", name)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", errors.Wrap(errors.ErrCodeStorageFailed, err, "store upload %s", name)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeStorageFailed, err, "store upload %s", name)
	}
	return path, nil
}

// Resolve maps a client-supplied filename to an absolute path inside the
// storage root. It rejects names that would escape the root and reports
// whether the file exists.
func (s *Store) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", errors.New(errors.ErrCodeInvalidPath, "invalid filename %q", name)
	}

	path := filepath.Join(s.root, name)
	if _, err := os.Stat(path); err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "file %s not found", name)
	}
	return path, nil
}

// Sanitize reduces a client-supplied filename to a safe single-segment name:
// path separators and special characters are dropped, whitespace becomes
// underscores, and an empty result falls back to "upload".
func Sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "upload"
	}
	return out
}
