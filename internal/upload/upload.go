// Package upload stores receipt images on disk under sanitized filenames.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Store writes uploaded files into a single directory, accepting only
// filenames whose extension is in the configured allowlist.
type Store struct {
	dir     string
	allowed map[string]bool
}

// NewStore creates the upload directory if needed and returns a Store.
func NewStore(dir string, allowed map[string]bool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir, allowed: allowed}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string { return s.dir }

// Allowed reports whether the filename carries an allowlisted extension.
func (s *Store) Allowed(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return s.allowed[strings.ToLower(filename[idx+1:])]
}

// SanitizeFilename reduces a client-supplied filename to a safe bare name:
// any path components are stripped, spaces become underscores, characters
// outside [A-Za-z0-9_.-] are dropped, and leading dots/dashes are trimmed
// so the result can never escape the upload directory.
func SanitizeFilename(name string) string {
	// Normalize both separator styles before taking the base name.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".-")
	return name
}

// Save writes the uploaded file under its sanitized filename and returns
// that filename. A same-named later upload silently overwrites the earlier
// file.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	filename := SanitizeFilename(fh.Filename)
	if filename == "" {
		return "", fmt.Errorf("empty filename after sanitizing")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create receipt file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write receipt file: %w", err)
	}
	return filename, nil
}
