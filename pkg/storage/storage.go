// Package storage persists uploaded images behind a small port so handlers
// and services never touch the filesystem directly.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store saves and deletes uploaded files grouped by entity directory
// ("products", "services").
type Store interface {
	// Save writes the file under dir and returns the stored filename.
	Save(dir, filename string, content io.Reader) (string, error)

	// Delete removes a previously stored file. Deleting a missing file is
	// not an error.
	Delete(dir, filename string) error
}

// GenerateFilename builds a collision-resistant filename from the current
// timestamp, a random suffix and the original file's extension.
func GenerateFilename(original string) string {
	ext := filepath.Ext(original)
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
	return fmt.Sprintf("%d_%s%s", time.Now().Unix(), random, ext)
}

// LocalStore is a filesystem-backed Store rooted at a base directory.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a LocalStore rooted at baseDir.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// Save writes the file under baseDir/dir, creating directories as needed.
func (s *LocalStore) Save(dir, filename string, content io.Reader) (string, error) {
	targetDir := filepath.Join(s.baseDir, dir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory %s: %w", targetDir, err)
	}

	target := filepath.Join(targetDir, filepath.Base(filename))
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, content); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", target, err)
	}
	return filepath.Base(filename), nil
}

// Delete removes baseDir/dir/filename if it exists.
func (s *LocalStore) Delete(dir, filename string) error {
	target := filepath.Join(s.baseDir, dir, filepath.Base(filename))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", target, err)
	}
	return nil
}
