package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/code-harsh006/new-backend/logger"
)

// LocalBackend stores objects as files under a root directory.
// Resolve returns the static-file route path served by the HTTP server.
type LocalBackend struct {
	rootDir string
}

// NewLocalBackend creates a LocalBackend, ensuring the root directory exists.
func NewLocalBackend(rootDir string) (*LocalBackend, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", rootDir, err)
	}
	return &LocalBackend{rootDir: rootDir}, nil
}

// Store writes the content to a uniquely named file under the root directory.
func (b *LocalBackend) Store(ctx context.Context, r io.Reader, size int64, contentType, originalFilename string) (*StoredObject, error) {
	key := GenerateKey(originalFilename)
	destPath := filepath.Join(b.rootDir, key)

	out, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", destPath, err)
	}

	written, err := io.Copy(out, r)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Partial file is useless; best-effort cleanup.
		if rmErr := os.Remove(destPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn("failed to clean up partial file",
				logger.String("path", destPath),
				logger.ErrorField(rmErr))
		}
		return nil, fmt.Errorf("failed to write file %s: %w", destPath, err)
	}

	return &StoredObject{
		Key:       key,
		PublicURL: b.Resolve(key),
		Size:      written,
	}, nil
}

// Resolve returns the static-file route path for a key.
func (b *LocalBackend) Resolve(key string) string {
	return "/uploads/" + key
}

// Remove deletes the file for a key. A missing file is tolerated silently.
func (b *LocalBackend) Remove(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(b.rootDir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file for key %s: %w", key, err)
	}
	return nil
}

// Path returns the on-disk path for a key. Used by the static file server.
func (b *LocalBackend) Path(key string) string {
	return filepath.Join(b.rootDir, key)
}

// RootDir returns the backend's root directory.
func (b *LocalBackend) RootDir() string {
	return b.rootDir
}
