package storage

import (
	"fmt"

	"github.com/code-harsh006/new-backend/config"
)

// New builds the storage backend selected by configuration. The choice is
// made once at process start; the returned Backend is injected wherever
// files are stored or resolved.
func New(cfg *config.Config) (Backend, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverLocal:
		return NewLocalBackend(cfg.UploadDir)
	case config.StorageDriverMinio:
		return NewMinioBackend(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.StorageDriver)
	}
}
