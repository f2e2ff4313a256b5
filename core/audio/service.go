// Package audio holds the upload orchestration and retrieval logic for
// audio records. The storage backend and repositories are injected; the
// package never touches global state.
package audio

import (
	"github.com/code-harsh006/new-backend/repository"
	"github.com/code-harsh006/new-backend/storage"
)

// trendingWindowDays is the recency window for trending queries.
const trendingWindowDays = 7

// Service coordinates the storage backend and the metadata stores.
type Service struct {
	records repository.AudioRepository
	users   repository.UserRepository
	backend storage.Backend

	maxFileSize int64
}

// NewService creates a Service.
func NewService(records repository.AudioRepository, users repository.UserRepository, backend storage.Backend, maxFileSize int64) *Service {
	return &Service{
		records:     records,
		users:       users,
		backend:     backend,
		maxFileSize: maxFileSize,
	}
}
