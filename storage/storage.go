package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoredObject describes the result of a successful Store call.
type StoredObject struct {
	Key       string // Opaque backend locator, referenced by the metadata record
	PublicURL string // Addressable URL at store time; Resolve returns a fresh one later
	Size      int64
}

// Backend persists binary audio content. Implementations must be safe for
// concurrent use; key uniqueness is guaranteed by generation, not locking.
type Backend interface {
	// Store writes the content and returns its storage key and public location.
	Store(ctx context.Context, r io.Reader, size int64, contentType, originalFilename string) (*StoredObject, error)
	// Resolve returns the addressable URL for a key. Never cached by callers.
	Resolve(key string) string
	// Remove deletes the object for a key. A missing object is not an error;
	// callers doing cleanup log other failures instead of propagating them.
	Remove(ctx context.Context, key string) error
}

// GenerateKey builds a collision-resistant storage key from a timestamp,
// a random suffix and the original file extension. Concurrent uploads of
// the same filename never collide.
func GenerateKey(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext == "" {
		ext = ".dat"
	}
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), suffix, ext)
}
