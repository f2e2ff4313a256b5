package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/code-harsh006/new-backend/storage"
)

func TestLocalBackendStoreResolveRemove(t *testing.T) {
	backend, err := storage.NewLocalBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalBackend returned error: %v", err)
	}

	content := "not really audio"
	obj, err := backend.Store(context.Background(), strings.NewReader(content), int64(len(content)), "audio/mpeg", "clip.mp3")
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if obj.Key == "" {
		t.Fatal("expected a non-empty storage key")
	}
	if obj.Size != int64(len(content)) {
		t.Fatalf("unexpected size: got %d want %d", obj.Size, len(content))
	}
	if !strings.HasSuffix(obj.Key, ".mp3") {
		t.Fatalf("expected key to keep the original extension, got %q", obj.Key)
	}

	if got := backend.Resolve(obj.Key); got != "/uploads/"+obj.Key {
		t.Fatalf("unexpected resolved URL: %q", got)
	}

	data, err := os.ReadFile(backend.Path(obj.Key))
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if string(data) != content {
		t.Fatalf("stored content mismatch: got %q", string(data))
	}

	if err := backend.Remove(context.Background(), obj.Key); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(backend.Path(obj.Key)); !os.IsNotExist(err) {
		t.Fatal("expected file to be gone after Remove")
	}
}

func TestLocalBackendRemoveIsIdempotent(t *testing.T) {
	backend, err := storage.NewLocalBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalBackend returned error: %v", err)
	}

	content := "x"
	obj, err := backend.Store(context.Background(), strings.NewReader(content), 1, "audio/wav", "beep.wav")
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}

	if err := backend.Remove(context.Background(), obj.Key); err != nil {
		t.Fatalf("first Remove returned error: %v", err)
	}
	if err := backend.Remove(context.Background(), obj.Key); err != nil {
		t.Fatalf("second Remove must not fail on a missing object: %v", err)
	}
	if err := backend.Remove(context.Background(), "never-existed.mp3"); err != nil {
		t.Fatalf("Remove of an unknown key must not fail: %v", err)
	}
}

func TestLocalBackendKeysDoNotCollide(t *testing.T) {
	backend, err := storage.NewLocalBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalBackend returned error: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		obj, err := backend.Store(context.Background(), strings.NewReader("a"), 1, "audio/mpeg", "same-name.mp3")
		if err != nil {
			t.Fatalf("Store returned error: %v", err)
		}
		if seen[obj.Key] {
			t.Fatalf("key collision for concurrent-style uploads: %q", obj.Key)
		}
		seen[obj.Key] = true
	}
}

func TestGenerateKeyFallbackExtension(t *testing.T) {
	key := storage.GenerateKey("no-extension")
	if ext := filepath.Ext(key); ext != ".dat" {
		t.Fatalf("expected .dat fallback extension, got %q", ext)
	}

	key = storage.GenerateKey("CLIP.MP3")
	if ext := filepath.Ext(key); ext != ".mp3" {
		t.Fatalf("expected lower-cased extension, got %q", ext)
	}
}
