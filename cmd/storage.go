package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/code-harsh006/new-backend/config"
	"github.com/code-harsh006/new-backend/storage"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Verify storage backend connectivity",
	Long:  `Connect to the configured storage backend and run a store/resolve/remove round trip with a small test object.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("Storage driver: %s\n", cfg.StorageDriver)

		backend, err := storage.New(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize storage backend: %v", err)
		}
		fmt.Println("Storage backend initialized.")

		ctx := context.Background()
		content := "storage connectivity check"
		obj, err := backend.Store(ctx, strings.NewReader(content), int64(len(content)), "audio/mpeg", "connectivity-check.mp3")
		if err != nil {
			log.Fatalf("Store failed: %v", err)
		}
		fmt.Printf("Stored test object: key=%s url=%s\n", obj.Key, obj.PublicURL)

		fmt.Printf("Resolved URL: %s\n", backend.Resolve(obj.Key))

		if err := backend.Remove(ctx, obj.Key); err != nil {
			log.Fatalf("Remove failed: %v", err)
		}
		// Second remove verifies idempotent deletion.
		if err := backend.Remove(ctx, obj.Key); err != nil {
			log.Fatalf("Repeated remove failed: %v", err)
		}
		fmt.Println("Test object removed. Storage backend is healthy.")
	},
}

func init() {
	rootCmd.AddCommand(storageCmd)
}
