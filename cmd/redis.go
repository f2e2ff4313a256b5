package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/code-harsh006/new-backend/config"
	"github.com/code-harsh006/new-backend/db"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Verify Redis connectivity",
	Long:  `Connect to Redis and run a basic set/get/del round trip. The rate limiter depends on this connection.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("Redis: %s:%s, DB: %d\n", cfg.RedisHost, cfg.RedisPort, cfg.RedisDB)

		if err := db.ConnectRedis(cfg); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		fmt.Println("Redis connection established.")

		if err := db.TestRedis(); err != nil {
			log.Fatalf("Redis round trip failed: %v", err)
		}
		fmt.Println("Redis round trip succeeded.")

		if err := db.CloseRedis(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
