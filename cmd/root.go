package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/code-harsh006/new-backend/server"
)

var rootCmd = &cobra.Command{
	Use:   "audioshare",
	Short: "Audioshare is an audio-sharing backend.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
