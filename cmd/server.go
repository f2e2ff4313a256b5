package cmd

import (
	"github.com/spf13/cobra"

	"github.com/code-harsh006/new-backend/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the audio-sharing HTTP server, serving the API and uploaded files.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
