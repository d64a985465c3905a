package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytgrano",
	Short: "Ask questions about YouTube videos through their captions",
	Long: `ytgrano indexes a YouTube video's captions into a local vector index
and answers questions about it with short, timestamp-cited responses.

Typical session:
  ytgrano config init
  ytgrano index https://www.youtube.com/watch?v=VIDEO_ID
  ytgrano ask VIDEO_ID "¿Qué dice el video sobre ...?"`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
