package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/algrano/yt-grano/internal/config"
	"github.com/algrano/yt-grano/internal/repository/video"
)

// videoCmd represents the video command
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Indexed video operations",
	Long:  `Operations for the videos whose captions have been indexed.`,
}

// videoListCmd lists indexed videos
var videoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed videos",
	Long:  `List the videos saved in the database, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		dbPool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbPool.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		videos, err := video.NewRepository(dbPool).List(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list videos: %w", err)
		}

		if len(videos) == 0 {
			fmt.Println("No videos indexed yet.")
			return nil
		}

		result, err := json.MarshalIndent(videos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}

		fmt.Printf("Found %d video(s):\n%s\n", len(videos), string(result))
		return nil
	},
}

func init() {
	videoListCmd.Flags().Int("limit", 10, "Maximum number of videos to show")
	videoListCmd.Flags().Int("offset", 0, "Number of videos to skip")

	videoCmd.AddCommand(videoListCmd)
	rootCmd.AddCommand(videoCmd)
}
