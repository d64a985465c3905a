package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/algrano/yt-grano/internal/config"
	"github.com/algrano/yt-grano/internal/repository/transcript"
	"github.com/algrano/yt-grano/internal/repository/video"
	youtubeSvc "github.com/algrano/yt-grano/internal/service/youtube"
	"github.com/algrano/yt-grano/internal/store"
)

// transcriptCmd represents the transcript command
var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Inspect and manage cached transcripts",
	Long:  `Inspect and manage the raw caption transcripts cached in PostgreSQL.`,
}

// transcriptShowCmd prints the cached caption rows of a video
var transcriptShowCmd = &cobra.Command{
	Use:   "show [VIDEO_ID|VIDEO_URL]",
	Short: "Show the cached transcript of a video",
	Long:  `Display the cached caption rows of a video as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, err := youtubeSvc.ResolveVideoID(args[0])
		if err != nil {
			return err
		}

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

		rows, err := transcript.NewRepository(dbPool).Load(ctx, videoID)
		if err != nil {
			return fmt.Errorf("no cached transcript for %s", videoID)
		}

		if v, err := video.NewRepository(dbPool).GetByID(ctx, videoID); err == nil {
			fmt.Printf("Video: %s\n", v.Title)
		}

		result, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}

		fmt.Printf("%d caption row(s) for %s:\n%s\n", len(rows), videoID, string(result))
		return nil
	},
}

// transcriptClearCmd removes a video's cached transcript
var transcriptClearCmd = &cobra.Command{
	Use:   "clear [VIDEO_ID|VIDEO_URL]",
	Short: "Clear the cached transcript of a video",
	Long: `Remove the cached transcript of a video so the next indexing run
downloads captions again. With --index the video is also removed from
the local vector index.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, err := youtubeSvc.ResolveVideoID(args[0])
		if err != nil {
			return err
		}

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

		if err := transcript.NewRepository(dbPool).Delete(ctx, videoID); err != nil {
			return fmt.Errorf("failed to clear transcript: %w", err)
		}
		fmt.Printf("Cleared cached transcript for %s\n", videoID)

		clearIndex, _ := cmd.Flags().GetBool("index")
		if !clearIndex {
			return nil
		}

		vectorDBPath, err := cfg.VectorDB()
		if err != nil {
			return err
		}
		vectorStore, err := store.Open(vectorDBPath, cfg.Ollama.EmbedDim)
		if err != nil {
			return err
		}
		defer vectorStore.Close()

		if err := vectorStore.DeleteVideo(videoID); err != nil {
			return fmt.Errorf("failed to remove video from index: %w", err)
		}
		if err := video.NewRepository(dbPool).Delete(ctx, videoID); err != nil {
			// the metadata record may simply not exist
			fmt.Printf("Note: no video record removed (%v)\n", err)
		}
		fmt.Printf("Removed %s from the vector index\n", videoID)
		return nil
	},
}

func init() {
	transcriptClearCmd.Flags().Bool("index", false, "Also remove the video from the vector index")

	transcriptCmd.AddCommand(transcriptShowCmd)
	transcriptCmd.AddCommand(transcriptClearCmd)
	rootCmd.AddCommand(transcriptCmd)
}
