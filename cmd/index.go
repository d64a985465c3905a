package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/algrano/yt-grano/internal/config"
	"github.com/algrano/yt-grano/internal/repository/transcript"
	"github.com/algrano/yt-grano/internal/repository/video"
	"github.com/algrano/yt-grano/internal/service/captions"
	"github.com/algrano/yt-grano/internal/service/embedding"
	"github.com/algrano/yt-grano/internal/service/ingest"
	youtubeSvc "github.com/algrano/yt-grano/internal/service/youtube"
	"github.com/algrano/yt-grano/internal/store"
)

// indexCmd indexes one video's captions into the vector index
var indexCmd = &cobra.Command{
	Use:   "index [VIDEO_URL]",
	Short: "Index a YouTube video's captions",
	Long: `Download the captions of a YouTube video, segment them into overlapping
time windows, embed each window and store the vectors locally. The raw
transcript is cached in PostgreSQL so re-indexing skips the download.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoURL := args[0]

		// captions plus embedding of a long video can take a while
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()

		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		dbPool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbPool.Close()

		vectorDBPath, err := cfg.VectorDB()
		if err != nil {
			return err
		}
		vectorStore, err := store.Open(vectorDBPath, cfg.Ollama.EmbedDim)
		if err != nil {
			return err
		}
		defer vectorStore.Close()

		transcriptService := ingest.NewTranscriptService(
			transcript.NewRepository(dbPool),
			captions.NewAPISource(),
			captions.NewExtractor(
				captions.Chain(cfg.Ingest.CookieFile, cfg.Ingest.CookieBrowsers),
				cfg.Ingest.IncludeAuto,
			),
			ingest.AcquireOptions{
				PreferredLangs: cfg.Ingest.PreferredLangs,
				FallbackLangs:  cfg.Ingest.FallbackLangs,
				MaxRetries:     cfg.Ingest.MaxRetries,
				BackoffBase:    cfg.Ingest.BackoffBase,
			},
		)

		indexer := ingest.NewIndexer(
			youtubeSvc.NewService(),
			transcriptService,
			video.NewRepository(dbPool),
			embedding.NewOllamaEmbedder(cfg.Ollama.BaseURL, cfg.Ollama.EmbedModel),
			vectorStore,
			ingest.IndexOptions{
				WindowSec:  cfg.Ingest.WindowSec,
				OverlapSec: cfg.Ingest.OverlapSec,
			},
		)

		fmt.Println("Downloading and segmenting captions...")
		result, err := indexer.Index(ctx, videoURL)
		if err != nil {
			return fmt.Errorf("failed to index video: %w", err)
		}

		fmt.Printf("Indexed %q (%s): %d chunks\n", result.Video.Title, result.Video.ID, result.Chunks)
		fmt.Printf("Ask away: ytgrano ask %s \"your question\"\n", result.Video.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
