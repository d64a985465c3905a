package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/algrano/yt-grano/internal/config"
	"github.com/algrano/yt-grano/internal/service/answer"
	"github.com/algrano/yt-grano/internal/service/embedding"
	youtubeSvc "github.com/algrano/yt-grano/internal/service/youtube"
	"github.com/algrano/yt-grano/internal/store"
)

// askCmd answers a question about an indexed video
var askCmd = &cobra.Command{
	Use:   "ask [VIDEO_ID|VIDEO_URL] [QUESTION]",
	Short: "Ask a question about an indexed video",
	Long: `Answer a question using the captions indexed for a video. The answer is
short and grounded, with citations linking to the exact minute of the video.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, err := youtubeSvc.ResolveVideoID(args[0])
		if err != nil {
			return err
		}
		question := args[1]

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
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

		indexed, err := vectorStore.HasVideo(videoID)
		if err != nil {
			return err
		}
		if !indexed {
			return fmt.Errorf("video %s is not indexed yet. Run 'ytgrano index <URL>' first", videoID)
		}

		answerService := answer.NewService(
			embedding.NewOllamaEmbedder(cfg.Ollama.BaseURL, cfg.Ollama.EmbedModel),
			vectorStore,
			answer.NewOllamaGenerator(cfg.Ollama.BaseURL, cfg.Ollama.ChatModel),
			answer.AskOptions{
				TopK:      cfg.Retrieval.TopK,
				CtxMax:    cfg.Retrieval.CtxMax,
				CiteK:     cfg.Retrieval.CiteK,
				MinScore:  cfg.Retrieval.MinScore,
				MinGapSec: cfg.Retrieval.MinGapSec,
			},
		)

		result, err := answerService.Ask(ctx, videoID, question)
		if err != nil {
			return fmt.Errorf("failed to answer question: %w", err)
		}

		fmt.Println(result.Text)
		if len(result.Citations) > 0 {
			fmt.Println("\nCitations:")
			for _, c := range result.Citations {
				fmt.Printf("  %s  %s\n", c.Minute, c.URL)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
