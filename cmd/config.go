package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/algrano/yt-grano/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long:  `Manage configuration settings for ytgrano.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [DATABASE_URL]",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file with database and model settings.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var databaseURL string
		if len(args) > 0 {
			databaseURL = args[0]
		}

		if err := config.InitConfig(databaseURL); err != nil {
			return err
		}

		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Created configuration file: %s\n", configPath)
		fmt.Println("Please edit the database_url in this file to match your PostgreSQL database.")

		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration file path and settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration file: %s\n\n", configPath)

		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		vectorDB, err := cfg.VectorDB()
		if err != nil {
			return err
		}

		fmt.Printf("DATABASE_URL: %s\n", cfg.DatabaseURL)
		fmt.Printf("Vector index: %s\n", vectorDB)
		fmt.Printf("Ollama: %s (embed: %s, chat: %s)\n",
			cfg.Ollama.BaseURL, cfg.Ollama.EmbedModel, cfg.Ollama.ChatModel)
		fmt.Printf("Ingest: window %.0fs, overlap %.0fs, languages [%s]\n",
			cfg.Ingest.WindowSec, cfg.Ingest.OverlapSec, strings.Join(cfg.Ingest.PreferredLangs, " "))
		fmt.Printf("Retrieval: top_k %d, ctx_max %d, cite_k %d, min_score %.2f\n",
			cfg.Retrieval.TopK, cfg.Retrieval.CtxMax, cfg.Retrieval.CiteK, cfg.Retrieval.MinScore)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
