package main

import (
	"context"
	"fmt"
	"os"

	"ai-note-assistant/internal/bootstrap"
	"ai-note-assistant/internal/config"
	"ai-note-assistant/internal/pkg/logger"
	"ai-note-assistant/pkg/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	useDB     bool
	provider  string
	model     string
	logPath   string
	verboseDB bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Talk to the note assistant from the terminal",
	Long: `Runs the conversational note assistant locally. Every line typed is one
turn of a single conversation; notes live in memory unless --db is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := buildContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		return runChat(cmd.Context(), container.AssistantService, conversationID, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useDB, "db", false, "Store notes in Postgres (DB_CONNECTION_STRING)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "LLM provider: ollama or gemini (default from LLM_PROVIDER)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "LLM model name (default from LLM_MODEL)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "logs/console.log", "Where the console writes its logs")
	rootCmd.PersistentFlags().BoolVar(&verboseDB, "verbose-sql", false, "Log every SQL statement")
	rootCmd.Flags().StringVarP(&conversationID, "conversation", "c", "console", "Conversation id")
}

func buildContainer(ctx context.Context) (*bootstrap.Container, error) {
	cfg := config.Load()
	if provider != "" {
		cfg.Ai.LLMProvider = provider
	}
	if model != "" {
		cfg.Ai.LLMModel = model
	}
	// The console is a single local conversation
	cfg.Conversation.Store = "memory"
	cfg.Search.LexiconWatch = false

	var db *gorm.DB
	if useDB {
		var err error
		db, err = database.NewGormDBFromDSN(cfg.Database.Connection, verboseDB)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
	}

	return bootstrap.NewContainer(ctx, db, cfg, bootstrap.Options{
		Logger: logger.NewIsolatedLogger(logPath),
	})
}
