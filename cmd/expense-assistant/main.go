package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ithinkitschris/expense-assistant/internal/common"
	"github.com/ithinkitschris/expense-assistant/internal/export"
	"github.com/ithinkitschris/expense-assistant/internal/grocery"
	"github.com/ithinkitschris/expense-assistant/internal/llm"
	"github.com/ithinkitschris/expense-assistant/internal/parse"
	"github.com/ithinkitschris/expense-assistant/internal/recipes"
	"github.com/ithinkitschris/expense-assistant/internal/repository"
	"github.com/ithinkitschris/expense-assistant/internal/summary"
)

// app holds the wired services for the lifetime of one CLI invocation.
type app struct {
	cfg      *common.Config
	db       *repository.DB
	expenses *repository.ExpenseStore
	pantry   *repository.PantryStore
	parser   *parse.Parser
	grocer   *grocery.Parser
	summary  *summary.Service
	recipes  *recipes.Recommender
	exporter *export.Service
	logger   *slog.Logger
}

var (
	services *app
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "expense-assistant",
	Short:         "Track expenses and pantry items from natural language",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		cfg, err := common.LoadConfig()
		if err != nil {
			return err
		}
		db, err := repository.Open(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}

		expenses := repository.NewExpenseStore(db, logger)
		pantry := repository.NewPantryStore(db, logger)
		parseClient := llm.NewClient(llm.Config{
			Endpoint: cfg.LLM.Endpoint,
			Model:    cfg.LLM.Model,
			Timeout:  cfg.LLM.ParseTimeout,
			Retry:    llm.ParseRetryPolicy(),
		}, logger)
		recipeClient := llm.NewClient(llm.Config{
			Endpoint: cfg.LLM.Endpoint,
			Model:    cfg.LLM.Model,
			Timeout:  cfg.LLM.RecipeTimeout,
			Retry:    llm.RecipeRetryPolicy(),
		}, logger)

		services = &app{
			cfg:      cfg,
			db:       db,
			expenses: expenses,
			pantry:   pantry,
			parser:   parse.NewParser(parseClient, logger),
			grocer:   grocery.NewParser(parseClient, logger),
			summary:  summary.NewService(expenses, parseClient, logger),
			recipes:  recipes.NewRecommender(pantry, recipeClient, logger),
			exporter: export.NewService(expenses, logger),
			logger:   logger,
		}
		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if services != nil && services.db != nil {
			return services.db.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(pantryCmd)
	rootCmd.AddCommand(recipeCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
