package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ithinkitschris/expense-assistant/internal/common"
	"github.com/ithinkitschris/expense-assistant/internal/export"
	"github.com/ithinkitschris/expense-assistant/internal/grocery"
	"github.com/ithinkitschris/expense-assistant/internal/llm"
	"github.com/ithinkitschris/expense-assistant/internal/parse"
	"github.com/ithinkitschris/expense-assistant/internal/recipes"
	"github.com/ithinkitschris/expense-assistant/internal/repository"
	"github.com/ithinkitschris/expense-assistant/internal/server"
	"github.com/ithinkitschris/expense-assistant/internal/summary"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("expensed.config.failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("expensed.db.failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

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

	parser := parse.NewParser(parseClient, logger)
	grocer := grocery.NewParser(parseClient, logger)
	summarySvc := summary.NewService(expenses, parseClient, logger)
	recommender := recipes.NewRecommender(pantry, recipeClient, logger)
	exporter := export.NewService(expenses, logger)

	srv := server.New(expenses, pantry, parser, grocer, summarySvc, recommender, exporter, logger)
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("expensed.serve.failed", "error", err)
		os.Exit(1)
	}
	logger.Info("expensed.stopped")
}
