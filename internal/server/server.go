package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ithinkitschris/expense-assistant/internal/export"
	"github.com/ithinkitschris/expense-assistant/internal/grocery"
	"github.com/ithinkitschris/expense-assistant/internal/parse"
	"github.com/ithinkitschris/expense-assistant/internal/recipes"
	"github.com/ithinkitschris/expense-assistant/internal/repository"
	"github.com/ithinkitschris/expense-assistant/internal/summary"
)

// Server wires the HTTP API over the parsing, storage, and summary services.
type Server struct {
	expenses *repository.ExpenseStore
	pantry   *repository.PantryStore
	parser   *parse.Parser
	grocer   *grocery.Parser
	summary  *summary.Service
	recipes  *recipes.Recommender
	exporter *export.Service
	logger   *slog.Logger
}

func New(
	expenses *repository.ExpenseStore,
	pantry *repository.PantryStore,
	parser *parse.Parser,
	grocer *grocery.Parser,
	summarySvc *summary.Service,
	recommender *recipes.Recommender,
	exporter *export.Service,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		expenses: expenses,
		pantry:   pantry,
		parser:   parser,
		grocer:   grocer,
		summary:  summarySvc,
		recipes:  recommender,
		exporter: exporter,
		logger:   logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.Healthz)

	mux.HandleFunc("POST /expenses/parse", s.ParseExpense)
	mux.HandleFunc("GET /expenses", s.ListExpenses)
	mux.HandleFunc("POST /expenses", s.CreateExpense)
	mux.HandleFunc("GET /expenses/{id}", s.GetExpense)
	mux.HandleFunc("PUT /expenses/{id}", s.UpdateExpense)
	mux.HandleFunc("DELETE /expenses/{id}", s.DeleteExpense)

	mux.HandleFunc("GET /categories", s.Categories)
	mux.HandleFunc("GET /grocery-types", s.GroceryTypes)

	mux.HandleFunc("GET /pantry", s.ListPantry)
	mux.HandleFunc("POST /pantry", s.AddPantryItem)
	mux.HandleFunc("POST /pantry/{id}/consume", s.ConsumePantryItem)
	mux.HandleFunc("POST /pantry/recategorize", s.RecategorizePantry)
	mux.HandleFunc("DELETE /pantry/{id}", s.DeletePantryItem)

	mux.HandleFunc("GET /summary", s.Summary)
	mux.HandleFunc("POST /recipes/recommend", s.RecommendRecipe)
	mux.HandleFunc("GET /export.xlsx", s.ExportXLSX)

	return s.withRequestLog(mux)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("server.listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("server.request",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}
