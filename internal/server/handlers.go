package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ithinkitschris/expense-assistant/constants"
	"github.com/ithinkitschris/expense-assistant/internal/common"
	"github.com/ithinkitschris/expense-assistant/internal/grocery"
	"github.com/ithinkitschris/expense-assistant/internal/parse"
	"github.com/ithinkitschris/expense-assistant/internal/recipes"
	"github.com/ithinkitschris/expense-assistant/internal/repository"
	"github.com/ithinkitschris/expense-assistant/internal/summary"
)

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Expenses    []repository.Expense    `json:"expenses"`
	PantryAdded []repository.PantryItem `json:"pantry_added,omitempty"`
}

// ParseExpense turns a natural language message into stored expenses. Grocery
// expenses additionally have their description split into pantry items.
func (s *Server) ParseExpense(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, s.logger, err)
		return
	}
	if req.Text == "" {
		writeError(w, s.logger, fmt.Errorf("%w: text is required", common.ErrInvalidInput))
		return
	}

	result, err := s.parser.Parse(r.Context(), req.Text)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	var resp parseResponse
	for _, parsed := range result.Expenses {
		stored, err := s.expenses.InsertParsed(r.Context(), parsed)
		if err != nil {
			writeError(w, s.logger, err)
			return
		}
		resp.Expenses = append(resp.Expenses, stored)

		if parsed.Category != string(constants.Groceries) {
			continue
		}
		for _, item := range s.grocer.ParseItems(r.Context(), parsed.Description) {
			added, err := s.pantry.Add(r.Context(), item.Item, 1, "pieces", item.Category)
			if err != nil {
				s.logger.Warn("server.parse.pantry_add_failed", "item", item.Item, "error", err)
				continue
			}
			resp.PantryAdded = append(resp.PantryAdded, added)
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

type expenseRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, s.logger, err)
		return
	}
	category, ok := constants.Canonicalize(req.Category)
	if !ok {
		writeError(w, s.logger, fmt.Errorf("%w: unknown category %q", common.ErrInvalidInput, req.Category))
		return
	}
	ts := time.Now()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			writeError(w, s.logger, fmt.Errorf("%w: timestamp must be RFC 3339", common.ErrInvalidInput))
			return
		}
		ts = parsed
	}
	stored, err := s.expenses.Insert(r.Context(), req.Amount, string(category), req.Description, ts)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	expenses, err := s.expenses.List(r.Context(), filter)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if expenses == nil {
		expenses = []repository.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	expense, err := s.expenses.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	existing, err := s.expenses.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, s.logger, err)
		return
	}
	if req.Amount > 0 {
		existing.Amount = req.Amount
	}
	if req.Category != "" {
		category, ok := constants.Canonicalize(req.Category)
		if !ok {
			writeError(w, s.logger, fmt.Errorf("%w: unknown category %q", common.ErrInvalidInput, req.Category))
			return
		}
		existing.Category = string(category)
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			writeError(w, s.logger, fmt.Errorf("%w: timestamp must be RFC 3339", common.ErrInvalidInput))
			return
		}
		existing.Timestamp = ts
	}
	if err := s.expenses.Update(r.Context(), existing); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if err := s.expenses.Delete(r.Context(), id); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"categories": constants.AllCategories()})
}

func (s *Server) GroceryTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"grocery_types": constants.GroceryTypes()})
}

type pantryAddRequest struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	GroceryType string  `json:"grocery_type,omitempty"`
}

func (s *Server) AddPantryItem(w http.ResponseWriter, r *http.Request) {
	var req pantryAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, s.logger, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	groceryType := req.GroceryType
	if groceryType == "" {
		groceryType = string(s.grocer.Categorize(r.Context(), req.Name))
	} else if !constants.IsGroceryType(groceryType) {
		writeError(w, s.logger, fmt.Errorf("%w: unknown grocery type %q", common.ErrInvalidInput, groceryType))
		return
	}
	item, err := s.pantry.Add(r.Context(), req.Name, req.Quantity, req.Unit, groceryType)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) ListPantry(w http.ResponseWriter, r *http.Request) {
	includeConsumed := r.URL.Query().Get("include_consumed") == "true"
	items, err := s.pantry.List(r.Context(), includeConsumed, func(name string) string {
		return string(grocery.RuleBased(name))
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if items == nil {
		items = []repository.PantryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) ConsumePantryItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	// Empty body marks the item consumed; {"consumed": false} restocks it.
	consumed := true
	if r.ContentLength > 0 {
		var body struct {
			Consumed *bool `json:"consumed"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, s.logger, err)
			return
		}
		if body.Consumed != nil {
			consumed = *body.Consumed
		}
	}
	if err := s.pantry.SetConsumed(r.Context(), id, consumed); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "is_consumed": consumed})
}

func (s *Server) RecategorizePantry(w http.ResponseWriter, r *http.Request) {
	updated, err := s.pantry.RecategorizeAll(r.Context(), func(name string) string {
		return string(s.grocer.Categorize(r.Context(), name))
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (s *Server) DeletePantryItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if err := s.pantry.Delete(r.Context(), id); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	reportType := summary.ReportType(r.URL.Query().Get("type"))
	report, err := s.summary.Generate(r.Context(), reportType, filter)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) RecommendRecipe(w http.ResponseWriter, r *http.Request) {
	var opts recipes.Options
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &opts); err != nil {
			writeError(w, s.logger, err)
			return
		}
	}
	rec, err := s.recipes.Recommend(r.Context(), opts)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	data, err := s.exporter.ExportExpensesXLSX(r.Context(), filter)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func filterFromQuery(r *http.Request) (repository.ExpenseFilter, error) {
	q := r.URL.Query()
	filter := repository.ExpenseFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Month:    q.Get("month"),
	}
	if days := q.Get("days"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return repository.ExpenseFilter{}, fmt.Errorf("%w: days must be a non-negative integer", common.ErrInvalidInput)
		}
		filter.Days = n
	}
	return filter, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be an integer", common.ErrInvalidInput)
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, parse.ErrNoAmount):
		// Nothing parseable in the text is a caller problem, not ours.
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logger.Warn("server.error", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
