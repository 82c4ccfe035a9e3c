package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ithinkitschris/expense-assistant/internal/common"
	"github.com/ithinkitschris/expense-assistant/internal/llm"
)

// Expense is one stored expense row.
type Expense struct {
	ID          int64     `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// ExpenseFilter narrows List results. Zero values mean "no filter".
type ExpenseFilter struct {
	Search   string // substring over description and category
	Category string
	Days     int    // rows from the last N days
	Month    string // "2025-06" for one month, or "6" for June of any year
}

// ExpenseStore persists expenses with one parameterized statement per
// operation.
type ExpenseStore struct {
	db     *DB
	logger *slog.Logger
}

func NewExpenseStore(db *DB, logger *slog.Logger) *ExpenseStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpenseStore{db: db, logger: logger}
}

// InsertParsed stores a pipeline record, substituting the current time when
// the parse found no date.
func (s *ExpenseStore) InsertParsed(ctx context.Context, exp llm.ParsedExpense) (Expense, error) {
	ts := exp.ParsedDate
	if ts.IsZero() {
		ts = time.Now()
	}
	return s.Insert(ctx, exp.Amount, exp.Category, exp.Description, ts)
}

func (s *ExpenseStore) Insert(ctx context.Context, amount float64, category, description string, ts time.Time) (Expense, error) {
	if amount <= 0 {
		return Expense{}, fmt.Errorf("%w: amount must be positive", common.ErrInvalidInput)
	}
	var id int64
	err := s.db.queryRow(ctx,
		`INSERT INTO expenses (amount, category, description, timestamp) VALUES (?, ?, ?, ?) RETURNING id`,
		amount, category, description, ts.Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		s.logger.Error("db.expenses.insert_failed", "error", err)
		return Expense{}, common.WrapError(err, "insert expense")
	}
	return Expense{ID: id, Amount: amount, Category: category, Description: description, Timestamp: ts}, nil
}

func (s *ExpenseStore) GetByID(ctx context.Context, id int64) (Expense, error) {
	row := s.db.queryRow(ctx,
		`SELECT id, amount, category, description, timestamp FROM expenses WHERE id = ?`, id)
	exp, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Expense{}, fmt.Errorf("expense %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return Expense{}, common.WrapError(err, "get expense")
	}
	return exp, nil
}

// List returns expenses newest first, applying any filters set.
func (s *ExpenseStore) List(ctx context.Context, filter ExpenseFilter) ([]Expense, error) {
	query := `SELECT id, amount, category, description, timestamp FROM expenses WHERE 1=1`
	var args []any

	if filter.Search != "" {
		query += ` AND (description LIKE ? OR category LIKE ?)`
		like := "%" + filter.Search + "%"
		args = append(args, like, like)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Days > 0 {
		cutoff := time.Now().AddDate(0, 0, -filter.Days).Format(time.RFC3339)
		query += ` AND timestamp >= ?`
		args = append(args, cutoff)
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := s.db.query(ctx, query, args...)
	if err != nil {
		return nil, common.WrapError(err, "list expenses")
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		exp, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, common.WrapError(err, "scan expense")
		}
		// Month filtering happens app-side: timestamps are stored as text
		// and the bare-month form spans any year.
		if filter.Month != "" && !matchesMonth(exp.Timestamp, filter.Month) {
			continue
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

func (s *ExpenseStore) Update(ctx context.Context, exp Expense) error {
	if exp.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", common.ErrInvalidInput)
	}
	res, err := s.db.exec(ctx,
		`UPDATE expenses SET amount = ?, category = ?, description = ?, timestamp = ? WHERE id = ?`,
		exp.Amount, exp.Category, exp.Description, exp.Timestamp.Format(time.RFC3339), exp.ID)
	if err != nil {
		return common.WrapError(err, "update expense")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %d: %w", exp.ID, common.ErrNotFound)
	}
	return nil
}

func (s *ExpenseStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.exec(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return common.WrapError(err, "delete expense")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// matchesMonth accepts "2006-01" for a specific month or a bare month number
// for that month in any year. A malformed filter matches nothing.
func matchesMonth(ts time.Time, month string) bool {
	if ts.Format("2006-01") == month {
		return true
	}
	if n, err := strconv.Atoi(month); err == nil && n >= 1 && n <= 12 {
		return int(ts.Month()) == n
	}
	return false
}

func scanExpense(scan func(dest ...any) error) (Expense, error) {
	var exp Expense
	var ts string
	if err := scan(&exp.ID, &exp.Amount, &exp.Category, &exp.Description, &ts); err != nil {
		return Expense{}, err
	}
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		// Legacy rows may carry bare ISO timestamps without a zone.
		parsed, err = time.ParseInLocation("2006-01-02T15:04:05", ts, time.Local)
		if err != nil {
			return Expense{}, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
	}
	exp.Timestamp = parsed
	return exp, nil
}
