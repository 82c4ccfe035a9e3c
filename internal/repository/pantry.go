package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ithinkitschris/expense-assistant/constants"
	"github.com/ithinkitschris/expense-assistant/internal/common"
)

// PantryItem is one stored pantry row.
type PantryItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	CreatedAt   time.Time `json:"created_at"`
	IsConsumed  bool      `json:"is_consumed"`
	GroceryType string    `json:"grocery_type"`
}

// PantryStore persists pantry items.
type PantryStore struct {
	db     *DB
	logger *slog.Logger
}

func NewPantryStore(db *DB, logger *slog.Logger) *PantryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PantryStore{db: db, logger: logger}
}

// Add inserts a pantry item, or merges with an existing row of the same name
// (case-insensitive): quantity accumulates, the consumed flag resets, and the
// grocery type is refreshed.
func (s *PantryStore) Add(ctx context.Context, name string, quantity float64, unit, groceryType string) (PantryItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PantryItem{}, fmt.Errorf("%w: item name is required", common.ErrInvalidInput)
	}
	if quantity <= 0 {
		return PantryItem{}, fmt.Errorf("%w: quantity must be positive", common.ErrInvalidInput)
	}
	if unit == "" {
		unit = "pieces"
	}

	var existing PantryItem
	var createdAt string
	err := s.db.queryRow(ctx,
		`SELECT id, quantity, created_at FROM pantry_items WHERE LOWER(name) = LOWER(?)`, name,
	).Scan(&existing.ID, &existing.Quantity, &createdAt)
	switch {
	case err == nil:
		newQuantity := existing.Quantity + quantity
		if _, err := s.db.exec(ctx,
			`UPDATE pantry_items SET quantity = ?, unit = ?, is_consumed = ?, grocery_type = ? WHERE id = ?`,
			newQuantity, unit, false, groceryType, existing.ID); err != nil {
			return PantryItem{}, common.WrapError(err, "merge pantry item")
		}
		s.logger.Info("db.pantry.merged", "name", name, "quantity", newQuantity)
		return s.GetByID(ctx, existing.ID)
	case errors.Is(err, sql.ErrNoRows):
		now := time.Now()
		var id int64
		err := s.db.queryRow(ctx,
			`INSERT INTO pantry_items (name, quantity, unit, created_at, is_consumed, grocery_type)
			 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
			name, quantity, unit, now.Format(time.RFC3339), false, groceryType,
		).Scan(&id)
		if err != nil {
			return PantryItem{}, common.WrapError(err, "insert pantry item")
		}
		return PantryItem{ID: id, Name: name, Quantity: quantity, Unit: unit, CreatedAt: now, GroceryType: groceryType}, nil
	default:
		return PantryItem{}, common.WrapError(err, "look up pantry item")
	}
}

func (s *PantryStore) GetByID(ctx context.Context, id int64) (PantryItem, error) {
	row := s.db.queryRow(ctx,
		`SELECT id, name, quantity, unit, created_at, is_consumed, grocery_type FROM pantry_items WHERE id = ?`, id)
	item, err := scanPantryItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return PantryItem{}, fmt.Errorf("pantry item %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return PantryItem{}, common.WrapError(err, "get pantry item")
	}
	return item, nil
}

// List returns pantry items sorted by grocery type shelf order, then name.
// Rows stored before categorization existed come back with their type filled
// in by the categorize func.
func (s *PantryStore) List(ctx context.Context, includeConsumed bool, categorize func(string) string) ([]PantryItem, error) {
	query := `SELECT id, name, quantity, unit, created_at, is_consumed, grocery_type FROM pantry_items`
	if !includeConsumed {
		query += ` WHERE is_consumed = FALSE`
	}

	rows, err := s.db.query(ctx, query)
	if err != nil {
		return nil, common.WrapError(err, "list pantry items")
	}
	defer rows.Close()

	var out []PantryItem
	for rows.Next() {
		item, err := scanPantryItem(rows.Scan)
		if err != nil {
			return nil, common.WrapError(err, "scan pantry item")
		}
		if item.GroceryType == "" && categorize != nil {
			item.GroceryType = categorize(item.Name)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		oi := constants.GroceryTypeSortOrder(out[i].GroceryType)
		oj := constants.GroceryTypeSortOrder(out[j].GroceryType)
		if oi != oj {
			return oi < oj
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *PantryStore) SetConsumed(ctx context.Context, id int64, consumed bool) error {
	res, err := s.db.exec(ctx, `UPDATE pantry_items SET is_consumed = ? WHERE id = ?`, consumed, id)
	if err != nil {
		return common.WrapError(err, "set consumed")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("pantry item %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func (s *PantryStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.exec(ctx, `DELETE FROM pantry_items WHERE id = ?`, id)
	if err != nil {
		return common.WrapError(err, "delete pantry item")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("pantry item %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// RecategorizeAll re-runs categorization over every pantry row and updates
// the ones whose type changed. Returns the number of rows updated.
func (s *PantryStore) RecategorizeAll(ctx context.Context, categorize func(string) string) (int, error) {
	rows, err := s.db.query(ctx, `SELECT id, name, grocery_type FROM pantry_items`)
	if err != nil {
		return 0, common.WrapError(err, "list pantry items")
	}
	defer rows.Close()

	type change struct {
		id       int64
		category string
	}
	var changes []change
	for rows.Next() {
		var id int64
		var name, current string
		if err := rows.Scan(&id, &name, &current); err != nil {
			return 0, common.WrapError(err, "scan pantry item")
		}
		if next := categorize(name); next != current {
			changes = append(changes, change{id: id, category: next})
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, ch := range changes {
		if _, err := s.db.exec(ctx, `UPDATE pantry_items SET grocery_type = ? WHERE id = ?`, ch.category, ch.id); err != nil {
			return 0, common.WrapError(err, "update grocery type")
		}
	}
	s.logger.Info("db.pantry.recategorized", "updated", len(changes))
	return len(changes), nil
}

func scanPantryItem(scan func(dest ...any) error) (PantryItem, error) {
	var item PantryItem
	var createdAt string
	if err := scan(&item.ID, &item.Name, &item.Quantity, &item.Unit, &createdAt, &item.IsConsumed, &item.GroceryType); err != nil {
		return PantryItem{}, err
	}
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		parsed, err = time.ParseInLocation("2006-01-02T15:04:05", createdAt, time.Local)
		if err != nil {
			return PantryItem{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
	}
	item.CreatedAt = parsed
	return item, nil
}
