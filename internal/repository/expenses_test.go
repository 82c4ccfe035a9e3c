package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ithinkitschris/expense-assistant/internal/common"
	"github.com/ithinkitschris/expense-assistant/internal/llm"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), common.DatabaseConfig{
		DSN: filepath.Join(t.TempDir(), "test.db"),
	}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestExpenseInsertAndGet(t *testing.T) {
	store := NewExpenseStore(testDB(t), nil)
	ctx := context.Background()

	ts := time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)
	inserted, err := store.Insert(ctx, 12.50, "food", "lunch", ts)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if inserted.ID == 0 {
		t.Fatal("expected a row id")
	}

	got, err := store.GetByID(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Amount != 12.50 || got.Category != "food" || got.Description != "lunch" {
		t.Errorf("got %+v", got)
	}
	if !got.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, ts)
	}
}

func TestExpenseInsertRejectsNonPositiveAmount(t *testing.T) {
	store := NewExpenseStore(testDB(t), nil)
	for _, amount := range []float64{0, -5} {
		if _, err := store.Insert(context.Background(), amount, "food", "x", time.Now()); !errors.Is(err, common.ErrInvalidInput) {
			t.Errorf("Insert(%v): err = %v, want ErrInvalidInput", amount, err)
		}
	}
}

func TestExpenseInsertParsedDefaultsTimestamp(t *testing.T) {
	store := NewExpenseStore(testDB(t), nil)

	before := time.Now().Add(-time.Minute)
	exp, err := store.InsertParsed(context.Background(), llm.ParsedExpense{
		Amount: 9, Category: "other", Description: "thing",
	})
	if err != nil {
		t.Fatalf("InsertParsed: %v", err)
	}
	if exp.Timestamp.Before(before) {
		t.Errorf("timestamp not defaulted: %v", exp.Timestamp)
	}
}

func TestExpenseGetByIDNotFound(t *testing.T) {
	store := NewExpenseStore(testDB(t), nil)
	if _, err := store.GetByID(context.Background(), 999); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExpenseListFilters(t *testing.T) {
	store := NewExpenseStore(testDB(t), nil)
	ctx := context.Background()

	seed := []struct {
		amount   float64
		category string
		desc     string
		ts       time.Time
	}{
		{40, "food", "dinner at the izakaya", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{60, "groceries", "weekly shop", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{25, "food", "ramen", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)},
		{15, "uber", "ride home", time.Now().Add(-24 * time.Hour)},
	}
	for _, e := range seed {
		if _, err := store.Insert(ctx, e.amount, e.category, e.desc, e.ts); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	t.Run("no filter newest first", func(t *testing.T) {
		got, err := store.List(ctx, ExpenseFilter{})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 4 {
			t.Fatalf("got %d rows", len(got))
		}
		if got[0].Category != "uber" {
			t.Errorf("first row = %+v, want the most recent", got[0])
		}
	})

	t.Run("search substring", func(t *testing.T) {
		got, err := store.List(ctx, ExpenseFilter{Search: "izakaya"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Amount != 40 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("category", func(t *testing.T) {
		got, err := store.List(ctx, ExpenseFilter{Category: "food"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("got %d rows", len(got))
		}
	})

	t.Run("days window", func(t *testing.T) {
		got, err := store.List(ctx, ExpenseFilter{Days: 7})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Category != "uber" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("specific month", func(t *testing.T) {
		got, err := store.List(ctx, ExpenseFilter{Month: "2025-06"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("got %d rows", len(got))
		}
	})

	t.Run("bare month any year", func(t *testing.T) {
		got, err := store.List(ctx, ExpenseFilter{Month: "5"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Description != "ramen" {
			t.Errorf("got %+v", got)
		}
	})
}

func TestExpenseUpdate(t *testing.T) {
	store := NewExpenseStore(testDB(t), nil)
	ctx := context.Background()

	exp, err := store.Insert(ctx, 10, "other", "misc", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	exp.Amount = 20
	exp.Category = "food"
	if err := store.Update(ctx, exp); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, exp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Amount != 20 || got.Category != "food" {
		t.Errorf("got %+v", got)
	}

	missing := exp
	missing.ID = 999
	if err := store.Update(ctx, missing); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExpenseDelete(t *testing.T) {
	store := NewExpenseStore(testDB(t), nil)
	ctx := context.Background()

	exp, err := store.Insert(ctx, 10, "other", "misc", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, exp.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, exp.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("row still present: %v", err)
	}
	if err := store.Delete(ctx, exp.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestScanExpenseLegacyTimestamp(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Rows written by earlier versions carry zone-less timestamps.
	_, err := db.exec(ctx,
		`INSERT INTO expenses (amount, category, description, timestamp) VALUES (?, ?, ?, ?)`,
		5.0, "food", "legacy row", "2024-01-15T08:30:00")
	if err != nil {
		t.Fatal(err)
	}

	store := NewExpenseStore(db, nil)
	got, err := store.List(ctx, ExpenseFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows", len(got))
	}
	want := time.Date(2024, 1, 15, 8, 30, 0, 0, time.Local)
	if !got[0].Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, want)
	}
}
