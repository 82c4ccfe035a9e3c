package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ithinkitschris/expense-assistant/internal/repository"
	"github.com/ithinkitschris/expense-assistant/internal/summary"
)

type expenseLister interface {
	List(ctx context.Context, filter repository.ExpenseFilter) ([]repository.Expense, error)
}

// Service produces XLSX bytes for expense exports.
type Service struct {
	expenses expenseLister
	logger   *slog.Logger
}

func NewService(expenses expenseLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{expenses: expenses, logger: logger}
}

// ExportExpensesXLSX returns an XLSX workbook (as bytes) for the expenses
// matching the filter. The workbook carries an Expenses sheet with one row
// per expense and a Summary sheet with per-category totals.
func (s *Service) ExportExpensesXLSX(ctx context.Context, filter repository.ExpenseFilter) ([]byte, error) {
	start := time.Now()

	expenses, err := s.expenses.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Expenses"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet excelize creates so Expenses is the first tab.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{"Date", "Category", "Description", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	var grand float64
	totals := make(map[string]float64)
	for _, e := range expenses {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, e.Timestamp.Format("2006-01-02"))
		write(2, e.Category)
		write(3, truncate(e.Description, 140))
		write(4, e.Amount)
		totals[e.Category] += e.Amount
		grand += e.Amount
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 14) // date
	_ = f.SetColWidth(sheet, "B", "B", 18) // category
	_ = f.SetColWidth(sheet, "C", "C", 48) // description
	_ = f.SetColWidth(sheet, "D", "D", 12) // amount

	if err := writeSummarySheet(f, totals, grand); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(expenses),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, totals map[string]float64, grand float64) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	_ = f.SetCellValue(sheet, "A1", "Category")
	_ = f.SetCellValue(sheet, "B1", "Total")

	ordered := make([]summary.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		ordered = append(ordered, summary.CategoryTotal{Category: category, Total: total})
	}
	sortTotals(ordered)

	row := 2
	for _, t := range ordered {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheet, cell, t.Category)
		cell, _ = excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(sheet, cell, t.Total)
		row++
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	_ = f.SetCellValue(sheet, cell, "TOTAL")
	cell, _ = excelize.CoordinatesToCellName(2, row)
	_ = f.SetCellValue(sheet, cell, grand)

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "B", 12)
	return nil
}

func sortTotals(totals []summary.CategoryTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Category < totals[j].Category
	})
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return string(runes[:1])
	}
	return string(runes[:n-1]) + "…"
}
