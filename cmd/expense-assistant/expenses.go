package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ithinkitschris/expense-assistant/constants"
	"github.com/ithinkitschris/expense-assistant/internal/repository"
	"github.com/ithinkitschris/expense-assistant/internal/summary"
)

var (
	listSearch   string
	listCategory string
	listDays     int
	listMonth    string

	editAmount      float64
	editCategory    string
	editDescription string

	summaryType string
	exportOut   string
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Parse a natural language expense and store it",
	Long: `Parse a natural language expense and store it.

The text can carry a relative or absolute date ("coffee $6 yesterday") and
multiple expenses in one message ("$20 lunch and $15 uber"). Grocery expenses
also stock the pantry with the individual items.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		result, err := services.parser.Parse(cmd.Context(), text)
		if err != nil {
			return err
		}
		for _, parsed := range result.Expenses {
			stored, err := services.expenses.InsertParsed(cmd.Context(), parsed)
			if err != nil {
				return err
			}
			fmt.Printf("Added #%d: $%.2f  %-13s %s  (%s)\n",
				stored.ID, stored.Amount, stored.Category, stored.Description,
				stored.Timestamp.Format("2006-01-02"))

			if parsed.Category != string(constants.Groceries) {
				continue
			}
			for _, item := range services.grocer.ParseItems(cmd.Context(), parsed.Description) {
				added, err := services.pantry.Add(cmd.Context(), item.Item, 1, "pieces", item.Category)
				if err != nil {
					services.logger.Warn("pantry add failed", "item", item.Item, "error", err)
					continue
				}
				fmt.Printf("  pantry: %s (%s)\n", added.Name, constants.GroceryTypeDisplayName(added.GroceryType))
			}
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored expenses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		expenses, err := services.expenses.List(cmd.Context(), repository.ExpenseFilter{
			Search:   listSearch,
			Category: listCategory,
			Days:     listDays,
			Month:    listMonth,
		})
		if err != nil {
			return err
		}
		if len(expenses) == 0 {
			fmt.Println("No expenses found.")
			return nil
		}
		var total float64
		for _, e := range expenses {
			fmt.Printf("#%-4d %s  $%8.2f  %-13s %s\n",
				e.ID, e.Timestamp.Format("2006-01-02"), e.Amount, e.Category, e.Description)
			total += e.Amount
		}
		fmt.Printf("\n%d expenses, $%.2f total\n", len(expenses), total)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an expense's amount, category, or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("id must be an integer: %q", args[0])
		}
		expense, err := services.expenses.GetByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		if editAmount > 0 {
			expense.Amount = editAmount
		}
		if editCategory != "" {
			category, ok := constants.Canonicalize(editCategory)
			if !ok {
				return fmt.Errorf("unknown category %q (see: expense-assistant categories)", editCategory)
			}
			expense.Category = string(category)
		}
		if editDescription != "" {
			expense.Description = editDescription
		}
		if err := services.expenses.Update(cmd.Context(), expense); err != nil {
			return err
		}
		fmt.Printf("Updated #%d: $%.2f  %s  %s\n", expense.ID, expense.Amount, expense.Category, expense.Description)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("id must be an integer: %q", args[0])
		}
		if err := services.expenses.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted #%d\n", id)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize spending, with an AI narrative when available",
	RunE: func(cmd *cobra.Command, _ []string) error {
		report, err := services.summary.Generate(cmd.Context(),
			summary.ReportType(summaryType),
			repository.ExpenseFilter{Category: listCategory, Days: listDays, Month: listMonth})
		if err != nil {
			return err
		}
		fmt.Println(report.Narrative)
		if !report.AIGenerated && report.GrandTotal > 0 {
			fmt.Println("\n(model unavailable, showing plain totals)")
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the expense categories",
	RunE: func(_ *cobra.Command, _ []string) error {
		for _, category := range constants.AllCategories() {
			fmt.Println(category)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses to an XLSX workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := services.exporter.ExportExpensesXLSX(cmd.Context(), repository.ExpenseFilter{
			Category: listCategory,
			Days:     listDays,
			Month:    listMonth,
		})
		if err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = fmt.Sprintf("expenses-%s.xlsx", time.Now().Format("2006-01-02"))
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{listCmd, summaryCmd, exportCmd} {
		cmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
		cmd.Flags().IntVar(&listDays, "days", 0, "Only the last N days")
		cmd.Flags().StringVar(&listMonth, "month", "", "Only a given month (YYYY-MM)")
	}
	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter by description substring")

	editCmd.Flags().Float64Var(&editAmount, "amount", 0, "New amount")
	editCmd.Flags().StringVar(&editCategory, "category", "", "New category")
	editCmd.Flags().StringVar(&editDescription, "description", "", "New description")

	summaryCmd.Flags().StringVar(&summaryType, "type", "quick", "Report type: quick, comprehensive, insights, budget_analysis")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default expenses-<date>.xlsx)")
}
