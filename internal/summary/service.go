package summary

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ithinkitschris/expense-assistant/internal/llm"
	"github.com/ithinkitschris/expense-assistant/internal/repository"
)

// ReportType selects the depth and framing of a generated summary.
type ReportType string

const (
	ReportQuick          ReportType = "quick"
	ReportComprehensive  ReportType = "comprehensive"
	ReportInsights       ReportType = "insights"
	ReportBudgetAnalysis ReportType = "budget_analysis"
)

// IsReportType reports whether key names a known report type.
func IsReportType(key string) bool {
	switch ReportType(key) {
	case ReportQuick, ReportComprehensive, ReportInsights, ReportBudgetAnalysis:
		return true
	}
	return false
}

// CategoryTotal is one category's share of spending.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// Report is a generated spending summary.
type Report struct {
	Type        ReportType      `json:"type"`
	GrandTotal  float64         `json:"grand_total"`
	Totals      []CategoryTotal `json:"totals"`
	TimeContext string          `json:"time_context,omitempty"`
	Narrative   string          `json:"narrative"`
	AIGenerated bool            `json:"ai_generated"`
}

type expenseLister interface {
	List(ctx context.Context, filter repository.ExpenseFilter) ([]repository.Expense, error)
}

// Service builds spending summaries, preferring an AI narrative and falling
// back to a deterministic text report when the model is unavailable.
type Service struct {
	expenses expenseLister
	gen      llm.Generator
	logger   *slog.Logger
}

func NewService(expenses expenseLister, gen llm.Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{expenses: expenses, gen: gen, logger: logger}
}

// CategoryTotals aggregates the matching expenses per category, largest first.
func (s *Service) CategoryTotals(ctx context.Context, filter repository.ExpenseFilter) ([]CategoryTotal, float64, error) {
	expenses, err := s.expenses.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	byCategory := make(map[string]*CategoryTotal)
	var grand float64
	for _, e := range expenses {
		t, ok := byCategory[e.Category]
		if !ok {
			t = &CategoryTotal{Category: e.Category}
			byCategory[e.Category] = t
		}
		t.Total += e.Amount
		t.Count++
		grand += e.Amount
	}
	totals := make([]CategoryTotal, 0, len(byCategory))
	for _, t := range byCategory {
		totals = append(totals, *t)
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Category < totals[j].Category
	})
	return totals, grand, nil
}

// Generate produces a report over the matching expenses. The narrative comes
// from the model when it answers; otherwise a plain text fallback is used and
// AIGenerated is false.
func (s *Service) Generate(ctx context.Context, reportType ReportType, filter repository.ExpenseFilter) (Report, error) {
	if !IsReportType(string(reportType)) {
		reportType = ReportQuick
	}

	expenses, err := s.expenses.List(ctx, filter)
	if err != nil {
		return Report{}, err
	}

	report := Report{Type: reportType}
	if len(expenses) == 0 {
		report.Narrative = "No expenses recorded for this period."
		return report, nil
	}

	byCategory := make(map[string]*CategoryTotal)
	minTime, maxTime := expenses[0].Timestamp, expenses[0].Timestamp
	for _, e := range expenses {
		t, ok := byCategory[e.Category]
		if !ok {
			t = &CategoryTotal{Category: e.Category}
			byCategory[e.Category] = t
		}
		t.Total += e.Amount
		t.Count++
		report.GrandTotal += e.Amount
		if e.Timestamp.Before(minTime) {
			minTime = e.Timestamp
		}
		if e.Timestamp.After(maxTime) {
			maxTime = e.Timestamp
		}
	}
	for _, t := range byCategory {
		report.Totals = append(report.Totals, *t)
	}
	sort.SliceStable(report.Totals, func(i, j int) bool {
		if report.Totals[i].Total != report.Totals[j].Total {
			return report.Totals[i].Total > report.Totals[j].Total
		}
		return report.Totals[i].Category < report.Totals[j].Category
	})
	report.TimeContext = timeContext(minTime, maxTime)

	if s.gen != nil {
		prompt := buildReportPrompt(reportType, report, len(expenses))
		raw, err := s.gen.Generate(ctx, prompt)
		if err == nil {
			if narrative := strings.TrimSpace(llm.StripCodeFences(raw)); narrative != "" {
				report.Narrative = narrative
				report.AIGenerated = true
				return report, nil
			}
		} else {
			s.logger.Warn("summary.generate.ai_failed", "error", err)
		}
	}

	report.Narrative = textFallback(report)
	return report, nil
}

// timeContext describes the span of the data in a single line.
func timeContext(min, max time.Time) string {
	days := int(max.Sub(min).Hours()/24) + 1
	return fmt.Sprintf("Data spans %d days from %s to %s",
		days, min.Format("01/02/2006"), max.Format("01/02/2006"))
}

func buildReportPrompt(reportType ReportType, report Report, count int) string {
	var b strings.Builder
	b.WriteString("You are a personal finance assistant. Analyze this spending data and write a ")
	switch reportType {
	case ReportComprehensive:
		b.WriteString("comprehensive report covering every category, notable patterns, and suggestions.")
	case ReportInsights:
		b.WriteString("short list of the most interesting insights and patterns in the spending.")
	case ReportBudgetAnalysis:
		b.WriteString("budget analysis: where the money goes, what looks high, and where to cut back.")
	default:
		b.WriteString("quick two or three sentence summary of the spending.")
	}
	b.WriteString("\n\n")
	if report.TimeContext != "" {
		b.WriteString(report.TimeContext)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total spent: $%.2f across %d expenses\n\nSpending by category:\n", report.GrandTotal, count)
	for _, t := range report.Totals {
		fmt.Fprintf(&b, "- %s: $%.2f (%d expenses)\n", t.Category, t.Total, t.Count)
	}
	b.WriteString("\nRespond with plain text only, no markdown headings.")
	return b.String()
}

// textFallback renders the totals as a plain report when the model is down.
func textFallback(report Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total spent: $%.2f\n", report.GrandTotal)
	if report.TimeContext != "" {
		b.WriteString(report.TimeContext)
		b.WriteString("\n")
	}
	b.WriteString("\nSpending by category:\n")
	for _, t := range report.Totals {
		fmt.Fprintf(&b, "  %-15s $%10.2f  (%d)\n", t.Category, t.Total, t.Count)
	}
	return b.String()
}
