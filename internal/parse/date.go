package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Absolute patterns are tried before relative ones, in declaration order.
// Each regex yields (year, month, day) through its extract func; a hit that
// is not a real calendar date is skipped and the next pattern attempted.
var absolutePatterns = []struct {
	re      *regexp.Regexp
	extract func(m []string) (year, month, day int)
}{
	{
		// "June 27, 2025", "on june 27th 2025"
		re: regexp.MustCompile(`(?i)\b(?:on\s+)?(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`),
		extract: func(m []string) (int, int, int) {
			year, _ := strconv.Atoi(m[3])
			day, _ := strconv.Atoi(m[2])
			return year, monthNumber(m[1]), day
		},
	},
	{
		// "6/27/2025"
		re: regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`),
		extract: func(m []string) (int, int, int) {
			month, _ := strconv.Atoi(m[1])
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return year, month, day
		},
	},
	{
		// "6-27-2025"
		re: regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{4})\b`),
		extract: func(m []string) (int, int, int) {
			month, _ := strconv.Atoi(m[1])
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return year, month, day
		},
	},
	{
		// "2025-06-27" (ISO)
		re: regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`),
		extract: func(m []string) (int, int, int) {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			return year, month, day
		},
	},
	{
		// "27.06.2025" (European day-first)
		re: regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{4})\b`),
		extract: func(m []string) (int, int, int) {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return year, month, day
		},
	},
}

var (
	daysAgoPattern  = regexp.MustCompile(`(\d+)\s+days?\s+ago`)
	weeksAgoPattern = regexp.MustCompile(`(\d+)\s+weeks?\s+ago`)
)

var monthNumbers = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may":  5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

func monthNumber(name string) int {
	return monthNumbers[strings.ToLower(name)]
}

// ExtractDate recognizes a date expression in free text and returns the
// normalized timestamp. The second return is false when nothing matched;
// callers substitute "now" at persistence time.
func ExtractDate(text string, now time.Time) (time.Time, bool) {
	if t, ok := extractAbsoluteDate(text, now); ok {
		return t, true
	}
	return extractRelativeDate(text, now)
}

func extractAbsoluteDate(text string, now time.Time) (time.Time, bool) {
	for _, p := range absolutePatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			year, month, day := p.extract(m)
			if t, ok := makeDate(year, month, day, now.Location()); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func extractRelativeDate(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "yesterday"):
		return now.AddDate(0, 0, -1), true
	case strings.Contains(lower, "last week"), strings.Contains(lower, "a week ago"):
		return now.AddDate(0, 0, -7), true
	case strings.Contains(lower, "last month"), strings.Contains(lower, "a month ago"):
		return now.AddDate(0, 0, -30), true
	}
	if m := daysAgoPattern.FindStringSubmatch(lower); m != nil {
		days, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, -days), true
	}
	if m := weeksAgoPattern.FindStringSubmatch(lower); m != nil {
		weeks, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, -7*weeks), true
	}
	return time.Time{}, false
}

// makeDate builds a midnight timestamp, rejecting hits like month 13 or
// February 30 that normalize to a different day.
func makeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
