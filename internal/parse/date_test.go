package parse

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func TestExtractDateAbsolute(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"month name with year", "dinner on June 27, 2025 for $40", time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)},
		{"month name ordinal", "coffee june 27th 2025", time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)},
		{"abbreviated month", "groceries Jun 3 2025", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
		{"slash format", "lunch 6/27/2025 $12", time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)},
		{"dash format", "taxi 6-27-2025", time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)},
		{"iso format", "rent 2025-06-27", time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)},
		{"european dots", "museum 27.06.2025", time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractDate(tc.input, testNow)
			if !ok {
				t.Fatalf("ExtractDate(%q): no date found", tc.input)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ExtractDate(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestExtractDateRelative(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOff int // days back from now
	}{
		{"yesterday", "coffee $6 yesterday", 1},
		{"last week", "bought shoes last week", 7},
		{"a week ago", "dinner a week ago", 7},
		{"last month", "insurance last month", 30},
		{"a month ago", "flight a month ago", 30},
		{"n days ago", "groceries 3 days ago", 3},
		{"single day ago", "lunch 1 day ago", 1},
		{"n weeks ago", "concert 2 weeks ago", 14},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractDate(tc.input, testNow)
			if !ok {
				t.Fatalf("ExtractDate(%q): no date found", tc.input)
			}
			want := testNow.AddDate(0, 0, -tc.wantOff)
			if !got.Equal(want) {
				t.Errorf("ExtractDate(%q) = %v, want %v", tc.input, got, want)
			}
		})
	}
}

func TestExtractDateAbsoluteBeatsRelative(t *testing.T) {
	got, ok := ExtractDate("dinner on 6/27/2025, not yesterday", testNow)
	if !ok {
		t.Fatal("no date found")
	}
	want := time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractDateInvalidCalendarDates(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"month thirteen", "paid 13/45/2025"},
		{"february thirtieth", "paid 2/30/2025"},
		{"no date at all", "coffee $6"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got, ok := ExtractDate(tc.input, testNow); ok {
				t.Errorf("ExtractDate(%q) = %v, want no match", tc.input, got)
			}
		})
	}
}

func TestExtractDateFebruaryThirtiethFallsThrough(t *testing.T) {
	// An impossible absolute date should not block a relative one later in
	// the text.
	got, ok := ExtractDate("paid 2/30/2025, well, 3 days ago really", testNow)
	if !ok {
		t.Fatal("no date found")
	}
	want := testNow.AddDate(0, 0, -3)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
