package dateparse

import (
	"testing"
	"time"
)

// Fixed reference time: Wednesday, 2026-02-18 12:00:00 UTC
var testNow = time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseSince(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-01-05", day(2026, 1, 5)},
		{"today", day(2026, 2, 18)},
		{"Yesterday", day(2026, 2, 17)},
		{"this-week", day(2026, 2, 16)},
		{"this-month", day(2026, 2, 1)},
		{"0d", day(2026, 2, 18)},
		{"3d", day(2026, 2, 15)},
		{"-3d", day(2026, 2, 15)},
		{"2w", day(2026, 2, 4)},
		{"1m", day(2026, 1, 18)},
		{"24h", time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC)},
		{"1h30m", time.Date(2026, 2, 18, 10, 30, 0, 0, time.UTC)},
		{"  -24h ", time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseSinceFrom(tt.input, testNow)
		if err != nil {
			t.Errorf("ParseSinceFrom(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseSinceFrom(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseSince_DayNames(t *testing.T) {
	// testNow is a Wednesday
	tests := []struct {
		input string
		want  time.Time
	}{
		{"monday", day(2026, 2, 16)},
		{"TUESDAY", day(2026, 2, 17)},
		{"wednesday", day(2026, 2, 11)}, // never today
		{"thursday", day(2026, 2, 12)},
		{"sunday", day(2026, 2, 15)},
	}
	for _, tt := range tests {
		got, err := ParseSinceFrom(tt.input, testNow)
		if err != nil {
			t.Errorf("ParseSinceFrom(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseSinceFrom(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseSince_ThisWeekOnMonday(t *testing.T) {
	monday := time.Date(2026, 2, 16, 9, 0, 0, 0, time.UTC)
	got, err := ParseSinceFrom("this-week", monday)
	if err != nil {
		t.Fatal(err)
	}
	if want := day(2026, 2, 16); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseSince_MonthBoundary(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	got, err := ParseSinceFrom("3d", now)
	if err != nil {
		t.Fatal(err)
	}
	if want := day(2026, 2, 27); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseSince_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "3y", "x", "last-tuesday", "2026-13-01", "d"} {
		if _, err := ParseSinceFrom(input, testNow); err == nil {
			t.Errorf("ParseSinceFrom(%q): expected error", input)
		}
	}
}

func TestParseSince_UsesCurrentTime(t *testing.T) {
	before := time.Now()
	got, err := ParseSince("0d")
	if err != nil {
		t.Fatal(err)
	}
	if got.After(before) {
		t.Errorf("ParseSince(\"0d\") = %v, want midnight today or earlier", got)
	}
}
