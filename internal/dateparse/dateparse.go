// Package dateparse turns the --since values accepted by the CLI into a
// point in time. All relative forms count backwards from now.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSince parses input relative to the current time.
//
// Supported formats:
//   - Exact dates: "2026-03-01" (midnight, local time)
//   - Durations: "24h", "1h30m"
//   - Relative days, weeks, months: "3d", "-2w", "1m"
//   - Day names: "monday" (most recent, never today)
//   - Keywords: "today", "yesterday", "this-week", "this-month"
func ParseSince(input string) (time.Time, error) {
	return ParseSinceFrom(input, time.Now())
}

// ParseSinceFrom is ParseSince with a fixed reference time.
func ParseSinceFrom(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	if t, err := time.ParseInLocation("2006-01-02", input, now.Location()); err == nil {
		return t, nil
	}

	today := midnight(now)
	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "this-week":
		// Back to Monday
		back := (int(now.Weekday()) - int(time.Monday) + 7) % 7
		return today.AddDate(0, 0, -back), nil
	case "this-month":
		year, month, _ := now.Date()
		return time.Date(year, month, 1, 0, 0, 0, 0, now.Location()), nil
	}

	// Durations: 24h, 1h30m. A bare m suffix means months below.
	if strings.ContainsAny(input, "hs") {
		if d, err := time.ParseDuration(strings.TrimPrefix(input, "-")); err == nil {
			return now.Add(-d), nil
		}
	}

	// Relative offsets: [-]Nd, [-]Nw, [-]Nm
	rel := strings.TrimPrefix(input, "-")
	if len(rel) >= 2 {
		unit := rel[len(rel)-1]
		n, err := strconv.Atoi(rel[:len(rel)-1])
		if err == nil && n >= 0 {
			switch unit {
			case 'd':
				return today.AddDate(0, 0, -n), nil
			case 'w':
				return today.AddDate(0, 0, -7*n), nil
			case 'm':
				return today.AddDate(0, -n, 0), nil
			default:
				return time.Time{}, fmt.Errorf("unknown relative unit %q in %q (use d, w, m or a duration like 24h)", string(unit), input)
			}
		}
	}

	days := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	if target, ok := days[input]; ok {
		back := (int(now.Weekday()) - int(target) + 7) % 7
		if back == 0 {
			back = 7
		}
		return today.AddDate(0, 0, -back), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", input)
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
