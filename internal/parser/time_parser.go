package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is how timestamps are shown for editing. ParseTimestamp
// reads it back.
const TimestampLayout = "2006-01-02 15:04:05"

// timestampLayouts are tried in order by ParseTimestamp
var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	TimestampLayout,
	"02/01/2006 15:04",
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
}

var relativeRegex = regexp.MustCompile(`^(\d+)\s*(m|min|mins|minute|minutes|h|hour|hours|d|day|days)\s+ago$`)

// ParseTimestamp parses a session start or end time.
// Supported formats:
// - yyyy-mm-ddThh:mm and yyyy-mm-dd hh:mm, optionally with seconds
// - dd/mm/yyyy hh:mm
// - RFC 3339 (e.g., "2024-01-15T09:00:00Z")
// - "now" or "X minutes/hours/days ago"
// Wall-clock formats are read in ref's location.
func ParseTimestamp(input string, ref time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}

	if strings.EqualFold(input, "now") {
		return ref, nil
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, input, ref.Location()); err == nil {
			return t, nil
		}
	}

	if t, err := parseRelative(input, ref); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q. Use: yyyy-mm-dd hh:mm, dd/mm/yyyy hh:mm, now, or X hours ago", input)
}

// parseRelative parses "90 minutes ago", "2h ago", "1 day ago"
func parseRelative(input string, ref time.Time) (time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(strings.ToLower(input))
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "m", "min", "mins", "minute", "minutes":
		return ref.Add(-time.Duration(amount) * time.Minute), nil
	case "h", "hour", "hours":
		return ref.Add(-time.Duration(amount) * time.Hour), nil
	default:
		return ref.AddDate(0, 0, -amount), nil
	}
}

// ParseDate parses a calendar date (yyyy-mm-dd, dd/mm/yyyy or "today") at
// midnight in ref's location
func ParseDate(input string, ref time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "today") {
		return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, input, ref.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q. Use: yyyy-mm-dd, dd/mm/yyyy, or today", input)
}

// ParseRate parses an hourly rate. Blank input is a rate of 0.
func ParseRate(input string) (float64, error) {
	input = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "$"))
	if input == "" {
		return 0, nil
	}

	rate, err := strconv.ParseFloat(strings.ReplaceAll(input, ",", "."), 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("invalid rate %q", input)
	}
	if rate < 0 {
		return 0, fmt.Errorf("rate must not be negative")
	}
	return rate, nil
}

// ParsePeriodLength parses a pay period length in days
func ParsePeriodLength(input string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("invalid period length %q", input)
	}
	if days < 1 || days > 366 {
		return 0, fmt.Errorf("period length must be between 1 and 366 days")
	}
	return days, nil
}
