package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// calendarLayout is the canonical date rendering used in all responses,
// e.g. "Sun Jan 15 2023".
const calendarLayout = "Mon Jan 02 2006"

// dateInputLayouts is the whitelist of accepted date inputs. Anything else
// is rejected instead of being persisted as garbage.
var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	calendarLayout,
}

// parseDate coerces free text into a calendar date at midnight UTC.
func parseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateInputLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			parsed = parsed.UTC()
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// formatDate renders a date in the canonical calendar-string format.
func formatDate(t time.Time) string {
	return t.UTC().Format(calendarLayout)
}

// parseDurationMin coerces free text into a positive minute count.
func parseDurationMin(raw string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("duration %q is not an integer", raw)
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("duration must be > 0")
	}
	return minutes, nil
}

// parseLimit coerces the limit query parameter into a positive integer.
func parseLimit(raw string) (int, error) {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("limit %q is not an integer", raw)
	}
	if limit <= 0 {
		return 0, fmt.Errorf("limit must be > 0")
	}
	return limit, nil
}
