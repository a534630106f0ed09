package board

import (
	"strings"
	"time"
)

var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDueDate parses an ISO-8601 date or instant. A bare date parses to
// midnight UTC of that day.
func ParseDueDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseRangeBound parses a due-date range bound. A bare-date upper bound is
// pushed to the last instant of that day, making "to" end-of-day inclusive.
func parseRangeBound(s string, upper bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, ok := ParseDueDate(s)
	if !ok {
		return time.Time{}, false
	}
	if upper {
		if _, err := time.Parse("2006-01-02", s); err == nil {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return t, true
}
