package alpaca

import (
	"fmt"
	"time"
)

// Layouts accepted when parsing dates returned by servers. Dates without a
// zone are taken as UTC.
var utcDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseUTCDate parses a date/time string returned by a device.
func ParseUTCDate(s string) (time.Time, error) {
	for _, layout := range utcDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid UTC date: %q", s)
}

// FormatUTCDate renders t in UTC as an ISO 8601 date without a zone suffix.
// Microseconds are only included when non-zero.
func FormatUTCDate(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format("2006-01-02T15:04:05.000000")
}
