package utils

import "time"

// iso8601Millis is a fixed-width, zero-padded layout. Keys derived from
// these timestamps sort lexicographically in chronological order.
const iso8601Millis = "2006-01-02T15:04:05.000Z"

// NowISO8601 returns the current UTC time with millisecond precision.
func NowISO8601() string {
	return time.Now().UTC().Format(iso8601Millis)
}

// FormatISO8601 formats a time in the fixed-width ISO-8601 UTC layout.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(iso8601Millis)
}

// ParseISO8601 parses a timestamp produced by NowISO8601.
func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(iso8601Millis, s)
}
