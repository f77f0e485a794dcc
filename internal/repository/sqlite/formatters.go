package sqlite

import "time"

// TimestampLayout is the updated_at column format. Parsing it also accepts
// values without fractional seconds.
const TimestampLayout = time.RFC3339Nano

// FormatTimestamp renders t in UTC for the updated_at column
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp reads an updated_at value
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}
