package domain

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// Layouts used when rendering timestamps
const (
	LayoutDateTime = "2006-01-02 15:04:05"
	LayoutDate     = "2006-01-02"
	LayoutTime     = "15:04:05"
)

// Timestamp is a point in time carried on the wire as milliseconds since the
// Unix epoch. The zero value renders as an empty string.
type Timestamp int64

// NewTimestamp converts t to a Timestamp
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return 0
	}
	return Timestamp(t.UnixMilli())
}

// Now returns the current time as a Timestamp
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// ParseTimestamp parses a local date or date-time string. Empty input yields 0.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" {
		return 0, nil
	}
	for _, layout := range []string{LayoutDateTime, LayoutDate, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return NewTimestamp(t), nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Timestamp(ms), nil
	}
	return 0, &time.ParseError{Layout: LayoutDateTime, Value: s}
}

// IsZero returns true if the timestamp is unset
func (t Timestamp) IsZero() bool {
	return t == 0
}

// Time converts the timestamp to local time
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).Local()
}

// Format renders the timestamp with layout, or "" when unset
func (t Timestamp) Format(layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Time().Format(layout)
}

// DateTime renders YYYY-MM-DD HH:mm:ss
func (t Timestamp) DateTime() string { return t.Format(LayoutDateTime) }

// Date renders YYYY-MM-DD
func (t Timestamp) Date() string { return t.Format(LayoutDate) }

// Clock renders HH:mm:ss
func (t Timestamp) Clock() string { return t.Format(LayoutTime) }

// Relative renders the timestamp relative to now, e.g. "3 minutes ago"
func (t Timestamp) Relative() string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t.Time())
}

func (t Timestamp) String() string { return t.DateTime() }
