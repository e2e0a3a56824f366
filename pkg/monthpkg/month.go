// Package monthpkg provides a calendar month value type used for aggregation.
package monthpkg

import (
	"fmt"
	"time"
)

// Month identifies a single calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// Key layout for parsing and formatting month keys.
const Key = "2006-01"

// FromTime returns the month containing t.
func FromTime(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Parse parses a "YYYY-MM" key into a Month.
func Parse(key string) (Month, error) {
	t, err := time.Parse(Key, key)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}

	return FromTime(t), nil
}

// String returns the "YYYY-MM" key of the month.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Next returns the month immediately after m.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}

	return Month{Year: m.Year, Month: m.Month + 1}
}

// LastDay returns midnight UTC on the last calendar day of the month.
func (m Month) LastDay() time.Time {
	firstOfNext := time.Date(m.Next().Year, m.Next().Month, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1)
}

// Before reports whether m is strictly earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}

	return m.Month < other.Month
}

// After reports whether m is strictly later than other.
func (m Month) After(other Month) bool {
	return other.Before(m)
}
