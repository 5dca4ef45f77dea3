package domain

import (
	"fmt"
	"sort"
	"time"
)

// ValueObject represents an immutable domain concept defined by its attributes.
type ValueObject interface {
	Equals(other ValueObject) bool
}

// DateLayout is the canonical ISO calendar-day format used across all contexts.
const DateLayout = "2006-01-02"

// Date represents a calendar day (no time-of-day, no zone).
// The zero value is not a valid date.
type Date struct {
	value string
}

// NewDate creates a Date from a point in time, using the time's own location.
func NewDate(t time.Time) Date {
	return Date{value: t.Format(DateLayout)}
}

// Today returns the current calendar day in local time.
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate parses an ISO YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t), nil
}

// MustDate parses an ISO date string and panics on failure. Test helper.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns the ISO YYYY-MM-DD representation.
func (d Date) String() string { return d.value }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.value == "" }

// Time returns the date at UTC midnight.
func (d Date) Time() time.Time {
	t, _ := time.Parse(DateLayout, d.value)
	return t
}

// AddDays returns the date shifted by n calendar days (n may be negative).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of calendar days from d to other.
// Positive when other is after d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// MarshalText implements encoding.TextMarshaler so dates serialize as
// plain YYYY-MM-DD strings, including as map keys.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.value < other.value }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.value > other.value }

// Equals checks if two dates represent the same calendar day.
func (d Date) Equals(other ValueObject) bool {
	if o, ok := other.(Date); ok {
		return d.value == o.value
	}
	return false
}

// DateSet is an unordered set of calendar days.
type DateSet map[Date]struct{}

// NewDateSet creates a set from the given dates, discarding duplicates.
func NewDateSet(dates ...Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Add inserts a date into the set.
func (s DateSet) Add(d Date) { s[d] = struct{}{} }

// Contains reports whether the set holds the given day.
func (s DateSet) Contains(d Date) bool {
	_, ok := s[d]
	return ok
}

// Len returns the number of distinct days in the set.
func (s DateSet) Len() int { return len(s) }

// Sorted returns the days in ascending order.
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Strings returns the days as ISO strings in ascending order.
func (s DateSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, d := range sorted {
		out[i] = d.String()
	}
	return out
}
