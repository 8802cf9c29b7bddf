package model

import (
	"fmt"
	"time"
)

// Period identifies one reporting month.
type Period struct {
	Year  int
	Month int // 1..12
}

const periodFormat = "2006-01"

// ParsePeriod parses "YYYY-MM" into a Period.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodFormat, s)
	if err != nil {
		return Period{}, fmt.Errorf("parsing period %q: %w", s, err)
	}
	return Period{Year: t.Year(), Month: int(t.Month())}, nil
}

// Valid reports whether the month is within 1..12 and the year is set.
func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

// String returns the period as "YYYY-MM".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Before reports whether p is strictly earlier than other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// MarshalText encodes the period as "YYYY-MM".
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses "YYYY-MM".
func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
