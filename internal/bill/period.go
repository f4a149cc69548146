package bill

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Bounds for the target month accepted on the command line.
const (
	MinYear = 2021
	MaxYear = 2100
)

var targetPattern = regexp.MustCompile(`^\d{6}$`)

// Period is a billing month. EndMonth is set for quarterly utility fees,
// which cover a month range within one year.
type Period struct {
	Month    int
	EndMonth int
	Year     int
}

// MonthOf returns the period containing t.
func MonthOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

func (p Period) months() string {
	if p.EndMonth != 0 {
		return fmt.Sprintf("%02d-%02d", p.Month, p.EndMonth)
	}
	return fmt.Sprintf("%02d", p.Month)
}

// String formats the period as MM/YYYY (or MM-MM/YYYY).
func (p Period) String() string {
	return fmt.Sprintf("%s/%04d", p.months(), p.Year)
}

// Compact formats the period as MMYYYY (or MM-MMYYYY) for filenames.
func (p Period) Compact() string {
	return fmt.Sprintf("%s%04d", p.months(), p.Year)
}

// ParseTarget parses the MMYYYY month argument that names a batch folder.
func ParseTarget(s string) (Period, error) {
	if !targetPattern.MatchString(s) {
		return Period{}, fmt.Errorf("target month must be 6 digits (MMYYYY), got %q", s)
	}
	month, err := strconv.Atoi(s[:2])
	if err != nil {
		return Period{}, fmt.Errorf("target month: invalid month %q", s[:2])
	}
	year, err := strconv.Atoi(s[2:])
	if err != nil {
		return Period{}, fmt.Errorf("target month: invalid year %q", s[2:])
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("target month: month %d out of range", month)
	}
	if year < MinYear || year > MaxYear {
		return Period{}, fmt.Errorf("target month: year %d out of range [%d, %d]", year, MinYear, MaxYear)
	}
	return Period{Month: month, Year: year}, nil
}

// MarshalText encodes the period in its display form.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
