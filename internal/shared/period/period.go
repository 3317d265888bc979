// Package period parses the YYYY-MM and YYYY-MM-DD values used by
// attendance, leave and payroll.
package period

import (
	"errors"
	"regexp"
	"time"
)

const (
	MonthLayout = "2006-01"
	DateLayout  = "2006-01-02"
)

var (
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")

	monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// Month is a calendar month as a half-open UTC range [Start, End).
type Month struct {
	Key   string
	Start time.Time
	End   time.Time
}

func ParseMonth(v string) (Month, error) {
	if !monthPattern.MatchString(v) {
		return Month{}, ErrInvalidMonth
	}
	start, err := time.Parse(MonthLayout, v)
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return Month{Key: v, Start: start, End: start.AddDate(0, 1, 0)}, nil
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	return int(m.End.Sub(m.Start).Hours() / 24)
}

func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Today returns the current calendar day at UTC midnight.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
