package core

import (
	"fmt"
	"time"
)

// Window is an inclusive time range.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// MonthWindow spans the first day 00:00:00 to the last day 23:59:59 of a month.
// month0 is zero-based (January == 0).
func MonthWindow(year, month0 int, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, loc)
	lastDay := time.Date(year, time.Month(month0+2), 0, 23, 59, 59, 0, loc)
	return Window{Start: start, End: lastDay}
}

// Period identifies a calendar month with a zero-based month index.
type Period struct {
	Year   int
	Month0 int
}

// Month returns the human, one-based month number.
func (p Period) Month() int { return p.Month0 + 1 }

func (p Period) Window(loc *time.Location) Window {
	return MonthWindow(p.Year, p.Month0, loc)
}

// ResolvePeriod fills omitted parts from now. month is one-based as received
// from the API and is converted to the zero-based index here.
func ResolvePeriod(now time.Time, month, year *int) (Period, error) {
	p := Period{Year: now.Year(), Month0: int(now.Month()) - 1}
	if year != nil {
		if *year < 1970 || *year > 9999 {
			return Period{}, fmt.Errorf("%w: year %d", ErrInvalidInput, *year)
		}
		p.Year = *year
	}
	if month != nil {
		if *month < 1 || *month > 12 {
			return Period{}, fmt.Errorf("%w: month %d", ErrInvalidInput, *month)
		}
		p.Month0 = *month - 1
	}
	return p, nil
}
