package entity

import "time"

// DateLayout is the wire format of filter bounds
const DateLayout = "2006-01-02"

// DisplayLayout renders creation timestamps for people. The API formats with
// it and the dashboard parses it back when sorting.
const DisplayLayout = "02/01/2006, 15:04:05"

// DateRange is an inclusive calendar-date filter. Each bound is optional.
// Only the date portion of the bounds is significant.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// SingleDay returns a range matching exactly one calendar date
func SingleDay(day time.Time) DateRange {
	d := day
	return DateRange{From: &d, To: &d}
}

// ParseDateRange parses optional YYYY-MM-DD bounds; empty strings mean unbounded
func ParseDateRange(from, to string) (DateRange, error) {
	var r DateRange
	if from != "" {
		t, err := time.Parse(DateLayout, from)
		if err != nil {
			return DateRange{}, err
		}
		r.From = &t
	}
	if to != "" {
		t, err := time.Parse(DateLayout, to)
		if err != nil {
			return DateRange{}, err
		}
		r.To = &t
	}
	return r, nil
}

// SameDay reports whether both bounds are set and fall on the same calendar date
func (r DateRange) SameDay() bool {
	if r.From == nil || r.To == nil {
		return false
	}
	return FormatDate(*r.From) == FormatDate(*r.To)
}

// FormatDate renders the calendar date of t, ignoring time-of-day
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
