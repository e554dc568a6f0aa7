package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a year/month/day triple does not name a
// real day of the calendar.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day in the host's local calendar. It is comparable and
// is used directly as the event store key; Key() formats the string form only
// where a surface needs it.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns a validated Date.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %d-%d-%d", ErrInvalidDate, year, int(month), day)
	}
	return d, nil
}

// DateOf returns the local calendar day of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Valid reports whether the day exists in its month.
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// IsZero reports whether d is the zero Date (used for placeholder cells).
func (d Date) IsZero() bool {
	return d == Date{}
}

// Key returns the date-key, e.g. "2024-2-9". Components are not padded.
func (d Date) Key() string {
	return strconv.Itoa(d.Year) + "-" + strconv.Itoa(int(d.Month)) + "-" + strconv.Itoa(d.Day)
}

func (d Date) String() string {
	return d.Key()
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// ParseKey parses a date-key as produced by Key. Zero-padded components are
// accepted so "2024-02-09" and "2024-2-9" name the same day.
func ParseKey(key string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(key), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: malformed key %q", ErrInvalidDate, key)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: malformed key %q", ErrInvalidDate, key)
		}
		nums[i] = n
	}
	return NewDate(nums[0], time.Month(nums[1]), nums[2])
}

// DaysInMonth returns the number of days in month of year. It asks for day 0
// of the following month, which normalizes to the last day of this one.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st of month (Sunday = 0).
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}
