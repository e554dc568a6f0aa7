package calendar

import (
	"strconv"
	"time"
)

// Cursor is the month currently displayed.
type Cursor struct {
	Year  int
	Month time.Month
}

// CursorOf returns the cursor for the month containing t.
func CursorOf(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// AddMonths moves the cursor by delta months, carrying into the year in
// both directions. Year is unbounded.
func (c Cursor) AddMonths(delta int) Cursor {
	m := int(c.Month) - 1 + delta
	y := c.Year + m/12
	m %= 12
	if m < 0 {
		m += 12
		y--
	}
	return Cursor{Year: y, Month: time.Month(m + 1)}
}

// AddYears moves the cursor by delta years; the month is unchanged.
func (c Cursor) AddYears(delta int) Cursor {
	return Cursor{Year: c.Year + delta, Month: c.Month}
}

// Contains reports whether d falls inside the cursor's month.
func (c Cursor) Contains(d Date) bool {
	return d.Year == c.Year && d.Month == c.Month
}

// Date returns the given day of the cursor's month.
func (c Cursor) Date(day int) (Date, error) {
	return NewDate(c.Year, c.Month, day)
}

// Header formats the cursor as "January 2024".
func (c Cursor) Header() string {
	return c.Month.String() + " " + strconv.Itoa(c.Year)
}

func (c Cursor) String() string {
	return c.Header()
}
