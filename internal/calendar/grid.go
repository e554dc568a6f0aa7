package calendar

import "time"

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Cell describes one slot of the month grid. Leading placeholders have a
// zero Date and all flags false.
type Cell struct {
	Date     Date
	Today    bool
	Selected bool
	HasEvent bool
}

// Empty reports whether the cell is a placeholder before day 1.
func (c Cell) Empty() bool {
	return c.Date.IsZero()
}

// Day returns the day number, or 0 for a placeholder.
func (c Cell) Day() int {
	return c.Date.Day
}

// Month is a fully derived month view.
type Month struct {
	Cursor   Cursor
	Header   string
	Weekdays [7]string
	Cells    []Cell
}

// WeekdayLabels returns the seven column labels starting at weekStart.
func WeekdayLabels(weekStart time.Weekday) [7]string {
	var out [7]string
	for i := range out {
		out[i] = weekdayLabels[(int(weekStart)+i)%7]
	}
	return out
}

// LeadingBlanks returns how many placeholders precede day 1 when weeks start
// on weekStart.
func LeadingBlanks(year int, month time.Month, weekStart time.Weekday) int {
	return (int(FirstWeekday(year, month)) - int(weekStart) + 7) % 7
}

// BuildMonth derives the cells for the state's cursor: the leading
// placeholders followed by one cell per day. The final week is not padded,
// so len(Cells) == LeadingBlanks + DaysInMonth.
func BuildMonth(s *State, weekStart time.Weekday) Month {
	c := s.Cursor()
	lead := LeadingBlanks(c.Year, c.Month, weekStart)
	days := DaysInMonth(c.Year, c.Month)

	cells := make([]Cell, lead, lead+days)
	for day := 1; day <= days; day++ {
		d := Date{Year: c.Year, Month: c.Month, Day: day}
		cells = append(cells, Cell{
			Date:     d,
			Today:    s.IsToday(d),
			Selected: s.IsSelected(d),
			HasEvent: s.HasEvent(d),
		})
	}

	return Month{
		Cursor:   c,
		Header:   c.Header(),
		Weekdays: WeekdayLabels(weekStart),
		Cells:    cells,
	}
}
