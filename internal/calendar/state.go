package calendar

import "time"

// Clock returns the current wall-clock time. Tests inject a fixed one.
type Clock func() time.Time

// State is the calendar widget state: the displayed month, the optional
// selected day, and the event store. It has no side effects and is not safe
// for concurrent use; callers serialize access.
type State struct {
	cursor   Cursor
	selected Date
	hasSel   bool
	events   *Store
	now      Clock
}

// NewState returns a State showing the current month of now. A nil clock
// means time.Now.
func NewState(now Clock) *State {
	if now == nil {
		now = time.Now
	}
	return &State{
		cursor: CursorOf(now()),
		events: NewStore(),
		now:    now,
	}
}

// Cursor returns the displayed month.
func (s *State) Cursor() Cursor {
	return s.cursor
}

// SetCursor displays the given month.
func (s *State) SetCursor(c Cursor) {
	s.cursor = c.AddMonths(0)
}

// Today returns the current local day according to the state's clock.
func (s *State) Today() Date {
	return DateOf(s.now())
}

// Selected returns the selected day, if any.
func (s *State) Selected() (Date, bool) {
	return s.selected, s.hasSel
}

// ChangeMonth moves the cursor by delta months.
func (s *State) ChangeMonth(delta int) {
	s.cursor = s.cursor.AddMonths(delta)
}

// ChangeYear moves the cursor by delta years.
func (s *State) ChangeYear(delta int) {
	s.cursor = s.cursor.AddYears(delta)
}

// GoToToday resets the cursor to the current month. The selection is kept.
func (s *State) GoToToday() {
	s.cursor = CursorOf(s.now())
}

// SelectDate marks the given day as selected. The cursor does not move.
func (s *State) SelectDate(year int, month time.Month, day int) error {
	d, err := NewDate(year, month, day)
	if err != nil {
		return err
	}
	s.selected = d
	s.hasSel = true
	return nil
}

// IsToday reports whether d is the current local day.
func (s *State) IsToday(d Date) bool {
	return d == s.Today()
}

// IsSelected reports whether d is the selected day.
func (s *State) IsSelected(d Date) bool {
	return s.hasSel && d == s.selected
}

// SaveEvent stores an event for d, replacing any previous one. It does
// nothing and returns false when title is empty or d is not a real day.
func (s *State) SaveEvent(d Date, title, description string) bool {
	if !d.Valid() {
		return false
	}
	return s.events.Save(d, Event{Title: title, Description: description})
}

// HasEvent reports whether d has an event.
func (s *State) HasEvent(d Date) bool {
	return s.events.Has(d)
}

// Event returns the event stored for d.
func (s *State) Event(d Date) (Event, bool) {
	return s.events.Get(d)
}

// Events returns every stored event ordered by day.
func (s *State) Events() []Entry {
	return s.events.Entries()
}

// EventCount returns the number of stored events.
func (s *State) EventCount() int {
	return s.events.Len()
}
