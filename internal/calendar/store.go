package calendar

import "sort"

// Event is the title/description record attached to a day.
type Event struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Entry pairs an Event with its day, for listings and exports.
type Entry struct {
	Date  Date
	Event Event
}

// Store maps days to events. A day holds at most one event; saving again
// replaces it. Records are never deleted.
type Store struct {
	events map[Date]Event
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{events: make(map[Date]Event)}
}

// Save stores ev under d and reports whether it did. An event without a
// title is not stored.
func (s *Store) Save(d Date, ev Event) bool {
	if ev.Title == "" {
		return false
	}
	s.events[d] = ev
	return true
}

// Has reports whether d has an event.
func (s *Store) Has(d Date) bool {
	_, ok := s.events[d]
	return ok
}

// Get returns the event stored under d.
func (s *Store) Get(d Date) (Event, bool) {
	ev, ok := s.events[d]
	return ev, ok
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	return len(s.events)
}

// Entries returns all events ordered by day.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.events))
	for d, ev := range s.events {
		out = append(out, Entry{Date: d, Event: ev})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
