package ics

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"monthcal/internal/calendar"
)

const productID = "-//monthcal//Month Calendar//EN"

// UID returns a stable iCalendar UID for the event stored on d. The same day
// always yields the same UID, so re-exports update rather than duplicate
// entries in subscribing clients.
func UID(d calendar.Date) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("monthcal:"+d.Key())).String() + "@monthcal"
}

// Build converts entries into a VCALENDAR with one all-day VEVENT each.
// stamp is written as DTSTAMP.
func Build(entries []calendar.Entry, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range entries {
		start := e.Date.Time(time.Local)
		ev := cal.AddEvent(UID(e.Date))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
		ev.SetSummary(e.Event.Title)
		if e.Event.Description != "" {
			ev.SetDescription(e.Event.Description)
		}
	}
	return cal
}

// Export renders entries as an iCalendar document.
func Export(entries []calendar.Entry, stamp time.Time) string {
	return Build(entries, stamp).Serialize()
}

// Write renders entries as an iCalendar document to w.
func Write(w io.Writer, entries []calendar.Entry, stamp time.Time) error {
	_, err := io.WriteString(w, Export(entries, stamp))
	return err
}
