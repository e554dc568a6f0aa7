package ics

import (
	"strings"
	"testing"
	"time"

	"monthcal/internal/calendar"
)

func TestExport(t *testing.T) {
	entries := []calendar.Entry{
		{Date: calendar.Date{Year: 2024, Month: time.February, Day: 9}, Event: calendar.Event{Title: "Dentist", Description: "bring card"}},
		{Date: calendar.Date{Year: 2024, Month: time.December, Day: 31}, Event: calendar.Event{Title: "Party"}},
	}
	body := Export(entries, time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC))

	required := []string{
		"BEGIN:VCALENDAR",
		"PRODID:" + productID,
		"METHOD:PUBLISH",
		"SUMMARY:Dentist",
		"DESCRIPTION:bring card",
		"SUMMARY:Party",
		"DTSTART;VALUE=DATE:20240209",
		"DTEND;VALUE=DATE:20240210",
		"DTSTART;VALUE=DATE:20241231",
		"DTEND;VALUE=DATE:20250101",
		"END:VCALENDAR",
	}
	for _, field := range required {
		if !strings.Contains(body, field) {
			t.Errorf("ICS output missing %q", field)
		}
	}
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("VEVENT count = %d, want 2", n)
	}
}

func TestUIDStable(t *testing.T) {
	d := calendar.Date{Year: 2024, Month: time.March, Day: 5}
	if UID(d) != UID(d) {
		t.Fatal("UID not deterministic")
	}
	other := calendar.Date{Year: 2024, Month: time.March, Day: 6}
	if UID(d) == UID(other) {
		t.Fatal("different days share a UID")
	}
	if !strings.HasSuffix(UID(d), "@monthcal") {
		t.Errorf("UID = %q", UID(d))
	}
}
