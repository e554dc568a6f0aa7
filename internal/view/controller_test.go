package view

import (
	"errors"
	"testing"
	"time"

	"monthcal/internal/calendar"
)

func newTestController(opts ...Option) (*Controller, *Recorder) {
	clock := func() time.Time { return time.Date(2024, time.March, 3, 9, 0, 0, 0, time.Local) }
	rec := &Recorder{}
	c := NewController(calendar.NewState(clock), rec, opts...)
	c.Start()
	return c, rec
}

func TestStartRenders(t *testing.T) {
	_, rec := newTestController()
	if rec.Weekdays[0] != "Sun" || rec.Weekdays[6] != "Sat" {
		t.Errorf("weekdays = %v", rec.Weekdays)
	}
	if rec.Month.Header != "March 2024" {
		t.Errorf("header = %q", rec.Month.Header)
	}
	if rec.Renders != 1 {
		t.Errorf("renders = %d, want 1", rec.Renders)
	}
}

func TestNavigationIntents(t *testing.T) {
	tests := []struct {
		intents []Kind
		want    string
	}{
		{[]Kind{NextMonth}, "April 2024"},
		{[]Kind{PrevMonth, PrevMonth, PrevMonth}, "December 2023"},
		{[]Kind{NextYear}, "March 2025"},
		{[]Kind{PrevYear, PrevYear}, "March 2022"},
		{[]Kind{NextMonth, NextYear, Today}, "March 2024"},
	}
	for _, tt := range tests {
		c, rec := newTestController()
		for _, k := range tt.intents {
			if err := c.Handle(Intent{Kind: k}); err != nil {
				t.Fatalf("Handle(%s): %v", k, err)
			}
		}
		if rec.Month.Header != tt.want {
			t.Errorf("%v: header = %q, want %q", tt.intents, rec.Month.Header, tt.want)
		}
		if rec.Renders != 1+len(tt.intents) {
			t.Errorf("%v: renders = %d", tt.intents, rec.Renders)
		}
	}
}

func TestModalLifecycle(t *testing.T) {
	c, rec := newTestController()

	if err := c.Handle(Intent{Kind: DayClicked, Day: 15}); err != nil {
		t.Fatal(err)
	}
	if c.Modal() != ModalOpen || !rec.ModalOpen {
		t.Fatal("day click did not open the modal")
	}
	if rec.ModalDate != (calendar.Date{Year: 2024, Month: time.March, Day: 15}) {
		t.Errorf("modal date = %v", rec.ModalDate)
	}

	// Empty title: nothing changes, modal stays open.
	renders := rec.Renders
	if err := c.Handle(Intent{Kind: SaveEvent, Title: "", Description: "x"}); err != nil {
		t.Fatal(err)
	}
	if c.Modal() != ModalOpen || rec.Renders != renders {
		t.Fatal("empty title changed state")
	}

	if err := c.Handle(Intent{Kind: SaveEvent, Title: "Meeting"}); err != nil {
		t.Fatal(err)
	}
	if c.Modal() != ModalClosed || rec.ModalOpen {
		t.Fatal("save did not close the modal")
	}
	cell := rec.Month.Cells[calendar.LeadingBlanks(2024, time.March, time.Sunday)+14]
	if !cell.HasEvent || !cell.Selected || cell.Day() != 15 {
		t.Errorf("cell after save = %+v", cell)
	}

	// Reopening shows the stored event.
	_ = c.Handle(Intent{Kind: DayClicked, Day: 15})
	if !rec.ModalFound || rec.ModalEvent.Title != "Meeting" {
		t.Errorf("reopened modal = %+v found=%v", rec.ModalEvent, rec.ModalFound)
	}
	_ = c.Handle(Intent{Kind: OutsideModalClicked})
	if c.Modal() != ModalClosed {
		t.Fatal("outside click did not close the modal")
	}
	_ = c.Handle(Intent{Kind: DayClicked, Day: 2})
	_ = c.Handle(Intent{Kind: CloseModal})
	if c.Modal() != ModalClosed {
		t.Fatal("close did not close the modal")
	}
}

func TestDayClickOutOfRange(t *testing.T) {
	c, rec := newTestController()
	c.Handle(Intent{Kind: NextMonth}) // April has 30 days
	err := c.Handle(Intent{Kind: DayClicked, Day: 31})
	if !errors.Is(err, calendar.ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
	if c.Modal() != ModalClosed || rec.ModalOpen {
		t.Fatal("modal opened for an invalid day")
	}
}

func TestSaveWithoutSelection(t *testing.T) {
	c, _ := newTestController()
	if err := c.Handle(Intent{Kind: SaveEvent, Title: "x"}); !errors.Is(err, ErrModalClosed) {
		t.Fatalf("err = %v, want ErrModalClosed", err)
	}
	if c.State().EventCount() != 0 {
		t.Error("event stored without a selection")
	}
}

func TestSaveRequiresOpenModal(t *testing.T) {
	march10 := calendar.Date{Year: 2024, Month: time.March, Day: 10}
	for _, dismiss := range []Kind{CloseModal, OutsideModalClicked} {
		t.Run(dismiss.String(), func(t *testing.T) {
			c, rec := newTestController()
			_ = c.Handle(Intent{Kind: DayClicked, Day: 10})
			_ = c.Handle(Intent{Kind: dismiss})
			renders := rec.Renders

			err := c.Handle(Intent{Kind: SaveEvent, Title: "Lunch"})
			if !errors.Is(err, ErrModalClosed) {
				t.Fatalf("err = %v, want ErrModalClosed", err)
			}
			if c.State().HasEvent(march10) {
				t.Error("event stored while the modal was closed")
			}
			if c.Modal() != ModalClosed || rec.Renders != renders {
				t.Error("rejected save changed the view")
			}
			if d, ok := c.State().Selected(); !ok || d != march10 {
				t.Errorf("selection = %v, %v", d, ok)
			}
		})
	}
}

func TestWhitespaceTitleSaved(t *testing.T) {
	c, rec := newTestController()
	_ = c.Handle(Intent{Kind: DayClicked, Day: 10})
	if err := c.Handle(Intent{Kind: SaveEvent, Title: " "}); err != nil {
		t.Fatal(err)
	}
	if c.Modal() != ModalClosed || rec.ModalOpen {
		t.Fatal("save with a blank title left the modal open")
	}
	ev, ok := c.State().Event(calendar.Date{Year: 2024, Month: time.March, Day: 10})
	if !ok || ev.Title != " " {
		t.Errorf("event = %+v, %v", ev, ok)
	}
}

func TestHookAndWeekStart(t *testing.T) {
	var seen []Kind
	c, rec := newTestController(
		WithWeekStart(time.Monday),
		WithHook(func(in Intent, err error) { seen = append(seen, in.Kind) }),
	)
	if rec.Weekdays[0] != "Mon" {
		t.Errorf("weekdays = %v", rec.Weekdays)
	}
	_ = c.Handle(Intent{Kind: NextMonth})
	_ = c.Handle(Intent{Kind: Kind(99)})
	if len(seen) != 2 || seen[0] != NextMonth {
		t.Errorf("hook saw %v", seen)
	}
}

func TestParseKind(t *testing.T) {
	for k, name := range kindNames {
		got, err := ParseKind(name)
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseKind("jump"); !errors.Is(err, ErrUnknownIntent) {
		t.Errorf("err = %v", err)
	}
}
