package view

import "monthcal/internal/calendar"

// Recorder is a Surface that keeps the last thing it was told to show.
// Surfaces that draw on demand (HTTP pages, terminal frames) embed it and
// render from its fields.
type Recorder struct {
	Weekdays [7]string
	Month    calendar.Month
	Renders  int

	ModalOpen  bool
	ModalDate  calendar.Date
	ModalEvent calendar.Event
	ModalFound bool
}

func (r *Recorder) RenderWeekdays(labels [7]string) {
	r.Weekdays = labels
}

func (r *Recorder) RenderMonth(m calendar.Month) {
	r.Month = m
	r.Renders++
}

func (r *Recorder) ShowModal(d calendar.Date, existing calendar.Event, found bool) {
	r.ModalOpen = true
	r.ModalDate = d
	r.ModalEvent = existing
	r.ModalFound = found
}

func (r *Recorder) HideModal() {
	r.ModalOpen = false
	r.ModalDate = calendar.Date{}
	r.ModalEvent = calendar.Event{}
	r.ModalFound = false
}
