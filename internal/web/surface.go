package web

import (
	"monthcal/internal/calendar"
	"monthcal/internal/metric"
	"monthcal/internal/view"
)

// pageSurface records what the controller last asked to display; pages and
// API responses are rendered from it on demand.
type pageSurface struct {
	view.Recorder
	metrics *metric.Recorder
}

func (p *pageSurface) RenderMonth(m calendar.Month) {
	p.Recorder.RenderMonth(m)
	if p.metrics != nil {
		p.metrics.Rendered()
	}
}

type cellDTO struct {
	Day      int    `json:"day,omitempty"`
	Key      string `json:"key,omitempty"`
	Empty    bool   `json:"empty"`
	Today    bool   `json:"today"`
	Selected bool   `json:"selected"`
	HasEvent bool   `json:"has_event"`
}

type modalDTO struct {
	State       string `json:"state"`
	DateKey     string `json:"date_key,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// monthResponse is the JSON shape of /api/month and /api/intents.
type monthResponse struct {
	Header    string    `json:"header"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	WeekStart string    `json:"week_start"`
	Weekdays  [7]string `json:"weekdays"`
	Cells     []cellDTO `json:"cells"`
	Modal     modalDTO  `json:"modal"`
}

type eventDTO struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type eventsResponse struct {
	Events []eventDTO `json:"events"`
}

func (p *pageSurface) monthResponse(weekStart string) monthResponse {
	m := p.Month
	cells := make([]cellDTO, 0, len(m.Cells))
	for _, c := range m.Cells {
		if c.Empty() {
			cells = append(cells, cellDTO{Empty: true})
			continue
		}
		cells = append(cells, cellDTO{
			Day:      c.Day(),
			Key:      c.Date.Key(),
			Today:    c.Today,
			Selected: c.Selected,
			HasEvent: c.HasEvent,
		})
	}

	modal := modalDTO{State: view.ModalClosed.String()}
	if p.ModalOpen {
		modal = modalDTO{
			State:       view.ModalOpen.String(),
			DateKey:     p.ModalDate.Key(),
			Title:       p.ModalEvent.Title,
			Description: p.ModalEvent.Description,
		}
	}

	return monthResponse{
		Header:    m.Header,
		Year:      m.Cursor.Year,
		Month:     int(m.Cursor.Month),
		WeekStart: weekStart,
		Weekdays:  p.Weekdays,
		Cells:     cells,
		Modal:     modal,
	}
}
