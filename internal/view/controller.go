package view

import (
	"errors"
	"fmt"
	"time"

	"monthcal/internal/calendar"
)

// ErrNoSelection is returned when an event is saved before any day was
// selected.
var ErrNoSelection = errors.New("no date selected")

// ErrModalClosed is returned when an event is saved while the editor is not
// open.
var ErrModalClosed = errors.New("event editor is not open")

// ModalState is the state of the event editing surface.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
)

func (m ModalState) String() string {
	if m == ModalOpen {
		return "open"
	}
	return "closed"
}

// Surface is the presentation side of the widget. The controller tells it
// what to show; it never reads state back.
type Surface interface {
	RenderWeekdays(labels [7]string)
	RenderMonth(m calendar.Month)
	// ShowModal opens the editor for d. existing is the event already stored
	// for d, valid when found is true.
	ShowModal(d calendar.Date, existing calendar.Event, found bool)
	HideModal()
}

// Hook observes every handled intent together with its outcome.
type Hook func(in Intent, err error)

// Option configures a Controller.
type Option func(*Controller)

// WithWeekStart sets the first column of the grid.
func WithWeekStart(ws time.Weekday) Option {
	return func(c *Controller) { c.weekStart = ws }
}

// WithHook registers h to be called after each Handle.
func WithHook(h Hook) Option {
	return func(c *Controller) {
		if h != nil {
			c.hooks = append(c.hooks, h)
		}
	}
}

// Controller turns surface intents into state changes and re-renders the
// whole month after each one. It is not safe for concurrent use.
type Controller struct {
	state     *calendar.State
	surface   Surface
	modal     ModalState
	weekStart time.Weekday
	hooks     []Hook
}

// NewController wires state to surface. Call Start before handling intents.
func NewController(state *calendar.State, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		state:     state,
		surface:   surface,
		weekStart: time.Sunday,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start renders the weekday header and the current month.
func (c *Controller) Start() {
	c.surface.RenderWeekdays(calendar.WeekdayLabels(c.weekStart))
	c.Refresh()
}

// Refresh re-derives the month and hands it to the surface.
func (c *Controller) Refresh() {
	c.surface.RenderMonth(c.Month())
}

// Month derives the current month without rendering it.
func (c *Controller) Month() calendar.Month {
	return calendar.BuildMonth(c.state, c.weekStart)
}

// Modal returns the editor state.
func (c *Controller) Modal() ModalState {
	return c.modal
}

// State exposes the underlying calendar state for read-only surfaces.
func (c *Controller) State() *calendar.State {
	return c.state
}

// WeekStart returns the first weekday column.
func (c *Controller) WeekStart() time.Weekday {
	return c.weekStart
}

// Handle applies in. An empty title on save is not an error: nothing changes
// and the modal stays open.
func (c *Controller) Handle(in Intent) error {
	err := c.handle(in)
	for _, h := range c.hooks {
		h(in, err)
	}
	return err
}

func (c *Controller) handle(in Intent) error {
	switch in.Kind {
	case DayClicked:
		return c.clickDay(in.Day)
	case PrevYear:
		c.state.ChangeYear(-1)
	case NextYear:
		c.state.ChangeYear(1)
	case PrevMonth:
		c.state.ChangeMonth(-1)
	case NextMonth:
		c.state.ChangeMonth(1)
	case Today:
		c.state.GoToToday()
	case CloseModal, OutsideModalClicked:
		c.closeModal()
		return nil
	case SaveEvent:
		return c.save(in.Title, in.Description)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownIntent, in.Kind)
	}
	c.Refresh()
	return nil
}

func (c *Controller) clickDay(day int) error {
	cur := c.state.Cursor()
	if err := c.state.SelectDate(cur.Year, cur.Month, day); err != nil {
		return err
	}
	c.Refresh()

	d, _ := c.state.Selected()
	ev, found := c.state.Event(d)
	c.modal = ModalOpen
	c.surface.ShowModal(d, ev, found)
	return nil
}

func (c *Controller) save(title, description string) error {
	if c.modal != ModalOpen {
		return ErrModalClosed
	}
	d, ok := c.state.Selected()
	if !ok {
		return ErrNoSelection
	}
	if !c.state.SaveEvent(d, title, description) {
		return nil
	}
	c.Refresh()
	c.closeModal()
	return nil
}

func (c *Controller) closeModal() {
	c.modal = ModalClosed
	c.surface.HideModal()
}
