package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"monthcal/internal/calendar"
	"monthcal/internal/view"
)

// dayChangedMsg is sent when the wall-clock day rolls over, so the today
// marker moves without user input.
type dayChangedMsg struct{}

const (
	fieldTitle = iota
	fieldDescription
)

type styles struct {
	header   lipgloss.Style
	weekday  lipgloss.Style
	today    lipgloss.Style
	selected lipgloss.Style
	event    lipgloss.Style
	focus    lipgloss.Style
	modal    lipgloss.Style
	help     lipgloss.Style
	status   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Width(28).Align(lipgloss.Center),
		weekday:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		today:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#4A6CF7")),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#F7A14A")).Bold(true),
		event:    lipgloss.NewStyle().Underline(true),
		focus:    lipgloss.NewStyle().Reverse(true),
		modal:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E05252")),
	}
}

// Model is the Bubble Tea model of the terminal calendar. The controller
// renders into surface; View draws from it.
type Model struct {
	ctrl    *view.Controller
	surface *view.Recorder

	focus  int
	title  textinput.Model
	desc   textinput.Model
	field  int
	status string
	styles styles
}

// New returns a Model over state.
func New(state *calendar.State, weekStart time.Weekday, hooks ...view.Hook) Model {
	rec := &view.Recorder{}
	opts := []view.Option{view.WithWeekStart(weekStart)}
	for _, h := range hooks {
		opts = append(opts, view.WithHook(h))
	}
	ctrl := view.NewController(state, rec, opts...)
	ctrl.Start()

	title := textinput.New()
	title.Placeholder = "Event Title"
	title.CharLimit = 120
	desc := textinput.New()
	desc.Placeholder = "Event Description"
	desc.CharLimit = 500

	m := Model{
		ctrl:    ctrl,
		surface: rec,
		focus:   1,
		title:   title,
		desc:    desc,
		styles:  defaultStyles(),
	}
	if today := state.Today(); state.Cursor().Contains(today) {
		m.focus = today.Day
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dayChangedMsg:
		m.ctrl.Refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.ctrl.Modal() == view.ModalOpen {
			return m.updateModal(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.moveFocus(-1)
	case "right", "l":
		m.moveFocus(1)
	case "up", "k":
		m.moveFocus(-7)
	case "down", "j":
		m.moveFocus(7)
	case "[":
		m.handle(view.Intent{Kind: view.PrevMonth})
	case "]":
		m.handle(view.Intent{Kind: view.NextMonth})
	case "{":
		m.handle(view.Intent{Kind: view.PrevYear})
	case "}":
		m.handle(view.Intent{Kind: view.NextYear})
	case "t":
		m.handle(view.Intent{Kind: view.Today})
		m.focus = m.ctrl.State().Today().Day
	case "enter", " ":
		m.handle(view.Intent{Kind: view.DayClicked, Day: m.focus})
		if m.ctrl.Modal() == view.ModalOpen {
			return m, m.openEditor()
		}
	}
	m.clampFocus()
	return m, nil
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.handle(view.Intent{Kind: view.CloseModal})
		return m, nil
	case "tab", "shift+tab":
		return m, m.toggleField()
	case "enter":
		m.handle(view.Intent{Kind: view.SaveEvent, Title: m.title.Value(), Description: m.desc.Value()})
		if m.ctrl.Modal() == view.ModalOpen {
			m.status = "a title is required"
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.field == fieldTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.desc, cmd = m.desc.Update(msg)
	}
	return m, cmd
}

func (m *Model) handle(in view.Intent) {
	if err := m.ctrl.Handle(in); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) openEditor() tea.Cmd {
	m.status = ""
	m.title.SetValue(m.surface.ModalEvent.Title)
	m.desc.SetValue(m.surface.ModalEvent.Description)
	m.field = fieldTitle
	m.desc.Blur()
	return m.title.Focus()
}

func (m *Model) toggleField() tea.Cmd {
	if m.field == fieldTitle {
		m.field = fieldDescription
		m.title.Blur()
		return m.desc.Focus()
	}
	m.field = fieldTitle
	m.desc.Blur()
	return m.title.Focus()
}

func (m *Model) moveFocus(delta int) {
	m.focus += delta
	m.clampFocus()
}

func (m *Model) clampFocus() {
	c := m.ctrl.State().Cursor()
	last := calendar.DaysInMonth(c.Year, c.Month)
	if m.focus < 1 {
		m.focus = 1
	}
	if m.focus > last {
		m.focus = last
	}
}

func (m Model) View() string {
	var b strings.Builder

	month := m.surface.Month
	b.WriteString(m.styles.header.Render("« ‹  " + month.Header + "  › »"))
	b.WriteString("\n")
	for _, wd := range m.surface.Weekdays {
		b.WriteString(m.styles.weekday.Render(fmt.Sprintf("%-4s", wd)))
	}
	b.WriteString("\n")

	for i, c := range month.Cells {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderCell(c))
	}
	b.WriteString("\n\n")

	if m.ctrl.Modal() == view.ModalOpen {
		editor := lipgloss.JoinVertical(lipgloss.Left,
			m.surface.ModalDate.Key(),
			m.title.View(),
			m.desc.View(),
		)
		b.WriteString(m.styles.modal.Render(editor))
		b.WriteString("\n")
		b.WriteString(m.styles.help.Render("enter save • tab switch field • esc close"))
	} else {
		b.WriteString(m.styles.help.Render("←↑↓→ move • enter select • [ ] month • { } year • t today • q quit"))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.status.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderCell(c calendar.Cell) string {
	if c.Empty() {
		return "    "
	}
	marker := " "
	if c.HasEvent {
		marker = "*"
	}
	label := fmt.Sprintf("%2d", c.Day())

	style := lipgloss.NewStyle()
	switch {
	case c.Today:
		style = m.styles.today
	case c.Selected:
		style = m.styles.selected
	}
	if c.HasEvent {
		style = style.Inherit(m.styles.event)
	}
	if c.Day() == m.focus && m.ctrl.Modal() == view.ModalClosed {
		style = style.Inherit(m.styles.focus)
	}
	return " " + style.Render(label) + marker
}
