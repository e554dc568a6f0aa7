package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"

	appLog "monthcal/internal/log"
)

// midnight fires at the start of every local day.
const midnight = "0 0 * * *"

// Run starts the terminal calendar and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	c := cron.New()
	if _, err := c.AddFunc(midnight, func() { p.Send(dayChangedMsg{}) }); err != nil {
		return fmt.Errorf("tui: schedule day rollover: %w", err)
	}
	c.Start()
	defer c.Stop()

	appLog.Debug("terminal calendar started")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
