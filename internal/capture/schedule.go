package capture

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	appLog "monthcal/internal/log"
)

// Scheduler re-captures the month page on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	opts   Options
	run    func(context.Context, Options) error
	onDone func(error)
}

// NewScheduler parses schedule (standard 5-field or a descriptor such as
// "@hourly"). onDone, if set, receives the outcome of every capture.
func NewScheduler(schedule string, opts Options, onDone func(error)) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		opts:   opts,
		run:    MonthPNG,
		onDone: onDone,
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("capture: invalid schedule %q: %w", schedule, err)
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("capture: invalid schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunOnce performs a single capture immediately.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	err := s.run(ctx, s.opts)
	if err != nil {
		appLog.Error("snapshot capture failed", err, "url", s.opts.URL)
	} else {
		appLog.Info("snapshot captured", "path", s.opts.OutputPath)
	}
	if s.onDone != nil {
		s.onDone(err)
	}
	return err
}

// Start begins scheduling in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running capture until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
