package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"monthcal/internal/calendar"
	"monthcal/internal/capture"
	"monthcal/internal/config"
	appLog "monthcal/internal/log"
	"monthcal/internal/metric"
	"monthcal/internal/tui"
	"monthcal/internal/web"
)

var version = "0.1.0-dev"

type flagConfig struct {
	configPath string
	envPath    string
	listen     string
	tui        bool
	snapshot   string
	debug      bool
}

func main() {
	flags := parseFlags()

	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}
	if flags.tui {
		// The terminal UI owns the screen.
		appLog.SetOutput(io.Discard)
	}
	appLog.Info("monthcal starting", "version", version)

	if err := config.LoadDotEnv(flags.envPath); err != nil {
		appLog.Error("failed to load env file", err, "path", flags.envPath)
	}
	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	conf.ApplyEnv()
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"week_start", conf.WeekStart,
		"metrics", conf.Metrics,
		"snapshot_cron", conf.Snapshot.Cron,
		"tui", flags.tui,
		"snapshot", flags.snapshot,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	state := calendar.NewState(time.Now)

	switch {
	case flags.tui:
		err = runTUI(ctx, conf, state)
	case flags.snapshot != "":
		err = runSnapshot(ctx, conf, state, flags.snapshot, flags.debug)
	default:
		err = runServer(ctx, conf, state, flags.debug)
	}
	if err != nil {
		appLog.Error("monthcal failed", err)
		os.Exit(1)
	}
	appLog.Info("monthcal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "./monthcal.yaml", "Path to config file")
	flag.StringVar(&cfg.envPath, "env", ".env", "Path to an optional .env file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.tui, "tui", false, "Run the terminal calendar instead of the web server")
	flag.StringVar(&cfg.snapshot, "snapshot", "", "Capture the month page to this PNG path and exit")
	flag.BoolVar(&cfg.debug, "debug", false, "Output debug messages")

	flag.Parse()

	return cfg
}

func runTUI(ctx context.Context, conf *config.Config, state *calendar.State) error {
	return tui.Run(ctx, tui.New(state, conf.Weekday()))
}

func runServer(ctx context.Context, conf *config.Config, state *calendar.State, debug bool) error {
	metrics := metric.New()
	srv := web.NewServer(conf, state, web.WithMetrics(metrics), web.WithDebug(debug))

	// The page is rendered from the last derived month; re-derive it when
	// the day rolls over so the today marker follows the clock.
	rollover := cron.New()
	if _, err := rollover.AddFunc("0 0 * * *", srv.Refresh); err != nil {
		return fmt.Errorf("schedule day rollover: %w", err)
	}
	rollover.Start()
	defer rollover.Stop()

	if conf.Snapshot.Cron != "" {
		sched, err := capture.NewScheduler(conf.Snapshot.Cron, snapshotOptions(conf, conf.Listen, conf.Snapshot.Path), metrics.Captured)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), capture.DefaultTimeout)
			defer cancel()
			sched.Stop(stopCtx)
		}()
	}

	return srv.Serve(ctx)
}

// runSnapshot serves the page on a loopback port just long enough to
// capture it once.
func runSnapshot(ctx context.Context, conf *config.Config, state *calendar.State, out string, debug bool) error {
	srv := web.NewServer(conf, state, web.WithDebug(debug))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("snapshot: listen: %w", err)
	}

	srvCtx, stop := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ServeListener(srvCtx, ln) }()

	err = capture.MonthPNG(ctx, snapshotOptions(conf, ln.Addr().String(), out))
	stop()
	if serr := <-errCh; serr != nil && err == nil {
		err = serr
	}
	if err == nil {
		appLog.Info("snapshot written", "path", out)
	}
	return err
}

// snapshotOptions points a capture at the server listening on listen.
func snapshotOptions(conf *config.Config, listen, out string) capture.Options {
	addr := listen
	if host, port, err := net.SplitHostPort(addr); err == nil && (host == "" || host == "0.0.0.0" || host == "::") {
		addr = net.JoinHostPort("127.0.0.1", port)
	}
	opts := capture.Options{
		URL:        "http://" + addr + "/",
		OutputPath: out,
		Width:      conf.Snapshot.Width,
		Height:     conf.Snapshot.Height,
	}
	if conf.BasicAuth != nil {
		opts.Username = conf.BasicAuth.Username
		opts.Password = conf.BasicAuth.Password
	}
	return opts
}
