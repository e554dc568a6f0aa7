package web

import (
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"monthcal/internal/calendar"
	"monthcal/internal/config"
	appLog "monthcal/internal/log"
	"monthcal/internal/metric"
	"monthcal/internal/view"
)

// Server is the browser surface of the calendar. It owns a single
// Controller; mu serializes every request that touches it, so each
// handler runs to completion before the next sees the state.
type Server struct {
	cfg     *config.Config
	debug   bool
	mux     *http.ServeMux
	metrics *metric.Recorder
	now     calendar.Clock

	mu   sync.Mutex
	page *pageSurface
	ctrl *view.Controller

	tmpl *template.Template
}

//go:embed templates/*.html static/*
var assets embed.FS

// Option configures a Server.
type Option func(*Server)

// WithMetrics records intents and renders on m and serves /metrics.
func WithMetrics(m *metric.Recorder) Option {
	return func(s *Server) { s.metrics = m }
}

// WithClock sets the clock used for ICS timestamps.
func WithClock(now calendar.Clock) Option {
	return func(s *Server) { s.now = now }
}

// WithDebug enables debug behavior (verbose intent logging).
func WithDebug(debug bool) Option {
	return func(s *Server) { s.debug = debug }
}

// NewServer constructs a Server around state.
func NewServer(cfg *config.Config, state *calendar.State, opts ...Option) *Server {
	s := &Server{
		cfg:  cfg,
		mux:  http.NewServeMux(),
		now:  time.Now,
		tmpl: template.Must(template.New("").Funcs(templateFuncs).ParseFS(assets, "templates/*.html")),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.page = &pageSurface{metrics: s.metrics}
	ctrlOpts := []view.Option{
		view.WithWeekStart(cfg.Weekday()),
		view.WithHook(s.observe),
	}
	if s.metrics != nil {
		ctrlOpts = append(ctrlOpts, view.WithHook(s.metrics.Hook()))
	}
	s.ctrl = view.NewController(state, s.page, ctrlOpts...)
	s.ctrl.Start()

	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// Dispatch applies one intent under the server lock.
func (s *Server) Dispatch(in view.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Handle(in)
}

// Refresh re-renders the month, e.g. after the wall-clock day changed.
func (s *Server) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Refresh()
}

func (s *Server) observe(in view.Intent, err error) {
	if s.metrics != nil {
		s.metrics.SetEvents(s.ctrl.State().EventCount())
	}
	if err != nil {
		appLog.Warn("intent rejected", "intent", in.Kind.String(), "day", in.Day, "err", err)
		return
	}
	if s.debug {
		appLog.Debug("intent handled", "intent", in.Kind.String(), "day", in.Day, "modal", s.ctrl.Modal().String())
	}
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password disables auth.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="monthcal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Serve listens on cfg.Listen until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", s.cfg.Listen, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on an already bound listener until ctx is canceled.
// The listener is closed on return.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+ln.Addr().String(), "debug", s.debug)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	appLog.Info("HTTP server stopped")
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("POST /intent", s.handleFormIntent)
	s.mux.HandleFunc("GET /api/month", s.handleMonth)
	s.mux.HandleFunc("POST /api/intents", s.handleAPIIntent)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)
	s.mux.HandleFunc("GET /events.ics", s.handleICS)
	s.mux.HandleFunc("GET /preview.png", s.handlePreview)
	s.mux.Handle("GET /static/", s.staticFileServer())
	if s.metrics != nil && s.cfg.Metrics {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		appLog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "static assets not available", http.StatusServiceUnavailable)
		})
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// handlePreview serves the last snapshot PNG from disk.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, s.cfg.Snapshot.Path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

// statusFor maps controller errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, calendar.ErrInvalidDate), errors.Is(err, view.ErrUnknownIntent):
		return http.StatusBadRequest
	case errors.Is(err, view.ErrNoSelection), errors.Is(err, view.ErrModalClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
