package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"monthcal/internal/calendar"
	"monthcal/internal/ics"
	appLog "monthcal/internal/log"
	"monthcal/internal/view"
)

// maxIntentBody bounds the size of an intent request body.
const maxIntentBody = 64 << 10

var templateFuncs = template.FuncMap{
	"cellClass": func(c calendar.Cell) string {
		classes := []string{"calendar-day"}
		if c.Today {
			classes = append(classes, "today")
		}
		if c.Selected {
			classes = append(classes, "selected")
		}
		if c.HasEvent {
			classes = append(classes, "has-event")
		}
		return strings.Join(classes, " ")
	},
}

type pageData struct {
	Weekdays [7]string
	Month    calendar.Month
	Modal    bool
	Date     calendar.Date
	Event    calendar.Event
}

// handlePage renders the month page from the last rendering request.
func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	data := pageData{
		Weekdays: s.page.Weekdays,
		Month:    s.page.Month,
		Modal:    s.page.ModalOpen,
		Date:     s.page.ModalDate,
		Event:    s.page.ModalEvent,
	}
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "month.html", data); err != nil {
		appLog.Error("failed to render month page", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// handleFormIntent accepts the page's form posts:
//
//	intent=next-month
//	intent=day&day=15
//	intent=save&title=...&description=...
func (s *Server) handleFormIntent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxIntentBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in, err := intentFrom(r.PostForm.Get("intent"), r.PostForm.Get("day"), r.PostForm.Get("title"), r.PostForm.Get("description"))
	if err == nil {
		err = s.Dispatch(in)
	}
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type intentRequest struct {
	Intent      string `json:"intent"`
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// handleAPIIntent is the JSON counterpart of handleFormIntent. It answers
// with the re-derived month.
func (s *Server) handleAPIIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxIntentBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	kind, err := view.ParseKind(req.Intent)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	in := view.Intent{Kind: kind, Day: req.Day, Title: req.Title, Description: req.Description}

	s.mu.Lock()
	err = s.ctrl.Handle(in)
	resp := s.page.monthResponse(s.cfg.WeekStart)
	s.mu.Unlock()

	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMonth(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	resp := s.page.monthResponse(s.cfg.WeekStart)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	entries := s.ctrl.State().Events()
	s.mu.Unlock()

	resp := eventsResponse{Events: make([]eventDTO, 0, len(entries))}
	for _, e := range entries {
		resp.Events = append(resp.Events, eventDTO{
			Key:         e.Date.Key(),
			Title:       e.Event.Title,
			Description: e.Event.Description,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleICS(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	entries := s.ctrl.State().Events()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="monthcal.ics"`)
	if err := ics.Write(w, entries, s.now()); err != nil {
		appLog.Error("failed to write ICS export", err)
	}
}

// intentFrom builds an Intent from form values.
func intentFrom(name, day, title, description string) (view.Intent, error) {
	kind, err := view.ParseKind(name)
	if err != nil {
		return view.Intent{}, err
	}
	in := view.Intent{Kind: kind, Title: title, Description: description}
	if kind == view.DayClicked {
		n, err := strconv.Atoi(day)
		if err != nil {
			return view.Intent{}, calendar.ErrInvalidDate
		}
		in.Day = n
	}
	return in, nil
}
