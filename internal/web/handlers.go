package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/hpungsan/advent/internal/clock"
	"github.com/hpungsan/advent/internal/errors"
	"github.com/hpungsan/advent/internal/ops"
)

// notices maps the notice query parameter to the banner shown on the calendar.
var notices = map[string]string{
	"reset": "The calendar was reset. Every day is closed again.",
	"clock": "The calendar clock was updated.",
}

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	svc      *ops.Service
	log      zerolog.Logger
	renderer *Renderer
	metrics  *Metrics
	registry *prometheus.Registry
}

// pageData fills the fields shared by every page.
func (h *Handlers) pageData(ctx context.Context, title, nav string) PageData {
	p := PageData{
		Title:   title,
		Version: h.renderer.version,
		Nav:     nav,
		Today:   h.svc.Engine().Now().Format(clock.DateLayout),
	}
	if c, err := h.svc.Clock(ctx); err == nil {
		p.SimulatedDate = c.SimulatedDate
	}
	return p
}

// HandleCalendar handles GET /calendar: the grid of all days.
func (h *Handlers) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	page := h.pageData(r.Context(), "Advent Calendar", "calendar")

	result, err := h.svc.List(r.Context(), ops.ListInput{
		OpenedOnly: parseBoolParam(r, "opened_only"),
	})
	if err != nil {
		h.renderer.renderError(w, r, page, err)
		return
	}
	h.metrics.setProgress(result.Progress)

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	percent := 0
	if result.Total > 0 {
		percent = result.Progress * 100 / result.Total
	}
	h.renderer.renderPage(w, "calendar", CalendarPageData{
		PageData: page,
		Items:    result.Items,
		Progress: result.Progress,
		Total:    result.Total,
		Percent:  percent,
		Notice:   notices[r.URL.Query().Get("notice")],
	})
}

// HandleDay handles GET /days/{id}: one day, with content if opened.
func (h *Handlers) HandleDay(w http.ResponseWriter, r *http.Request) {
	page := h.pageData(r.Context(), "Advent Calendar", "calendar")

	day, err := parseDay(r)
	if err != nil {
		h.renderer.renderError(w, r, page, err)
		return
	}

	if wantsJSON(r) {
		result, err := h.svc.Show(r.Context(), ops.ShowInput{Day: day})
		if err != nil {
			h.renderer.renderError(w, r, page, err)
			return
		}
		renderJSON(w, http.StatusOK, result)
		return
	}

	if err := ops.ValidateDay(day); err != nil {
		h.renderer.renderError(w, r, page, err)
		return
	}
	list, err := h.svc.List(r.Context(), ops.ListInput{})
	if err != nil {
		h.renderer.renderError(w, r, page, err)
		return
	}
	item := list.Items[day-1]

	page.Title = dayLabel(day)
	h.renderer.renderPage(w, "day", DayPageData{
		PageData: page,
		Item:     item,
		Rendered: renderContent(item.EntrySummary),
	})
}

// HandleOpen handles POST /days/{id}/open: open a day if its date has come.
func (h *Handlers) HandleOpen(w http.ResponseWriter, r *http.Request) {
	page := h.pageData(r.Context(), "Advent Calendar", "calendar")

	day, err := parseDay(r)
	if err != nil {
		h.renderer.renderError(w, r, page, err)
		return
	}

	result, err := h.svc.Open(r.Context(), ops.OpenInput{Day: day})
	if err != nil {
		outcome := "error"
		if aErr, ok := err.(*errors.AdventError); ok {
			outcome = strings.ToLower(string(aErr.Code))
		}
		h.metrics.observeOpen(outcome, h.svc.Engine().Progress())
		h.renderer.renderError(w, r, page, err)
		return
	}
	h.metrics.observeOpen("opened", result.Progress)

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/days/%d", day), http.StatusSeeOther)
}

// HandleReset handles POST /reset: close every day.
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	page := h.pageData(r.Context(), "Advent Calendar", "calendar")

	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, page, errors.NewInvalidRequest("invalid form data"))
		return
	}
	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, page, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	result, err := h.svc.Reset(r.Context())
	if err != nil {
		h.renderer.renderError(w, r, page, err)
		return
	}
	h.metrics.setProgress(0)

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/calendar?notice=reset", http.StatusSeeOther)
}

// HandleClock handles POST /clock: set or clear the simulated date.
func (h *Handlers) HandleClock(w http.ResponseWriter, r *http.Request) {
	page := h.pageData(r.Context(), "Advent Calendar", "calendar")

	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, page, errors.NewInvalidRequest("invalid form data"))
		return
	}

	result, err := h.svc.SetClock(r.Context(), ops.ClockInput{Date: r.FormValue("date")})
	if err != nil {
		h.renderer.renderError(w, r, page, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/calendar?notice=clock", http.StatusSeeOther)
}

// HandleHistory handles GET /history: the open journal.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	page := h.pageData(r.Context(), "History", "history")

	outcome := r.URL.Query().Get("outcome")
	result, err := h.svc.History(r.Context(), ops.HistoryInput{
		Outcome: ptrString(outcome),
		Limit:   parseIntParam(r, "limit", ops.DefaultHistoryLimit),
		Offset:  parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, page, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, "history", HistoryPageData{
		PageData:   page,
		Items:      result.Items,
		Pagination: result.Pagination,
		Outcome:    outcome,
	})
}

// parseDay reads the {id} path value.
func parseDay(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	day, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("day must be an integer, got %q", raw))
	}
	return day, nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}

// ptrString returns a pointer to s if non-empty, nil otherwise.
func ptrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
