package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"

	"github.com/hpungsan/advent/internal/calendar"
	"github.com/hpungsan/advent/internal/db"
	"github.com/hpungsan/advent/internal/errors"
	"github.com/hpungsan/advent/internal/ops"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title         string
	Version       string
	Nav           string // active nav item: "calendar", "history"
	Today         string
	SimulatedDate string
}

// CalendarPageData is the template data for the calendar grid.
type CalendarPageData struct {
	PageData
	Items    []ops.ListItem
	Progress int
	Total    int
	Percent  int
	Notice   string
}

// DayPageData is the template data for a single day.
type DayPageData struct {
	PageData
	Item     ops.ListItem
	Rendered template.HTML
}

// HistoryPageData is the template data for the open journal.
type HistoryPageData struct {
	PageData
	Items      []db.Event
	Pagination ops.Pagination
	Outcome    string
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
	log       zerolog.Logger
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string, log zerolog.Logger) *Renderer {
	funcMap := template.FuncMap{
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"formatTime": formatTime,
		"dayLabel":   dayLabel,
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"calendar": "calendar.html",
		"day":      "day.html",
		"history":  "history.html",
		"error":    "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
		log:       log,
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		r.log.Error().Str("template", name).Msg("template not found")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.log.Error().Err(err).Str("template", name).Msg("template execution error")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, page PageData, err error) {
	var aErr *errors.AdventError
	if !stderrors.As(err, &aErr) {
		aErr = errors.NewInternal(err)
	}

	status := aErr.Status
	message := aErr.Message
	if aErr.Code == errors.ErrInternal {
		r.log.Error().Err(err).Str("path", req.URL.Path).Msg("internal error")
		message = "an internal error occurred"
	}

	if wantsJSON(req) {
		renderJSON(w, status, map[string]any{
			"error": map[string]any{
				"code":    string(aErr.Code),
				"message": message,
				"status":  status,
			},
		})
		return
	}

	page.Title = fmt.Sprintf("Error %d", status)
	page.Version = r.version
	r.renderPageStatus(w, status, "error", ErrorPageData{
		PageData:   page,
		StatusCode: status,
		Message:    message,
	})
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts markdown text to HTML using goldmark.
// goldmark drops raw HTML by default, so gift text cannot inject markup.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// renderContent turns an opened entry's content into HTML according to its kind.
// Closed entries render nothing.
func renderContent(e calendar.EntrySummary) template.HTML {
	if !e.IsOpen || e.Content == "" {
		return ""
	}

	switch e.Kind {
	case calendar.KindImage:
		if !isWebURL(e.Content) {
			break
		}
		return template.HTML(fmt.Sprintf(`<img class="gift-image" src="%s" alt="%s">`,
			template.HTMLEscapeString(e.Content), template.HTMLEscapeString(dayLabel(e.ID))))
	case calendar.KindLink:
		if !isWebURL(e.Content) {
			break
		}
		escaped := template.HTMLEscapeString(e.Content)
		return template.HTML(fmt.Sprintf(`<a class="gift-link" href="%s" rel="noopener noreferrer" target="_blank">%s</a>`,
			escaped, escaped))
	}
	return renderMarkdown(e.Content)
}

// isWebURL reports whether s is an absolute http(s) URL.
func isWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// formatTime formats a Unix timestamp as "2006-01-02 15:04" local time.
// Zero renders as a dash.
func formatTime(unix int64) string {
	if unix == 0 {
		return "-"
	}
	return time.Unix(unix, 0).Format("2006-01-02 15:04")
}

// dayLabel returns the display name of a day; 0 is the reset pseudo-day.
func dayLabel(id int) string {
	if id == 0 {
		return "Calendar"
	}
	return fmt.Sprintf("Day %d", id)
}
