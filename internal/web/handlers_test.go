package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/hpungsan/advent/internal/clock"
	"github.com/hpungsan/advent/internal/db"
	"github.com/hpungsan/advent/internal/engine"
	"github.com/hpungsan/advent/internal/ops"
	"github.com/hpungsan/advent/internal/store"
)

// setupTest returns a handler for the full route table with the clock set to date.
func setupTest(t *testing.T, date string) (http.Handler, *Handlers) {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	clk := clock.NewOverride(nil)
	if err := clk.Set(date); err != nil {
		t.Fatalf("clock.Set: %v", err)
	}
	e := engine.New(clk, store.NewSQLiteStore(database, zerolog.Nop()), engine.WithSeasonYear(2025))
	svc := ops.NewService(e, database, clk, zerolog.Nop())

	h, err := newHandlers(svc, zerolog.Nop(), "test", prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newHandlers: %v", err)
	}
	return h.routes(), h
}

func do(t *testing.T, handler http.Handler, method, target string, form url.Values, jsonAccept bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if jsonAccept {
		req.Header.Set("Accept", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return payload.Error.Code
}

// --- HandleCalendar ---

func TestRoot_RedirectsToCalendar(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "GET", "/", nil, false)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/calendar" {
		t.Errorf("Location = %q, want /calendar", loc)
	}
}

func TestHandleCalendar_HTML(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "GET", "/calendar", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<strong>0/25</strong>") {
		t.Error("expected progress 0/25 in page")
	}
	if !strings.Contains(body, `href="/days/25"`) {
		t.Error("expected a door for day 25")
	}
	if !strings.Contains(body, "2025-12-10") {
		t.Error("expected the simulated date in the header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing security headers")
	}
}

func TestHandleCalendar_JSON(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "GET", "/calendar", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out ops.ListOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 25 || out.Progress != 0 {
		t.Errorf("got %d items, progress %d", len(out.Items), out.Progress)
	}
}

func TestHandleCalendar_Notice(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "GET", "/calendar?notice=reset", nil, false)
	if !strings.Contains(rec.Body.String(), "The calendar was reset") {
		t.Error("expected reset notice")
	}

	rec = do(t, handler, "GET", "/calendar?notice=bogus", nil, false)
	if strings.Contains(rec.Body.String(), `class="notice"`) {
		t.Error("unknown notice should not render a banner")
	}
}

// --- HandleOpen ---

func TestHandleOpen_RedirectsToDay(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "POST", "/days/5/open", url.Values{}, false)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/days/5" {
		t.Errorf("Location = %q, want /days/5", loc)
	}

	rec = do(t, handler, "GET", "/calendar", nil, false)
	if !strings.Contains(rec.Body.String(), "<strong>1/25</strong>") {
		t.Error("expected progress 1/25 after open")
	}
}

func TestHandleOpen_JSON(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "POST", "/days/5/open", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var out ops.OpenOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Entry.IsOpen || out.Progress != 1 {
		t.Errorf("out = %+v", out)
	}
}

func TestHandleOpen_NotYetUnlocked(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "POST", "/days/15/open", nil, false)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not time to open this gift yet") {
		t.Error("expected the not-yet message on the error page")
	}

	rec = do(t, handler, "POST", "/days/15/open", nil, true)
	if code := errorCode(t, rec); code != "NOT_YET_UNLOCKED" {
		t.Errorf("code = %q, want NOT_YET_UNLOCKED", code)
	}
}

func TestHandleOpen_BadDay(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "POST", "/days/26/open", nil, true)
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "NOT_FOUND" {
		t.Errorf("day 26: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, handler, "POST", "/days/abc/open", nil, true)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "INVALID_REQUEST" {
		t.Errorf("day abc: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestHandleOpen_MethodNotAllowed(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "GET", "/days/5/open", nil, false)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

// --- HandleDay ---

func TestHandleDay_States(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "GET", "/days/15", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not time to open this gift yet") {
		t.Error("locked day should say it is not time yet")
	}

	rec = do(t, handler, "GET", "/days/5", nil, false)
	if !strings.Contains(rec.Body.String(), `action="/days/5/open"`) {
		t.Error("unlocked closed day should offer an open button")
	}

	do(t, handler, "POST", "/days/5/open", nil, false)
	rec = do(t, handler, "GET", "/days/5", nil, false)
	if !strings.Contains(rec.Body.String(), "<strong>hot chocolate</strong>") {
		t.Errorf("opened text gift should render markdown, got %s", rec.Body.String())
	}
}

func TestHandleDay_JSON(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "GET", "/days/4", nil, true)
	if rec.Code != http.StatusConflict || errorCode(t, rec) != "NOT_OPENED" {
		t.Errorf("closed day: status %d body %s", rec.Code, rec.Body.String())
	}

	do(t, handler, "POST", "/days/4/open", nil, true)
	rec = do(t, handler, "GET", "/days/4", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out ops.ShowOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Kind != "image" || out.Content == "" {
		t.Errorf("out = %+v, want image content", out)
	}
}

func TestHandleDay_NotFound(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "GET", "/days/0", nil, false)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// --- HandleReset ---

func TestHandleReset(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")
	do(t, handler, "POST", "/days/1/open", nil, false)

	rec := do(t, handler, "POST", "/reset", url.Values{}, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("reset without confirm: status = %d, want 400", rec.Code)
	}

	rec = do(t, handler, "POST", "/reset", url.Values{"confirm": {"true"}}, false)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/calendar?notice=reset" {
		t.Errorf("Location = %q", loc)
	}

	rec = do(t, handler, "GET", "/calendar", nil, true)
	var out ops.ListOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Progress != 0 {
		t.Errorf("Progress = %d after reset, want 0", out.Progress)
	}
}

// --- HandleClock ---

func TestHandleClock(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "POST", "/clock", url.Values{"date": {"2025-12-20"}}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out ops.ClockOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.SimulatedDate != "2025-12-20" {
		t.Errorf("SimulatedDate = %q", out.SimulatedDate)
	}

	rec = do(t, handler, "POST", "/days/15/open", nil, true)
	if rec.Code != http.StatusOK {
		t.Errorf("open 15 after clock change: status = %d", rec.Code)
	}
}

func TestHandleClock_Invalid(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "POST", "/clock", url.Values{"date": {"soon"}}, true)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "INVALID_DATE" {
		t.Errorf("status %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, handler, "POST", "/days/15/open", nil, true)
	if rec.Code != http.StatusForbidden {
		t.Errorf("previous date should stay in effect, got status %d", rec.Code)
	}
}

// --- HandleHistory ---

func TestHandleHistory(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")
	do(t, handler, "POST", "/days/2/open", nil, false)
	do(t, handler, "POST", "/days/22/open", nil, false)

	rec := do(t, handler, "GET", "/history", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Day 22") || !strings.Contains(body, "rejected") {
		t.Error("expected the rejected day 22 attempt in history")
	}

	rec = do(t, handler, "GET", "/history?outcome=opened", nil, true)
	var out ops.HistoryOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Pagination.Total != 1 || out.Items[0].Day != 2 {
		t.Errorf("opened history = %+v", out.Items)
	}
}

func TestHandleHistory_Empty(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "GET", "/history", nil, false)
	if !strings.Contains(rec.Body.String(), "No events recorded") {
		t.Error("expected empty state")
	}
}

// --- Metrics ---

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")
	do(t, handler, "POST", "/days/3/open", nil, false)
	do(t, handler, "POST", "/days/24/open", nil, false)
	do(t, handler, "GET", "/calendar", nil, false)

	rec := do(t, handler, "GET", "/metrics", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`advent_open_attempts_total{outcome="opened"} 1`,
		`advent_open_attempts_total{outcome="not_yet_unlocked"} 1`,
		`advent_progress 1`,
		`advent_http_requests_total{method="GET",path="GET /calendar",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

// --- Static ---

func TestStaticStylesheet(t *testing.T) {
	handler, _ := setupTest(t, "2025-12-10")

	rec := do(t, handler, "GET", "/static/style.css", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
