package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hpungsan/advent/internal/ops"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// NewServer creates and configures the HTTP server for the calendar web UI.
// Metrics are registered on a registry owned by this server and served at /metrics.
func NewServer(svc *ops.Service, log zerolog.Logger, version, bind string, port int) (*http.Server, error) {
	h, err := newHandlers(svc, log, version, prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", bind, port),
		Handler:           h.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// newHandlers wires templates, metrics and the service together.
func newHandlers(svc *ops.Service, log zerolog.Logger, version string, reg *prometheus.Registry) (*Handlers, error) {
	// Strip the "templates/" prefix
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("template sub-FS: %w", err)
	}

	return &Handlers{
		svc:      svc,
		log:      log,
		renderer: NewRenderer(templateSub, version, log),
		metrics:  NewMetrics(reg),
		registry: reg,
	}, nil
}

// routes builds the mux and wraps it with logging, metrics and security headers.
func (h *Handlers) routes() http.Handler {
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		h.log.Fatal().Err(err).Msg("static sub-FS")
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/calendar", http.StatusFound)
	})
	mux.HandleFunc("GET /calendar", h.HandleCalendar)
	mux.HandleFunc("GET /days/{id}", h.HandleDay)
	mux.HandleFunc("POST /days/{id}/open", h.HandleOpen)
	mux.HandleFunc("POST /reset", h.HandleReset)
	mux.HandleFunc("POST /clock", h.HandleClock)
	mux.HandleFunc("GET /history", h.HandleHistory)
	mux.Handle("GET /metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	return securityHeaders(accessLog(h.log, h.metrics.instrument(mux)))
}

// securityHeaders adds security-related HTTP headers to all responses.
// Gift images are hosted externally, so img-src allows https.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' https:; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, log zerolog.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info().Str("addr", srv.Addr).Msgf("Advent calendar running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Warn().Msg("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
