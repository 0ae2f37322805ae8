package ops

import (
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/hpungsan/advent/internal/calendar"
	"github.com/hpungsan/advent/internal/clock"
	"github.com/hpungsan/advent/internal/engine"
	"github.com/hpungsan/advent/internal/errors"
)

// Pagination limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Service runs calendar operations for one session.
// CLI, MCP and web all go through the same Service.
type Service struct {
	engine *engine.Engine
	db     *sql.DB
	clock  *clock.Override
	log    zerolog.Logger
}

// NewService creates a Service.
// The database holds the open journal; clk may be nil when the clock is not adjustable.
func NewService(e *engine.Engine, database *sql.DB, clk *clock.Override, log zerolog.Logger) *Service {
	return &Service{
		engine: e,
		db:     database,
		clock:  clk,
		log:    log,
	}
}

// Engine returns the underlying engine.
func (s *Service) Engine() *engine.Engine {
	return s.engine
}

// ValidateDay checks that day names a calendar entry.
func ValidateDay(day int) error {
	if day < 1 || day > calendar.Days {
		return errors.NewNotFound(day)
	}
	return nil
}

// formatMoment renders a clock reading for output.
func formatMoment(t time.Time) string {
	return t.Format(time.RFC3339)
}
