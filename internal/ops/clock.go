package ops

import (
	"context"

	"github.com/hpungsan/advent/internal/errors"
)

// ClockInput contains parameters for the SetClock operation.
type ClockInput struct {
	Date string // YYYY-MM-DD; empty clears the override
}

// ClockOutput describes the clock after SetClock.
type ClockOutput struct {
	SimulatedDate string `json:"simulated_date,omitempty"`
	Now           string `json:"now"`
}

// SetClock changes the simulated date used for gating.
// An invalid date leaves the previous override in place.
func (s *Service) SetClock(ctx context.Context, input ClockInput) (*ClockOutput, error) {
	if s.clock == nil {
		return nil, errors.NewInvalidRequest("clock override is not enabled")
	}
	if err := s.clock.Set(input.Date); err != nil {
		return nil, err
	}
	s.log.Info().Str("date", s.clock.Date()).Msg("clock override changed")
	return s.Clock(ctx)
}

// Clock reports the current gating moment and any active override.
func (s *Service) Clock(ctx context.Context) (*ClockOutput, error) {
	out := &ClockOutput{Now: formatMoment(s.engine.Now())}
	if s.clock != nil {
		out.SimulatedDate = s.clock.Date()
	}
	return out, nil
}
