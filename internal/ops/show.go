package ops

import (
	"context"

	"github.com/hpungsan/advent/internal/calendar"
	"github.com/hpungsan/advent/internal/errors"
)

// ShowInput contains parameters for the Show operation.
type ShowInput struct {
	Day int
}

// ShowOutput contains the result of the Show operation.
type ShowOutput struct {
	calendar.EntrySummary
}

// Show returns an opened entry with its content.
// Closed entries return NOT_OPENED; Show never opens anything.
func (s *Service) Show(ctx context.Context, input ShowInput) (*ShowOutput, error) {
	if err := ValidateDay(input.Day); err != nil {
		return nil, err
	}

	e, err := s.engine.Entry(input.Day)
	if err != nil {
		return nil, err
	}
	if !e.IsOpen {
		return nil, errors.NewNotOpened(input.Day)
	}

	return &ShowOutput{EntrySummary: e.ToSummary()}, nil
}
