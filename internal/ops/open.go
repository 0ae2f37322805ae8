package ops

import (
	"context"

	"github.com/hpungsan/advent/internal/calendar"
	"github.com/hpungsan/advent/internal/db"
)

// OpenInput contains parameters for the Open operation.
type OpenInput struct {
	Day int
}

// OpenOutput contains the result of a successful Open.
type OpenOutput struct {
	Entry    calendar.EntrySummary `json:"entry"`
	Progress int                   `json:"progress"`
	Total    int                   `json:"total"`
	EventID  string                `json:"event_id,omitempty"`
}

// Open asks the engine to open a day and journals the attempt.
// A rejected attempt returns the engine's reason as an *errors.AdventError.
func (s *Service) Open(ctx context.Context, input OpenInput) (*OpenOutput, error) {
	result := s.engine.Open(input.Day)

	outcome := db.OutcomeOpened
	if !result.Success {
		outcome = db.OutcomeRejected
	}
	var clockAt int64
	if !result.CheckedAt.IsZero() {
		clockAt = result.CheckedAt.Unix()
	}
	eventID := s.journal(input.Day, outcome, result.Message, clockAt)

	if err := result.Err(); err != nil {
		return nil, err
	}

	e, err := s.engine.Entry(input.Day)
	if err != nil {
		return nil, err
	}
	return &OpenOutput{
		Entry:    e.ToSummary(),
		Progress: s.engine.Progress(),
		Total:    calendar.Days,
		EventID:  eventID,
	}, nil
}
