package ops

import (
	"context"
	"fmt"

	"github.com/hpungsan/advent/internal/db"
)

// ResetOutput contains the result of the Reset operation.
type ResetOutput struct {
	Cleared int    `json:"cleared"`
	Message string `json:"message"`
	EventID string `json:"event_id,omitempty"`
}

// Reset closes every entry and forgets saved progress.
// The journal is kept.
func (s *Service) Reset(ctx context.Context) (*ResetOutput, error) {
	cleared := s.engine.Progress()
	s.engine.Reset()

	message := formatResetMessage(cleared)
	eventID := s.journal(0, db.OutcomeReset, message, s.engine.Now().Unix())

	return &ResetOutput{
		Cleared: cleared,
		Message: message,
		EventID: eventID,
	}, nil
}

// formatResetMessage creates a human-readable message for the reset result.
func formatResetMessage(cleared int) string {
	if cleared == 0 {
		return "Calendar was already closed"
	}

	dayWord := "day"
	if cleared > 1 {
		dayWord = "days"
	}
	return fmt.Sprintf("Closed %d opened %s", cleared, dayWord)
}
