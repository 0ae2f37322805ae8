package ops

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/advent/internal/db"
)

// journal appends an event to the open journal and returns its ID.
// Journal failures are logged and never change the operation's outcome.
func (s *Service) journal(day int, outcome, message string, clockAt int64) string {
	if s.db == nil {
		return ""
	}

	id, err := generateULID()
	if err != nil {
		s.log.Warn().Err(err).Msg("generate event id failed")
		return ""
	}

	e := &db.Event{
		ID:        id,
		Day:       day,
		Outcome:   outcome,
		Message:   message,
		ClockAt:   clockAt,
		CreatedAt: time.Now().Unix(),
	}
	if err := db.InsertEvent(s.db, e); err != nil {
		s.log.Warn().Err(err).Int("day", day).Str("outcome", outcome).Msg("journal write failed")
		return ""
	}
	return id
}

// generateULID generates a new ULID.
// DefaultEntropy is monotonic, so IDs created within one millisecond still sort in order.
func generateULID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), ulid.DefaultEntropy())
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
