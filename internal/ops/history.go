package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/advent/internal/db"
	"github.com/hpungsan/advent/internal/errors"
)

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	Day     *int    // optional filter
	Outcome *string // optional filter: opened, rejected, reset
	Limit   int     // default: 20, max: 100
	Offset  int     // default: 0
}

// HistoryOutput contains the result of the History operation.
type HistoryOutput struct {
	Items      []db.Event `json:"items"`
	Pagination Pagination `json:"pagination"`
	Sort       string     `json:"sort"`
}

// History lists journal events newest first.
func (s *Service) History(ctx context.Context, input HistoryInput) (*HistoryOutput, error) {
	if s.db == nil {
		return nil, errors.NewInvalidRequest("history is not available without a database")
	}

	var filters db.EventFilters
	if input.Day != nil {
		// Day 0 is the reset pseudo-day
		if *input.Day != 0 {
			if err := ValidateDay(*input.Day); err != nil {
				return nil, err
			}
		}
		day := *input.Day
		filters.Day = &day
	}
	if input.Outcome != nil {
		outcome := strings.ToLower(strings.TrimSpace(*input.Outcome))
		switch outcome {
		case "":
		case db.OutcomeOpened, db.OutcomeRejected, db.OutcomeReset:
			filters.Outcome = &outcome
		default:
			return nil, errors.NewInvalidRequest("outcome must be one of: opened, rejected, reset")
		}
	}

	// Apply limit defaults and bounds
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	offset := max(input.Offset, 0)

	events, total, err := db.ListEvents(s.db, filters, limit, offset)
	if err != nil {
		return nil, err
	}

	return &HistoryOutput{
		Items: events,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(events) < total,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}
