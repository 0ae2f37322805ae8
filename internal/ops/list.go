package ops

import (
	"context"

	"github.com/hpungsan/advent/internal/calendar"
	"github.com/hpungsan/advent/internal/clock"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	OpenedOnly bool
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items    []ListItem `json:"items"`
	Progress int        `json:"progress"`
	Total    int        `json:"total"`
	Today    string     `json:"today"`
}

// ListItem is one calendar entry plus whether it can be opened right now.
type ListItem struct {
	calendar.EntrySummary
	Unlocked bool `json:"unlocked"`
}

// List returns every entry in ascending day order.
// Content is withheld for entries that have not been opened.
func (s *Service) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	now := s.engine.Now()
	entries := s.engine.Entries()

	items := make([]ListItem, 0, len(entries))
	for _, e := range entries {
		if input.OpenedOnly && !e.IsOpen {
			continue
		}
		items = append(items, ListItem{
			EntrySummary: e.ToSummary(),
			Unlocked:     e.UnlockedAt(now),
		})
	}

	return &ListOutput{
		Items:    items,
		Progress: calendar.Progress(entries),
		Total:    len(entries),
		Today:    now.Format(clock.DateLayout),
	}, nil
}
