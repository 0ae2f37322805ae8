package ops

import (
	"context"

	"github.com/hpungsan/advent/internal/calendar"
)

// ProgressOutput contains the result of the Progress operation.
type ProgressOutput struct {
	Opened     int   `json:"opened"`
	Total      int   `json:"total"`
	OpenedDays []int `json:"opened_days"`
	Complete   bool  `json:"complete"`
}

// Progress reports how many entries are open.
func (s *Service) Progress(ctx context.Context) (*ProgressOutput, error) {
	entries := s.engine.Entries()

	days := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.IsOpen {
			days = append(days, e.ID)
		}
	}

	opened := calendar.Progress(entries)
	return &ProgressOutput{
		Opened:     opened,
		Total:      len(entries),
		OpenedDays: days,
		Complete:   opened == len(entries),
	}, nil
}
