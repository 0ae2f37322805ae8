// Package store persists the set of opened calendar days.
//
// Only the opened IDs survive a restart; every other entry field is rebuilt
// from the ID when the registry is created.
package store

import (
	"encoding/json"
	"sort"
)

// Key is the well-known name the opened-set is stored under.
const Key = "advent_calendar_progress"

// Store is durable storage for the opened-set.
type Store interface {
	// Load returns the saved IDs, or an empty slice when nothing was saved
	// or the saved value cannot be parsed.
	Load() []int

	// Save overwrites the saved IDs with ids.
	Save(ids []int) error

	// Clear removes the saved value.
	Clear() error
}

// encode serializes ids as a JSON array in ascending order without duplicates.
func encode(ids []int) (string, error) {
	data, err := json.Marshal(normalize(ids))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decode parses a JSON array of IDs.
func decode(raw string) ([]int, error) {
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	return normalize(ids), nil
}

func normalize(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}
