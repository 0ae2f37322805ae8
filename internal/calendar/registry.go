// Package calendar holds the twenty-five advent entries and the progress count
// derived from them.
package calendar

import (
	"fmt"
	"time"

	"github.com/hpungsan/advent/internal/errors"
)

// Days is the number of entries in the calendar.
const Days = 25

// Registry holds the ordered entries of one season.
// Entries are regenerated deterministically from their ID; only IsOpen changes.
type Registry struct {
	year    int
	entries []Entry
}

// NewRegistry builds an all-closed registry for the given season year.
// Day id unlocks at midnight local time on December id.
func NewRegistry(year int) *Registry {
	entries := make([]Entry, Days)
	for i := range entries {
		id := i + 1
		g := giftFor(id)
		entries[i] = Entry{
			ID:         id,
			UnlockDate: time.Date(year, time.December, id, 0, 0, 0, 0, time.Local),
			Content:    g.content,
			Kind:       g.kind,
			Title:      fmt.Sprintf("Day %d", id),
		}
	}
	return &Registry{year: year, entries: entries}
}

// Year returns the season year the registry was built for.
func (r *Registry) Year() int { return r.year }

// All returns a copy of the entries in ascending ID order.
func (r *Registry) All() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Get returns a copy of the entry with the given ID.
func (r *Registry) Get(id int) (Entry, error) {
	if id < 1 || id > len(r.entries) {
		return Entry{}, errors.NewNotFound(id)
	}
	return r.entries[id-1], nil
}

// MarkOpen sets IsOpen on the entry. It reports whether the flag changed;
// opening an already-open entry is a no-op.
func (r *Registry) MarkOpen(id int) (bool, error) {
	if id < 1 || id > len(r.entries) {
		return false, errors.NewNotFound(id)
	}
	e := &r.entries[id-1]
	if e.IsOpen {
		return false, nil
	}
	e.IsOpen = true
	return true, nil
}

// Apply replays previously opened IDs onto the registry.
// Unknown IDs are skipped; the number of entries applied is returned.
func (r *Registry) Apply(ids []int) int {
	applied := 0
	for _, id := range ids {
		if _, err := r.MarkOpen(id); err == nil {
			applied++
		}
	}
	return applied
}

// OpenedIDs returns the IDs of open entries in ascending order.
func (r *Registry) OpenedIDs() []int {
	ids := make([]int, 0, len(r.entries))
	for _, e := range r.entries {
		if e.IsOpen {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Progress counts the open entries. It is always derived, never stored.
func Progress(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.IsOpen {
			n++
		}
	}
	return n
}
