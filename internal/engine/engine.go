// Package engine gates, applies and persists calendar opens.
//
// A session is built in two explicit steps: the registry is generated from
// scratch for the season, then the persisted opened-set is replayed onto it.
// Every successful Open saves the full opened-set before returning.
package engine

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hpungsan/advent/internal/calendar"
	"github.com/hpungsan/advent/internal/clock"
	"github.com/hpungsan/advent/internal/errors"
	"github.com/hpungsan/advent/internal/store"
)

// Result describes the outcome of an Open request.
type Result struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Reason  errors.ErrorCode `json:"reason,omitempty"`
	Day     int              `json:"day"`

	// CheckedAt is the clock reading the gate compared against; zero for unknown days.
	CheckedAt time.Time `json:"-"`
}

// Err converts a rejected Result into an *errors.AdventError. It returns nil on success.
func (r Result) Err() error {
	switch {
	case r.Success:
		return nil
	case r.Reason == errors.ErrNotFound:
		return errors.NewNotFound(r.Day)
	case r.Reason == errors.ErrNotYetUnlocked:
		return errors.NewNotYetUnlocked(r.Day)
	default:
		return errors.NewInvalidRequest(r.Message)
	}
}

// Engine owns the registry for one session.
// The mutex serializes opens and resets so readers never observe a half-applied change.
type Engine struct {
	mu       sync.RWMutex
	clock    clock.Source
	store    store.Store
	log      zerolog.Logger
	year     int
	registry *calendar.Registry
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithSeasonYear pins the calendar to a year instead of the clock's current year.
func WithSeasonYear(year int) Option {
	return func(e *Engine) {
		if year > 0 {
			e.year = year
		}
	}
}

// New builds the registry and replays the persisted opened-set onto it.
func New(src clock.Source, st store.Store, opts ...Option) *Engine {
	if src == nil {
		src = clock.System{}
	}
	e := &Engine{
		clock: src,
		store: st,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.year == 0 {
		e.year = src.Now().Year()
	}

	e.registry = calendar.NewRegistry(e.year)
	saved := st.Load()
	applied := e.registry.Apply(saved)
	if applied != len(saved) {
		e.log.Warn().Ints("saved", saved).Int("applied", applied).Msg("ignored saved days outside the calendar")
	}
	return e
}

// Open attempts to open the day with the given id.
func (e *Engine) Open(id int) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.registry.Get(id)
	if err != nil {
		return rejected(id, errors.NewNotFound(id))
	}

	now := e.clock.Now()
	if !entry.UnlockedAt(now) {
		r := rejected(id, errors.NewNotYetUnlocked(id))
		r.CheckedAt = now
		return r
	}

	if _, err := e.registry.MarkOpen(id); err != nil {
		return rejected(id, errors.NewNotFound(id))
	}
	if err := e.store.Save(e.registry.OpenedIDs()); err != nil {
		// The open stays visible for this session; it just won't survive a restart.
		e.log.Warn().Err(err).Int("day", id).Msg("save progress failed")
	}
	return Result{Day: id, Success: true, CheckedAt: now}
}

func rejected(id int, err *errors.AdventError) Result {
	return Result{Day: id, Reason: err.Code, Message: err.Message}
}

// Reset clears persisted progress and rebuilds an all-closed registry.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Clear(); err != nil {
		e.log.Warn().Err(err).Msg("clear saved progress failed")
	}
	e.registry = calendar.NewRegistry(e.year)
}

// Entries returns a snapshot of all entries in ascending ID order.
func (e *Engine) Entries() []calendar.Entry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.All()
}

// Entry returns a snapshot of one entry.
func (e *Engine) Entry(id int) (calendar.Entry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.Get(id)
}

// Progress returns the number of open entries, recomputed on every call.
func (e *Engine) Progress() int {
	return calendar.Progress(e.Entries())
}

// Now returns the clock reading used for gating.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Year returns the season year.
func (e *Engine) Year() int {
	return e.year
}
