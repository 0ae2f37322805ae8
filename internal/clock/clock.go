// Package clock supplies the "current moment" used to gate calendar days.
//
// The engine never reads time.Now directly; it asks a Source. System reads the
// wall clock, Fixed always returns the same instant, and Override lets a
// developer simulate a date while falling back to another Source when unset.
package clock

import (
	"strings"
	"sync"
	"time"

	"github.com/hpungsan/advent/internal/errors"
)

// DateLayout is the accepted format for simulated dates.
const DateLayout = "2006-01-02"

// middayHour places simulated moments at noon so whole-day comparisons never
// fall on a timezone boundary.
const middayHour = 12

// Source supplies the current moment.
type Source interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same moment.
type Fixed time.Time

// Now returns the fixed moment.
func (f Fixed) Now() time.Time { return time.Time(f) }

// ParseDate parses a YYYY-MM-DD string into a moment at 12:00 local time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, errors.NewInvalidDate(s)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), middayHour, 0, 0, 0, time.Local), nil
}

// FixedDate returns a Fixed source for the given date string.
func FixedDate(s string) (Fixed, error) {
	t, err := ParseDate(s)
	if err != nil {
		return Fixed{}, err
	}
	return Fixed(t), nil
}

// Override is a Source that returns a simulated date when one is set and
// delegates to a fallback Source otherwise.
// An invalid date is rejected and the previous value stays in effect.
type Override struct {
	mu       sync.RWMutex
	fallback Source
	date     string
	at       time.Time
	set      bool
}

// NewOverride creates an Override delegating to fallback until Set is called.
// A nil fallback means System.
func NewOverride(fallback Source) *Override {
	if fallback == nil {
		fallback = System{}
	}
	return &Override{fallback: fallback}
}

// Now returns the simulated moment, or the fallback's reading when unset.
func (o *Override) Now() time.Time {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.set {
		return o.at
	}
	return o.fallback.Now()
}

// Set replaces the simulated date. An empty string clears the override.
func (o *Override) Set(date string) error {
	date = strings.TrimSpace(date)
	if date == "" {
		o.Clear()
		return nil
	}
	t, err := ParseDate(date)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.date = date
	o.at = t
	o.set = true
	o.mu.Unlock()
	return nil
}

// Clear removes the simulated date.
func (o *Override) Clear() {
	o.mu.Lock()
	o.date = ""
	o.at = time.Time{}
	o.set = false
	o.mu.Unlock()
}

// Date returns the active simulated date, or "" when the fallback is in use.
func (o *Override) Date() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.date
}

var (
	_ Source = System{}
	_ Source = Fixed{}
	_ Source = (*Override)(nil)
)
