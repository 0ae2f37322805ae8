package clock

import (
	"testing"
	"time"

	"github.com/hpungsan/advent/internal/errors"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-12-10")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	want := time.Date(2025, time.December, 10, 12, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}
}

func TestParseDate_TrimsWhitespace(t *testing.T) {
	got, err := ParseDate("  2025-12-01 ")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got.Day() != 1 || got.Hour() != 12 {
		t.Errorf("ParseDate() = %v, want Dec 1 at noon", got)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	tests := []string{"", "2025-13-01", "12/10/2025", "tomorrow", "2025-12-32"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			if err == nil {
				t.Fatalf("ParseDate(%q) expected error", input)
			}
			if !errors.Is(err, errors.ErrInvalidDate) {
				t.Errorf("ParseDate(%q) error = %v, want INVALID_DATE", input, err)
			}
		})
	}
}

func TestFixed(t *testing.T) {
	at := time.Date(2025, time.December, 24, 8, 30, 0, 0, time.UTC)
	f := Fixed(at)
	if !f.Now().Equal(at) {
		t.Errorf("Now() = %v, want %v", f.Now(), at)
	}
	if !f.Now().Equal(f.Now()) {
		t.Error("Fixed.Now() should be stable")
	}
}

func TestFixedDate(t *testing.T) {
	f, err := FixedDate("2025-12-05")
	if err != nil {
		t.Fatalf("FixedDate() error = %v", err)
	}
	if f.Now().Day() != 5 || f.Now().Hour() != 12 {
		t.Errorf("FixedDate().Now() = %v, want Dec 5 at noon", f.Now())
	}

	if _, err := FixedDate("nope"); err == nil {
		t.Error("FixedDate(invalid) expected error")
	}
}

func TestSystem(t *testing.T) {
	before := time.Now()
	got := System{}.Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("System.Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestOverride_FallbackWhenUnset(t *testing.T) {
	at := time.Date(2025, time.November, 30, 9, 0, 0, 0, time.Local)
	o := NewOverride(Fixed(at))

	if !o.Now().Equal(at) {
		t.Errorf("Now() = %v, want fallback %v", o.Now(), at)
	}
	if o.Date() != "" {
		t.Errorf("Date() = %q, want empty", o.Date())
	}
}

func TestOverride_NilFallbackUsesSystem(t *testing.T) {
	o := NewOverride(nil)
	if o.Now().IsZero() {
		t.Error("Now() with nil fallback should read the system clock")
	}
}

func TestOverride_Set(t *testing.T) {
	o := NewOverride(Fixed(time.Date(2025, time.November, 30, 9, 0, 0, 0, time.Local)))

	if err := o.Set("2025-12-10"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	want := time.Date(2025, time.December, 10, 12, 0, 0, 0, time.Local)
	if !o.Now().Equal(want) {
		t.Errorf("Now() = %v, want %v", o.Now(), want)
	}
	if o.Date() != "2025-12-10" {
		t.Errorf("Date() = %q, want %q", o.Date(), "2025-12-10")
	}
}

func TestOverride_InvalidKeepsPrevious(t *testing.T) {
	o := NewOverride(nil)
	if err := o.Set("2025-12-10"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	before := o.Now()

	err := o.Set("not-a-date")
	if !errors.Is(err, errors.ErrInvalidDate) {
		t.Fatalf("Set(invalid) error = %v, want INVALID_DATE", err)
	}
	if !o.Now().Equal(before) {
		t.Errorf("Now() after invalid Set = %v, want previous %v", o.Now(), before)
	}
	if o.Date() != "2025-12-10" {
		t.Errorf("Date() = %q, want previous value", o.Date())
	}
}

func TestOverride_EmptyClears(t *testing.T) {
	fallback := time.Date(2025, time.November, 1, 9, 0, 0, 0, time.Local)
	o := NewOverride(Fixed(fallback))
	if err := o.Set("2025-12-10"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := o.Set(""); err != nil {
		t.Fatalf("Set(\"\") error = %v", err)
	}
	if !o.Now().Equal(fallback) {
		t.Errorf("Now() after clear = %v, want fallback %v", o.Now(), fallback)
	}
}
