package calendar

import "time"

// ContentKind tags how an entry's content should be presented.
type ContentKind string

const (
	KindText  ContentKind = "text"
	KindImage ContentKind = "image"
	KindLink  ContentKind = "link"
)

// Valid reports whether k is one of the known content kinds.
func (k ContentKind) Valid() bool {
	switch k {
	case KindText, KindImage, KindLink:
		return true
	}
	return false
}

// Entry is one date-gated day of the calendar.
// Everything except IsOpen is derived from ID when the registry is built.
type Entry struct {
	// ID is the day number, 1..Days
	ID int `json:"id"`

	// UnlockDate is midnight (local time) on December ID of the season year
	UnlockDate time.Time `json:"unlock_date"`

	// Content is plain text, an image URL, or a link URL depending on Kind
	Content string `json:"content"`

	// Kind tags the content
	Kind ContentKind `json:"content_kind"`

	// Title is an optional display label
	Title string `json:"title,omitempty"`

	// IsOpen only transitions false→true, except through a full reset
	IsOpen bool `json:"is_open"`
}

// EntrySummary is an Entry with its content withheld until the day is opened.
type EntrySummary struct {
	ID         int         `json:"id"`
	UnlockDate string      `json:"unlock_date"`
	Title      string      `json:"title,omitempty"`
	Kind       ContentKind `json:"content_kind"`
	IsOpen     bool        `json:"is_open"`
	Content    string      `json:"content,omitempty"`
}

// ToSummary converts an Entry to an EntrySummary, revealing content only when open.
func (e Entry) ToSummary() EntrySummary {
	s := EntrySummary{
		ID:         e.ID,
		UnlockDate: e.UnlockDate.Format("2006-01-02"),
		Title:      e.Title,
		Kind:       e.Kind,
		IsOpen:     e.IsOpen,
	}
	if e.IsOpen {
		s.Content = e.Content
	}
	return s
}

// UnlockedAt reports whether now is on or after the entry's unlock date.
func (e Entry) UnlockedAt(now time.Time) bool {
	return !now.Before(e.UnlockDate)
}
