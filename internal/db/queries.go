package db

import (
	"database/sql"
	"time"

	"github.com/hpungsan/advent/internal/errors"
)

// Outcome values recorded in the open journal.
const (
	OutcomeOpened   = "opened"
	OutcomeRejected = "rejected"
	OutcomeReset    = "reset"
)

// Event is one row of the open journal.
type Event struct {
	ID        string `json:"id"`
	Day       int    `json:"day"`
	Outcome   string `json:"outcome"`
	Message   string `json:"message,omitempty"`
	ClockAt   int64  `json:"clock_at"`
	CreatedAt int64  `json:"created_at"`
}

// GetValue returns the value stored under key.
// The boolean is false when nothing was ever stored.
func GetValue(db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewInternal(err)
	}
	return value, true, nil
}

// PutValue stores value under key, overwriting any previous value.
func PutValue(db *sql.DB, key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := db.Exec(query, key, value, time.Now().Unix()); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// DeleteValue removes key. Deleting a missing key is not an error.
func DeleteValue(db *sql.DB, key string) error {
	if _, err := db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// InsertEvent appends an event to the open journal.
func InsertEvent(db *sql.DB, e *Event) error {
	query := `
		INSERT INTO open_log (id, day, outcome, message, clock_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	message := sql.NullString{String: e.Message, Valid: e.Message != ""}
	if _, err := db.Exec(query, e.ID, e.Day, e.Outcome, message, e.ClockAt, e.CreatedAt); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// EventFilters narrows ListEvents.
type EventFilters struct {
	Day     *int
	Outcome *string
}

// ListEvents returns journal events newest first, plus the total matching count.
func ListEvents(db *sql.DB, filters EventFilters, limit, offset int) ([]Event, int, error) {
	where := " WHERE 1=1"
	var args []any
	if filters.Day != nil {
		where += " AND day = ?"
		args = append(args, *filters.Day)
	}
	if filters.Outcome != nil {
		where += " AND outcome = ?"
		args = append(args, *filters.Outcome)
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM open_log"+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `SELECT id, day, outcome, message, clock_at, created_at FROM open_log` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		var (
			e       Event
			message sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Day, &e.Outcome, &message, &e.ClockAt, &e.CreatedAt); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		e.Message = message.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return events, total, nil
}
