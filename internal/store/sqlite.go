package store

import (
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/hpungsan/advent/internal/db"
)

// SQLiteStore keeps the opened-set as a JSON array in the kv table.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLiteStore creates a store backed by an initialized database.
func NewSQLiteStore(database *sql.DB, log zerolog.Logger) *SQLiteStore {
	return &SQLiteStore{db: database, log: log}
}

// Load returns the saved IDs. Read or parse failures are logged and treated as no data.
func (s *SQLiteStore) Load() []int {
	raw, ok, err := db.GetValue(s.db, Key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", Key).Msg("read saved progress failed; starting empty")
		return []int{}
	}
	if !ok {
		return []int{}
	}
	ids, err := decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", Key).Msg("saved progress is unreadable; starting empty")
		return []int{}
	}
	return ids
}

// Save overwrites the saved IDs.
func (s *SQLiteStore) Save(ids []int) error {
	value, err := encode(ids)
	if err != nil {
		return err
	}
	return db.PutValue(s.db, Key, value)
}

// Clear removes the saved IDs.
func (s *SQLiteStore) Clear() error {
	return db.DeleteValue(s.db, Key)
}

var _ Store = (*SQLiteStore)(nil)
