package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/hpungsan/advent/internal/clock"
	"github.com/hpungsan/advent/internal/config"
	"github.com/hpungsan/advent/internal/db"
	"github.com/hpungsan/advent/internal/engine"
	"github.com/hpungsan/advent/internal/logging"
	"github.com/hpungsan/advent/internal/ops"
	"github.com/hpungsan/advent/internal/store"
)

// session is everything one process needs to serve calendar operations.
type session struct {
	db    *sql.DB
	cfg   *config.Config
	log   zerolog.Logger
	clock *clock.Override
	svc   *ops.Service
}

// defaultBaseDir returns ~/.advent.
func defaultBaseDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".advent"), nil
}

// openSession opens the database under baseDir, loads config and replays saved progress.
// date, when non-empty, overrides the configured simulated date and must be valid.
func openSession(baseDir, date string, logOut io.Writer) (*session, error) {
	database, err := db.Init(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	db.ConfigurePool(database, cfg)

	log := newLogger(cfg.LogLevel, logOut)

	clk := clock.NewOverride(nil)
	if date != "" {
		if err := clk.Set(date); err != nil {
			database.Close()
			return nil, err
		}
	} else if cfg.SimulatedDate != "" {
		if err := clk.Set(cfg.SimulatedDate); err != nil {
			log.Warn().Err(err).Msg("ignoring configured simulated_date")
		}
	}
	if d := clk.Date(); d != "" {
		log.Debug().Str("date", d).Msg("clock override active")
	}

	e := engine.New(clk, store.NewSQLiteStore(database, log),
		engine.WithLogger(log),
		engine.WithSeasonYear(cfg.SeasonYear),
	)

	return &session{
		db:    database,
		cfg:   cfg,
		log:   log,
		clock: clk,
		svc:   ops.NewService(e, database, clk, log),
	}, nil
}

// Close releases the database.
func (s *session) Close() error {
	return s.db.Close()
}

// newLogger writes human-readable logs to a terminal and JSON lines otherwise.
func newLogger(level string, w io.Writer) zerolog.Logger {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return logging.NewConsole(level, w)
	}
	return logging.New(level, w)
}
