// Package sqlite implements the repository on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"project-tracker/config"
	"project-tracker/internal/entities"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLite wraps a database/sql handle opened with the modernc driver.
type SQLite struct {
	log *zap.SugaredLogger
	db  *sql.DB
	cfg config.SQLiteConfig
}

// New creates an SQLite repository instance.
func New(_ context.Context, log *zap.SugaredLogger, cfg *config.Config) *SQLite {
	return &SQLite{
		log: log.Named("repo.sqlite"),
		cfg: cfg.SQLite,
	}
}

// OnStart opens the database file and applies migrations.
func (s *SQLite) OnStart(ctx context.Context) error {
	if dir := filepath.Dir(s.cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.cfg.DSN())
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping sqlite: %w", err)
	}
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, s.cfg.MigrationsDir); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate: %w", err)
	}

	s.db = db
	s.log.Infow("sqlite ready", "path", s.cfg.Path)
	return nil
}

// OnStop closes the database handle.
func (s *SQLite) OnStop(_ context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
}

func encodeTeam(team entities.TeamSnapshot) (string, error) {
	raw, err := json.Marshal(team.Clone())
	if err != nil {
		return "", fmt.Errorf("encode team: %w", err)
	}
	return string(raw), nil
}

func decodeTeam(raw string) (entities.TeamSnapshot, error) {
	team := entities.TeamSnapshot{}
	if raw == "" {
		return team, nil
	}
	if err := json.Unmarshal([]byte(raw), &team); err != nil {
		return nil, fmt.Errorf("decode team: %w", err)
	}
	return team, nil
}

func formatDate(d time.Time) string {
	return d.Format(entities.DateLayout)
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(entities.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return d, nil
}

func nullableDate(d time.Time) sql.NullString {
	if d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatDate(d), Valid: true}
}

func nullableText(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
