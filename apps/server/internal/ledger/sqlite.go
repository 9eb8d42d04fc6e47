package ledger

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

	_ "modernc.org/sqlite"
)

const defaultLocalDBName = "jass_local.db"

// SQLiteService is the single-binary backend: one local file, one
// writer connection.
type SQLiteService struct {
	db          *sql.DB
	recentLimit int
}

func NewSQLiteServiceFromEnv() (*SQLiteService, error) {
	dbPath := strings.TrimSpace(os.Getenv("LEDGER_SQLITE_PATH"))
	if dbPath == "" {
		dbPath = defaultLocalDBName
	}
	return NewSQLiteService(dbPath)
}

func NewSQLiteService(dbPath string) (*SQLiteService, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS match_history (
    match_id   TEXT PRIMARY KEY,
    mode       TEXT NOT NULL,
    played_at  TEXT NOT NULL,
    rounds     INTEGER NOT NULL,
    result     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_match_history_played_at ON match_history (played_at DESC);
`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteService{db: db, recentLimit: defaultRecentLimit}, nil
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteService) RecordMatch(ctx context.Context, rec MatchRecord) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal match record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO match_history (match_id, mode, played_at, rounds, result)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (match_id) DO NOTHING
`, rec.MatchID, rec.Mode, rec.PlayedAt.UTC().Format(time.RFC3339Nano), rec.Rounds, string(blob))
	if err != nil {
		return fmt.Errorf("insert match %s: %w", rec.MatchID, err)
	}
	return nil
}

func (s *SQLiteService) ListRecent(ctx context.Context, limit int) ([]MatchRecord, error) {
	if limit <= 0 || limit > s.recentLimit {
		limit = s.recentLimit
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT result FROM match_history ORDER BY played_at DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLiteService) GetMatch(ctx context.Context, matchID string) (MatchRecord, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `
SELECT result FROM match_history WHERE match_id = ?
`, matchID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return MatchRecord{}, ErrNotFound
	}
	if err != nil {
		return MatchRecord{}, err
	}
	var rec MatchRecord
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return MatchRecord{}, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	return rec, nil
}
