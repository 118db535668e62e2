package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
	_ "modernc.org/sqlite"
)

const createReportsTable = `
CREATE TABLE IF NOT EXISTS reports (
	"session_id" TEXT PRIMARY KEY,
	"profile" TEXT NOT NULL,
	"saved_at" INTEGER NOT NULL
);`

// SQLiteStore keeps one row per session so reports survive restarts.
type SQLiteStore struct {
	db      *sql.DB
	ttl     time.Duration
	now     func() time.Time
	sweeper *sweeper
}

func NewSQLiteStore(ctx context.Context, path string, ttl time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, createReportsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create reports table: %w", err)
	}

	s := &SQLiteStore{db: db, ttl: ttl, now: time.Now, sweeper: newSweeper()}
	if ttl > 0 {
		s.sweeper.start(sweepInterval(ttl), func() {
			_, _ = s.cleanupExpired(context.Background())
		})
	}
	return s, nil
}

// cleanupExpired deletes the rows of every session whose report has expired.
func (s *SQLiteStore) cleanupExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl).UnixNano()
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE saved_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired reports: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Save(ctx context.Context, sessionID string, p *models.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports(session_id, profile, saved_at) VALUES(?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET profile = excluded.profile, saved_at = excluded.saved_at`,
		sessionID, string(b), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, sessionID string) (*models.Profile, error) {
	var (
		raw     string
		savedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT profile, saved_at FROM reports WHERE session_id = ?`, sessionID).Scan(&raw, &savedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	if expired(time.Unix(0, savedAt), s.ttl, s.now()) {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM reports WHERE session_id = ? AND saved_at = ?`, sessionID, savedAt); err != nil {
			return nil, fmt.Errorf("failed to expire report: %w", err)
		}
		return nil, ErrNotFound
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &p, nil
}

func (s *SQLiteStore) Close() error {
	s.sweeper.stop()
	return s.db.Close()
}
