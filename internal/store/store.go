// Package store persists each chat's last viewed page, so a restarted bot
// resumes listings where the user left them.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"keyboardkit/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type Store struct {
	db  *sql.DB
	log logx.Logger
}

// Open creates (or opens) the SQLite database at path and runs migrations.
func Open(path string, log logx.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store: sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec("PRAGMA busy_timeout = 5000")
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	s := &Store{db: db, log: log}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// PutPage upserts the last viewed page for (chat, source).
func (s *Store) PutPage(ctx context.Context, chatID int64, source string, page int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page_state(chat_id, source, page, updated_at) VALUES(?,?,?,?)
		 ON CONFLICT(chat_id, source) DO UPDATE SET page = excluded.page, updated_at = excluded.updated_at`,
		chatID, source, page, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetPage returns the last viewed page for (chat, source); ok is false when
// the chat has no recorded state.
func (s *Store) GetPage(ctx context.Context, chatID int64, source string) (page int, ok bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT page FROM page_state WHERE chat_id = ? AND source = ?`, chatID, source)
	switch err := row.Scan(&page); {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, err
	}
	return page, true, nil
}

// Prune removes state not touched since the cutoff. Returns rows removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM page_state WHERE updated_at < ?`,
		olderThan.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 && !s.log.IsZero() {
		s.log.Debug("pruned page state", logx.Int64("rows", n))
	}
	return n, nil
}
