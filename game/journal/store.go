package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/wricardo/mcp-training/parkserver/game/action"
	"github.com/wricardo/mcp-training/parkserver/game/journal/migrations"
)

var (
	ErrDuplicateAction = errors.New("action already journaled")
	ErrSessionNotFound = errors.New("journal session not found")
)

// Entry is one journaled action
type Entry struct {
	Seq        int64           `json:"seq"`
	SessionID  string          `json:"session_id"`
	ActionID   string          `json:"action_id"`
	ActionType string          `json:"action_type"`
	Tick       uint32          `json:"tick"`
	Envelope   action.Envelope `json:"envelope"`
	Status     action.Status   `json:"status"`
	Cost       int64           `json:"cost"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Store persists executed actions in SQLite
type Store struct {
	db *sql.DB
}

// Open opens a journal database and applies embedded migrations
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RegisterSession records which scenario a session's journal replays from
func (s *Store) RegisterSession(ctx context.Context, sessionID, configName string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_sessions (session_id, config_name, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (session_id) DO UPDATE SET config_name = excluded.config_name`,
		sessionID, configName, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("register journal session %s: %w", sessionID, err)
	}
	return nil
}

// SessionConfig returns the scenario name a session was registered with
func (s *Store) SessionConfig(ctx context.Context, sessionID string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT config_name FROM journal_sessions WHERE session_id = ?`, sessionID,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load journal session %s: %w", sessionID, err)
	}
	return name, nil
}

// Append journals an action that went through the execute pipeline
func (s *Store) Append(ctx context.Context, sessionID string, env action.Envelope, res action.Result) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if env.Header.ID == "" {
		return 0, fmt.Errorf("action id is required")
	}
	data, err := json.Marshal(env)
	if err != nil {
		return 0, fmt.Errorf("encode envelope: %w", err)
	}

	out, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_entries (
		   session_id, action_id, action_type, tick, envelope, status, cost, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID,
		env.Header.ID,
		env.Type,
		env.Header.Tick,
		string(data),
		string(res.Status),
		int64(res.Cost),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateAction, env.Header.ID)
		}
		return 0, fmt.Errorf("append journal entry: %w", err)
	}
	return out.LastInsertId()
}

// Entries returns a session's journal in execution order
func (s *Store) Entries(ctx context.Context, sessionID string) ([]Entry, error) {
	return s.EntriesAfter(ctx, sessionID, 0, 0)
}

// EntriesAfter returns up to limit entries with seq greater than afterSeq; limit 0 means all
func (s *Store) EntriesAfter(ctx context.Context, sessionID string, afterSeq int64, limit int) ([]Entry, error) {
	query := `SELECT seq, session_id, action_id, action_type, tick, envelope, status, cost, created_at
		FROM journal_entries WHERE session_id = ? AND seq > ? ORDER BY seq`
	args := []any{sessionID, afterSeq}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			envelope  string
			status    string
			createdAt int64
		)
		if err := rows.Scan(&e.Seq, &e.SessionID, &e.ActionID, &e.ActionType, &e.Tick, &envelope, &status, &e.Cost, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if err := json.Unmarshal([]byte(envelope), &e.Envelope); err != nil {
			return nil, fmt.Errorf("decode journal envelope %d: %w", e.Seq, err)
		}
		e.Status = action.Status(status)
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}

// Count returns how many entries a session has
func (s *Store) Count(ctx context.Context, sessionID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE session_id = ?`, sessionID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count journal entries: %w", err)
	}
	return n, nil
}

// Truncate drops a session's entries but keeps its registration
func (s *Store) Truncate(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("truncate journal %s: %w", sessionID, err)
	}
	return nil
}

// DeleteSession drops everything journaled for a session
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete journal %s: %w", sessionID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM journal_entries WHERE session_id = ?`, sessionID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete journal entries %s: %w", sessionID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM journal_sessions WHERE session_id = ?`, sessionID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete journal session %s: %w", sessionID, err)
	}
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
