// Package history keeps a local log of mutations made from the dashboard.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/tailor/internal/models"
	_ "modernc.org/sqlite"
)

const dbFile = "history.db"

// Store wraps the history database
type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the history database under home.
func Open(home string) (*Store, error) {
	if err := os.MkdirAll(home, 0755); err != nil {
		return nil, fmt.Errorf("create home dir: %w", err)
	}

	conn, err := sql.Open("sqlite", filepath.Join(home, dbFile))
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	// WAL lets the CLI read while the dashboard writes
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA synchronous=NORMAL")

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.conn.Close()
}

// SchemaVersion returns the stored schema version, 0 if unset.
func (s *Store) SchemaVersion() (int, error) {
	var v string
	err := s.conn.QueryRow("SELECT value FROM schema_info WHERE key = 'version'").Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

func (s *Store) migrate() error {
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	current, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if _, err := s.conn.Exec(m.sql); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		current = m.version
	}
	_, err = s.conn.Exec(`INSERT OR REPLACE INTO schema_info (key, value) VALUES ('version', ?)`,
		strconv.Itoa(SchemaVersion))
	return err
}

// Record stores e, filling in ID and Timestamp when empty.
func (s *Store) Record(ctx context.Context, e models.HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	ok := 0
	if e.OK {
		ok = 1
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO mutations (id, timestamp, action, row_id, detail, ok, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp.UnixNano(), string(e.Action), e.RowID, e.Detail, ok, e.Error)
	if err != nil {
		return fmt.Errorf("record %s: %w", e.Action, err)
	}
	return nil
}

// ListOptions filters List
type ListOptions struct {
	Action models.HistoryAction
	RowID  string
	Since  time.Time
	Limit  int
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]models.HistoryEntry, error) {
	query := `SELECT id, timestamp, action, row_id, detail, ok, error FROM mutations WHERE 1=1`
	var args []any
	if opts.Action != "" {
		query += " AND action = ?"
		args = append(args, string(opts.Action))
	}
	if opts.RowID != "" {
		query += " AND row_id = ?"
		args = append(args, opts.RowID)
	}
	if !opts.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, opts.Since.UnixNano())
	}
	query += " ORDER BY timestamp DESC, rowid DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []models.HistoryEntry
	for rows.Next() {
		var (
			e      models.HistoryEntry
			ts     int64
			action string
			ok     int
		)
		if err := rows.Scan(&e.ID, &ts, &action, &e.RowID, &e.Detail, &ok, &e.Error); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(0, ts)
		e.Action = models.HistoryAction(action)
		e.OK = ok == 1
		out = append(out, e)
	}
	return out, rows.Err()
}
