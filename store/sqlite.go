package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	createSnapshotsTable = `CREATE TABLE IF NOT EXISTS snapshots (
		name     TEXT PRIMARY KEY,
		board    TEXT NOT NULL,
		saved_at INTEGER NOT NULL
	)`

	upsertSnapshot = `INSERT INTO snapshots (name, board, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET board = excluded.board, saved_at = excluded.saved_at`

	selectSnapshot = `SELECT board FROM snapshots WHERE name = ?`
)

// ErrSnapshotNotFound is returned when loading a slot that was never saved
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SQLiteStore keeps boards as named snapshots in a SQLite database
type SQLiteStore struct {
	db   *sql.DB
	name string
}

// OpenSQLite opens (or creates) the database at path and uses the snapshot slot name
func OpenSQLite(path, name string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("[OpenSQLite] storage path is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("[OpenSQLite] snapshot name is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "[OpenSQLite] failed to open db: %+v", path)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "[OpenSQLite] failed to ping db: %+v", path)
	}
	if _, err = db.Exec(createSnapshotsTable); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[OpenSQLite] failed to create snapshots table")
	}
	return &SQLiteStore{db: db, name: name}, nil
}

// Close closes the SQLite handle
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save writes data to the snapshot slot, replacing what was there
func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, upsertSnapshot, s.name, string(data), time.Now().UTC().UnixMilli())
	if err != nil {
		return errors.Wrapf(err, "[SQLiteStore.Save] failed to save snapshot: %+v", s.name)
	}
	return nil
}

// Load reads the snapshot slot
func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var board string
	err := s.db.QueryRowContext(ctx, selectSnapshot, s.name).Scan(&board)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrSnapshotNotFound, "[SQLiteStore.Load] %+v", s.name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[SQLiteStore.Load] failed to load snapshot: %+v", s.name)
	}
	return []byte(board), nil
}
