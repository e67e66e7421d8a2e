package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/elektrokombinacija/lifewheel/internal/core"
)

// SQLite keeps the snapshot as two JSON values in a key-value table.
type SQLite struct {
	db      *sql.DB
	path    string
	version uint
}

var _ Store = &SQLite{} // Compile-time check

// DefaultPath returns the database file in the user's home directory.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lifewheel.db"
	}
	return filepath.Join(homeDir, ".lifewheel.db")
}

// OpenSQLite opens or creates the database at path. ":memory:" gives a
// throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		path = DefaultPath()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite store at %q: %w", path, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open SQLite store at %q: %w", path, err)
	}
	version, err := migrateUp(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, path: path, version: version}, nil
}

// Path returns the database location.
func (s *SQLite) Path() string { return s.path }

// SchemaVersion reports the migration the database was brought to on open.
func (s *SQLite) SchemaVersion() uint { return s.version }

// Get returns the raw value stored under key.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	row := s.db.QueryRowContext(ctx, `SELECT kv_value FROM wheel_kv WHERE kv_key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set inserts or replaces the value under key.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO wheel_kv (kv_key, kv_value, kv_version, kv_timestamp) VALUES (?, ?, ?, ?)`,
		key, value, core.SnapshotVersion, nowFunc().Unix())
	return err
}

// Load reads sectors and scores. A database with no sectors saved yet
// reports ErrNotFound.
func (s *SQLite) Load(ctx context.Context) (*core.Snapshot, error) {
	raw, err := s.Get(ctx, KeySectors)
	if err != nil {
		return nil, err
	}
	var sectors core.Sectors
	if err := json.Unmarshal(raw, &sectors); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeySectors, err)
	}

	book := core.ScoreBook{}
	raw, err = s.Get(ctx, KeyScores)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(raw, &book); err != nil {
			return nil, fmt.Errorf("decode %s: %w", KeyScores, err)
		}
	}

	snap := &core.Snapshot{
		Version:      core.SnapshotVersion,
		ExportDate:   nowFunc().UTC().Format(time.RFC3339),
		Sectors:      sectors,
		ScoresByDate: book,
	}
	snap.Normalize()
	return snap, nil
}

// Save writes sectors and scores in one transaction.
func (s *SQLite) Save(ctx context.Context, snap *core.Snapshot) error {
	sectors, err := json.Marshal(snap.Sectors)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeySectors, err)
	}
	scores, err := json.Marshal(snap.ScoresByDate)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyScores, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	ts := nowFunc().Unix()
	const upsert = `INSERT OR REPLACE INTO wheel_kv (kv_key, kv_value, kv_version, kv_timestamp) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, upsert, KeySectors, sectors, core.SnapshotVersion, ts); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("save %s: %w", KeySectors, err)
	}
	if _, err := tx.ExecContext(ctx, upsert, KeyScores, scores, core.SnapshotVersion, ts); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("save %s: %w", KeyScores, err)
	}
	return tx.Commit()
}

// LastSaved returns when the snapshot was last written.
func (s *SQLite) LastSaved(ctx context.Context) (time.Time, error) {
	var ts sql.NullInt64
	row := s.db.QueryRowContext(ctx, `SELECT MAX(kv_timestamp) FROM wheel_kv`)
	if err := row.Scan(&ts); err != nil {
		return time.Time{}, err
	}
	if !ts.Valid {
		return time.Time{}, ErrNotFound
	}
	return time.Unix(ts.Int64, 0), nil
}

// Close closes the underlying DB connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
