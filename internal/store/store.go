// Package store persists sectors and score history.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/elektrokombinacija/lifewheel/internal/core"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no saved data")

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Keys under which the two halves of a snapshot are stored.
const (
	KeySectors = "sectors"
	KeyScores  = "scores"
)

// Store loads and saves the full snapshot.
type Store interface {
	Load(ctx context.Context) (*core.Snapshot, error)
	Save(ctx context.Context, snap *core.Snapshot) error
	Close() error
}

// LoadOrDefault loads from s, falling back to the default sectors when
// nothing has been saved.
func LoadOrDefault(ctx context.Context, s Store) (*core.Snapshot, error) {
	snap, err := s.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return core.NewSnapshot(core.DefaultSectors(), core.ScoreBook{}, nowFunc()), nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ReadSnapshot decodes and validates an export document.
func ReadSnapshot(r io.Reader, ringCount int) (*core.Snapshot, error) {
	var snap core.Snapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Normalize()
	if err := snap.Validate(ringCount); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return &snap, nil
}

// WriteSnapshot encodes an export document as indented JSON.
func WriteSnapshot(w io.Writer, snap *core.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshotFile reads an export document from path.
func ReadSnapshotFile(path string, ringCount int) (*core.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadSnapshot(f, ringCount)
}

// WriteSnapshotFile writes an export document to path, or stdout when
// path is empty or "-".
func WriteSnapshotFile(path string, snap *core.Snapshot) error {
	if path == "" || path == "-" {
		return WriteSnapshot(os.Stdout, snap)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSnapshot(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
