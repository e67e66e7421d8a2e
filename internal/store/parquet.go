package store

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/elektrokombinacija/lifewheel/internal/core"
)

// ScoreRow is one scored cell of the history, flattened for analysis tools.
type ScoreRow struct {
	// Date is the ISO day the score belongs to
	Date string `parquet:"date,snappy"`

	SectorID   string `parquet:"sector_id,snappy"`
	SectorName string `parquet:"sector_name,snappy"`

	// Position is the sector's index in wheel order
	Position int32 `parquet:"position,snappy"`

	Level int32 `parquet:"level,snappy"`
}

// ScoreRows flattens the score history by date, then wheel order. Scores
// for sectors that no longer exist are skipped.
func ScoreRows(snap *core.Snapshot) []ScoreRow {
	var rows []ScoreRow
	for _, date := range snap.ScoresByDate.Dates() {
		for i, sec := range snap.Sectors {
			v := snap.ScoresByDate.Get(date, sec.ID)
			if v == 0 {
				continue
			}
			rows = append(rows, ScoreRow{
				Date:       date,
				SectorID:   sec.ID,
				SectorName: sec.Name,
				Position:   int32(i),
				Level:      int32(v),
			})
		}
	}
	return rows
}

// WriteScoresParquet writes the flattened score history to w.
func WriteScoresParquet(w io.Writer, snap *core.Snapshot) (int, error) {
	rows := ScoreRows(snap)
	writer := parquet.NewGenericWriter[ScoreRow](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return 0, fmt.Errorf("failed to write score rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return len(rows), nil
}

// WriteScoresParquetFile writes the flattened score history to path.
func WriteScoresParquetFile(path string, snap *core.Snapshot) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	n, err := WriteScoresParquet(f, snap)
	if err != nil {
		_ = f.Close()
		return 0, err
	}
	return n, f.Close()
}
