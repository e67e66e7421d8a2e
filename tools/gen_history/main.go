// Package main generates deterministic score histories for import and
// load testing.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/store"
)

// HistoryParams defines parameters for history generation.
type HistoryParams struct {
	Seed      int64
	Sectors   int
	Days      int
	End       time.Time
	RingCount int
	FillRate  float64 // Chance that a sector is scored on a given day
	Drift     float64 // Chance that a sector's level moves by one each day
}

// generateHistory builds a snapshot whose levels wander around a per-sector
// baseline. The same params always give the same snapshot.
func generateHistory(params HistoryParams) *core.Snapshot {
	rng := rand.New(rand.NewSource(params.Seed))

	sectors := make(core.Sectors, 0, params.Sectors)
	defaults := core.DefaultSectors()
	for i := 0; i < params.Sectors; i++ {
		name := fmt.Sprintf("Sector %d", i+1)
		if i < len(defaults) {
			name = defaults[i].Name
		}
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
		}
		sectors = append(sectors, core.Sector{ID: id.String(), Name: name, Color: core.PaletteColor(i)})
	}

	levels := make([]int, len(sectors))
	for i := range levels {
		levels[i] = 1 + rng.Intn(params.RingCount)
	}

	book := core.ScoreBook{}
	start := params.End.AddDate(0, 0, -(params.Days - 1))
	for d := 0; d < params.Days; d++ {
		date := core.FormatDate(start.AddDate(0, 0, d))
		for i, sec := range sectors {
			if rng.Float64() < params.Drift {
				if rng.Intn(2) == 0 {
					levels[i]--
				} else {
					levels[i]++
				}
				levels[i] = max(1, core.ClampScore(levels[i], params.RingCount))
			}
			if rng.Float64() < params.FillRate {
				book.Set(date, sec.ID, levels[i])
			}
		}
	}
	return core.NewSnapshot(sectors, book, params.End)
}

func main() {
	// Parse flags
	seed := flag.Int64("seed", 42, "Random seed for deterministic generation")
	numSectors := flag.Int("sectors", 8, "Number of sectors")
	days := flag.Int("days", 90, "Number of days of history")
	end := flag.String("end", core.Today(), "Last day of history (YYYY-MM-DD)")
	ringCount := flag.Int("rings", core.DefaultRingCount, "Score levels per sector")
	fillRate := flag.Float64("fill", 0.7, "Chance a sector is scored on a day (0-1)")
	drift := flag.Float64("drift", 0.3, "Chance a level moves each day (0-1)")
	outputDir := flag.String("output", "testdata", "Output directory")
	scalingMode := flag.Bool("scaling", false, "Generate scaling histories (30, 365, 1000, 3650 days; 8 and 40 sectors)")

	flag.Parse()

	endDate, err := core.ParseDate(*end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -end: %v\n", err)
		os.Exit(1)
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	base := HistoryParams{
		Seed:      *seed,
		Sectors:   *numSectors,
		Days:      *days,
		End:       endDate,
		RingCount: *ringCount,
		FillRate:  *fillRate,
		Drift:     *drift,
	}

	var runs []HistoryParams
	if *scalingMode {
		for _, n := range []int{8, 40} {
			for _, d := range []int{30, 365, 1000, 3650} {
				p := base
				p.Sectors = n
				p.Days = d
				runs = append(runs, p)
			}
		}
	} else {
		runs = append(runs, base)
	}

	// Write histories to files
	for _, p := range runs {
		snap := generateHistory(p)
		filename := filepath.Join(*outputDir, fmt.Sprintf("history_%d_%dd_%d.json", p.Sectors, p.Days, p.Seed))
		if err := snap.Validate(p.RingCount); err != nil {
			fmt.Fprintf(os.Stderr, "Error validating %s: %v\n", filename, err)
			continue
		}
		if err := store.WriteSnapshotFile(filename, snap); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing history %s: %v\n", filename, err)
			continue
		}
		fmt.Printf("Generated: %s (%d sectors, %d days, %d scored days)\n",
			filename, len(snap.Sectors), p.Days, len(snap.ScoresByDate))
	}
}
