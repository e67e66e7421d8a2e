package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/store"
	"github.com/elektrokombinacija/lifewheel/internal/vis/state"
)

// edit loads the wheel into a State, applies fn and saves when fn changed it.
func (s *session) edit(ctx context.Context, fn func(st *state.State) error) error {
	db, snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	st := state.NewState(snap, s.cfg.RingCount, nowFunc)
	if err := fn(st); err != nil {
		return err
	}
	if !st.Dirty {
		return nil
	}
	if err := db.Save(ctx, st.Snapshot(nowFunc())); err != nil {
		return fmt.Errorf("failed to save wheel: %w", err)
	}
	return nil
}

// findSector resolves an id or a case-insensitive name.
func findSector(sectors core.Sectors, ref string) (core.Sector, error) {
	if sec, ok := sectors.Find(ref); ok {
		return sec, nil
	}
	for _, sec := range sectors {
		if strings.EqualFold(sec.Name, ref) {
			return sec, nil
		}
	}
	return core.Sector{}, fmt.Errorf("%w: %q", core.ErrSectorNotFound, ref)
}

func newScoreCmd(s *session) *cobra.Command {
	var day string
	cmd := &cobra.Command{
		Use:   "score SECTOR VALUE",
		Short: "Set a sector's score for a day.",
		Long: `Score records VALUE for SECTOR, given by id or name. Values above the
ring count are clamped, 0 clears the score, and future days fall back to today.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.edit(cmd.Context(), func(st *state.State) error {
				if day != "" {
					if err := st.Date.Set(day); err != nil {
						return err
					}
				}
				sec, err := findSector(st.Sectors(), args[0])
				if err != nil {
					return err
				}
				level, err := core.ParseScore(args[1], st.RingCount)
				if err != nil {
					return err
				}
				if err := st.SetScore(sec.ID, level); err != nil {
					return err
				}
				logSuccess(cmd.OutOrStdout(), "%s on %s: %d/%d", sec.Name, st.Date.Current, level, st.RingCount)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&day, "date", "", "Day to score (YYYY-MM-DD, default today)")
	return cmd
}

func newSectorCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sector",
		Short: "List and edit sectors.",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List sectors in wheel order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			today := core.FormatDate(nowFunc())
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header([]string{"#", "ID", "Name", "Color", "Today"})
			var data [][]string
			for i, sec := range snap.Sectors {
				data = append(data, []string{
					strconv.Itoa(i),
					sec.ID,
					sec.Name,
					sec.Color,
					strconv.Itoa(snap.ScoresByDate.Get(today, sec.ID)),
				})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		},
	}

	add := &cobra.Command{
		Use:   "add NAME [COLOR]",
		Short: "Append a sector, colored from the palette unless COLOR is given.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var css string
			if len(args) == 2 {
				css = args[1]
			}
			return s.edit(cmd.Context(), func(st *state.State) error {
				sec, err := st.AddSector(args[0], css)
				if err != nil {
					return err
				}
				logSuccess(cmd.OutOrStdout(), "Added %s (%s)", sec.Name, sec.ID)
				return nil
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename SECTOR NAME",
		Short: "Rename a sector.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.edit(cmd.Context(), func(st *state.State) error {
				sec, err := findSector(st.Sectors(), args[0])
				if err != nil {
					return err
				}
				return st.RenameSector(sec.ID, args[1])
			})
		},
	}

	recolor := &cobra.Command{
		Use:   "color SECTOR COLOR",
		Short: "Change a sector's color.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.edit(cmd.Context(), func(st *state.State) error {
				sec, err := findSector(st.Sectors(), args[0])
				if err != nil {
					return err
				}
				return st.RecolorSector(sec.ID, args[1])
			})
		},
	}

	move := &cobra.Command{
		Use:   "move SECTOR DELTA",
		Short: "Move a sector by DELTA positions (negative is counter-clockwise).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[1], err)
			}
			return s.edit(cmd.Context(), func(st *state.State) error {
				sec, err := findSector(st.Sectors(), args[0])
				if err != nil {
					return err
				}
				return st.MoveSector(sec.ID, delta)
			})
		},
	}
	// A negative DELTA is an argument, not a shorthand flag.
	move.Flags().SetInterspersed(false)

	del := &cobra.Command{
		Use:   "delete SECTOR",
		Short: "Delete a sector and its scores.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.edit(cmd.Context(), func(st *state.State) error {
				sec, err := findSector(st.Sectors(), args[0])
				if err != nil {
					return err
				}
				if err := st.DeleteSector(sec.ID); err != nil {
					return err
				}
				logSuccess(cmd.OutOrStdout(), "Deleted %s", sec.Name)
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, rename, recolor, move, del)
	return cmd
}

func newImportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the saved wheel with an export document.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := store.ReadSnapshotFile(args[0], s.cfg.RingCount)
			if err != nil {
				return err
			}
			db, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			if err := db.Save(cmd.Context(), snap); err != nil {
				return fmt.Errorf("failed to save wheel: %w", err)
			}
			logSuccess(cmd.OutOrStdout(), "Imported %d sectors and %d days", len(snap.Sectors), len(snap.ScoresByDate))
			return nil
		},
	}
}

func newExportCmd(s *session) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write the saved wheel as an export document.",
		Long: `Export writes {version, exportDate, sectors, scoresByDate} JSON to FILE, or stdout when FILE is omitted or "-".
With --format parquet it writes one row per scored cell (date, sector, level) to FILE instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "parquet" {
				return fmt.Errorf("unknown export format %q", format)
			}
			if format == "parquet" && (len(args) == 0 || args[0] == "-") {
				return fmt.Errorf("parquet export needs an output file")
			}
			db, snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			snap = core.NewSnapshot(snap.Sectors, snap.ScoresByDate, nowFunc())
			if format == "parquet" {
				n, err := store.WriteScoresParquetFile(args[0], snap)
				if err != nil {
					return err
				}
				logSuccess(cmd.ErrOrStderr(), "Wrote %d score rows to %s", n, args[0])
				return nil
			}
			if len(args) == 0 || args[0] == "-" {
				return store.WriteSnapshot(cmd.OutOrStdout(), snap)
			}
			if err := store.WriteSnapshotFile(args[0], snap); err != nil {
				return err
			}
			logSuccess(cmd.ErrOrStderr(), "Wrote %s", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Export format: json or parquet")
	return cmd
}
