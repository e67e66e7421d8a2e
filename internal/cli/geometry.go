package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/lifewheel/internal/geom"
)

func newLayoutCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the angular layout of every sector.",
		Long: `Layout lists each sector with its start, end and mid angles in degrees,
measured clockwise from 3 o'clock with the first sector starting at 12 o'clock.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			w := cmd.OutOrStdout()
			table := tablewriter.NewWriter(w)
			table.Header([]string{"#", "Sector", "ID", "Start", "End", "Mid", "Span"})
			table.Configure(func(cfg *tablewriter.Config) {
				cfg.Row.Alignment.Global = tw.AlignRight
			})

			var data [][]string
			for i, a := range geom.Layout(snap.Sectors, s.cfg.Gap) {
				data = append(data, []string{
					strconv.Itoa(i),
					a.Name,
					a.ID,
					fmtDeg(a.A0),
					fmtDeg(a.A1),
					fmtDeg(a.Mid),
					fmtDeg(a.Span()),
				})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "%d sectors, gap %s, %d rings of %s px\n",
				len(snap.Sectors), fmtDeg(s.cfg.Gap), s.cfg.RingCount, fmtDeg(s.wheel(snap.Sectors).RingThickness()))
			return err
		},
	}
}

func newHitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "hit X Y",
		Short: "Report the sector and ring level under a canvas point.",
		Long: `Hit runs the same hit test as a click in the window, with X and Y in
canvas pixels and the wheel centered on the canvas.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[0], err)
			}
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[1], err)
			}
			db, snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			w := cmd.OutOrStdout()
			hit, ok := s.wheel(snap.Sectors).HitTest(geom.Pt(x, y))
			if !ok {
				_, err = fmt.Fprintln(w, "miss")
				return err
			}
			_, err = fmt.Fprintf(w, "sector %s (%s) level %d\n  distance %s angle %s\n",
				snap.Sectors[hit.Index].Name, hit.SectorID, hit.Level, fmtDeg(hit.Distance), fmtDeg(hit.Angle))
			return err
		},
	}
}

func fmtDeg(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
