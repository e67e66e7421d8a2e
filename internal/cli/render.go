package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/render"
)

func newRenderCmd(s *session) *cobra.Command {
	var (
		day      string
		out      string
		title    string
		noLabels bool
		noRings  bool
		bg       string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the wheel for a day as SVG.",
		Long: `Render writes the wheel with the scores of one day as a standalone SVG.
Without --out the document goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if day == "" {
				day = core.FormatDate(nowFunc())
			}
			if _, err := core.ParseDate(day); err != nil {
				return err
			}
			db, snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			opts := render.DefaultOptions()
			opts.Size = s.cfg.Size
			opts.FillBase = s.cfg.FillBase
			opts.Labels = !noLabels
			opts.RingStrokes = !noRings
			opts.Title = title
			if cmd.Flags().Changed("background") {
				opts.Background = bg
			}

			w, closeFn, err := outFile(out, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("could not create %s: %w", out, err)
			}
			if err := render.WriteSVG(w, s.wheel(snap.Sectors), snap.ScoresByDate.Day(day), opts); err != nil {
				_ = closeFn()
				return fmt.Errorf("error writing SVG: %w", err)
			}
			if err := closeFn(); err != nil {
				return err
			}
			if out != "" && out != "-" {
				logSuccess(cmd.ErrOrStderr(), "Wrote %s for %s", out, day)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "date", "", "Day to render (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&title, "title", "", "SVG title")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "Omit sector names")
	cmd.Flags().BoolVar(&noRings, "no-rings", false, "Omit ring outlines")
	cmd.Flags().StringVar(&bg, "background", "", "Background color, empty for transparent")
	return cmd
}
