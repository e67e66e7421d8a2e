package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/stats"
)

// Average bands for colored labels, as fractions of the ring count.
const (
	strongShare = 0.7
	steadyShare = 0.4
)

var (
	strongColor = color.New(color.FgGreen)
	steadyColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgRed)
)

func newStatsCmd(s *session) *cobra.Command {
	var from, to string
	var width int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize score history per sector.",
		Long: `Stats prints each sector's average over the days it was scored, the
latest score, and the current streak of consecutive scored days.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, d := range []string{from, to} {
				if d == "" {
					continue
				}
				if _, err := core.ParseDate(d); err != nil {
					return err
				}
			}
			db, snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			sum := stats.Compute(snap.Sectors, snap.ScoresByDate, stats.Options{
				From:  from,
				To:    to,
				Today: core.FormatDate(nowFunc()),
			})
			return writeStats(cmd.OutOrStdout(), sum, s.cfg.RingCount, barWidth(width))
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().IntVar(&width, "width", 0, "Terminal width override (0 = auto-detect)")
	return cmd
}

func writeStats(w io.Writer, sum stats.Summary, ringCount, bar int) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Sector", "Average", "Days", "Latest", "Label", ""})

	var data [][]string
	for _, st := range sum.Sectors {
		data = append(data, []string{
			st.Name,
			strconv.FormatFloat(st.Average, 'f', 2, 64),
			strconv.Itoa(st.Days),
			strconv.Itoa(st.Latest),
			averageLabel(st, ringCount),
			averageBar(st.Average, ringCount, bar),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if sum.DaysTracked == 0 {
		_, err := fmt.Fprintln(w, "No scores recorded yet")
		return err
	}
	if _, err := fmt.Fprintf(w, "Tracked %d days (%s to %s), overall average %.2f, current streak %d\n",
		sum.DaysTracked, sum.FirstDate, sum.LastDate, sum.Overall, sum.CurrentStreak); err != nil {
		return err
	}
	if sum.Best != nil && sum.Worst != nil {
		if _, err := fmt.Fprintf(w, "Best: %s (%.2f)  Needs attention: %s (%.2f)\n",
			sum.Best.Name, sum.Best.Average, sum.Worst.Name, sum.Worst.Average); err != nil {
			return err
		}
	}
	return nil
}

// averageLabel bands a sector average relative to the ring count.
func averageLabel(st stats.SectorStat, ringCount int) string {
	if st.Days == 0 {
		return "-"
	}
	share := st.Average / float64(ringCount)
	switch {
	case share >= strongShare:
		return strongColor.Sprint("strong")
	case share >= steadyShare:
		return steadyColor.Sprint("steady")
	default:
		return lowColor.Sprint("low")
	}
}

func averageBar(avg float64, ringCount, width int) string {
	if ringCount <= 0 || width <= 0 {
		return ""
	}
	n := int(avg/float64(ringCount)*float64(width) + 0.5)
	n = max(0, min(n, width))
	return strings.Repeat("#", n) + strings.Repeat(".", width-n)
}

// barWidth sizes the average bar column from the terminal width.
func barWidth(override int) int {
	termWidth := override
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for pipes and CI
		} else {
			termWidth = detectedWidth
		}
	}
	// Sector, numbers and label columns with borders and padding
	available := termWidth - 60
	return max(10, min(available, 40))
}
