// Package stats summarizes score history.
package stats

import (
	"sort"

	"github.com/elektrokombinacija/lifewheel/internal/core"
)

// SectorStat is one sector's record over the summarized days.
type SectorStat struct {
	ID      string
	Name    string
	Average float64 // Mean over the days this sector was scored
	Days    int     // Days with a non-zero score
	Latest  int     // Score on the most recent tracked day
}

// Summary is the aggregate view of a score book.
type Summary struct {
	Sectors       []SectorStat // In wheel order
	DaysTracked   int
	FirstDate     string
	LastDate      string
	CurrentStreak int // Consecutive scored days ending today or yesterday
	Overall       float64
	Best          *SectorStat
	Worst         *SectorStat
}

// Options restricts which days are summarized. Empty bounds are open.
type Options struct {
	From  string
	To    string
	Today string // Anchor for the streak; defaults to core.Today()
}

// Compute summarizes book for sectors.
func Compute(sectors []core.Sector, book core.ScoreBook, opts Options) Summary {
	dates := filterDates(book.Dates(), opts.From, opts.To)

	var sum Summary
	sum.DaysTracked = len(dates)
	if len(dates) > 0 {
		sum.FirstDate = dates[0]
		sum.LastDate = dates[len(dates)-1]
	}

	var total float64
	var totalDays int
	for _, sec := range sectors {
		st := SectorStat{ID: sec.ID, Name: sec.Name}
		var acc int
		for _, d := range dates {
			if v := book.Get(d, sec.ID); v > 0 {
				acc += v
				st.Days++
			}
		}
		if st.Days > 0 {
			st.Average = float64(acc) / float64(st.Days)
			total += float64(acc)
			totalDays += st.Days
		}
		if sum.LastDate != "" {
			st.Latest = book.Get(sum.LastDate, sec.ID)
		}
		sum.Sectors = append(sum.Sectors, st)
	}
	if totalDays > 0 {
		sum.Overall = total / float64(totalDays)
	}

	sum.Best, sum.Worst = extremes(sum.Sectors)

	today := opts.Today
	if today == "" {
		today = core.Today()
	}
	sum.CurrentStreak = Streak(book, today)
	return sum
}

// Streak counts consecutive days with at least one score, ending today.
// An unscored today does not break a streak that ran through yesterday.
func Streak(book core.ScoreBook, today string) int {
	t, err := core.ParseDate(today)
	if err != nil {
		return 0
	}
	if len(book[today]) == 0 {
		t = t.AddDate(0, 0, -1)
	}
	n := 0
	for len(book[core.FormatDate(t)]) > 0 {
		n++
		t = t.AddDate(0, 0, -1)
	}
	return n
}

// DayAverage is the mean non-zero score on date, and how many sectors
// were scored.
func DayAverage(book core.ScoreBook, date string) (float64, int) {
	day := book[date]
	if len(day) == 0 {
		return 0, 0
	}
	total := 0
	for _, v := range day {
		total += v
	}
	return float64(total) / float64(len(day)), len(day)
}

// Window returns count ISO dates ending at end, oldest first.
func Window(end string, count int) []string {
	t, err := core.ParseDate(end)
	if err != nil || count <= 0 {
		return nil
	}
	out := make([]string, count)
	for i := count - 1; i >= 0; i-- {
		out[i] = core.FormatDate(t)
		t = t.AddDate(0, 0, -1)
	}
	return out
}

func filterDates(dates []string, from, to string) []string {
	out := dates[:0:0]
	for _, d := range dates {
		if from != "" && d < from {
			continue
		}
		if to != "" && d > to {
			continue
		}
		out = append(out, d)
	}
	return out
}

// extremes picks the highest and lowest averages among scored sectors.
// Ties keep wheel order.
func extremes(stats []SectorStat) (best, worst *SectorStat) {
	scored := make([]int, 0, len(stats))
	for i, s := range stats {
		if s.Days > 0 {
			scored = append(scored, i)
		}
	}
	if len(scored) == 0 {
		return nil, nil
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return stats[scored[a]].Average > stats[scored[b]].Average
	})
	b := stats[scored[0]]
	w := stats[scored[len(scored)-1]]
	if len(scored) > 1 {
		// Among equal lowest averages, report the first in wheel order.
		for i := len(scored) - 2; i >= 0 && stats[scored[i]].Average == w.Average; i-- {
			w = stats[scored[i]]
		}
	}
	return &b, &w
}
