// Package render draws a wheel without a window, as SVG.
package render

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/lifewheel/internal/geom"
)

// Options controls SVG output.
type Options struct {
	Size        int     // Width and height in pixels
	FillBase    float64 // Opacity of the outermost filled ring
	TrackAlpha  float64 // Opacity of an unfilled sector
	Background  string  // CSS color, empty for transparent
	Labels      bool
	Title       string
	RingStrokes bool
}

// DefaultOptions matches the interactive view.
func DefaultOptions() Options {
	return Options{
		Size:        900,
		FillBase:    0.35,
		TrackAlpha:  0.12,
		Background:  "#1e2024",
		Labels:      true,
		RingStrokes: true,
	}
}

// WriteSVG renders wheel with scores into w. Wheel geometry is used as is,
// so it should be laid out in a Size x Size box.
func WriteSVG(w io.Writer, wheel geom.Wheel, scores map[string]int, opts Options) error {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	bw := bufio.NewWriter(w)
	size := strconv.Itoa(opts.Size)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n", size, size, size, size)
	if opts.Title != "" {
		fmt.Fprintf(bw, "  <title>%s</title>\n", escape(opts.Title))
	}
	if opts.Background != "" {
		fmt.Fprintf(bw, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escape(opts.Background))
	}

	for _, s := range wheel.Sectors {
		if s.Degenerate() {
			continue
		}
		fmt.Fprintf(bw, `  <g id="sector-%s">`+"\n", escape(s.ID))
		if track, ok := wheel.SectorWedge(s); ok {
			writePath(bw, track, s.Color, opts.TrackAlpha, "")
		}
		for _, lf := range geom.FillLevels(scores[s.ID], wheel.RingCount, opts.FillBase) {
			ring, ok := wheel.RingWedge(s, lf.Level)
			if !ok {
				continue
			}
			writePath(bw, ring, s.Color, lf.Opacity, strconv.Itoa(lf.Level))
		}
		bw.WriteString("  </g>\n")
	}

	if opts.RingStrokes && len(wheel.Sectors) > 0 {
		t := wheel.RingThickness()
		c := wheel.Center
		for l := 0; l < wheel.RingCount; l++ {
			r := wheel.Radius - float64(l)*t
			width := "1"
			if l == 0 {
				width = "2"
			}
			fmt.Fprintf(bw, `  <circle cx="%s" cy="%s" r="%s" fill="none" stroke="#5a646e" stroke-width="%s"/>`+"\n",
				num(c.X), num(c.Y), num(r), width)
		}
	}

	if opts.Labels {
		r := wheel.Radius - wheel.RingThickness()/2
		for _, s := range wheel.Sectors {
			if s.Degenerate() || s.Name == "" {
				continue
			}
			p := geom.PolarToCartesian(wheel.Center, r, s.Mid)
			fmt.Fprintf(bw, `  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-size="12" fill="#e6e6e6">%s</text>`+"\n",
				num(p.X), num(p.Y), escape(s.Name))
		}
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func writePath(w *bufio.Writer, wedge geom.Wedge, fill string, opacity float64, level string) {
	attr := ""
	if level != "" {
		attr = ` data-level="` + level + `"`
	}
	fmt.Fprintf(w, `    <path d="%s" fill="%s" fill-opacity="%s"%s/>`+"\n",
		wedge.SVGPath(), escape(fill), num(opacity), attr)
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
