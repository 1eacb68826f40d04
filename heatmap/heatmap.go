// Package heatmap renders a GitHub-style activity heatmap of logged work
// as an SVG string for the web dashboard.
package heatmap

import (
	"fmt"
	"strings"
	"time"
)

// Cell is one day's entry count.
type Cell struct {
	Date  time.Time
	Count int
}

// Options configures rendering parameters.
type Options struct {
	CellSize    int      // size of each day cell (px)
	CellPadding int      // padding between cells (px)
	FontSize    int      // font size for labels (px)
	FontFamily  string   // font family for labels
	Colors      []string // CSS colors for levels 0..N-1
	Title       string   // optional title above the grid
}

// DefaultOptions returns the dashboard's standard rendering options.
func DefaultOptions() *Options {
	return &Options{
		CellSize:    12,
		CellPadding: 2,
		FontSize:    10,
		FontFamily:  "sans-serif",
		Colors:      []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
	}
}

// GenerateSVG renders cells as a weekly-column heatmap. Cells must be in
// ascending date order; days absent from cells are drawn at level 0.
func GenerateSVG(cells []Cell, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(cells) == 0 {
		return ""
	}

	counts := make(map[string]int, len(cells))
	maxCount := 0
	for _, c := range cells {
		key := c.Date.Format("2006-01-02")
		counts[key] = c.Count
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}

	first := midnight(cells[0].Date)
	last := midnight(cells[len(cells)-1].Date)

	// columns are weeks starting on Sunday
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	weeks := int(last.Sub(gridStart).Hours()/24/7) + 1

	step := opts.CellSize + opts.CellPadding
	titleHeight := 0
	if opts.Title != "" {
		titleHeight = opts.FontSize + 6
	}
	labelHeight := opts.FontSize + 4
	width := weeks*step + opts.CellPadding
	height := titleHeight + labelHeight + 7*step + opts.CellPadding

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height)
	fmt.Fprintf(&sb, `  <style>.label{font-family:%s;font-size:%dpx;fill:#666}</style>`+"\n",
		opts.FontFamily, opts.FontSize)

	if opts.Title != "" {
		fmt.Fprintf(&sb, `  <text x="%d" y="%d" class="label">%s</text>`+"\n",
			opts.CellPadding, opts.FontSize, opts.Title)
	}

	// month labels over the first week of each month
	lastMonth := time.Month(0)
	for w := 0; w < weeks; w++ {
		day := gridStart.AddDate(0, 0, w*7)
		if day.Day() <= 7 && day.Month() != lastMonth {
			fmt.Fprintf(&sb, `  <text x="%d" y="%d" class="label">%s</text>`+"\n",
				opts.CellPadding+w*step, titleHeight+opts.FontSize, day.Format("Jan"))
			lastMonth = day.Month()
		}
	}

	levels := len(opts.Colors)
	for w := 0; w < weeks; w++ {
		for d := 0; d < 7; d++ {
			day := gridStart.AddDate(0, 0, w*7+d)
			if day.Before(first) || day.After(last) {
				continue
			}
			key := day.Format("2006-01-02")
			count := counts[key]

			x := opts.CellPadding + w*step
			y := titleHeight + labelHeight + opts.CellPadding + d*step
			fmt.Fprintf(&sb, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" data-date="%s" data-count="%d">`+"\n",
				x, y, opts.CellSize, opts.CellSize, opts.Colors[level(count, maxCount, levels)], key, count)
			fmt.Fprintf(&sb, `    <title>%s: %d</title>`+"\n", key, count)
			sb.WriteString("  </rect>\n")
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// level maps a count onto a color index, scaled to the busiest day.
func level(count, maxCount, levels int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	l := 1 + (count-1)*(levels-1)/maxCount
	if l >= levels {
		l = levels - 1
	}
	return l
}

// midnight zeroes the time component.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
