package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Column stacks widgets top to bottom. Ratios, when given for every
// widget, split the height proportionally.
type Column struct {
	Widgets []Widget
	Gap     int
	Ratios  []float64
}

func (c Column) Render(width, height int) string {
	if len(c.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gaps := max(0, c.Gap*(len(c.Widgets)-1))
	heights := share(max(1, height-gaps), len(c.Widgets), c.Ratios)
	parts := make([]string, 0, len(c.Widgets)*2)
	for i, w := range c.Widgets {
		parts = append(parts, w.Render(width, max(1, heights[i])))
		if i < len(c.Widgets)-1 && c.Gap > 0 {
			parts = append(parts, strings.Repeat("\n", c.Gap-1))
		}
	}
	return strings.Join(parts, "\n")
}

// Row places widgets side by side, padding each column to its width.
type Row struct {
	Widgets []Widget
	Gap     int
	Ratios  []float64
}

func (r Row) Render(width, height int) string {
	if len(r.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gaps := max(0, r.Gap*(len(r.Widgets)-1))
	widths := share(max(1, width-gaps), len(r.Widgets), r.Ratios)
	cols := make([][]string, len(r.Widgets))
	tallest := 0
	for i, w := range r.Widgets {
		cols[i] = strings.Split(w.Render(max(1, widths[i]), height), "\n")
		tallest = max(tallest, len(cols[i]))
	}
	sep := strings.Repeat(" ", r.Gap)
	out := make([]string, tallest)
	for line := range out {
		cells := make([]string, len(cols))
		for i := range cols {
			cell := ""
			if line < len(cols[i]) {
				cell = cols[i][line]
			}
			cells[i] = padCells(cell, widths[i])
		}
		out[line] = strings.Join(cells, sep)
	}
	return strings.Join(out, "\n")
}

// share splits total into n parts, by ratio when one is given per part.
func share(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	if len(ratios) != n {
		for i := range out {
			out[i] = total / n
		}
		for i := 0; i < total%n; i++ {
			out[i]++
		}
		return out
	}
	sum := 0.0
	weights := make([]float64, n)
	for i, r := range ratios {
		if r <= 0 {
			r = 1
		}
		weights[i] = r
		sum += r
	}
	used := 0
	for i := range out {
		out[i] = int(math.Floor(weights[i] / sum * float64(total)))
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

// padCells truncates or pads s to exactly width terminal cells.
func padCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
