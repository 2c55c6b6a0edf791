package widgets

import "strings"

// Widget renders itself into a width x height cell area.
type Widget interface {
	Render(width, height int) string
}

// Text is a static block of lines, clipped to the area.
type Text string

func (t Text) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := clipLines(string(t), height)
	for i, l := range lines {
		lines[i] = padCells(l, width)
	}
	return strings.Join(lines, "\n")
}

func clipLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return lines
}
