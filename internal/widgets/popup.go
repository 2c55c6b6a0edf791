package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Overlay draws popup as a centred card on top of base. Cells of base
// outside the card's row span stay visible.
func Overlay(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := lipgloss.NewStyle().
		Border(cardBorder).
		BorderForeground(accentColor).
		Padding(1, 2).
		Render(popup)
	top := canvas(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card), width, height)
	bottom := canvas(base, width, height)
	out := make([]string, height)
	for i := range out {
		start, end, ok := inkSpan(top[i], width)
		if !ok {
			out[i] = bottom[i]
			continue
		}
		left := ansi.Truncate(bottom[i], start, "")
		mid := ansi.Truncate(skipCells(top[i], start), end-start, "")
		right := skipCells(bottom[i], end)
		out[i] = padCells(left+mid+right, width)
	}
	return strings.Join(out, "\n")
}

// inkSpan reports the first and last non-blank columns of line.
func inkSpan(line string, width int) (start, end int, ok bool) {
	plain := ansi.Strip(ansi.Truncate(line, width, ""))
	trimmed := strings.TrimRight(plain, " ")
	start = len(trimmed) - len(strings.TrimLeft(trimmed, " "))
	end = ansi.StringWidth(trimmed)
	if trimmed == "" || start >= end {
		return 0, 0, false
	}
	return start, end, true
}

func canvas(s string, width, height int) []string {
	lines := clipLines(s, height)
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padCells(lines[i], width)
	}
	return lines
}

func skipCells(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}
