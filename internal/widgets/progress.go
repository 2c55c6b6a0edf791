package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	barFill  = lipgloss.NewStyle().Foreground(accentColor)
	barTrack = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563"))
)

// Progress is a one-line funding bar followed by the percentage.
type Progress struct {
	Percent int
}

func (p Progress) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	pct := min(100, max(0, p.Percent))
	label := fmt.Sprintf(" %3d%%", pct)
	bar := max(1, width-len(label))
	filled := bar * pct / 100
	return barFill.Render(strings.Repeat("█", filled)) +
		barTrack.Render(strings.Repeat("░", bar-filled)) +
		label
}
