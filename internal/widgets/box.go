package widgets

import "github.com/charmbracelet/lipgloss"

var (
	cardBorder  = lipgloss.RoundedBorder()
	cardTitle   = lipgloss.NewStyle().Bold(true)
	accentColor = lipgloss.Color("#7C3AED")
)

// Card is a bordered panel with a bold heading line.
type Card struct {
	Title string
	Body  string
}

func (c Card) Render(width, height int) string {
	if width <= 2 || height <= 2 {
		return ""
	}
	style := lipgloss.NewStyle().
		Border(cardBorder).
		Padding(0, 1).
		Width(width - 2).
		MaxHeight(height)
	body := c.Body
	if c.Title != "" {
		body = cardTitle.Render(c.Title) + "\n" + body
	}
	return style.Render(body)
}
