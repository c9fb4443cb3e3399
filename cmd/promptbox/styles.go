package main

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9399b2"))
)

// renderMarkdown renders text for the terminal, falling back to the raw text
// when glamour fails.
func renderMarkdown(text string) string {
	out, err := glamour.Render(text, "dark")
	if err != nil {
		return text
	}
	return out
}
