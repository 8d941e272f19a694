package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const pageWidth = 56

var divider = helpStyle.Render(strings.Repeat("─", pageWidth))

// renderPage lays out a titled page with the body and key hints between two
// dividers. The quit hint is always last.
func renderPage(title, body, keys string) string {
	if strings.TrimSpace(body) == "" {
		body = "-"
	}

	parts := []string{titleStyle.Render(title), divider, "", body, "", divider}
	if strings.TrimSpace(keys) != "" {
		parts = append(parts, helpStyle.Render(keys))
	}
	parts = append(parts, helpStyle.Render("q / ctrl+c: выход"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// fitText cuts v to n runes, marking the cut with an ellipsis.
func fitText(v string, n int) string {
	r := []rune(v)
	if n <= 0 || len(r) <= n {
		return v
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
