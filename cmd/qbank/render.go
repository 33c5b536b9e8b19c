package main

import "github.com/charmbracelet/lipgloss"

// Semantic styles for terminal output. ANSI palette indices so the colors
// track the user's terminal theme.
var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// truncate shortens s to at most n runes for table display. Counting runes
// rather than bytes keeps CJK content intact. Widths too small to fit the
// "..." marker get a bare prefix.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n < 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
