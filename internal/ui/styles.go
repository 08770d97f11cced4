// Package ui renders the views of the application for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    lipgloss.Style
	successStyle  lipgloss.Style
	pendingStyle  lipgloss.Style
	accentStyle   lipgloss.Style
	mutedStyle    lipgloss.Style
	errorStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	doneStyle     lipgloss.Style
	helpStyle     lipgloss.Style
	borderColor   lipgloss.Color
)

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
)

func init() {
	SetTheme("light")
}

// SetTheme switches between the "light" and "dark" palettes.
func SetTheme(name string) {
	accent, border := lipgloss.Color("12"), lipgloss.Color("8")
	if strings.EqualFold(name, "dark") {
		accent, border = lipgloss.Color("14"), lipgloss.Color("7")
	}
	borderColor = border

	titleStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle = lipgloss.NewStyle().Foreground(accent)
	mutedStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle = lipgloss.NewStyle().Faint(true)
}

// OK prints a success line.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render("✖ "+msg))
}

func panel(lines []string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

func progressBar(done, total, width int) string {
	denom := total
	if denom == 0 {
		denom = 1
	}
	if width <= 0 {
		width = 28
	}
	filled := int(float64(done) / float64(denom) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}
