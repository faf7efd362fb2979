package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Keep color literals here, not at call sites.
var (
	// ColorCyan marks file paths and package names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen marks activated artifacts.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow marks freshly written files.
	ColorYellow = lipgloss.Color("220")

	// ColorRed marks failures.
	ColorRed = lipgloss.Color("204")

	// ColorGreenCheck is the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")
)

// Semantic styles.
var (
	// StyleFile styles file paths and package names.
	StyleFile = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleHeading styles section headings and summary lines.
	StyleHeading = lipgloss.NewStyle().Bold(true)

	// StyleDim styles skipped entries and structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// Artifact status words shown in the summary column.
const (
	StatusActivated = "activated"
	StatusWritten   = "written"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// StatusStyle returns the style for an artifact status word. Unknown
// statuses render unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusActivated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusWritten:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minFileColumnWidth keeps the status words of the summary aligned.
const minFileColumnWidth = 44

// FormatFileLine renders a file path with a right-aligned, color-coded
// status suffix.
func FormatFileLine(path, status string) string {
	padding := minFileColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}
	return StyleFile.Render(path) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
