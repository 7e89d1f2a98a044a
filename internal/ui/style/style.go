// Package style holds the colors and glyphs shared by folio's terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#0EA5E9")
	Muted  = lipgloss.Color("#6B7280")
	Green  = lipgloss.Color("#16A34A")
	Red    = lipgloss.Color("#DC2626")
	Yellow = lipgloss.Color("#D97706")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Skip    = "~"
	Arrow   = "→"
)

// StatusColor returns the color used for a unit outcome: "encoded", "fresh" or "failed".
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "encoded":
		return Green
	case "failed":
		return Red
	case "fresh":
		return Muted
	default:
		return Accent
	}
}
