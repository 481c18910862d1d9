// Package style holds the colors and glyphs shared by terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Amber = lipgloss.Color("#D97706")
	Slate = lipgloss.Color("#667085")
	Green = lipgloss.Color("#22A06B")
	Red   = lipgloss.Color("#D93025")
	Gold  = lipgloss.Color("#F59E0B")
	Muted = lipgloss.Color("#98A2B3")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "·"
)

// Tag renders the product tag that prefixes informational messages.
func Tag(name string) string {
	return "[" + name + "]"
}
