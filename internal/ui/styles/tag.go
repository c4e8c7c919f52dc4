package styles

import (
	"charm.land/lipgloss/v2"

	"github.com/raphi011/instab/internal/colortag"
)

// Tag renders label on the instance color hex, with black or white text
// depending on the background. With the "none" theme the label is returned as is.
func Tag(label, hex string) string {
	if !tagsEnabled {
		return label
	}
	fg := lipgloss.Color("#000000")
	if colortag.IsDark(hex) {
		fg = lipgloss.Color("#ffffff")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(fg).
		Padding(0, 1).
		Render(label)
}

// Swatch renders a small block of hex followed by the hex value.
func Swatch(hex string) string {
	if !tagsEnabled {
		return hex
	}
	block := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	return block + " " + hex
}
