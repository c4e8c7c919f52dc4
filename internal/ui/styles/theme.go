package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for CLI output
type Theme struct {
	Primary color.Color // titles, prompts
	Accent  color.Color // selected items, current tab
	Success color.Color
	Error   color.Color
	Muted   color.Color // secondary columns, hints
	Normal  color.Color
	Warning color.Color // confirmations
}

var (
	// DefaultTheme uses the 256-color palette.
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),
		Accent:  lipgloss.Color("212"),
		Success: lipgloss.Color("82"),
		Error:   lipgloss.Color("196"),
		Muted:   lipgloss.Color("240"),
		Normal:  lipgloss.Color("252"),
		Warning: lipgloss.Color("214"),
	}

	// NoneTheme renders without any colors, including instance color tags.
	// Bold is preserved.
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

var themes = map[string]Theme{
	"default": DefaultTheme,
	"none":    NoneTheme,
}

var (
	currentTheme = DefaultTheme
	tagsEnabled  = true
)

// Current returns the active theme
func Current() Theme {
	return currentTheme
}

// Init activates the named theme. Unknown names fall back to "default";
// config validation reports them before this is called.
func Init(name string) {
	theme, ok := themes[name]
	if !ok {
		name, theme = "default", DefaultTheme
	}
	currentTheme = theme
	tagsEnabled = name != "none"
	applyTheme(theme)
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Success = t.Success
	Error = t.Error
	Muted = t.Muted
	Normal = t.Normal
	Warning = t.Warning

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
