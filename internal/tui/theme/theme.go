// Package theme defines the color themes of the brgy TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the color roles the TUI draws with.
type Theme struct {
	Name          string
	Background    lipgloss.Color
	Surface       lipgloss.Color // cards and panels
	SurfaceBright lipgloss.Color // selected grid cell, active tab
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // focused card
	TextDim       lipgloss.Color
	TextMuted     lipgloss.Color
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color
	Green         lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	Yellow        lipgloss.Color
	Cyan          lipgloss.Color
}

// Narra is the default: dark wood tones with a gold accent.
var Narra = Theme{
	Name:          "narra",
	Background:    lipgloss.Color("#15110E"),
	Surface:       lipgloss.Color("#221B16"),
	SurfaceBright: lipgloss.Color("#3A2E25"),
	Border:        lipgloss.Color("#4A3B30"),
	BorderAccent:  lipgloss.Color("#D9A441"),
	TextDim:       lipgloss.Color("#6B5A4C"),
	TextMuted:     lipgloss.Color("#A08E7C"),
	TextPrimary:   lipgloss.Color("#F4EBDD"),
	Accent:        lipgloss.Color("#D9A441"),
	AccentBright:  lipgloss.Color("#F0C46A"),
	Green:         lipgloss.Color("#8FA34A"),
	GreenBright:   lipgloss.Color("#B2C86A"),
	Orange:        lipgloss.Color("#D8733A"),
	Red:           lipgloss.Color("#C9483C"),
	Blue:          lipgloss.Color("#5E8FB8"),
	Yellow:        lipgloss.Color("#E3C25A"),
	Cyan:          lipgloss.Color("#5FA8A0"),
}

// Dagat is a deep sea-blue theme.
var Dagat = Theme{
	Name:          "dagat",
	Background:    lipgloss.Color("#0D1620"),
	Surface:       lipgloss.Color("#14212F"),
	SurfaceBright: lipgloss.Color("#203448"),
	Border:        lipgloss.Color("#2C4660"),
	BorderAccent:  lipgloss.Color("#4FB3D9"),
	TextDim:       lipgloss.Color("#4C6278"),
	TextMuted:     lipgloss.Color("#8EA4BA"),
	TextPrimary:   lipgloss.Color("#E3EEF7"),
	Accent:        lipgloss.Color("#4FB3D9"),
	AccentBright:  lipgloss.Color("#85D2EE"),
	Green:         lipgloss.Color("#6CC18A"),
	GreenBright:   lipgloss.Color("#93DDAA"),
	Orange:        lipgloss.Color("#F09A5B"),
	Red:           lipgloss.Color("#E66A6A"),
	Blue:          lipgloss.Color("#6A9BF0"),
	Yellow:        lipgloss.Color("#EACB6B"),
	Cyan:          lipgloss.Color("#62D6C9"),
}

// Sampaguita keeps a dark background with soft green and ivory tones.
var Sampaguita = Theme{
	Name:          "sampaguita",
	Background:    lipgloss.Color("#111512"),
	Surface:       lipgloss.Color("#1A201B"),
	SurfaceBright: lipgloss.Color("#2A342B"),
	Border:        lipgloss.Color("#38453A"),
	BorderAccent:  lipgloss.Color("#9CCB86"),
	TextDim:       lipgloss.Color("#56645A"),
	TextMuted:     lipgloss.Color("#97A69A"),
	TextPrimary:   lipgloss.Color("#F6F4E8"),
	Accent:        lipgloss.Color("#9CCB86"),
	AccentBright:  lipgloss.Color("#C2E6AE"),
	Green:         lipgloss.Color("#7DBB6B"),
	GreenBright:   lipgloss.Color("#A5D993"),
	Orange:        lipgloss.Color("#E0985A"),
	Red:           lipgloss.Color("#D9685E"),
	Blue:          lipgloss.Color("#7AA6C9"),
	Yellow:        lipgloss.Color("#E6D27A"),
	Cyan:          lipgloss.Color("#78C4B6"),
}

// Terminal uses the 16 ANSI colors only.
var Terminal = Theme{
	Name:          "terminal",
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("0"),
	SurfaceBright: lipgloss.Color("8"),
	Border:        lipgloss.Color("8"),
	BorderAccent:  lipgloss.Color("3"),
	TextDim:       lipgloss.Color("8"),
	TextMuted:     lipgloss.Color("7"),
	TextPrimary:   lipgloss.Color("15"),
	Accent:        lipgloss.Color("3"),
	AccentBright:  lipgloss.Color("11"),
	Green:         lipgloss.Color("2"),
	GreenBright:   lipgloss.Color("10"),
	Orange:        lipgloss.Color("3"),
	Red:           lipgloss.Color("1"),
	Blue:          lipgloss.Color("4"),
	Yellow:        lipgloss.Color("11"),
	Cyan:          lipgloss.Color("6"),
}

// All lists the themes in the order the setup form offers them.
var All = []Theme{Narra, Dagat, Sampaguita, Terminal}

// Default is used when the configured name is unknown.
var Default = Narra

// Active is the theme currently drawn with.
var Active = Default

// ByName returns the theme called name, or Default.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Default
}

// SetActive switches the active theme.
func SetActive(name string) {
	Active = ByName(name)
}

func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

func Valid(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}
