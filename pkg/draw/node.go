package draw

import "fmt"

// NodeDisplay is the per-frame snapshot of a node's display attributes.
// Empty strings and a zero LabelSize mean "not set".
type NodeDisplay struct {
	X, Y       float64
	Size       float64
	Color      string
	Label      string
	HoverLabel string
	LabelSize  float64
	LabelColor string
}

// ColorSetting wraps a color value the way the engine's settings do.
type ColorSetting struct {
	Color string
}

// Settings holds the process-wide label settings derived from the theme.
type Settings struct {
	LabelSize   float64
	LabelFont   string
	LabelWeight string
	LabelColor  ColorSetting
}

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() Settings {
	return Settings{
		LabelSize:   14,
		LabelFont:   "Go",
		LabelWeight: "normal",
		LabelColor:  ColorSetting{Color: "#000"},
	}
}

// labelSize resolves the font size for n. Both hooks use it so the fallback
// stays identical between them.
func labelSize(n NodeDisplay, settings Settings) float64 {
	if n.LabelSize > 0 {
		return n.LabelSize
	}
	return settings.LabelSize
}

func labelColor(n NodeDisplay, settings Settings) string {
	if n.LabelColor != "" {
		return n.LabelColor
	}
	return settings.LabelColor.Color
}

// Font returns the CSS font shorthand for a label of the given size.
func Font(settings Settings, size float64) string {
	return fmt.Sprintf("%s %gpx %s", settings.LabelWeight, size, settings.LabelFont)
}
