// Package styles contains Lip Gloss style definitions and theme handling.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color tokens. Adaptive: the first value is for light terminals, the
// second for dark.
var (
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#E8E8F0"}
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#4A4A5E", Dark: "#A8A8B8"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8A96", Dark: "#6A6A78"}
	AccentColor          = lipgloss.AdaptiveColor{Light: "#6C4AB6", Dark: "#9D79F2"}
	SelectedColor        = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#73F59F"}
	SpeakingColor        = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#54A0FF"}
	StatusErrorColor     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF8787"}
	BorderDefaultColor   = lipgloss.AdaptiveColor{Light: "#D0D0DA", Dark: "#44445A"}
)

// Preset is a named base theme.
type Preset struct {
	Description string
	apply       func()
}

// Presets are the built-in theme presets selectable from config.
var Presets = map[string]Preset{
	"default": {
		Description: "Soft purple accent with adaptive light/dark colors",
		apply:       func() { applyDefault() },
	},
	"high-contrast": {
		Description: "Maximum contrast for low-vision setups",
		apply: func() {
			applyDefault()
			TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
			TextMutedColor = lipgloss.AdaptiveColor{Light: "#222222", Dark: "#DDDDDD"}
			AccentColor = lipgloss.AdaptiveColor{Light: "#0000CC", Dark: "#FFFF00"}
			SelectedColor = lipgloss.AdaptiveColor{Light: "#006600", Dark: "#00FF00"}
			BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
		},
	},
}

func applyDefault() {
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#E8E8F0"}
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#4A4A5E", Dark: "#A8A8B8"}
	TextMutedColor = lipgloss.AdaptiveColor{Light: "#8A8A96", Dark: "#6A6A78"}
	AccentColor = lipgloss.AdaptiveColor{Light: "#6C4AB6", Dark: "#9D79F2"}
	SelectedColor = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#73F59F"}
	SpeakingColor = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#54A0FF"}
	StatusErrorColor = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF8787"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D0D0DA", Dark: "#44445A"}
}

// ThemeConfig selects a preset and optionally forces light or dark mode.
type ThemeConfig struct {
	Preset string
	Mode   string
}

// ApplyTheme applies the preset and mode. An empty preset means "default";
// an empty mode keeps terminal background detection.
func ApplyTheme(cfg ThemeConfig) error {
	name := cfg.Preset
	if name == "" {
		name = "default"
	}
	preset, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown theme preset %q", name)
	}
	preset.apply()

	switch cfg.Mode {
	case "":
		lipgloss.SetHasDarkBackground(termenv.HasDarkBackground())
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	default:
		return fmt.Errorf("unknown theme mode %q", cfg.Mode)
	}
	return nil
}
