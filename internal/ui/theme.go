package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PurpleTheme is the application theme: a purple accent over either a dark
// or a light base, switchable at runtime.
type PurpleTheme struct {
	light bool
}

// NewPurpleTheme creates the theme in dark or light mode
func NewPurpleTheme(light bool) fyne.Theme {
	return &PurpleTheme{light: light}
}

// Color returns theme colors
func (t *PurpleTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		if t.light {
			return color.RGBA{R: 103, G: 58, B: 183, A: 255} // Deep purple
		}
		return color.RGBA{R: 156, G: 110, B: 235, A: 255} // Lighter purple for dark base
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 193, B: 7, A: 255}
	case theme.ColorNameBackground:
		if t.light {
			return color.RGBA{R: 247, G: 244, B: 252, A: 255}
		}
		return color.RGBA{R: 24, G: 20, B: 33, A: 255}
	case theme.ColorNameForeground:
		if t.light {
			return color.RGBA{R: 33, G: 28, B: 44, A: 255}
		}
		return color.RGBA{R: 236, G: 231, B: 245, A: 255}
	case theme.ColorNameInputBackground:
		if t.light {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.RGBA{R: 36, G: 30, B: 48, A: 255}
	case theme.ColorNameButton:
		if t.light {
			return color.RGBA{R: 237, G: 231, B: 248, A: 255}
		}
		return color.RGBA{R: 44, G: 36, B: 60, A: 255}
	}

	// Pin the variant so the OS preference doesn't fight the toggle
	variant = theme.VariantDark
	if t.light {
		variant = theme.VariantLight
	}
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *PurpleTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *PurpleTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *PurpleTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInputRadius:
		return 6
	case theme.SizeNameSelectionRadius:
		return 4
	}
	return theme.DefaultTheme().Size(name)
}
