package theme

import (
	"fmt"
	"strconv"
)

// Theme is the applied colour set for a Config.
type Theme struct {
	Preset  string
	Radius  int
	Dark    bool
	Primary Ramp
	Surface Ramp

	PrimaryColor         string
	PrimaryContrastColor string
	PrimaryHoverColor    string
	PrimaryActiveColor   string

	HighlightBackground      string
	HighlightFocusBackground string
	HighlightColor           string
	HighlightFocusColor      string
}

// Resolve computes the applied theme for cfg. Unknown names fall back to the defaults.
func (c *Catalog) Resolve(cfg Config) Theme {
	def := DefaultConfig()
	preset, ok := c.preset(cfg.Preset)
	if !ok {
		preset, _ = c.preset(def.Preset)
	}

	surfaceName := preset.Surface.Light
	if cfg.DarkMode {
		surfaceName = preset.Surface.Dark
	}
	if cfg.Surface != nil {
		if _, ok := c.surface(*cfg.Surface); ok {
			surfaceName = *cfg.Surface
		}
	}
	surface, _ := c.surface(surfaceName)

	t := Theme{Preset: preset.Name, Radius: preset.Radius, Dark: cfg.DarkMode, Surface: surface}
	if cfg.Primary == Noir {
		t.Primary = surface
		if cfg.DarkMode {
			t.PrimaryColor = surface.Shade(50)
			t.PrimaryContrastColor = surface.Shade(950)
			t.PrimaryHoverColor = surface.Shade(200)
			t.PrimaryActiveColor = surface.Shade(300)
			t.HighlightBackground = surface.Shade(50)
			t.HighlightFocusBackground = surface.Shade(300)
			t.HighlightColor = surface.Shade(950)
			t.HighlightFocusColor = surface.Shade(950)
		} else {
			t.PrimaryColor = surface.Shade(950)
			t.PrimaryContrastColor = "#ffffff"
			t.PrimaryHoverColor = surface.Shade(800)
			t.PrimaryActiveColor = surface.Shade(700)
			t.HighlightBackground = surface.Shade(950)
			t.HighlightFocusBackground = surface.Shade(700)
			t.HighlightColor = "#ffffff"
			t.HighlightFocusColor = "#ffffff"
		}
		return t
	}

	primary, ok := c.primary(cfg.Primary)
	if !ok {
		primary, _ = c.primary(def.Primary)
	}
	t.Primary = primary
	if cfg.DarkMode {
		t.PrimaryColor = primary.Shade(400)
		t.PrimaryContrastColor = surface.Shade(900)
		t.PrimaryHoverColor = primary.Shade(300)
		t.PrimaryActiveColor = primary.Shade(200)
		t.HighlightBackground = primary.Shade(950)
		t.HighlightFocusBackground = primary.Shade(900)
		t.HighlightColor = primary.Shade(100)
		t.HighlightFocusColor = primary.Shade(50)
	} else {
		t.PrimaryColor = primary.Shade(500)
		t.PrimaryContrastColor = "#ffffff"
		t.PrimaryHoverColor = primary.Shade(600)
		t.PrimaryActiveColor = primary.Shade(700)
		t.HighlightBackground = primary.Shade(50)
		t.HighlightFocusBackground = primary.Shade(100)
		t.HighlightColor = primary.Shade(700)
		t.HighlightFocusColor = primary.Shade(800)
	}
	return t
}

// Variables renders t as CSS custom properties.
func (t Theme) Variables() map[string]string {
	vars := make(map[string]string, 2*len(Shades)+9)
	for _, s := range Shades {
		vars[fmt.Sprintf("--p-primary-%d", s)] = t.Primary.Shade(s)
		vars[fmt.Sprintf("--p-surface-%d", s)] = t.Surface.Shade(s)
	}
	vars["--p-primary-color"] = t.PrimaryColor
	vars["--p-primary-contrast-color"] = t.PrimaryContrastColor
	vars["--p-primary-hover-color"] = t.PrimaryHoverColor
	vars["--p-primary-active-color"] = t.PrimaryActiveColor
	vars["--p-highlight-background"] = t.HighlightBackground
	vars["--p-highlight-focus-background"] = t.HighlightFocusBackground
	vars["--p-highlight-color"] = t.HighlightColor
	vars["--p-highlight-focus-color"] = t.HighlightFocusColor
	vars["--p-border-radius"] = strconv.Itoa(t.Radius) + "px"
	return vars
}
