package theme

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed palettes.yaml
var palettesYAML []byte

// Shades lists the ramp steps in order.
var Shades = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950}

// Ramp holds one colour per entry in Shades.
type Ramp []string

// Shade returns the colour for step n (50, 100 … 950), or "" for an unknown step.
func (r Ramp) Shade(n int) string {
	for i, s := range Shades {
		if s == n && i < len(r) {
			return r[i]
		}
	}
	return ""
}

type PresetInfo struct {
	Name    string `yaml:"name"`
	Radius  int    `yaml:"radius"`
	Surface struct {
		Light string `yaml:"light"`
		Dark  string `yaml:"dark"`
	} `yaml:"surface"`
}

type NamedRamp struct {
	Name   string `yaml:"name"`
	Shades Ramp   `yaml:"shades"`
}

// Catalog is the set of presets, primary swatches and surface ramps a Config may name.
type Catalog struct {
	Presets   []PresetInfo `yaml:"presets"`
	Primaries []NamedRamp  `yaml:"primaries"`
	Surfaces  []NamedRamp  `yaml:"surfaces"`
}

// ParseCatalog decodes a palette document and checks every ramp is complete.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse palettes: %w", err)
	}
	if len(c.Presets) == 0 || len(c.Primaries) == 0 || len(c.Surfaces) == 0 {
		return nil, fmt.Errorf("parse palettes: presets, primaries and surfaces must not be empty")
	}
	for _, group := range [][]NamedRamp{c.Primaries, c.Surfaces} {
		for _, r := range group {
			if len(r.Shades) != len(Shades) {
				return nil, fmt.Errorf("parse palettes: %s has %d shades, want %d", r.Name, len(r.Shades), len(Shades))
			}
		}
	}
	for _, p := range c.Presets {
		for _, s := range []string{p.Surface.Light, p.Surface.Dark} {
			if _, ok := c.surface(s); !ok {
				return nil, fmt.Errorf("parse palettes: preset %s names unknown surface %q", p.Name, s)
			}
		}
	}
	return &c, nil
}

// DefaultCatalog is the embedded palette document.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(palettesYAML)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) preset(name string) (PresetInfo, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return PresetInfo{}, false
}

func (c *Catalog) primary(name string) (Ramp, bool) {
	for _, p := range c.Primaries {
		if p.Name == name {
			return p.Shades, true
		}
	}
	return nil, false
}

func (c *Catalog) surface(name string) (Ramp, bool) {
	for _, s := range c.Surfaces {
		if s.Name == name {
			return s.Shades, true
		}
	}
	return nil, false
}

func (c *Catalog) PresetNames() []string {
	out := make([]string, 0, len(c.Presets))
	for _, p := range c.Presets {
		out = append(out, p.Name)
	}
	return out
}

// PrimaryNames lists the swatches followed by Noir.
func (c *Catalog) PrimaryNames() []string {
	out := make([]string, 0, len(c.Primaries)+1)
	for _, p := range c.Primaries {
		out = append(out, p.Name)
	}
	return append(out, Noir)
}

func (c *Catalog) SurfaceNames() []string {
	out := make([]string, 0, len(c.Surfaces))
	for _, s := range c.Surfaces {
		out = append(out, s.Name)
	}
	return out
}
