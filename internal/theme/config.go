package theme

// StorageKey names the persisted theme blob.
const StorageKey = "weld-registry.theme"

// DarkModeClass is added to the root element while dark mode is on.
const DarkModeClass = "app-dark"

// Noir is the monochrome primary that borrows its colours from the surface ramp.
const Noir = "noir"

type MenuMode string

const (
	MenuStatic  MenuMode = "static"
	MenuOverlay MenuMode = "overlay"
)

var MenuModes = []MenuMode{MenuStatic, MenuOverlay}

func (m MenuMode) Valid() bool {
	return m == MenuStatic || m == MenuOverlay
}

// Config is the user's theme choice. Surface nil means the preset's own surface.
type Config struct {
	Preset   string   `json:"preset"`
	Primary  string   `json:"primary"`
	Surface  *string  `json:"surface"`
	DarkMode bool     `json:"darkMode"`
	MenuMode MenuMode `json:"menuMode"`
}

// DefaultConfig returns a fresh copy of the factory settings.
func DefaultConfig() Config {
	return Config{
		Preset:   "Aura",
		Primary:  "emerald",
		Surface:  nil,
		DarkMode: false,
		MenuMode: MenuStatic,
	}
}

func (c Config) clone() Config {
	if c.Surface != nil {
		s := *c.Surface
		c.Surface = &s
	}
	return c
}

// SurfaceName returns the explicit surface or "".
func (c Config) SurfaceName() string {
	if c.Surface == nil {
		return ""
	}
	return *c.Surface
}
