package theme

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Storage persists the serialized Config. Load returns nil, nil when nothing is stored.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Service owns the current Config, recomputes the applied Theme on change and
// writes every change through Storage.
type Service struct {
	mu        sync.RWMutex
	cfg       Config
	applied   Theme
	catalog   *Catalog
	store     Storage
	log       *zap.Logger
	listeners []func(Config)
}

// NewService loads the stored config merged over the defaults. catalog and log may be nil.
func NewService(ctx context.Context, store Storage, catalog *Catalog, log *zap.Logger) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{catalog: catalog, store: store, log: log}
	s.cfg = s.load(ctx)
	s.applied = catalog.Resolve(s.cfg)
	return s
}

func (s *Service) load(ctx context.Context) Config {
	cfg := DefaultConfig()
	if s.store == nil {
		return cfg
	}
	data, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("theme: failed to load config, using defaults", zap.Error(err))
		return cfg
	}
	if len(data) == 0 {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.log.Warn("theme: stored config is not valid JSON, using defaults", zap.Error(err))
		return DefaultConfig()
	}
	return s.sanitize(cfg)
}

// sanitize replaces fields naming something the catalog lacks with their defaults.
func (s *Service) sanitize(cfg Config) Config {
	def := DefaultConfig()
	if _, ok := s.catalog.preset(cfg.Preset); !ok {
		s.log.Warn("theme: unknown stored preset", zap.String("preset", cfg.Preset))
		cfg.Preset = def.Preset
	}
	if cfg.Primary != Noir {
		if _, ok := s.catalog.primary(cfg.Primary); !ok {
			s.log.Warn("theme: unknown stored primary", zap.String("primary", cfg.Primary))
			cfg.Primary = def.Primary
		}
	}
	if cfg.Surface != nil {
		if _, ok := s.catalog.surface(*cfg.Surface); !ok {
			s.log.Warn("theme: unknown stored surface", zap.String("surface", *cfg.Surface))
			cfg.Surface = nil
		}
	}
	if !cfg.MenuMode.Valid() {
		cfg.MenuMode = def.MenuMode
	}
	return cfg
}

// OnChange registers fn to run after every config change.
func (s *Service) OnChange(fn func(Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Service) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.clone()
}

func (s *Service) MenuMode() MenuMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.MenuMode
}

func (s *Service) IsOverlayMenu() bool { return s.MenuMode() == MenuOverlay }

func (s *Service) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.DarkMode
}

// Palette returns the applied theme for the current config.
func (s *Service) Palette() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

func (s *Service) Variables() map[string]string {
	return s.Palette().Variables()
}

// ClassNames returns the classes for the document root.
func (s *Service) ClassNames() []string {
	if s.DarkMode() {
		return []string{DarkModeClass}
	}
	return []string{}
}

func (s *Service) Catalog() *Catalog { return s.catalog }

func (s *Service) SetPreset(name string) error {
	if _, ok := s.catalog.preset(name); !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	s.update(func(c *Config) bool {
		if c.Preset == name {
			return false
		}
		c.Preset = name
		return true
	})
	return nil
}

func (s *Service) SetPrimary(name string) error {
	if name != Noir {
		if _, ok := s.catalog.primary(name); !ok {
			return fmt.Errorf("unknown primary colour %q", name)
		}
	}
	s.update(func(c *Config) bool {
		if c.Primary == name {
			return false
		}
		c.Primary = name
		return true
	})
	return nil
}

// SetSurface selects a surface ramp; "" returns to the preset's own surface.
func (s *Service) SetSurface(name string) error {
	if name != "" {
		if _, ok := s.catalog.surface(name); !ok {
			return fmt.Errorf("unknown surface %q", name)
		}
	}
	s.update(func(c *Config) bool {
		if c.SurfaceName() == name {
			return false
		}
		if name == "" {
			c.Surface = nil
		} else {
			c.Surface = &name
		}
		return true
	})
	return nil
}

func (s *Service) SetMenuMode(mode MenuMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown menu mode %q", mode)
	}
	s.update(func(c *Config) bool {
		if c.MenuMode == mode {
			return false
		}
		c.MenuMode = mode
		return true
	})
	return nil
}

func (s *Service) SetDarkMode(enabled bool) {
	s.update(func(c *Config) bool {
		if c.DarkMode == enabled {
			return false
		}
		c.DarkMode = enabled
		return true
	})
}

func (s *Service) ToggleDarkMode() {
	s.update(func(c *Config) bool {
		c.DarkMode = !c.DarkMode
		return true
	})
}

func (s *Service) ResetToDefaults() {
	s.update(func(c *Config) bool {
		*c = DefaultConfig()
		return true
	})
}

// update applies fn; when it reports a change the theme is recomputed, saved and listeners run.
func (s *Service) update(fn func(*Config) bool) {
	s.mu.Lock()
	next := s.cfg.clone()
	if !fn(&next) {
		s.mu.Unlock()
		return
	}
	s.cfg = next
	s.applied = s.catalog.Resolve(next)
	listeners := append([]func(Config){}, s.listeners...)
	s.mu.Unlock()

	s.save(next)
	for _, l := range listeners {
		l(next.clone())
	}
}

func (s *Service) save(cfg Config) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		s.log.Warn("theme: failed to encode config", zap.Error(err))
		return
	}
	if err := s.store.Save(context.Background(), data); err != nil {
		s.log.Warn("theme: failed to save config", zap.Error(err))
	}
}
