package layout

import (
	"sort"
	"sync"

	"github.com/zaqqye/weld_backend_v1/internal/theme"
)

// DesktopBreakpoint is the narrowest viewport treated as desktop.
const DesktopBreakpoint = 992

// MenuModeSource supplies the current menu mode, normally the theme service.
type MenuModeSource interface {
	MenuMode() theme.MenuMode
}

// State is transient UI state. It is never persisted.
type State struct {
	DesktopSidebarHidden bool
	OverlayActive        bool
	MobileSidebarActive  bool
	ConfigVisible        bool
	MenuHover            bool
}

type Service struct {
	mu    sync.RWMutex
	state State
	width int
	modes MenuModeSource
}

// NewService starts in the default state at a desktop width.
func NewService(modes MenuModeSource) *Service {
	return &Service{modes: modes, width: DesktopBreakpoint}
}

func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Service) Width() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width
}

func (s *Service) IsDesktop() bool {
	return s.Width() >= DesktopBreakpoint
}

func (s *Service) menuMode() theme.MenuMode {
	if s.modes == nil {
		return theme.MenuStatic
	}
	return s.modes.MenuMode()
}

func (s *Service) IsOverlay() bool { return s.menuMode() == theme.MenuOverlay }

func (s *Service) IsStatic() bool { return s.menuMode() == theme.MenuStatic }

// Resize records the viewport width. Reaching desktop width with a sidebar open closes it.
func (s *Service) Resize(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	if width >= DesktopBreakpoint && (s.state.OverlayActive || s.state.MobileSidebarActive) {
		s.state.OverlayActive = false
		s.state.MobileSidebarActive = false
	}
}

// ToggleMenu flips the sidebar the current width and menu mode control.
func (s *Service) ToggleMenu() {
	overlay := s.IsOverlay()
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.width < DesktopBreakpoint:
		s.state.MobileSidebarActive = !s.state.MobileSidebarActive
	case overlay:
		s.state.OverlayActive = !s.state.OverlayActive
	default:
		s.state.DesktopSidebarHidden = !s.state.DesktopSidebarHidden
	}
}

func (s *Service) HideOverlayMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.OverlayActive = false
	s.state.MobileSidebarActive = false
}

func (s *Service) ShowConfigSidebar() { s.setConfig(func(bool) bool { return true }) }

func (s *Service) HideConfigSidebar() { s.setConfig(func(bool) bool { return false }) }

func (s *Service) ToggleConfigSidebar() { s.setConfig(func(v bool) bool { return !v }) }

func (s *Service) setConfig(fn func(bool) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ConfigVisible = fn(s.state.ConfigVisible)
}

func (s *Service) SetMenuHover(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MenuHover = active
}

// OnMenuItemClick closes the menu after navigation on mobile.
func (s *Service) OnMenuItemClick() {
	if !s.IsDesktop() {
		s.HideOverlayMenu()
	}
}

func (s *Service) ResetState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
}

// IsSidebarActive reports whether an overlay or mobile sidebar is showing.
func (s *Service) IsSidebarActive() bool {
	st := s.State()
	return st.OverlayActive || st.MobileSidebarActive
}

// ContainerClass returns the wrapper classes that currently apply, sorted.
func (s *Service) ContainerClass() []string {
	mode := s.menuMode()
	st := s.State()
	flags := map[string]bool{
		"layout-overlay":         mode == theme.MenuOverlay,
		"layout-static":          mode == theme.MenuStatic,
		"layout-static-inactive": st.DesktopSidebarHidden && mode == theme.MenuStatic,
		"layout-overlay-active":  st.OverlayActive,
		"layout-mobile-active":   st.MobileSidebarActive,
	}
	out := make([]string, 0, len(flags))
	for class, on := range flags {
		if on {
			out = append(out, class)
		}
	}
	sort.Strings(out)
	return out
}
