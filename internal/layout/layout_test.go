package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zaqqye/weld_backend_v1/internal/theme"
)

type fixedMode struct{ mode theme.MenuMode }

func (f *fixedMode) MenuMode() theme.MenuMode { return f.mode }

func TestToggleMenu_DesktopStatic(t *testing.T) {
	svc := NewService(&fixedMode{theme.MenuStatic})
	svc.Resize(1440)

	svc.ToggleMenu()
	st := svc.State()
	assert.True(t, st.DesktopSidebarHidden)
	assert.False(t, st.OverlayActive)
	assert.False(t, st.MobileSidebarActive)
	assert.Equal(t, []string{"layout-static", "layout-static-inactive"}, svc.ContainerClass())

	svc.ToggleMenu()
	assert.Equal(t, State{}, svc.State())
}

func TestToggleMenu_DesktopOverlay(t *testing.T) {
	svc := NewService(&fixedMode{theme.MenuOverlay})
	svc.ToggleMenu()
	assert.Equal(t, State{OverlayActive: true}, svc.State())
	assert.True(t, svc.IsSidebarActive())
	assert.Equal(t, []string{"layout-overlay", "layout-overlay-active"}, svc.ContainerClass())
}

func TestToggleMenu_MobileIgnoresMenuMode(t *testing.T) {
	for _, mode := range theme.MenuModes {
		svc := NewService(&fixedMode{mode})
		svc.Resize(375)
		svc.ToggleMenu()
		assert.Equal(t, State{MobileSidebarActive: true}, svc.State(), mode)
		assert.Contains(t, svc.ContainerClass(), "layout-mobile-active")
	}
}

func TestMenuItemClickClosesOnlyOnMobile(t *testing.T) {
	svc := NewService(&fixedMode{theme.MenuOverlay})
	svc.ToggleMenu()
	svc.OnMenuItemClick()
	assert.True(t, svc.State().OverlayActive)

	svc.Resize(600)
	svc.ToggleMenu()
	svc.OnMenuItemClick()
	assert.False(t, svc.IsSidebarActive())
}

func TestResizeToDesktopHidesSidebar(t *testing.T) {
	svc := NewService(&fixedMode{theme.MenuStatic})
	svc.Resize(500)
	svc.ToggleMenu()
	assert.True(t, svc.IsSidebarActive())

	svc.Resize(991)
	assert.True(t, svc.IsSidebarActive())
	svc.Resize(DesktopBreakpoint)
	assert.False(t, svc.IsSidebarActive())
}

func TestConfigSidebarAndHover(t *testing.T) {
	svc := NewService(nil)
	svc.ShowConfigSidebar()
	assert.True(t, svc.State().ConfigVisible)
	svc.ToggleConfigSidebar()
	assert.False(t, svc.State().ConfigVisible)
	svc.ToggleConfigSidebar()
	svc.HideConfigSidebar()
	assert.False(t, svc.State().ConfigVisible)

	svc.SetMenuHover(true)
	assert.True(t, svc.State().MenuHover)
	svc.ResetState()
	assert.Equal(t, State{}, svc.State())
}

func TestMenuModeFollowsThemeService(t *testing.T) {
	themes := theme.NewService(t.Context(), &theme.MemoryStorage{}, nil, nil)
	svc := NewService(themes)
	assert.True(t, svc.IsStatic())

	_ = themes.SetMenuMode(theme.MenuOverlay)
	assert.True(t, svc.IsOverlay())
	svc.ToggleMenu()
	assert.True(t, svc.State().OverlayActive)
}
