package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zaqqye/weld_backend_v1/internal/theme"
)

const AppTitle = "Реестр сварных соединений"

// MenuItems are the sidebar entries.
var MenuItems = []string{"Реестр", "Стык"}

// Frame is everything the application chrome needs for one render.
type Frame struct {
	Classes    []string
	ConfigOpen bool
	Config     theme.Config
	Catalog    *theme.Catalog
	ActiveMenu int
	Body       string
	Footer     string
}

// SidebarVisible derives sidebar visibility from the container classes.
func SidebarVisible(classes []string) bool {
	has := func(c string) bool { return slices.Contains(classes, c) }
	if has("layout-mobile-active") || has("layout-overlay-active") {
		return true
	}
	return has("layout-static") && !has("layout-static-inactive")
}

// Chrome renders topbar, optional sidebar, body and optional config panel.
func Chrome(st Styles, f Frame) string {
	top := st.Topbar.Render("☰ " + AppTitle)
	if f.Config.DarkMode {
		top += st.Muted.Render("  ☾")
	} else {
		top += st.Muted.Render("  ☀")
	}

	var cols []string
	if SidebarVisible(f.Classes) {
		cols = append(cols, Sidebar(st, f.ActiveMenu))
	}
	cols = append(cols, st.Content.Render(f.Body))
	if f.ConfigOpen {
		cols = append(cols, ConfigPanel(st, f.Config, f.Catalog))
	}

	parts := []string{top, lipgloss.JoinHorizontal(lipgloss.Top, cols...)}
	if f.Footer != "" {
		parts = append(parts, st.Muted.Render(f.Footer))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func Sidebar(st Styles, active int) string {
	lines := make([]string, 0, len(MenuItems))
	for i, item := range MenuItems {
		if i == active {
			lines = append(lines, st.MenuActive.Render("› "+item))
			continue
		}
		lines = append(lines, st.MenuItem.Render("  "+item))
	}
	return st.Sidebar.Render(strings.Join(lines, "\n"))
}

// ConfigPanel renders the theme configurator with the current choices marked.
func ConfigPanel(st Styles, cfg theme.Config, catalog *theme.Catalog) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Настройки темы"))
	b.WriteString("\n")
	if catalog != nil {
		b.WriteString(choiceLine("Пресет", cfg.Preset, catalog.PresetNames()))
		b.WriteString(choiceLine("Основной", cfg.Primary, catalog.PrimaryNames()))
		surface := cfg.SurfaceName()
		if surface == "" {
			surface = "auto"
		}
		b.WriteString(choiceLine("Поверхность", surface, append([]string{"auto"}, catalog.SurfaceNames()...)))
	}
	b.WriteString(choiceLine("Меню", string(cfg.MenuMode), []string{string(theme.MenuStatic), string(theme.MenuOverlay)}))
	dark := "выкл"
	if cfg.DarkMode {
		dark = "вкл"
	}
	fmt.Fprintf(&b, "Тёмная тема: %s", dark)
	return st.Config.Render(b.String())
}

func choiceLine(label, current string, options []string) string {
	marked := make([]string, 0, len(options))
	for _, o := range options {
		if o == current {
			marked = append(marked, "["+o+"]")
			continue
		}
		marked = append(marked, o)
	}
	return fmt.Sprintf("%s: %s\n", label, strings.Join(marked, " "))
}
