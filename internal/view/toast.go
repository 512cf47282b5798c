package view

import (
	"strings"

	"github.com/zaqqye/weld_backend_v1/internal/registry"
)

// Toasts renders notifications newest last, one per line.
func Toasts(st Styles, notes []registry.Notification) string {
	if len(notes) == 0 {
		return ""
	}
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		style, ok := st.Toasts[n.Severity]
		if !ok {
			style = st.Toasts[registry.SeverityInfo]
		}
		lines = append(lines, style.Render(n.Summary)+" "+n.Detail)
	}
	return strings.Join(lines, "\n")
}
