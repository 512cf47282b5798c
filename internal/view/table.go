package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/registry"
)

// TableView is a snapshot of the registry page.
type TableView struct {
	Rows          []registry.Row
	Columns       []registry.Column
	Draft         registry.Draft
	Cursor        int
	Object        *registry.ConstructionObject
	Loading       bool
	Saving        bool
	DeletingID    string
	PendingDelete *models.Weld
}

// RegistryTable renders the object header, the table and any delete prompt.
func RegistryTable(st Styles, v TableView) string {
	var b strings.Builder

	if v.Object != nil {
		b.WriteString(st.Title.Render(v.Object.ObjectName))
		fmt.Fprintf(&b, "\n%s\n", st.Muted.Render("Подрядчик: "+v.Object.Contractor+" · Заказчик: "+v.Object.Customer))
	} else {
		b.WriteString(st.Title.Render("Все объекты"))
		b.WriteString("\n")
	}

	if v.Loading {
		b.WriteString(st.Muted.Render("Загрузка…"))
		return b.String()
	}

	header := make([]string, 0, len(v.Columns))
	for _, c := range v.Columns {
		header = append(header, fit(c.Header, c.Width))
	}
	b.WriteString(st.Header.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	if len(v.Rows) == 0 {
		b.WriteString(st.Muted.Render("Нет данных"))
		return b.String()
	}

	for i, r := range v.Rows {
		cells := make([]string, 0, len(v.Columns))
		for _, c := range v.Columns {
			var text string
			if r.Draft {
				text = DraftCell(v.Draft, c.Field)
			} else {
				text = registry.FormatCell(r.Weld, c.Field)
			}
			cells = append(cells, fit(text, c.Width))
		}
		line := strings.Join(cells, " ")

		style := st.Cell
		switch {
		case r.Draft:
			style = st.Draft
		case r.Weld.ID != "" && r.Weld.ID == v.DeletingID:
			style = st.Muted.Strikethrough(true)
		}
		if i == v.Cursor {
			style = style.Inherit(st.Cursor)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if v.Saving {
		b.WriteString(st.Muted.Render("Сохранение…"))
		b.WriteString("\n")
	}
	if v.PendingDelete != nil {
		b.WriteString(DeletePrompt(st, *v.PendingDelete))
	}
	return strings.TrimRight(b.String(), "\n")
}

// DeletePrompt is the confirmation dialog for deleting w.
func DeletePrompt(st Styles, w models.Weld) string {
	msg := fmt.Sprintf("Удалить стык %q? (y/n)", w.WeldNumber)
	return st.Card.BorderForeground(lipgloss.Color("#ef4444")).Render(msg)
}

// DraftCell renders a draft form value the way the table shows stored values.
func DraftCell(d registry.Draft, field string) string {
	switch field {
	case "weldNumber":
		if d.WeldNumber == "" {
			return "…"
		}
		return d.WeldNumber
	case "diameter":
		return optNumber(d.Diameter)
	case "thickness1":
		return optNumber(d.Thickness1)
	case "thickness2":
		return optNumber(d.Thickness2)
	}

	w := models.Weld{
		QualityLevel:   d.QualityLevel,
		WeldingProcess: d.WeldingProcess,
		Joint:          d.Joint,
		TestMethods:    d.TestMethods,
		Conclusion:     d.Conclusion,
	}
	if d.WeldDate != "" {
		w.WeldDate = &d.WeldDate
	}
	if d.WeldStatus != "" {
		w.WeldStatus = &d.WeldStatus
	}
	if d.Notes != "" {
		w.Notes = &d.Notes
	}
	return registry.FormatCell(w, field)
}

func optNumber(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
			r = r[:len(r)-1]
		}
		s = string(r) + "…"
	}
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}
