package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zaqqye/weld_backend_v1/internal/dashboard"
	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/registry"
)

// FieldView is one row of the params form.
type FieldView struct {
	Field   string
	Text    string
	Changed bool
}

// DashboardView is a snapshot of the single-weld page.
type DashboardView struct {
	Weld         *models.Weld
	Loading      bool
	LoadError    string
	Fields       []FieldView
	Focus        int
	EditField    string
	EditBuffer   string
	Saving       bool
	Unsaved      bool
	ReportMethod models.TestMethod
	NormsMethod  models.TestMethod
	ActiveWidget string
	Norm         dashboard.NormDocument
}

var fieldLabels = map[string]string{
	dashboard.FieldWeldNumber:     "Номер стыка",
	dashboard.FieldDiameter:       "Диаметр D, мм",
	dashboard.FieldThickness1:     "Толщина S1, мм",
	dashboard.FieldThickness2:     "Толщина S2, мм",
	dashboard.FieldQualityLevel:   "Уровень качества",
	dashboard.FieldWeldDate:       "Дата сварки",
	dashboard.FieldWeldingProcess: "Способ сварки",
	dashboard.FieldJoint:          "Тип соединения",
	dashboard.FieldNotes:          "Примечание",
}

// Dashboard renders the params card next to the reports and norms cards.
func Dashboard(st Styles, v DashboardView) string {
	switch {
	case v.Loading:
		return st.Muted.Render("Загрузка…")
	case v.LoadError != "":
		return st.Toasts[registry.SeverityError].Render(v.LoadError)
	case v.Weld == nil:
		return st.Muted.Render("Стык не выбран")
	}

	title := st.Title.Render("Стык " + v.Weld.WeldNumber)
	if obj := models.StringOrEmpty(v.Weld.ObjectName); obj != "" {
		title += st.Muted.Render("  " + obj)
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		MethodPanel(st, "Заключения НК", v.ReportMethod),
		NormsPanel(st, v.NormsMethod, v.Norm),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, ParamsCard(st, v), right)

	parts := []string{title, body}
	if v.ActiveWidget != "" {
		parts = append(parts, st.Card.Render(st.Title.Render(widgetTitle(v.ActiveWidget))+"\n"+st.Muted.Render("x - закрыть")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// ParamsCard renders the editable fields, marking changed ones.
func ParamsCard(st Styles, v DashboardView) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Параметры"))
	b.WriteString("\n")
	for i, f := range v.Fields {
		label := fit(fieldLabels[f.Field], 18)
		text := f.Text
		if text == "" {
			text = "-"
		}
		if f.Field == v.EditField {
			text = v.EditBuffer + "▏"
		}
		line := label + " " + text
		style := st.Cell
		if f.Changed {
			style = st.Changed
			line += " *"
		}
		if i == v.Focus {
			style = style.Inherit(st.Cursor)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	switch {
	case v.Saving:
		b.WriteString(st.Muted.Render("Сохранение…"))
	case v.Unsaved:
		b.WriteString(st.Changed.Render("Есть несохранённые изменения (s - сохранить, r - сбросить)"))
	default:
		b.WriteString(st.Muted.Render("Изменений нет"))
	}
	return st.Card.Render(b.String())
}

// MethodPanel renders one button per test method, pressing the active one.
func MethodPanel(st Styles, title string, active models.TestMethod) string {
	buttons := make([]string, 0, len(models.TestMethods))
	for _, m := range models.TestMethods {
		style := st.Button
		if m == active {
			style = st.Pressed
		}
		buttons = append(buttons, style.Render(m.Label()))
	}
	return st.Card.Render(st.Title.Render(title) + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
}

func NormsPanel(st Styles, active models.TestMethod, norm dashboard.NormDocument) string {
	panel := MethodPanel(st, "Нормы отбраковки", active)
	return lipgloss.JoinVertical(lipgloss.Left, panel, st.Muted.Render("Документ: "+norm.Name))
}

func widgetTitle(key string) string {
	for _, m := range models.TestMethods {
		switch key {
		case dashboard.ReportWidget(m):
			return fmt.Sprintf("Заключение %s", m.Label())
		case dashboard.NormsWidget(m):
			return fmt.Sprintf("Нормы %s", m.Label())
		}
	}
	return key
}
