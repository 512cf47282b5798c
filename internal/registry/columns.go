package registry

import (
	"strconv"
	"strings"
	"time"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

type Column struct {
	Field  string
	Header string
	Width  int
}

var Columns = []Column{
	{Field: "weldNumber", Header: "Номер стыка", Width: 14},
	{Field: "diameter", Header: "D, мм", Width: 8},
	{Field: "thickness1", Header: "S1, мм", Width: 8},
	{Field: "thickness2", Header: "S2, мм", Width: 8},
	{Field: "qualityLevel", Header: "Уровень качества", Width: 6},
	{Field: "weldDate", Header: "Дата сварки", Width: 12},
	{Field: "weldingProcess", Header: "Способ сварки", Width: 13},
	{Field: "joint", Header: "Тип соединения", Width: 13},
	{Field: "testMethods", Header: "Методы НК", Width: 15},
	{Field: "conclusion", Header: "Заключение", Width: 11},
	{Field: "weldStatus", Header: "Статус", Width: 10},
	{Field: "notes", Header: "Примечание", Width: 15},
}

// HiddenByDefault are the columns a fresh table does not show.
var HiddenByDefault = []string{"weldDate", "weldingProcess", "joint", "weldStatus", "notes"}

const empty = "-"

// FormatCell renders one cell the way the registry displays it.
func FormatCell(w models.Weld, field string) string {
	switch field {
	case "weldNumber":
		return orDash(w.WeldNumber)
	case "diameter":
		return formatNumber(w.Diameter)
	case "thickness1":
		return formatNumber(w.Thickness1)
	case "thickness2":
		if w.Thickness2 == nil {
			return empty
		}
		return formatNumber(*w.Thickness2)
	case "qualityLevel":
		return orDash(string(w.QualityLevel))
	case "weldDate":
		return FormatDate(models.StringOrEmpty(w.WeldDate))
	case "weldingProcess":
		if w.WeldingProcess == "" {
			return empty
		}
		return w.WeldingProcess.ShortLabel()
	case "joint":
		if w.Joint == "" {
			return empty
		}
		return w.Joint.Label()
	case "testMethods":
		ms := w.Methods()
		if len(ms) == 0 {
			return empty
		}
		labels := make([]string, 0, len(ms))
		for _, m := range ms {
			labels = append(labels, m.Label())
		}
		return strings.Join(labels, ", ")
	case "conclusion":
		if w.Conclusion == nil {
			return empty
		}
		return w.Conclusion.Label()
	case "weldStatus":
		if w.WeldStatus == nil {
			return empty
		}
		return w.WeldStatus.Label()
	case "notes":
		return orDash(models.StringOrEmpty(w.Notes))
	default:
		return empty
	}
}

// FormatDate renders an ISO date as DD.MM.YYYY; unparseable input is returned as is.
func FormatDate(s string) string {
	if s == "" {
		return empty
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02.01.2006")
		}
	}
	return s
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return empty
	}
	return s
}
