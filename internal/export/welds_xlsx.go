package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

const SheetName = "Welds"

// WeldColumns is the header row of the registry export.
var WeldColumns = []string{
	"Объект",
	"Подрядчик",
	"Заказчик",
	"№ стыка",
	"Диаметр, мм",
	"Толщина 1, мм",
	"Толщина 2, мм",
	"Уровень качества",
	"Дата сварки",
	"Способ сварки",
	"Тип соединения",
	"Методы контроля",
	"Заключение",
	"Статус",
	"Примечание",
}

var columnWidths = []float64{28, 22, 22, 12, 12, 14, 14, 18, 14, 22, 18, 24, 14, 14, 32}

// WriteWeldsXLSX renders welds as a single-sheet workbook.
func WriteWeldsXLSX(w io.Writer, welds []models.Weld) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range WeldColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, columnWidths[col]); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(WeldColumns), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, weld := range welds {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &[]any{
			models.StringOrEmpty(weld.ObjectName),
			models.StringOrEmpty(weld.Contractor),
			models.StringOrEmpty(weld.Customer),
			weld.WeldNumber,
			weld.Diameter,
			weld.Thickness1,
			optionalFloat(weld.Thickness2),
			weld.QualityLevel.Label(),
			models.StringOrEmpty(weld.WeldDate),
			weld.WeldingProcess.Label(),
			weld.Joint.Label(),
			methodLabels(weld.Methods()),
			conclusionLabel(weld.Conclusion),
			statusLabel(weld.WeldStatus),
			models.StringOrEmpty(weld.Notes),
		}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

func optionalFloat(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}

func methodLabels(ms []models.TestMethod) string {
	labels := make([]string, 0, len(ms))
	for _, m := range ms {
		labels = append(labels, m.Label())
	}
	return strings.Join(labels, ", ")
}

func conclusionLabel(c *models.Conclusion) string {
	if c == nil {
		return ""
	}
	return c.Label()
}

func statusLabel(s *models.WeldStatus) string {
	if s == nil {
		return ""
	}
	return s.Label()
}
