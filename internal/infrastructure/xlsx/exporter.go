// Package xlsx exporta tablas de inventario a hojas Excel.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
)

const maxSheetName = 31

// Exporter implementa report.TableWriter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// WriteTable escribe la tabla como un libro de una hoja: encabezado en negrita,
// fila congelada y autofiltro.
func (e *Exporter) WriteTable(w io.Writer, t dto.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if name := sheetName(t.Title); name != "" && name != sheet {
		if err := f.SetSheetName(sheet, name); err != nil {
			return fmt.Errorf("xlsx: renombrar hoja: %w", err)
		}
		sheet = name
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: encabezado: %w", err)
	}

	row := 2
	for _, values := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		excelRow := values
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", row, err)
		}
		row++
	}

	if len(t.Headers) > 0 {
		if err := decorate(f, sheet, len(t.Headers), row-1); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return nil
}

func decorate(f *excelize.File, sheet string, cols, lastRow int) error {
	lastHeader, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE3E8"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, style); err != nil {
		return fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("xlsx: congelar encabezado: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(cols, lastRow)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.AutoFilter(sheet, "A1:"+lastCell, nil); err != nil {
		return fmt.Errorf("xlsx: autofiltro: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(cols)
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

// sheetName recorta el título a un nombre de hoja válido.
func sheetName(title string) string {
	var out []rune
	for _, r := range title {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		out = append(out, r)
		if len(out) == maxSheetName {
			break
		}
	}
	return string(out)
}
