// Package pdf genera el reporte de existencias de una bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bakery ERP + bodega  │  Fecha + usuario            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: saldos bajos / lotes por vencer / vencidos        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA SALDOS: Producto | Cantidad | Estado                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA LOTES: Lote | Producto | Cantidad | Vence | Estado   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 86, Green: 109, Blue: 126}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
	colorWarn    = &props.Color{Red: 190, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator implementa report.StockReportRenderer usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// RenderStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) RenderStockReport(r *dto.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de existencias", true).
		WithAuthor("Bakery ERP", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("SALDOS"))
	m.AddRows(balanceHeaderRow())
	m.AddRows(balanceRows(r)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("LOTES Y VENCIMIENTOS"))
	m.AddRows(batchHeaderRow())
	m.AddRows(batchRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la app + bodega (izq) y fecha + usuario (der).
func headerRow(r *dto.StockReport) core.Row {
	warehouse := r.Warehouse.Name
	if r.Warehouse.Code != "" {
		warehouse += " (" + r.Warehouse.Code + ")"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Bakery ERP", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+nonEmpty(warehouse, r.Warehouse.ID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE EXISTENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Generado por: "+nonEmpty(r.GeneratedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: contadores de alerta.
func summaryRow(r *dto.StockReport) core.Row {
	low, near, expired := 0, 0, 0
	for _, b := range r.Balances {
		if b.Status.NeedsAttention() {
			low++
		}
	}
	for _, b := range r.Batches {
		switch b.ExpiryStatus {
		case inventory.ExpiryNear:
			near++
		case inventory.ExpiryExpired:
			expired++
		}
	}
	cell := func(label string, n int, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(fmt.Sprintf("%d", n), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: c, Top: 6, Align: align.Center,
			}),
		)
	}
	return row.New(14).Add(
		cell("Saldos bajos o agotados", low, colorAlert),
		cell("Lotes por vencer (7 días)", near, colorWarn),
		cell("Lotes vencidos", expired, colorAlert),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func balanceHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Producto", 6, align.Left),
		headerCol("Cantidad", 3, align.Right),
		headerCol("Estado", 3, align.Center),
	)
}

// balanceRows: una fila por saldo.
func balanceRows(r *dto.StockReport) []core.Row {
	if len(r.Balances) == 0 {
		return []core.Row{emptyRow()}
	}
	result := make([]core.Row, 0, len(r.Balances))
	for _, b := range r.Balances {
		statusProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		if b.Status.NeedsAttention() {
			statusProps.Color = colorAlert
			statusProps.Style = fontstyle.Bold
		}
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(b.Product, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(b.QuantityOnHand.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(humanize(string(b.Status)), statusProps)),
		))
	}
	return result
}

func batchHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Lote", 2, align.Left),
		headerCol("Producto", 4, align.Left),
		headerCol("Cantidad", 2, align.Right),
		headerCol("Vence", 2, align.Center),
		headerCol("Estado", 2, align.Center),
	)
}

// batchRows: una fila por lote con su clasificación de vencimiento.
func batchRows(r *dto.StockReport) []core.Row {
	if len(r.Batches) == 0 {
		return []core.Row{emptyRow()}
	}
	result := make([]core.Row, 0, len(r.Batches))
	for _, b := range r.Batches {
		expiry := "—"
		if b.ExpiryDate != nil {
			expiry = b.ExpiryDate.Format("02/01/2006")
		}
		statusProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		switch b.ExpiryStatus {
		case inventory.ExpiryExpired:
			statusProps.Color = colorAlert
			statusProps.Style = fontstyle.Bold
		case inventory.ExpiryNear:
			statusProps.Color = colorWarn
			statusProps.Style = fontstyle.Bold
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(b.BatchNumber, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(b.Product, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(b.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(expiry, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(expiryLabel(b.ExpiryStatus), statusProps)),
		))
	}
	return result
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin registros", props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
	))
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func expiryLabel(s inventory.ExpiryStatus) string {
	switch s {
	case inventory.ExpiryExpired:
		return "Vencido"
	case inventory.ExpiryNear:
		return "Por vencer"
	}
	return "Vigente"
}

// humanize convierte "LOW_STOCK" en "Low stock".
func humanize(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return "—"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
