// Package report contiene la exportación de inventario (XLSX, PDF) y la sincronización
// con el espejo de reportes.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/inventory"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	domaininv "github.com/jhoicas/bakery-erp/internal/domain/inventory"
	"github.com/jhoicas/bakery-erp/internal/domain/repository"
)

// TableWriter escribe una tabla como hoja de cálculo (xlsx.Exporter).
type TableWriter interface {
	WriteTable(w io.Writer, t dto.Table) error
}

// StockReportRenderer genera el PDF de existencias (pdf.StockReportGenerator).
type StockReportRenderer interface {
	RenderStockReport(r *dto.StockReport) ([]byte, error)
}

// UseCase exportaciones sobre el store de inventario.
type UseCase struct {
	store  *inventory.Store
	sheets TableWriter
	pdf    StockReportRenderer
	mirror repository.SnapshotRepository
	now    func() time.Time
	log    zerolog.Logger
}

// NewUseCase construye el caso de uso. mirror puede ser nil si no hay base de datos configurada.
func NewUseCase(
	store *inventory.Store,
	sheets TableWriter,
	pdf StockReportRenderer,
	mirror repository.SnapshotRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{store: store, sheets: sheets, pdf: pdf, mirror: mirror, now: time.Now, log: log}
}

// ExportTab escribe en w las filas de la pestaña que coinciden con search.
func (uc *UseCase) ExportTab(ctx context.Context, tab inventory.Tab, warehouse *entity.Warehouse, search string, w io.Writer) error {
	if warehouse == nil {
		return domain.ErrNoWarehouse
	}
	var table dto.Table
	switch tab {
	case inventory.TabMovements:
		items, err := uc.store.FetchMovements(ctx, warehouse.ID, false)
		if err != nil {
			return err
		}
		table = MovementsTable(domaininv.FilterMovements(items, search))
	case inventory.TabBalances:
		items, err := uc.store.FetchBalances(ctx, warehouse.ID, false)
		if err != nil {
			return err
		}
		table = BalancesTable(domaininv.FilterBalances(items, search))
	case inventory.TabBatches:
		items, err := uc.store.FetchBatches(ctx, warehouse.ID, false)
		if err != nil {
			return err
		}
		table = BatchesTable(BatchViews(domaininv.FilterBatches(items, search), uc.now()))
	default:
		_, err := inventory.ParseTab(string(tab))
		return err
	}
	table.Title = fmt.Sprintf("%s %s", table.Title, warehouse.Name)
	if err := uc.sheets.WriteTable(w, table); err != nil {
		return fmt.Errorf("exportar %s: %w", tab, err)
	}
	uc.log.Info().Str("tab", string(tab)).Int("rows", len(table.Rows)).Msg("report: pestaña exportada")
	return nil
}

// StockReportPDF genera el PDF de saldos y vencimientos de la bodega.
func (uc *UseCase) StockReportPDF(ctx context.Context, warehouse *entity.Warehouse, user *entity.User) ([]byte, error) {
	if warehouse == nil {
		return nil, domain.ErrNoWarehouse
	}
	balances, err := uc.store.FetchBalances(ctx, warehouse.ID, false)
	if err != nil {
		return nil, err
	}
	batches, err := uc.store.FetchBatches(ctx, warehouse.ID, false)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	r := &dto.StockReport{
		Warehouse:   *warehouse,
		GeneratedAt: now,
		Balances:    balances,
		Batches:     BatchViews(batches, now),
	}
	if user != nil {
		r.GeneratedBy = user.Name
	}
	return uc.pdf.RenderStockReport(r)
}

// SyncMirror trae forzadas las tres colecciones y las guarda en el espejo.
func (uc *UseCase) SyncMirror(ctx context.Context, warehouseID string) (*repository.InventorySnapshot, error) {
	if uc.mirror == nil {
		return nil, fmt.Errorf("%w: espejo de reportes no configurado", domain.ErrInvalidInput)
	}
	movements, err := uc.store.FetchMovements(ctx, warehouseID, true)
	if err != nil {
		return nil, err
	}
	balances, err := uc.store.FetchBalances(ctx, warehouseID, true)
	if err != nil {
		return nil, err
	}
	batches, err := uc.store.FetchBatches(ctx, warehouseID, true)
	if err != nil {
		return nil, err
	}
	snap := &repository.InventorySnapshot{
		WarehouseID: warehouseID,
		TakenAt:     uc.now(),
		Movements:   movements,
		Balances:    balances,
		Batches:     batches,
	}
	if err := uc.mirror.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("guardar snapshot: %w", err)
	}
	uc.log.Info().
		Str("warehouse_id", warehouseID).
		Int("movements", len(movements)).
		Int("balances", len(balances)).
		Int("batches", len(batches)).
		Msg("report: espejo sincronizado")
	return snap, nil
}

// BatchViews anota cada lote con su clasificación de vencimiento.
func BatchViews(items []entity.BatchRegistry, now time.Time) []dto.BatchView {
	out := make([]dto.BatchView, 0, len(items))
	for _, b := range items {
		out = append(out, dto.BatchView{BatchRegistry: b, ExpiryStatus: domaininv.ClassifyExpiry(b.ExpiryDate, now)})
	}
	return out
}

// MovementsTable tabla de movimientos.
func MovementsTable(items []entity.StockMovement) dto.Table {
	t := dto.Table{
		Title:   "Movimientos",
		Headers: []string{"Fecha", "Tipo", "Lote", "Producto", "Cantidad", "Referencia", "Notas"},
	}
	for _, m := range items {
		q, _ := m.Quantity.Float64()
		t.Rows = append(t.Rows, []any{
			m.CreatedAt.Format("2006-01-02 15:04"), string(m.MovementType), m.Batch, m.ProductName, q, m.ReferenceNumber, m.Notes,
		})
	}
	return t
}

// BalancesTable tabla de saldos.
func BalancesTable(items []entity.StockBalance) dto.Table {
	t := dto.Table{
		Title:   "Saldos",
		Headers: []string{"Producto", "Cantidad", "Estado", "Actualizado"},
	}
	for _, b := range items {
		q, _ := b.QuantityOnHand.Float64()
		t.Rows = append(t.Rows, []any{b.Product, q, string(b.Status), b.LastUpdated})
	}
	return t
}

// BatchesTable tabla de lotes.
func BatchesTable(items []dto.BatchView) dto.Table {
	t := dto.Table{
		Title:   "Lotes",
		Headers: []string{"Lote", "Producto", "Cantidad", "Fabricación", "Vencimiento", "Estado", "Vencimiento (cliente)"},
	}
	for _, b := range items {
		q, _ := b.Quantity.Float64()
		t.Rows = append(t.Rows, []any{
			b.BatchNumber, b.Product, q, formatDate(b.ManufactureDate), formatDate(b.ExpiryDate), string(b.Status), string(b.ExpiryStatus),
		})
	}
	return t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
