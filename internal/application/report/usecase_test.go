package report_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/inventory"
	"github.com/jhoicas/bakery-erp/internal/application/report"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	domaininv "github.com/jhoicas/bakery-erp/internal/domain/inventory"
	"github.com/jhoicas/bakery-erp/internal/domain/repository"
)

type source struct{ calls int }

func (s *source) Movements(context.Context, string) ([]entity.StockMovement, error) {
	s.calls++
	return []entity.StockMovement{{ID: "m1", ProductName: "Baguette", Quantity: decimal.NewFromInt(4)}}, nil
}

func (s *source) CreateMovement(context.Context, dto.CreateMovementRequest) (*entity.StockMovement, error) {
	return nil, nil
}

func (s *source) Balances(context.Context, string) ([]entity.StockBalance, error) {
	s.calls++
	return []entity.StockBalance{
		{ID: "s1", Product: "Harina", QuantityOnHand: decimal.RequireFromString("2.5"), Status: entity.BalanceLowStock},
		{ID: "s2", Product: "Azúcar", Status: entity.BalanceInStock},
	}, nil
}

func (s *source) Batches(context.Context, string) ([]entity.BatchRegistry, error) {
	s.calls++
	exp := time.Now().AddDate(0, 0, 2)
	return []entity.BatchRegistry{{ID: "l1", BatchNumber: "LOT-9", ExpiryDate: &exp}}, nil
}

type sheetSpy struct{ table dto.Table }

func (s *sheetSpy) WriteTable(w io.Writer, t dto.Table) error {
	s.table = t
	_, err := w.Write([]byte("xlsx"))
	return err
}

type pdfSpy struct{ report *dto.StockReport }

func (p *pdfSpy) RenderStockReport(r *dto.StockReport) ([]byte, error) {
	p.report = r
	return []byte("%PDF"), nil
}

type mirrorSpy struct{ saved *repository.InventorySnapshot }

func (m *mirrorSpy) Save(_ context.Context, snap *repository.InventorySnapshot) error {
	m.saved = snap
	return nil
}

var central = &entity.Warehouse{ID: "w1", Name: "Central"}

func TestExportTab_AplicaBusqueda(t *testing.T) {
	store := inventory.NewStore(&source{}, time.Minute)
	sheets := &sheetSpy{}
	uc := report.NewUseCase(store, sheets, &pdfSpy{}, nil, zerolog.Nop())

	var buf bytes.Buffer
	require.NoError(t, uc.ExportTab(context.Background(), inventory.TabBalances, central, "harina", &buf))

	assert.Equal(t, "Saldos Central", sheets.table.Title)
	require.Len(t, sheets.table.Rows, 1)
	assert.Equal(t, "Harina", sheets.table.Rows[0][0])
	assert.Equal(t, 2.5, sheets.table.Rows[0][1])
	assert.Equal(t, "xlsx", buf.String())
}

func TestExportTab_Validaciones(t *testing.T) {
	uc := report.NewUseCase(inventory.NewStore(&source{}, time.Minute), &sheetSpy{}, &pdfSpy{}, nil, zerolog.Nop())

	assert.ErrorIs(t, uc.ExportTab(context.Background(), inventory.TabBatches, nil, "", io.Discard), domain.ErrNoWarehouse)
	assert.ErrorIs(t, uc.ExportTab(context.Background(), "ventas", central, "", io.Discard), domain.ErrInvalidInput)
}

func TestStockReportPDF_ClasificaLotes(t *testing.T) {
	pdf := &pdfSpy{}
	uc := report.NewUseCase(inventory.NewStore(&source{}, time.Minute), &sheetSpy{}, pdf, nil, zerolog.Nop())

	out, err := uc.StockReportPDF(context.Background(), central, &entity.User{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out))
	assert.Equal(t, "Ana", pdf.report.GeneratedBy)
	require.Len(t, pdf.report.Batches, 1)
	assert.Equal(t, domaininv.ExpiryNear, pdf.report.Batches[0].ExpiryStatus)
}

func TestSyncMirror_ForzaLasTresColecciones(t *testing.T) {
	src := &source{}
	store := inventory.NewStore(src, time.Minute)
	mirror := &mirrorSpy{}
	uc := report.NewUseCase(store, &sheetSpy{}, &pdfSpy{}, mirror, zerolog.Nop())

	_, _ = store.FetchBalances(context.Background(), "w1", false)
	snap, err := uc.SyncMirror(context.Background(), "w1")
	require.NoError(t, err)

	assert.Equal(t, 4, src.calls, "la sincronización ignora la caché")
	assert.Same(t, snap, mirror.saved)
	assert.Len(t, snap.Balances, 2)
}

func TestSyncMirror_SinEspejo(t *testing.T) {
	uc := report.NewUseCase(inventory.NewStore(&source{}, time.Minute), &sheetSpy{}, &pdfSpy{}, nil, zerolog.Nop())
	_, err := uc.SyncMirror(context.Background(), "w1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
