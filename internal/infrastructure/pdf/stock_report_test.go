package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/domain/inventory"
)

func TestRenderStockReport_GeneraPDF(t *testing.T) {
	exp := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	r := &dto.StockReport{
		Warehouse:   entity.Warehouse{ID: "w1", Name: "Central", Code: "CEN"},
		GeneratedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		GeneratedBy: "Ana",
		Balances: []entity.StockBalance{
			{Product: "Harina", QuantityOnHand: decimal.RequireFromString("12.5"), Status: entity.BalanceLowStock},
		},
		Batches: []dto.BatchView{
			{BatchRegistry: entity.BatchRegistry{BatchNumber: "LOT-1", Product: "Harina", ExpiryDate: &exp}, ExpiryStatus: inventory.ExpiryNear},
		},
	}

	out, err := NewStockReportGenerator().RenderStockReport(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderStockReport_SinDatos(t *testing.T) {
	out, err := NewStockReportGenerator().RenderStockReport(&dto.StockReport{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Low stock", humanize("LOW_STOCK"))
	assert.Equal(t, "—", humanize(""))
	assert.Equal(t, "Por vencer", expiryLabel(inventory.ExpiryNear))
}
