package api

import (
	"context"
	"net/url"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/ports"
)

var (
	_ ports.InventoryAPI  = (*InventoryAPI)(nil)
	_ ports.ResponseError = (*Error)(nil)
)

const (
	movementsPath = "/inventory/stock_movements"
	balancesPath  = "/inventory/stocks"
	batchesPath   = "/inventory/batches"
)

// InventoryAPI llamadas crudas a los recursos de inventario: sin caché ni estado.
type InventoryAPI struct {
	c *Client
}

// NewInventoryAPI construye el adaptador.
func NewInventoryAPI(c *Client) *InventoryAPI {
	return &InventoryAPI{c: c}
}

func byWarehouse(warehouseID string) url.Values {
	return url.Values{"warehouse_id": []string{warehouseID}}
}

// ListMovements GET /inventory/stock_movements?warehouse_id=.
func (a *InventoryAPI) ListMovements(ctx context.Context, warehouseID string) ([]dto.MovementRecord, error) {
	raw, err := a.c.GetRaw(ctx, movementsPath, byWarehouse(warehouseID))
	if err != nil {
		return nil, err
	}
	return dto.DecodeList[dto.MovementRecord](raw)
}

// CreateMovement POST /inventory/stock_movements.
func (a *InventoryAPI) CreateMovement(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementRecord, error) {
	var out dto.MovementRecord
	if err := a.c.Post(ctx, movementsPath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBalances GET /inventory/stocks?warehouse_id=.
func (a *InventoryAPI) ListBalances(ctx context.Context, warehouseID string) ([]dto.BalanceRecord, error) {
	raw, err := a.c.GetRaw(ctx, balancesPath, byWarehouse(warehouseID))
	if err != nil {
		return nil, err
	}
	return dto.DecodeList[dto.BalanceRecord](raw)
}

// ListBatches GET /inventory/batches?warehouse_id=.
func (a *InventoryAPI) ListBatches(ctx context.Context, warehouseID string) ([]dto.BatchRecord, error) {
	raw, err := a.c.GetRaw(ctx, batchesPath, byWarehouse(warehouseID))
	if err != nil {
		return nil, err
	}
	return dto.DecodeList[dto.BatchRecord](raw)
}
