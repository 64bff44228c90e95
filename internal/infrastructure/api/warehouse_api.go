package api

import (
	"context"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/ports"
)

var _ ports.WarehouseAPI = (*WarehouseAPI)(nil)

const warehousesPath = "/warehouses"

// WarehouseAPI adaptador del listado de bodegas.
type WarehouseAPI struct {
	c *Client
}

// NewWarehouseAPI construye el adaptador.
func NewWarehouseAPI(c *Client) *WarehouseAPI {
	return &WarehouseAPI{c: c}
}

// ListWarehouses devuelve las bodegas; el backend puede responder paginado o con un arreglo plano.
func (a *WarehouseAPI) ListWarehouses(ctx context.Context) ([]dto.WarehouseRecord, error) {
	raw, err := a.c.GetRaw(ctx, warehousesPath, nil)
	if err != nil {
		return nil, err
	}
	return dto.DecodeList[dto.WarehouseRecord](raw)
}
