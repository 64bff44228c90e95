package dto

import "github.com/jhoicas/bakery-erp/internal/domain/entity"

// WarehouseRecord bodega tal como la devuelve el backend.
type WarehouseRecord struct {
	ID       FlexString `json:"id"`
	Name     string     `json:"name"`
	Location string     `json:"location"`
	Code     string     `json:"code"`
}

// SelectWarehouseRequest body de PUT /api/warehouses/active.
type SelectWarehouseRequest struct {
	ID string `json:"id"`
}

// WarehouseListResponse listado de bodegas con la activa marcada.
type WarehouseListResponse struct {
	Items    []entity.Warehouse `json:"items"`
	ActiveID string             `json:"active_id,omitempty"`
}
