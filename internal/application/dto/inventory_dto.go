package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/domain/inventory"
)

// MovementRecord movimiento crudo del backend. Quantity puede venir como string o número.
type MovementRecord struct {
	ID              FlexString      `json:"id"`
	Warehouse       FlexString      `json:"warehouse"`
	Batch           FlexString      `json:"batch"`
	ProductName     string          `json:"product_name"`
	MovementType    string          `json:"movement_type"`
	Quantity        json.RawMessage `json:"quantity"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// BalanceRecord saldo crudo del backend.
type BalanceRecord struct {
	ID             FlexString      `json:"id"`
	Product        string          `json:"product"`
	Warehouse      string          `json:"warehouse"`
	QuantityOnHand json.RawMessage `json:"quantity_on_hand"`
	Status         string          `json:"status"`
	LastUpdated    string          `json:"last_updated"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

// BatchRecord lote crudo del backend.
type BatchRecord struct {
	ID              FlexString      `json:"id"`
	BatchNumber     string          `json:"batch_number"`
	Product         string          `json:"product"`
	Warehouse       string          `json:"warehouse"`
	ManufactureDate string          `json:"manufacture_date"`
	ExpiryDate      string          `json:"expiry_date"`
	Quantity        json.RawMessage `json:"quantity"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// CreateMovementRequest body de creación de un movimiento (backend y BFF).
type CreateMovementRequest struct {
	Warehouse       string              `json:"warehouse"`
	Batch           string              `json:"batch"`
	MovementType    entity.MovementType `json:"movement_type"`
	Quantity        decimal.Decimal     `json:"quantity"`
	ReferenceNumber string              `json:"reference_number"`
	Notes           string              `json:"notes"`
}

// CacheMetadataDTO metadatos de caché expuestos en las vistas.
type CacheMetadataDTO struct {
	LastFetched *time.Time `json:"last_fetched"`
	IsStale     bool       `json:"is_stale"`
	IsFetching  bool       `json:"is_fetching"`
	WarehouseID string     `json:"warehouse_id,omitempty"`
}

// BatchView lote con su clasificación de vencimiento calculada en el cliente.
type BatchView struct {
	entity.BatchRegistry
	ExpiryStatus inventory.ExpiryStatus `json:"expiry_status"`
}

// MovementListResponse respuesta de GET /api/inventory/movements.
type MovementListResponse struct {
	Total int                    `json:"total"`
	Items []entity.StockMovement `json:"items"`
	Cache CacheMetadataDTO       `json:"cache"`
	Error string                 `json:"error,omitempty"`
}

// BalanceListResponse respuesta de GET /api/inventory/balances.
type BalanceListResponse struct {
	Total int                   `json:"total"`
	Items []entity.StockBalance `json:"items"`
	Cache CacheMetadataDTO      `json:"cache"`
	Error string                `json:"error,omitempty"`
}

// BatchListResponse respuesta de GET /api/inventory/batches.
type BatchListResponse struct {
	Total int              `json:"total"`
	Items []BatchView      `json:"items"`
	Cache CacheMetadataDTO `json:"cache"`
	Error string           `json:"error,omitempty"`
}

// InventoryStateDTO respuesta de GET /api/inventory/cache.
type InventoryStateDTO struct {
	ActiveTab           string           `json:"active_tab"`
	SearchTerm          string           `json:"search_term"`
	SelectedWarehouseID string           `json:"selected_warehouse_id"`
	Loading             bool             `json:"loading"`
	Error               string           `json:"error,omitempty"`
	Movements           CacheMetadataDTO `json:"movements"`
	Balances            CacheMetadataDTO `json:"balances"`
	Batches             CacheMetadataDTO `json:"batches"`
}
