package ports

import (
	"context"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
)

// ResponseError lo implementan los errores de los gateways; distingue fallos con
// respuesta del servidor de fallos de transporte.
type ResponseError interface {
	error
	HasResponse() bool
	ServerDetail() string
}

// AuthAPI puerto de salida hacia el endpoint de login del backend.
type AuthAPI interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// WarehouseAPI puerto de salida para el listado de bodegas.
type WarehouseAPI interface {
	ListWarehouses(ctx context.Context) ([]dto.WarehouseRecord, error)
}

// InventoryAPI puerto de salida para los recursos de inventario.
// Devuelve los registros tal como vienen del backend; la normalización es del servicio.
type InventoryAPI interface {
	ListMovements(ctx context.Context, warehouseID string) ([]dto.MovementRecord, error)
	CreateMovement(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementRecord, error)
	ListBalances(ctx context.Context, warehouseID string) ([]dto.BalanceRecord, error)
	ListBatches(ctx context.Context, warehouseID string) ([]dto.BatchRecord, error)
}
