package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// InventorySnapshot copia de las tres colecciones de una bodega en un instante.
type InventorySnapshot struct {
	WarehouseID string
	TakenAt     time.Time
	Movements   []entity.StockMovement
	Balances    []entity.StockBalance
	Batches     []entity.BatchRegistry
}

// SnapshotRepository define el puerto del espejo de reportes (DIP).
type SnapshotRepository interface {
	// Save reemplaza atómicamente el contenido espejado de la bodega del snapshot.
	Save(ctx context.Context, snap *InventorySnapshot) error
}
