package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo guarda snapshots de inventario en las tablas del espejo.
type SnapshotRepo struct {
	tx *TxRunner
}

// NewSnapshotRepository construye el adaptador.
func NewSnapshotRepository(tx *TxRunner) *SnapshotRepo {
	return &SnapshotRepo{tx: tx}
}

// Save reemplaza en una sola transacción las filas de la bodega del snapshot y registra la sincronización.
func (r *SnapshotRepo) Save(ctx context.Context, snap *repository.InventorySnapshot) error {
	if snap == nil || snap.WarehouseID == "" {
		return fmt.Errorf("%w: snapshot sin bodega", domain.ErrInvalidInput)
	}
	return r.tx.Run(ctx, func(q Querier) error {
		for _, table := range []string{"mirror_stock_movements", "mirror_stock_balances", "mirror_batches"} {
			if _, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE warehouse_id = $1`, snap.WarehouseID); err != nil {
				return fmt.Errorf("limpiar %s: %w", table, err)
			}
		}

		batch := buildBatch(snap)
		res := q.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := res.Exec(); err != nil {
				_ = res.Close()
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: id repetido en el snapshot (fila %d)", domain.ErrConflict, i)
				}
				return fmt.Errorf("insertar fila %d del snapshot: %w", i, err)
			}
		}
		if err := res.Close(); err != nil {
			return fmt.Errorf("cerrar batch: %w", err)
		}
		return nil
	})
}

const (
	insertMovement = `
		INSERT INTO mirror_stock_movements
			(id, warehouse_id, batch, product_name, movement_type, quantity, reference_number, notes, created_at, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	insertBalance = `
		INSERT INTO mirror_stock_balances
			(id, warehouse_id, product, quantity_on_hand, status, last_updated, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	insertBatch = `
		INSERT INTO mirror_batches
			(id, warehouse_id, batch_number, product, manufacture_date, expiry_date, quantity, status, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	insertSync = `
		INSERT INTO mirror_syncs (warehouse_id, movements, balances, batches, synced_at)
		VALUES ($1, $2, $3, $4, $5)`
)

// buildBatch arma las inserciones del snapshot. La bodega de cada fila es la del snapshot.
func buildBatch(snap *repository.InventorySnapshot) *pgx.Batch {
	b := &pgx.Batch{}
	wh := snap.WarehouseID
	at := snap.TakenAt
	for _, m := range snap.Movements {
		b.Queue(insertMovement, m.ID, wh, m.Batch, m.ProductName, string(m.MovementType),
			m.Quantity, m.ReferenceNumber, m.Notes, m.CreatedAt, at)
	}
	for _, s := range snap.Balances {
		b.Queue(insertBalance, s.ID, wh, s.Product, s.QuantityOnHand, string(s.Status), s.LastUpdated, at)
	}
	for _, l := range snap.Batches {
		b.Queue(insertBatch, l.ID, wh, l.BatchNumber, l.Product, l.ManufactureDate, l.ExpiryDate,
			l.Quantity, string(l.Status), at)
	}
	b.Queue(insertSync, wh, len(snap.Movements), len(snap.Balances), len(snap.Batches), at)
	return b
}
