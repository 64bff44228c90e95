package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/domain/repository"
)

func TestBuildBatch_UnaFilaPorRegistroMasSync(t *testing.T) {
	snap := &repository.InventorySnapshot{
		WarehouseID: "w1",
		TakenAt:     time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		Movements:   []entity.StockMovement{{ID: "m1", Quantity: decimal.NewFromInt(3)}, {ID: "m2"}},
		Balances:    []entity.StockBalance{{ID: "s1"}},
		Batches:     []entity.BatchRegistry{{ID: "l1"}, {ID: "l2"}, {ID: "l3"}},
	}

	b := buildBatch(snap)
	require.Equal(t, 7, b.Len())
	assert.Equal(t, insertSync, b.QueuedQueries[6].SQL)
	assert.Equal(t, []any{"w1", 2, 1, 3, snap.TakenAt}, b.QueuedQueries[6].Arguments)
	assert.Equal(t, "w1", b.QueuedQueries[0].Arguments[1], "la bodega sale del snapshot")
}

func TestMigrations_Embebidas(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, files)

	content, err := fs.ReadFile(migrations, files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- +goose Up")
	assert.Contains(t, string(content), "-- +goose Down")
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("batch: %w", pgErr)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión cerrada")))
	assert.False(t, isUniqueViolation(nil))
}

func TestSave_SinBodega(t *testing.T) {
	r := NewSnapshotRepository(nil)
	assert.ErrorIs(t, r.Save(context.Background(), &repository.InventorySnapshot{}), domain.ErrInvalidInput)
	assert.ErrorIs(t, r.Save(context.Background(), nil), domain.ErrInvalidInput)
}
