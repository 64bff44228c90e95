// Package dashboard arma la vista de inicio: perfil, bodega activa, módulos accesibles
// y alertas de inventario.
package dashboard

import (
	"context"
	"time"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/access"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/domain/inventory"
)

// SessionReader fuente del usuario en sesión.
type SessionReader interface {
	CurrentUser() (*entity.User, error)
}

// WarehouseReader fuente de la bodega activa.
type WarehouseReader interface {
	Active() (*entity.Warehouse, error)
}

// InventoryReader lectura de inventario con caché (inventory.Store).
type InventoryReader interface {
	FetchMovements(ctx context.Context, warehouseID string, force bool) ([]entity.StockMovement, error)
	FetchBalances(ctx context.Context, warehouseID string, force bool) ([]entity.StockBalance, error)
	FetchBatches(ctx context.Context, warehouseID string, force bool) ([]entity.BatchRegistry, error)
}

// UseCase genera el resumen del dashboard.
type UseCase struct {
	session    SessionReader
	warehouses WarehouseReader
	inventory  InventoryReader
	now        func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(session SessionReader, warehouses WarehouseReader, inv InventoryReader) *UseCase {
	return &UseCase{session: session, warehouses: warehouses, inventory: inv, now: time.Now}
}

// Summary construye el DashboardSummaryDTO del usuario en sesión.
//
// Si el rol tiene acceso a Inventario y hay bodega activa, las alertas se calculan con
// tres lecturas en paralelo (respetando la caché):
//  1. saldos      → LowStock
//  2. lotes       → NearExpiry + Expired
//  3. movimientos → MovementsToday
//
// Un fallo en las alertas no invalida el resumen: queda en Alerts.Error.
func (uc *UseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	user, err := uc.session.CurrentUser()
	if err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouses.Active()
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		User:       *user,
		Warehouse:  warehouse,
		Modules:    access.ModulesFor(user.Role),
		Navigation: access.NavigationFor(user.Role),
		ShowKPIs:   user.Role == entity.RoleAdmin,
	}
	if warehouse != nil && access.CanAccess(user.Role, access.ModuleInventory) {
		out.Alerts = uc.alerts(ctx, warehouse.ID)
	}
	return out, nil
}

func (uc *UseCase) alerts(ctx context.Context, warehouseID string) *dto.InventoryAlertsDTO {
	now := uc.now()

	type balancesResult struct {
		items []entity.StockBalance
		err   error
	}
	type batchesResult struct {
		items []entity.BatchRegistry
		err   error
	}
	type movementsResult struct {
		items []entity.StockMovement
		err   error
	}

	balCh := make(chan balancesResult, 1)
	batCh := make(chan batchesResult, 1)
	movCh := make(chan movementsResult, 1)

	go func() {
		items, err := uc.inventory.FetchBalances(ctx, warehouseID, false)
		balCh <- balancesResult{items, err}
	}()
	go func() {
		items, err := uc.inventory.FetchBatches(ctx, warehouseID, false)
		batCh <- batchesResult{items, err}
	}()
	go func() {
		items, err := uc.inventory.FetchMovements(ctx, warehouseID, false)
		movCh <- movementsResult{items, err}
	}()

	bal := <-balCh
	bat := <-batCh
	mov := <-movCh

	out := &dto.InventoryAlertsDTO{}
	for _, err := range []error{bal.err, bat.err, mov.err} {
		if err != nil && out.Error == "" {
			out.Error = domain.Message(err)
		}
	}
	for _, b := range bal.items {
		if b.Status.NeedsAttention() {
			out.LowStock++
		}
	}
	for _, b := range bat.items {
		switch inventory.ClassifyExpiry(b.ExpiryDate, now) {
		case inventory.ExpiryNear:
			out.NearExpiry++
		case inventory.ExpiryExpired:
			out.Expired++
		}
	}
	y, m, d := now.Date()
	for _, mv := range mov.items {
		cy, cm, cd := mv.CreatedAt.In(now.Location()).Date()
		if cy == y && cm == m && cd == d {
			out.MovementsToday++
		}
	}
	return out
}
