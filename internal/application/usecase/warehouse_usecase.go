package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/ports"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/domain/repository"
)

// WarehouseSelector recibe el cambio de bodega activa. Lo implementa inventory.Store.
type WarehouseSelector interface {
	SetWarehouse(warehouseID string)
}

// WarehouseUseCase contexto global de bodega: listado, selección persistida y
// autoselección de la primera bodega.
type WarehouseUseCase struct {
	api      ports.WarehouseAPI
	state    repository.SessionStateStore
	selector WarehouseSelector
	log      zerolog.Logger
}

// NewWarehouseUseCase construye el caso de uso. selector puede ser nil.
func NewWarehouseUseCase(
	api ports.WarehouseAPI,
	state repository.SessionStateStore,
	selector WarehouseSelector,
	log zerolog.Logger,
) *WarehouseUseCase {
	return &WarehouseUseCase{api: api, state: state, selector: selector, log: log}
}

// List lista las bodegas disponibles.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]entity.Warehouse, error) {
	records, err := uc.api.ListWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar bodegas: %w", err)
	}
	out := make([]entity.Warehouse, 0, len(records))
	for _, r := range records {
		out = append(out, entity.Warehouse{
			ID:       r.ID.String(),
			Name:     r.Name,
			Location: r.Location,
			Code:     r.Code,
		})
	}
	return out, nil
}

// ListWithActive lista las bodegas y marca la activa.
func (uc *WarehouseUseCase) ListWithActive(ctx context.Context) (*dto.WarehouseListResponse, error) {
	items, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.WarehouseListResponse{Items: items}
	active, err := uc.Active()
	if err != nil {
		return nil, err
	}
	if active != nil {
		out.ActiveID = active.ID
	}
	return out, nil
}

// Select persiste la bodega indicada como activa. Id desconocido → domain.ErrNotFound.
func (uc *WarehouseUseCase) Select(ctx context.Context, id string) (*entity.Warehouse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], uc.activate(&items[i])
		}
	}
	return nil, fmt.Errorf("bodega %q: %w", id, domain.ErrNotFound)
}

// Active bodega persistida (nil si no hay o estaba corrupta).
func (uc *WarehouseUseCase) Active() (*entity.Warehouse, error) {
	w, err := uc.state.LoadWarehouse()
	if err != nil {
		return nil, fmt.Errorf("leer bodega activa: %w", err)
	}
	return w, nil
}

// EnsureActive devuelve la bodega activa; si no hay, selecciona la primera disponible.
// Sin bodegas disponibles → domain.ErrNoWarehouse.
func (uc *WarehouseUseCase) EnsureActive(ctx context.Context) (*entity.Warehouse, error) {
	active, err := uc.Active()
	if err != nil {
		return nil, err
	}
	if active != nil {
		uc.sync(active.ID)
		return active, nil
	}
	items, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNoWarehouse
	}
	uc.log.Info().Str("warehouse_id", items[0].ID).Msg("bodega: autoselección de la primera disponible")
	return &items[0], uc.activate(&items[0])
}

func (uc *WarehouseUseCase) activate(w *entity.Warehouse) error {
	if err := uc.state.SaveWarehouse(w); err != nil {
		return fmt.Errorf("guardar bodega activa: %w", err)
	}
	if uc.selector != nil {
		uc.selector.SetWarehouse(w.ID)
	}
	uc.log.Info().Str("warehouse_id", w.ID).Str("name", w.Name).Msg("bodega: seleccionada")
	return nil
}

// sync alinea el store con la bodega persistida; no invalida si ya coincide.
func (uc *WarehouseUseCase) sync(id string) {
	if uc.selector == nil {
		return
	}
	if s, ok := uc.selector.(interface{ SelectedWarehouseID() string }); ok && s.SelectedWarehouseID() == id {
		return
	}
	uc.selector.SetWarehouse(id)
}
