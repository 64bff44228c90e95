package inventory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
	"github.com/jhoicas/bakery-erp/internal/domain/inventory"
)

// Tab pestaña activa de la vista de inventario; coincide con el nombre de la colección.
type Tab string

const (
	TabMovements Tab = "movements"
	TabBalances  Tab = "balances"
	TabBatches   Tab = "batches"
)

// ParseTab valida el nombre de una pestaña.
func ParseTab(s string) (Tab, error) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabMovements, TabBalances, TabBatches:
		return t, nil
	}
	return "", fmt.Errorf("%w: pestaña desconocida %q", domain.ErrInvalidInput, s)
}

// Source origen de datos del store. Lo implementa Service.
type Source interface {
	Movements(ctx context.Context, warehouseID string) ([]entity.StockMovement, error)
	CreateMovement(ctx context.Context, in dto.CreateMovementRequest) (*entity.StockMovement, error)
	Balances(ctx context.Context, warehouseID string) ([]entity.StockBalance, error)
	Batches(ctx context.Context, warehouseID string) ([]entity.BatchRegistry, error)
}

var _ Source = (*Service)(nil)

// Recorder recibe los eventos de caché (métricas).
type Recorder interface {
	CacheHit(collection string)
	CacheMiss(collection string)
	FetchError(collection string)
}

type nopRecorder struct{}

func (nopRecorder) CacheHit(string)   {}
func (nopRecorder) CacheMiss(string)  {}
func (nopRecorder) FetchError(string) {}

// StoreOption configura dependencias opcionales del store.
type StoreOption func(*Store)

// WithClock reemplaza el reloj (tests de TTL).
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithLogger asigna el logger.
func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// WithRecorder registra el receptor de eventos de caché.
func WithRecorder(r Recorder) StoreOption {
	return func(s *Store) {
		if r != nil {
			s.rec = r
		}
	}
}

// State copia consistente del estado completo del store.
type State struct {
	Movements      []entity.StockMovement
	MovementsCache CacheMetadata
	Balances       []entity.StockBalance
	BalancesCache  CacheMetadata
	Batches        []entity.BatchRegistry
	BatchesCache   CacheMetadata

	ActiveTab           Tab
	SearchTerm          string
	SelectedWarehouseID string
	Loading             bool
	Error               string
}

// Store caché en memoria de las tres colecciones de inventario con TTL, invalidación
// tras mutaciones y estado de vista (pestaña, búsqueda, bodega). Seguro para uso concurrente.
type Store struct {
	src Source
	ttl time.Duration
	now func() time.Time
	log zerolog.Logger
	rec Recorder

	group singleflight.Group

	mu        sync.RWMutex
	movements collection[entity.StockMovement]
	balances  collection[entity.StockBalance]
	batches   collection[entity.BatchRegistry]
	tab       Tab
	search    string
	warehouse string
	inflight  int
	errMsg    string
}

// NewStore construye el store. ttl <= 0 usa DefaultTTL.
func NewStore(src Source, ttl time.Duration, opts ...StoreOption) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		src:       src,
		ttl:       ttl,
		now:       time.Now,
		log:       zerolog.Nop(),
		rec:       nopRecorder{},
		movements: newCollection[entity.StockMovement](),
		balances:  newCollection[entity.StockBalance](),
		batches:   newCollection[entity.BatchRegistry](),
		tab:       TabMovements,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL vigencia configurada.
func (s *Store) TTL() time.Duration { return s.ttl }

// FetchMovements devuelve los movimientos de la bodega desde caché o desde el backend.
func (s *Store) FetchMovements(ctx context.Context, warehouseID string, force bool) ([]entity.StockMovement, error) {
	return fetch(ctx, s, TabMovements, &s.movements, warehouseID, force, s.src.Movements)
}

// FetchBalances devuelve los saldos de la bodega desde caché o desde el backend.
func (s *Store) FetchBalances(ctx context.Context, warehouseID string, force bool) ([]entity.StockBalance, error) {
	return fetch(ctx, s, TabBalances, &s.balances, warehouseID, force, s.src.Balances)
}

// FetchBatches devuelve los lotes de la bodega desde caché o desde el backend.
func (s *Store) FetchBatches(ctx context.Context, warehouseID string, force bool) ([]entity.BatchRegistry, error) {
	return fetch(ctx, s, TabBatches, &s.batches, warehouseID, force, s.src.Batches)
}

// Fetch trae la colección de la pestaña indicada (para la bodega seleccionada).
func (s *Store) Fetch(ctx context.Context, tab Tab, force bool) error {
	wh := s.SelectedWarehouseID()
	var err error
	switch tab {
	case TabMovements:
		_, err = s.FetchMovements(ctx, wh, force)
	case TabBalances:
		_, err = s.FetchBalances(ctx, wh, force)
	case TabBatches:
		_, err = s.FetchBatches(ctx, wh, force)
	default:
		_, err = ParseTab(string(tab))
	}
	return err
}

func fetch[T any](
	ctx context.Context,
	s *Store,
	name Tab,
	col *collection[T],
	warehouseID string,
	force bool,
	load func(context.Context, string) ([]T, error),
) ([]T, error) {
	if warehouseID == "" {
		return nil, domain.ErrNoWarehouse
	}
	log := s.log.With().Str("collection", string(name)).Str("warehouse_id", warehouseID).Logger()

	s.mu.RLock()
	hit := !force && col.servable(warehouseID, s.now(), s.ttl)
	var cached []T
	if hit {
		cached = slices.Clone(col.items)
	}
	s.mu.RUnlock()
	if hit {
		s.rec.CacheHit(string(name))
		log.Debug().Msg("inventario: cache hit")
		return cached, nil
	}

	s.rec.CacheMiss(string(name))
	log.Debug().Bool("force", force).Msg("inventario: cache miss, consultando backend")

	v, err, shared := s.group.Do(string(name)+"|"+warehouseID, func() (any, error) {
		s.mu.Lock()
		col.meta.IsFetching = true
		s.inflight++
		s.errMsg = ""
		s.mu.Unlock()

		items, err := load(ctx, warehouseID)

		s.mu.Lock()
		defer s.mu.Unlock()
		col.meta.IsFetching = false
		s.inflight--
		if err != nil {
			s.errMsg = domain.Message(err)
			return nil, err
		}
		col.replace(items, warehouseID, s.now())
		return col.items, nil
	})
	if err != nil {
		s.rec.FetchError(string(name))
		log.Warn().Err(err).Msg("inventario: fallo al consultar backend")
		return nil, err
	}
	if shared {
		log.Debug().Msg("inventario: unido a consulta en curso")
	}
	return slices.Clone(v.([]T)), nil
}

// InvalidateMovements marca los movimientos como vencidos.
func (s *Store) InvalidateMovements() {
	s.mu.Lock()
	s.movements.invalidate()
	s.mu.Unlock()
}

// InvalidateBalances marca los saldos como vencidos.
func (s *Store) InvalidateBalances() {
	s.mu.Lock()
	s.balances.invalidate()
	s.mu.Unlock()
}

// InvalidateBatches marca los lotes como vencidos.
func (s *Store) InvalidateBatches() {
	s.mu.Lock()
	s.batches.invalidate()
	s.mu.Unlock()
}

// InvalidateAll invalida las tres colecciones.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	s.invalidateAllLocked()
	s.mu.Unlock()
}

func (s *Store) invalidateAllLocked() {
	s.movements.invalidate()
	s.balances.invalidate()
	s.batches.invalidate()
}

// Invalidate invalida la colección de la pestaña indicada.
func (s *Store) Invalidate(tab Tab) error {
	switch tab {
	case TabMovements:
		s.InvalidateMovements()
	case TabBalances:
		s.InvalidateBalances()
	case TabBatches:
		s.InvalidateBatches()
	default:
		_, err := ParseTab(string(tab))
		return err
	}
	return nil
}

// SetWarehouse cambia la bodega seleccionada e invalida todas las cachés.
func (s *Store) SetWarehouse(warehouseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouse = warehouseID
	s.invalidateAllLocked()
	s.log.Debug().Str("warehouse_id", warehouseID).Msg("inventario: bodega seleccionada, cachés invalidadas")
}

// SelectedWarehouseID bodega seleccionada ("" si ninguna).
func (s *Store) SelectedWarehouseID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warehouse
}

// SetActiveTab cambia la pestaña activa.
func (s *Store) SetActiveTab(tab Tab) error {
	t, err := ParseTab(string(tab))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tab = t
	s.mu.Unlock()
	return nil
}

// SetSearchTerm fija el término de búsqueda de los selectores filtrados.
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	s.search = term
	s.mu.Unlock()
}

// ClearError limpia el banner de error.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

// AddMovement valida y crea un movimiento. Si se crea, invalida movimientos y saldos
// y los vuelve a traer forzados; los lotes no se tocan. Sin actualización optimista.
// Un fallo en la recarga queda en Error pero no anula la creación.
func (s *Store) AddMovement(ctx context.Context, in dto.CreateMovementRequest) (*entity.StockMovement, error) {
	if in.Warehouse == "" {
		in.Warehouse = s.SelectedWarehouseID()
	}
	in.MovementType = entity.MovementType(strings.ToUpper(string(in.MovementType)))
	if err := ValidateMovement(in); err != nil {
		return nil, err
	}

	created, err := s.src.CreateMovement(ctx, in)
	if err != nil {
		s.mu.Lock()
		s.errMsg = domain.Message(err)
		s.mu.Unlock()
		s.log.Warn().Err(err).Str("warehouse_id", in.Warehouse).Msg("inventario: fallo al crear movimiento")
		return nil, err
	}
	s.log.Info().
		Str("warehouse_id", in.Warehouse).
		Str("movement_id", created.ID).
		Str("type", string(in.MovementType)).
		Msg("inventario: movimiento creado")

	s.InvalidateMovements()
	s.InvalidateBalances()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = s.FetchMovements(ctx, in.Warehouse, true)
	}()
	go func() {
		defer wg.Done()
		_, _ = s.FetchBalances(ctx, in.Warehouse, true)
	}()
	wg.Wait()

	return created, nil
}

// ValidateMovement valida el DTO de creación antes de cualquier llamada de red.
func ValidateMovement(in dto.CreateMovementRequest) error {
	switch {
	case strings.TrimSpace(in.Warehouse) == "":
		return domain.ErrNoWarehouse
	case strings.TrimSpace(in.Batch) == "":
		return fmt.Errorf("%w: el lote es obligatorio", domain.ErrInvalidInput)
	case !in.MovementType.Valid():
		return fmt.Errorf("%w: tipo de movimiento %q no soportado", domain.ErrInvalidInput, in.MovementType)
	case in.Quantity.IsZero():
		return fmt.Errorf("%w: la cantidad no puede ser cero", domain.ErrInvalidInput)
	case in.MovementType != entity.MovementTypeADJUSTMENT && in.Quantity.IsNegative():
		return fmt.Errorf("%w: la cantidad debe ser positiva para %s", domain.ErrInvalidInput, in.MovementType)
	}
	return nil
}

// FilteredMovements movimientos que coinciden con el término de búsqueda.
func (s *Store) FilteredMovements() []entity.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return inventory.FilterMovements(s.movements.items, s.search)
}

// FilteredBalances saldos que coinciden con el término de búsqueda.
func (s *Store) FilteredBalances() []entity.StockBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return inventory.FilterBalances(s.balances.items, s.search)
}

// FilteredBatches lotes que coinciden con el término de búsqueda.
func (s *Store) FilteredBatches() []entity.BatchRegistry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return inventory.FilterBatches(s.batches.items, s.search)
}

// Metadata metadatos de caché de la colección indicada.
func (s *Store) Metadata(tab Tab) CacheMetadata {
	st := s.Snapshot()
	switch tab {
	case TabBalances:
		return st.BalancesCache
	case TabBatches:
		return st.BatchesCache
	}
	return st.MovementsCache
}

// Snapshot copia consistente del estado.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	st := State{
		ActiveTab:           s.tab,
		SearchTerm:          s.search,
		SelectedWarehouseID: s.warehouse,
		Loading:             s.inflight > 0,
		Error:               s.errMsg,
	}
	st.Movements, st.MovementsCache = s.movements.view(now, s.ttl)
	st.Balances, st.BalancesCache = s.balances.view(now, s.ttl)
	st.Batches, st.BatchesCache = s.batches.view(now, s.ttl)
	return st
}
