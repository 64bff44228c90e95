package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/inventory"
	"github.com/jhoicas/bakery-erp/internal/application/report"
	"github.com/jhoicas/bakery-erp/internal/application/usecase"
	domaininv "github.com/jhoicas/bakery-erp/internal/domain/inventory"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// InventoryHandler maneja las vistas de inventario sobre el store con caché (protegido).
type InventoryHandler struct {
	store      *inventory.Store
	warehouses *usecase.WarehouseUseCase
	reports    *report.UseCase
	now        func() time.Time
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(store *inventory.Store, warehouses *usecase.WarehouseUseCase, reports *report.UseCase) *InventoryHandler {
	return &InventoryHandler{store: store, warehouses: warehouses, reports: reports, now: time.Now}
}

// ListMovements godoc
// @Summary      Movimientos de la bodega activa
// @Description  Sirve desde la caché si está vigente (5 min) salvo force=true.
// @Tags         inventory
// @Produce      json
// @Param        search  query  string  false  "Filtro por producto, referencia o tipo"
// @Param        force   query  bool    false  "Ignorar la caché"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	warehouseID, err := h.activeWarehouse(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.store.FetchMovements(c.Context(), warehouseID, c.QueryBool("force"))
	if err != nil {
		return writeError(c, err)
	}
	search := h.view(c, inventory.TabMovements)
	items = domaininv.FilterMovements(items, search)
	return c.JSON(dto.MovementListResponse{
		Total: len(items),
		Items: items,
		Cache: cacheDTO(h.store.Metadata(inventory.TabMovements)),
	})
}

// ListBalances godoc
// @Summary      Saldos de la bodega activa
// @Tags         inventory
// @Produce      json
// @Param        search  query  string  false  "Filtro por producto o estado"
// @Param        force   query  bool    false  "Ignorar la caché"
// @Success      200  {object}  dto.BalanceListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances [get]
func (h *InventoryHandler) ListBalances(c *fiber.Ctx) error {
	warehouseID, err := h.activeWarehouse(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.store.FetchBalances(c.Context(), warehouseID, c.QueryBool("force"))
	if err != nil {
		return writeError(c, err)
	}
	search := h.view(c, inventory.TabBalances)
	items = domaininv.FilterBalances(items, search)
	return c.JSON(dto.BalanceListResponse{
		Total: len(items),
		Items: items,
		Cache: cacheDTO(h.store.Metadata(inventory.TabBalances)),
	})
}

// ListBatches godoc
// @Summary      Lotes de la bodega activa con estado de vencimiento
// @Tags         inventory
// @Produce      json
// @Param        search  query  string  false  "Filtro por número de lote, producto o estado"
// @Param        force   query  bool    false  "Ignorar la caché"
// @Success      200  {object}  dto.BatchListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/batches [get]
func (h *InventoryHandler) ListBatches(c *fiber.Ctx) error {
	warehouseID, err := h.activeWarehouse(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.store.FetchBatches(c.Context(), warehouseID, c.QueryBool("force"))
	if err != nil {
		return writeError(c, err)
	}
	search := h.view(c, inventory.TabBatches)
	views := report.BatchViews(domaininv.FilterBatches(items, search), h.now())
	return c.JSON(dto.BatchListResponse{
		Total: len(views),
		Items: views,
		Cache: cacheDTO(h.store.Metadata(inventory.TabBatches)),
	})
}

// AddMovement godoc
// @Summary      Registrar movimiento
// @Description  Crea el movimiento en el backend y recarga movimientos y saldos.
//
//	Si warehouse viene vacío se usa la bodega activa.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "warehouse, batch, movement_type (IN|OUT|ADJUSTMENT), quantity"
// @Success      201   {object}  entity.StockMovement
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) AddMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Warehouse == "" {
		warehouseID, err := h.activeWarehouse(c)
		if err != nil {
			return writeError(c, err)
		}
		in.Warehouse = warehouseID
	}
	created, err := h.store.AddMovement(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// CacheState godoc
// @Summary      Estado de la caché de inventario
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.InventoryStateDTO
// @Router       /api/inventory/cache [get]
func (h *InventoryHandler) CacheState(c *fiber.Ctx) error {
	st := h.store.Snapshot()
	return c.JSON(dto.InventoryStateDTO{
		ActiveTab:           string(st.ActiveTab),
		SearchTerm:          st.SearchTerm,
		SelectedWarehouseID: st.SelectedWarehouseID,
		Loading:             st.Loading,
		Error:               st.Error,
		Movements:           cacheDTO(st.MovementsCache),
		Balances:            cacheDTO(st.BalancesCache),
		Batches:             cacheDTO(st.BatchesCache),
	})
}

// Invalidate godoc
// @Summary      Invalidar caché
// @Description  Sin tab invalida las tres colecciones.
// @Tags         inventory
// @Param        tab  query  string  false  "movements | balances | batches"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/invalidate [post]
func (h *InventoryHandler) Invalidate(c *fiber.Ctx) error {
	tab := c.Query("tab")
	if tab == "" {
		h.store.InvalidateAll()
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err := h.store.Invalidate(inventory.Tab(tab)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar pestaña a XLSX
// @Tags         inventory
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        tab     query  string  false  "movements (defecto) | balances | batches"
// @Param        search  query  string  false  "Filtro aplicado a las filas"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	tab, err := inventory.ParseTab(c.Query("tab", string(inventory.TabMovements)))
	if err != nil {
		return writeError(c, err)
	}
	warehouse, err := h.warehouses.EnsureActive(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	if err := h.reports.ExportTab(c.Context(), tab, warehouse, c.Query("search"), &buf); err != nil {
		return writeError(c, err)
	}
	c.Attachment(fmt.Sprintf("inventario-%s-%s.xlsx", tab, warehouse.ID))
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(buf.Bytes())
}

// Report godoc
// @Summary      Reporte PDF de saldos y vencimientos
// @Tags         inventory
// @Produce      application/pdf
// @Success      200
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/report [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	warehouse, err := h.warehouses.EnsureActive(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.reports.StockReportPDF(c.Context(), warehouse, GetUser(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(fmt.Sprintf("existencias-%s.pdf", warehouse.ID))
	c.Set(fiber.HeaderContentType, mimePDF)
	return c.Send(pdf)
}

// activeWarehouse bodega activa; si no hay, autoselecciona la primera.
func (h *InventoryHandler) activeWarehouse(c *fiber.Ctx) (string, error) {
	w, err := h.warehouses.EnsureActive(c.Context())
	if err != nil {
		return "", err
	}
	return w.ID, nil
}

// view registra pestaña y búsqueda como estado de vista del store y devuelve el término.
func (h *InventoryHandler) view(c *fiber.Ctx, tab inventory.Tab) string {
	search := c.Query("search")
	_ = h.store.SetActiveTab(tab)
	h.store.SetSearchTerm(search)
	return search
}

func cacheDTO(m inventory.CacheMetadata) dto.CacheMetadataDTO {
	return dto.CacheMetadataDTO{
		LastFetched: m.LastFetched,
		IsStale:     m.IsStale,
		IsFetching:  m.IsFetching,
		WarehouseID: m.WarehouseID,
	}
}
