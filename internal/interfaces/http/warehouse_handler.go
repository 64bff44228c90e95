package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/usecase"
)

// WarehouseHandler maneja el listado y la selección de bodega.
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Produce      json
// @Success      200  {object}  dto.WarehouseListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListWithActive(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Select godoc
// @Summary      Seleccionar bodega activa
// @Description  Persiste la bodega e invalida la caché de inventario.
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectWarehouseRequest  true  "id"
// @Success      200   {object}  entity.Warehouse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouses/active [put]
func (h *WarehouseHandler) Select(c *fiber.Ctx) error {
	var in dto.SelectWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.ID == "" {
		return badRequest(c, "id es requerido")
	}
	w, err := h.uc.Select(c.Context(), in.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(w)
}
