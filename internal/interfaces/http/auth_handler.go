package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bakery-erp/internal/application/auth"
	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/usecase"
)

// sessionResetter lo implementa *inventory.Store; al cerrar sesión se descarta la caché.
type sessionResetter interface {
	SetWarehouse(warehouseID string)
}

// AuthHandler maneja login, logout y estado de la sesión local.
type AuthHandler struct {
	uc         *auth.UseCase
	warehouses *usecase.WarehouseUseCase
	store      sessionResetter
	log        zerolog.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, warehouses *usecase.WarehouseUseCase, store sessionResetter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, warehouses: warehouses, store: store, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Valida el formato del código (xxx-xxx), autentica contra el backend y
//
//	autoselecciona la primera bodega si no había una activa.
//
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "emp_code, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/session/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if _, err := h.uc.Login(c.Context(), in.EmpCode, in.Password); err != nil {
		return writeError(c, err)
	}
	if h.warehouses != nil {
		if _, err := h.warehouses.EnsureActive(c.Context()); err != nil {
			h.log.Warn().Err(err).Msg("http: login sin bodega activa")
		}
	}
	status, err := h.uc.Status()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(status)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Borra todo el estado persistido y descarta la caché de inventario.
// @Tags         session
// @Success      204
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/session/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(); err != nil {
		return writeError(c, err)
	}
	if h.store != nil {
		h.store.SetWarehouse("")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Status godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/session [get]
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	status, err := h.uc.Status()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(status)
}
