package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/usecase"
)

// PreferencesHandler tema y estado del menú lateral.
type PreferencesHandler struct {
	uc *usecase.PreferencesUseCase
}

// NewPreferencesHandler construye el handler.
func NewPreferencesHandler(uc *usecase.PreferencesUseCase) *PreferencesHandler {
	return &PreferencesHandler{uc: uc}
}

// Get godoc
// @Summary      Preferencias actuales
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  entity.Preferences
// @Router       /api/preferences [get]
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	prefs, err := h.uc.Get()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(prefs)
}

// Update godoc
// @Summary      Actualizar preferencias
// @Description  Solo se aplican los campos presentes. theme: light | dark.
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreferencesDTO  true  "theme, sidebar_collapsed"
// @Success      200   {object}  entity.Preferences
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/preferences [put]
func (h *PreferencesHandler) Update(c *fiber.Ctx) error {
	var in dto.PreferencesDTO
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	prefs, err := h.uc.Update(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(prefs)
}
