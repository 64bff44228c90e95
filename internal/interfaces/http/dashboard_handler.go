package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bakery-erp/internal/application/dashboard"
	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/usecase"
	"github.com/jhoicas/bakery-erp/internal/domain/access"
)

// DashboardHandler maneja el dashboard y la navegación por rol.
type DashboardHandler struct {
	uc      *dashboard.UseCase
	modules *usecase.ModuleService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.UseCase, modules *usecase.ModuleService) *DashboardHandler {
	return &DashboardHandler{uc: uc, modules: modules}
}

// GetSummary devuelve usuario, bodega activa, módulos y alertas de inventario.
// GET /api/dashboard
//
// Las alertas solo se calculan si el rol tiene el módulo Inventory y hay bodega activa;
// un fallo parcial se informa en alerts.error sin fallar la respuesta.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetNavigation godoc
// @Summary      Navegación del rol
// @Tags         dashboard
// @Produce      json
// @Param        path  query  string  false  "Ruta actual para marcar el ítem activo"
// @Success      200  {object}  dto.NavigationResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/navigation [get]
func (h *DashboardHandler) GetNavigation(c *fiber.Ctx) error {
	role := GetRole(c)
	out := dto.NavigationResponse{
		Modules:  h.modules.Modules(role),
		Items:    h.modules.Navigation(role),
		Settings: access.SettingsItem,
	}
	if path := c.Query("path"); path != "" {
		out.ActiveID = activeItem(path, out.Items, out.Settings)
	}
	return c.JSON(out)
}

func activeItem(path string, items []access.NavigationItem, settings access.NavigationItem) string {
	for _, item := range items {
		if item.IsActive(path) {
			return item.ID
		}
	}
	if settings.IsActive(path) {
		return settings.ID
	}
	return ""
}
