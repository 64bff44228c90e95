package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService.
type moduleChecker interface {
	HasModule(role entity.Role, moduleName string) (bool, error)
}

// RequireModule devuelve un middleware Fiber que verifica que el rol de la sesión
// tenga acceso al módulo. Debe usarse DESPUÉS de SessionMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay usuario en el contexto.
//   - 500 Internal → módulo desconocido (error de configuración de rutas).
//   - 403 Forbidden → el rol no tiene el módulo.
func RequireModule(moduleName string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "NOT_LOGGED_IN",
				Message: "no hay sesión iniciada",
			})
		}

		ok, err := checker.HasModule(role, moduleName)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "módulo desconocido: " + moduleName,
			})
		}

		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_FORBIDDEN",
				Message: "el rol '" + string(role) + "' no tiene acceso al módulo '" + moduleName + "'",
			})
		}

		return c.Next()
	}
}
