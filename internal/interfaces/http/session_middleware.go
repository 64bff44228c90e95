package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// LocalUser clave en Locals del usuario de la sesión.
const LocalUser = "user"

// sessionReader lo implementa *auth.UseCase.
type sessionReader interface {
	CurrentUser() (*entity.User, error)
}

// SessionMiddleware exige una sesión persistida y guarda el usuario en Locals.
// El BFF es local y de un solo usuario: la sesión es la del estado persistido, no un header.
func SessionMiddleware(session sessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := session.CurrentUser()
		if err != nil {
			status, code := errorStatus(err)
			if status == fiber.StatusInternalServerError {
				return writeError(c, err)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    code,
				Message: "no hay sesión iniciada",
			})
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// GetUser obtiene el usuario guardado por SessionMiddleware (nil si no hay).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetRole rol del usuario de la sesión ("" si no hay).
func GetRole(c *fiber.Ctx) entity.Role {
	if u := GetUser(c); u != nil {
		return u.Role
	}
	return ""
}
