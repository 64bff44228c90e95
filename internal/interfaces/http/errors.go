package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/ports"
	"github.com/jhoicas/bakery-erp/internal/domain"
)

// errorStatus traduce un error de aplicación a status HTTP y código estable.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrNotLoggedIn):
		return fiber.StatusUnauthorized, "NOT_LOGGED_IN"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrNoWarehouse):
		return fiber.StatusConflict, "NO_WAREHOUSE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	}
	var re ports.ResponseError
	if errors.As(err, &re) {
		if !re.HasResponse() {
			return fiber.StatusBadGateway, "NO_RESPONSE"
		}
		return fiber.StatusBadGateway, "UPSTREAM_ERROR"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con dto.ErrorResponse; el mensaje es el texto para el usuario.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: domain.Message(err)})
}

// badRequest error de formato del body o de los parámetros.
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_REQUEST", Message: msg})
}
