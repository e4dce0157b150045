package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/domain"
)

// respondError traduce los errores de dominio al contrato de error del front.
// Toda respuesta de error de la API pasa por acá.
func respondError(c *fiber.Ctx, err error) error {
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION", err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewErrorResponse("NOT_FOUND", err.Error()))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.NewErrorResponse("DUPLICATE", err.Error()))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.NewErrorResponse("SIN_STOCK", err.Error()))
	case errors.Is(err, domain.ErrSessionExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse("SESSION_EXPIRED", err.Error()))
	case errors.As(err, &apiErr):
		return c.Status(apiErr.Status).JSON(dto.NewErrorResponse("BACKEND", apiErr.Message))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewErrorResponse("INTERNAL", err.Error()))
	}
}
