package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP. Cualquier otro
// error se trata como fallo de infraestructura (500).
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyPatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "EMPTY_PATCH", Message: "debe enviarse al menos un campo para actualizar",
		})
	case errors.Is(err, domain.ErrSelfParent):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "SELF_PARENT", Message: "la categoría no puede ser su propio padre",
		})
	case errors.Is(err, domain.ErrNotFound):
		// Cubre NotFoundError y ReferenceMismatchError.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: "recurso duplicado",
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "CONFLICT", Message: "la entidad está referenciada por otras",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
