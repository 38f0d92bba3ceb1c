package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// TagHandler maneja las peticiones HTTP para Tag.
type TagHandler struct {
	uc *usecase.TagUseCase
}

// NewTagHandler construye el handler.
func NewTagHandler(uc *usecase.TagUseCase) *TagHandler {
	return &TagHandler{uc: uc}
}

// Create godoc
// @Summary      Crear etiqueta
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTagRequest  true  "Datos de la etiqueta"
// @Success      201   {object}  dto.TagResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tags [post]
func (h *TagHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTagRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar etiquetas
// @Tags         tags
// @Produce      json
// @Success      200  {array}  dto.TagResponse
// @Router       /api/tags [get]
func (h *TagHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener etiqueta por ID
// @Tags         tags
// @Produce      json
// @Param        id   path  string  true  "ID de la etiqueta"
// @Success      200  {object}  dto.TagResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tags/{id} [get]
func (h *TagHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar etiqueta (parcial)
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la etiqueta"
// @Param        body  body  dto.UpdateTagRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.TagResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tags/{id} [patch]
func (h *TagHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTagRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar etiqueta
// @Tags         tags
// @Param        id  path  string  true  "ID de la etiqueta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tags/{id} [delete]
func (h *TagHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
