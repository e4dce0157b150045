package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/application/store"
)

// TerceroHandler maneja las peticiones HTTP de clientes y proveedores.
type TerceroHandler struct {
	store *store.TerceroStore
}

// NewTerceroHandler construye el handler.
func NewTerceroHandler(s *store.TerceroStore) *TerceroHandler {
	return &TerceroHandler{store: s}
}

// List godoc
// @Summary      Listar terceros
// @Tags         terceros
// @Produce      json
// @Param        search   query  string  false  "Filtro por nombre o documento"
// @Param        refresh  query  bool    false  "Forzar recarga desde el backend"
// @Success      200  {array}   entity.Tercero
// @Router       /api/terceros [get]
func (h *TerceroHandler) List(c *fiber.Ctx) error {
	if err := h.store.Load(c.UserContext(), c.QueryBool("refresh")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.store.All(c.Query("search")))
}

// GetByID godoc
// @Summary      Obtener tercero por ID
// @Tags         terceros
// @Produce      json
// @Param        id   path  string  true  "ID del tercero"
// @Success      200  {object}  entity.Tercero
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/terceros/{id} [get]
func (h *TerceroHandler) GetByID(c *fiber.Ctx) error {
	if err := h.store.Load(c.UserContext(), false); err != nil {
		return respondError(c, err)
	}
	t, err := h.store.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

// Create godoc
// @Summary      Crear tercero
// @Tags         terceros
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TerceroRequest  true  "Datos del tercero"
// @Success      201   {object}  entity.Tercero
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/terceros [post]
func (h *TerceroHandler) Create(c *fiber.Ctx) error {
	if err := h.store.Load(c.UserContext(), false); err != nil {
		return respondError(c, err)
	}
	var in dto.TerceroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_BODY", "cuerpo inválido"))
	}
	t, err := h.store.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// Update godoc
// @Summary      Actualizar tercero
// @Tags         terceros
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tercero"
// @Param        body  body  dto.TerceroRequest  true  "Datos a actualizar"
// @Success      200   {object}  entity.Tercero
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/terceros/{id} [put]
func (h *TerceroHandler) Update(c *fiber.Ctx) error {
	if err := h.store.Load(c.UserContext(), false); err != nil {
		return respondError(c, err)
	}
	var in dto.TerceroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_BODY", "cuerpo inválido"))
	}
	t, err := h.store.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

// Delete godoc
// @Summary      Eliminar tercero
// @Tags         terceros
// @Param        id  path  string  true  "ID del tercero"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/terceros/{id} [delete]
func (h *TerceroHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.Load(c.UserContext(), false); err != nil {
		return respondError(c, err)
	}
	if err := h.store.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
