package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/application/store"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	store *store.ProductStore
}

// NewProductHandler construye el handler.
func NewProductHandler(s *store.ProductStore) *ProductHandler {
	return &ProductHandler{store: s}
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Param        refresh  query  bool  false  "Forzar recarga desde el backend"
// @Success      200  {array}   entity.Product
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if err := h.store.Load(c.UserContext(), c.QueryBool("refresh")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.store.All())
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	if err := h.store.Load(c.UserContext(), false); err != nil {
		return respondError(c, err)
	}
	p, err := h.store.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	if err := h.store.Load(c.UserContext(), false); err != nil {
		return respondError(c, err)
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_BODY", "cuerpo inválido"))
	}
	p, err := h.store.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// AdjustStock godoc
// @Summary      Ajustar stock de un producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Delta del ajuste"
// @Success      200   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/stock [post]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	if err := h.store.Load(c.UserContext(), false); err != nil {
		return respondError(c, err)
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_BODY", "cuerpo inválido"))
	}
	p, err := h.store.AdjustStock(c.Params("id"), in.Delta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}
