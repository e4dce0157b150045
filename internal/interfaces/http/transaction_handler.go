package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/application/store"
	"github.com/jhoicas/minierp-gateway/internal/application/trading"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// TransactionHandler maneja ventas y compras. Una instancia por tipo.
type TransactionHandler struct {
	kind     entity.TransactionKind
	store    *store.TransactionStore
	composer *trading.Composer
}

// NewVentaHandler handler de /ventas.
func NewVentaHandler(s *store.TransactionStore, composer *trading.Composer) *TransactionHandler {
	return &TransactionHandler{kind: entity.KindSale, store: s, composer: composer}
}

// NewCompraHandler handler de /compras.
func NewCompraHandler(s *store.TransactionStore, composer *trading.Composer) *TransactionHandler {
	return &TransactionHandler{kind: entity.KindPurchase, store: s, composer: composer}
}

// List godoc
// @Summary      Listar ventas o compras
// @Tags         transacciones
// @Produce      json
// @Param        refresh  query  bool  false  "Forzar recarga desde el backend"
// @Success      200  {array}   entity.Transaction
// @Router       /api/ventas [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	if err := h.store.Load(c.UserContext(), c.QueryBool("refresh")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.store.All())
}

// Create godoc
// @Summary      Registrar una venta o compra
// @Tags         transacciones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "Formulario de la transacción"
// @Success      201   {object}  entity.Transaction
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_BODY", "cuerpo inválido"))
	}
	tx, err := h.composer.Create(c.UserContext(), h.kind, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}
