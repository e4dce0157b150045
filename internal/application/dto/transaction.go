package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// TransactionItemRequest línea del formulario de venta o compra.
// PrecioUnitario es opcional: si viene (y no es negativo) pisa el precio de
// catálogo; si no, se usa el del producto.
type TransactionItemRequest struct {
	ProductoID     string           `json:"productoId"`
	Cantidad       int              `json:"cantidad"`
	PrecioUnitario *decimal.Decimal `json:"precioUnitario,omitempty"`
}

// TransactionRequest formulario de venta o compra.
type TransactionRequest struct {
	Cliente entity.PartyRef          `json:"cliente"`
	Items   []TransactionItemRequest `json:"items"`
	Notas   string                   `json:"notas"`
}
