package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distingue ventas de compras. El signo del ajuste de inventario depende
// del tipo: una venta descuenta stock, una compra lo suma.
type TransactionKind string

const (
	KindSale     TransactionKind = "venta"
	KindPurchase TransactionKind = "compra"
)

// PartyRef snapshot del tercero referenciado por una transacción.
// ID y Nombre son obligatorios; NumeroDocumento es opcional.
type PartyRef struct {
	ID              string `json:"id"`
	Nombre          string `json:"nombre"`
	NumeroDocumento string `json:"numeroDocumento,omitempty"`
}

// LineItem una línea de producto dentro de una transacción. PrecioUnitario es un
// snapshot al momento de la transacción, no una referencia viva al precio del catálogo.
type LineItem struct {
	ProductoID     string          `json:"productoId"`
	SKU            string          `json:"sku"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// Transaction una venta o compra ya compuesta. Se crea una sola vez y no muta después.
type Transaction struct {
	ID      string          `json:"id"`
	Fecha   time.Time       `json:"fecha"`
	Cliente PartyRef        `json:"cliente"`
	Items   []LineItem      `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Notas   string          `json:"notas"`
}
