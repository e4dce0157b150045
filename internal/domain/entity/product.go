package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo.
// Stock siempre es un entero no negativo; Price se redondea a 2 decimales al escribir.
type Product struct {
	ID    string          `json:"id"`
	SKU   string          `json:"sku"`
	Name  string          `json:"nombre"`
	Price decimal.Decimal `json:"precio"`
	Stock int             `json:"stock"`
}
