package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto. El SKU se normaliza a mayúsculas y el
// precio se redondea a 2 decimales antes de guardar.
type CreateProductRequest struct {
	SKU    string          `json:"sku"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
	Stock  int             `json:"stock"`
}

// AdjustStockRequest ajuste manual de inventario. Delta positivo suma, negativo
// descuenta. Cero no es un ajuste.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}
