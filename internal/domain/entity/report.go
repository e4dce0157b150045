package entity

import "github.com/shopspring/decimal"

// DateRange rango de fechas ISO YYYY-MM-DD, inclusivo en ambos extremos.
type DateRange struct {
	Desde string `json:"desde"`
	Hasta string `json:"hasta"`
}

// Metrics KPIs de una de las dos listas (ingresos = ventas, egresos = compras).
type Metrics struct {
	Total          decimal.Decimal `json:"total"`
	Cantidad       int             `json:"cantidad"`
	TicketPromedio decimal.Decimal `json:"ticketPromedio"`
}

// DailyPoint total agregado de un día calendario (fecha ISO).
type DailyPoint struct {
	Fecha string          `json:"fecha"`
	Total decimal.Decimal `json:"total"`
}

// TopProduct entrada del ranking top-N por cantidad.
type TopProduct struct {
	ProductoID string          `json:"productoId"`
	Nombre     string          `json:"nombre"`
	SKU        string          `json:"sku,omitempty"`
	Cantidad   int             `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
}

// DetailLine línea resumida dentro de una fila de detalle.
type DetailLine struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}

// DetailRow fila de detalle de ventas o compras dentro del resumen.
type DetailRow struct {
	ID     string          `json:"id"`
	Fecha  string          `json:"fecha"`
	Nombre string          `json:"nombre"`
	Total  decimal.Decimal `json:"total"`
	Items  []DetailLine    `json:"items"`
}

// Summary resumen del período: KPIs, series diarias, rankings y detalles.
type Summary struct {
	Rango                 DateRange       `json:"rango"`
	Ingresos              Metrics         `json:"ingresos"`
	Egresos               Metrics         `json:"egresos"`
	ResultadoNeto         decimal.Decimal `json:"resultadoNeto"`
	VentasPorDia          []DailyPoint    `json:"ventasPorDia"`
	ComprasPorDia         []DailyPoint    `json:"comprasPorDia"`
	TopProductosVendidos  []TopProduct    `json:"topProductosVendidos"`
	TopProductosComprados []TopProduct    `json:"topProductosComprados"`
	DetalleVentas         []DetailRow     `json:"detalleVentas"`
	DetalleCompras        []DetailRow     `json:"detalleCompras"`
}
