package reports

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// Vistas exportables a CSV.
const (
	CSVVentas  = "ventas"
	CSVCompras = "compras"
	CSVResumen = "resumen"
)

// ExportCSV serializa una vista del resumen a CSV compatible con Excel:
// BOM UTF-8 al inicio, todos los campos entre comillas (comillas internas
// duplicadas) y saltos de línea '\n'.
func ExportCSV(s *entity.Summary, view string) ([]byte, error) {
	var rows [][]string
	switch view {
	case CSVVentas:
		rows = detailCSV("Cliente", s.DetalleVentas)
	case CSVCompras:
		rows = detailCSV("Proveedor", s.DetalleCompras)
	case CSVResumen:
		rows = summaryCSV(s)
	default:
		return nil, fmt.Errorf("vista de CSV desconocida %q: %w", view, domain.ErrInvalidInput)
	}
	return buildCSV(rows), nil
}

func detailCSV(partyHeader string, detalle []entity.DetailRow) [][]string {
	rows := [][]string{{"Fecha", partyHeader, "Items", "Total"}}
	for _, d := range detalle {
		items := make([]string, 0, len(d.Items))
		for _, it := range d.Items {
			items = append(items, fmt.Sprintf("%s x%d", it.Nombre, it.Cantidad))
		}
		rows = append(rows, []string{
			d.Fecha,
			d.Nombre,
			strings.Join(items, "; "),
			d.Total.StringFixed(2),
		})
	}
	return rows
}

func summaryCSV(s *entity.Summary) [][]string {
	return [][]string{
		{"Indicador", "Valor"},
		{"Rango", s.Rango.Desde + " a " + s.Rango.Hasta},
		{"Ingresos", FormatPEN(s.Ingresos.Total)},
		{"Ventas registradas", strconv.Itoa(s.Ingresos.Cantidad)},
		{"Ticket promedio de venta", FormatPEN(s.Ingresos.TicketPromedio)},
		{"Egresos", FormatPEN(s.Egresos.Total)},
		{"Compras registradas", strconv.Itoa(s.Egresos.Cantidad)},
		{"Ticket promedio de compra", FormatPEN(s.Egresos.TicketPromedio)},
		{"Resultado neto", FormatPEN(s.ResultadoNeto)},
	}
}

// buildCSV arma el archivo. Se citan todos los campos siempre, no solo los que
// lo necesitan, porque así lo esperan las plantillas de Excel del cliente.
func buildCSV(rows [][]string) []byte {
	var b strings.Builder
	b.WriteString("\uFEFF") // BOM para que Excel abra el archivo como UTF-8
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return []byte(b.String())
}
