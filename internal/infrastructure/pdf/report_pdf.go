// Package pdf genera el reporte del período en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango del período                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Ingresos | Ventas | Ticket  /  Egresos | Compras | …  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ventas por día        │  TABLA: Compras por día      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Top productos vendidos / comprados                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/minierp-gateway/internal/application/reports"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReportPDFGenerator genera el resumen del período usando Maroto v2.
type ReportPDFGenerator struct{}

// NewReportPDFGenerator construye el generador.
func NewReportPDFGenerator() *ReportPDFGenerator { return &ReportPDFGenerator{} }

// GenerateSummaryPDF genera el PDF del resumen y devuelve sus bytes.
func (g *ReportPDFGenerator) GenerateSummaryPDF(_ context.Context, s *entity.Summary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte del período", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(kpiRow("INGRESOS", s.Ingresos, "Ventas"))
	m.AddRows(kpiRow("EGRESOS", s.Egresos, "Compras"))
	m.AddRows(netoRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(dailyTableHeader())
	for _, r := range dailyTableRows(s.VentasPorDia, s.ComprasPorDia) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(topTableTitle("TOP PRODUCTOS VENDIDOS"))
	for _, r := range topTableRows(s.TopProductosVendidos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(topTableTitle("TOP PRODUCTOS COMPRADOS"))
	for _, r := range topTableRows(s.TopProductosComprados) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(s *entity.Summary) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DEL PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Mini ERP", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(s.Rango.Desde+" a "+s.Rango.Hasta, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 4,
			}),
		),
	)
}

// kpiRow: tres tarjetas con total, cantidad de movimientos y ticket promedio.
func kpiRow(titulo string, m entity.Metrics, movimientos string) core.Row {
	card := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
	}
	return row.New(16).Add(
		card(titulo, reports.FormatPEN(m.Total)),
		card(movimientos+" registradas", strconv.Itoa(m.Cantidad)),
		card("Ticket promedio", reports.FormatPEN(m.TicketPromedio)),
	)
}

func netoRow(s *entity.Summary) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RESULTADO NETO", props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(reports.FormatPEN(s.ResultadoNeto), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 5,
			}),
		),
	)
}

func dailyTableHeader() core.Row {
	h := func(label string, a align.Type) core.Col {
		return col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Día (ventas)", align.Left),
		h("Total", align.Right),
		h("Día (compras)", align.Left),
		h("Total", align.Right),
	)
}

// dailyTableRows pone las dos series lado a lado, fila por fila.
func dailyTableRows(ventas, compras []entity.DailyPoint) []core.Row {
	n := len(ventas)
	if len(compras) > n {
		n = len(compras)
	}
	cell := func(s string, a align.Type) core.Col {
		return col.New(3).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1}))
	}

	out := make([]core.Row, 0, n)
	for i := 0; i < n; i++ {
		var vd, vt, cd, ct string
		if i < len(ventas) {
			vd, vt = ventas[i].Fecha, reports.FormatPEN(ventas[i].Total)
		}
		if i < len(compras) {
			cd, ct = compras[i].Fecha, reports.FormatPEN(compras[i].Total)
		}
		out = append(out, row.New(6).Add(
			cell(vd, align.Left), cell(vt, align.Right),
			cell(cd, align.Left), cell(ct, align.Right),
		))
	}
	return out
}

func topTableTitle(titulo string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(titulo, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func topTableRows(top []entity.TopProduct) []core.Row {
	header := row.New(7).Add(
		col.New(1).Add(text.New("#", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New("Producto", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(2).Add(text.New("Cantidad", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New("Total", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
	)

	out := []core.Row{header}
	for i, p := range top {
		nombre := p.Nombre
		if p.SKU != "" {
			nombre = fmt.Sprintf("%s (%s)", p.Nombre, p.SKU)
		}
		out = append(out, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(nombre, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(p.Cantidad), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(reports.FormatPEN(p.Total), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return out
}
