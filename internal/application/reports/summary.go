// Package reports calcula el resumen del período: KPIs, series diarias, top de
// productos y detalle de movimientos. Si el backend expone /reportes se usa su
// resumen; si la ruta no existe o el backend está caído, se calcula localmente
// sobre los almacenes.
package reports

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/minierp-gateway/internal/application/store"
	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/internal/domain/repository"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

const topN = 10

var fechaISO = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Aggregator arma el resumen del período.
type Aggregator struct {
	api       repository.ReportAPI
	productos *store.ProductStore
	ventas    *store.TransactionStore
	compras   *store.TransactionStore
	log       *logger.Logger
}

func NewAggregator(api repository.ReportAPI, productos *store.ProductStore, ventas, compras *store.TransactionStore, log *logger.Logger) *Aggregator {
	return &Aggregator{api: api, productos: productos, ventas: ventas, compras: compras, log: log}
}

// GetSummary devuelve el resumen del rango [desde, hasta], ambos inclusivos.
func (a *Aggregator) GetSummary(ctx context.Context, desde, hasta string) (*entity.Summary, error) {
	if !fechaISO.MatchString(desde) || !fechaISO.MatchString(hasta) {
		return nil, fmt.Errorf("las fechas deben tener formato YYYY-MM-DD: %w", domain.ErrInvalidInput)
	}
	if desde > hasta {
		return nil, fmt.Errorf("el inicio del rango no puede ser posterior al fin: %w", domain.ErrInvalidInput)
	}

	summary, err := a.api.FetchSummary(ctx, desde, hasta)
	if err == nil {
		return summary, nil
	}
	if !errors.Is(err, domain.ErrRouteNotImplemented) && !errors.Is(err, domain.ErrBackendUnavailable) {
		return nil, err
	}
	a.log.Debug().Err(err).Msg("Backend sin /reportes, calculando resumen local")
	return a.computeLocal(ctx, desde, hasta)
}

func (a *Aggregator) computeLocal(ctx context.Context, desde, hasta string) (*entity.Summary, error) {
	if err := a.productos.Load(ctx, false); err != nil {
		return nil, err
	}
	if err := a.ventas.Load(ctx, false); err != nil {
		return nil, err
	}
	if err := a.compras.Load(ctx, false); err != nil {
		return nil, err
	}

	ventas := filterRange(a.ventas.All(), desde, hasta)
	compras := filterRange(a.compras.All(), desde, hasta)

	ingresos := metricsOf(ventas)
	egresos := metricsOf(compras)

	return &entity.Summary{
		Rango:                 entity.DateRange{Desde: desde, Hasta: hasta},
		Ingresos:              ingresos,
		Egresos:               egresos,
		ResultadoNeto:         ingresos.Total.Sub(egresos.Total).Round(2),
		VentasPorDia:          dailySeries(ventas),
		ComprasPorDia:         dailySeries(compras),
		TopProductosVendidos:  a.topProducts(ventas),
		TopProductosComprados: a.topProducts(compras),
		DetalleVentas:         detailRows(ventas),
		DetalleCompras:        detailRows(compras),
	}, nil
}

// filterRange se queda con las transacciones cuyo día calendario cae dentro del
// rango. Las fechas inválidas (cero) se excluyen del reporte.
func filterRange(txs []*entity.Transaction, desde, hasta string) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Fecha.IsZero() {
			continue
		}
		dia := tx.Fecha.Format("2006-01-02")
		if dia >= desde && dia <= hasta {
			out = append(out, tx)
		}
	}
	return out
}

func metricsOf(txs []*entity.Transaction) entity.Metrics {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Total)
	}
	total = total.Round(2)

	ticket := decimal.Zero
	if len(txs) > 0 {
		ticket = total.Div(decimal.NewFromInt(int64(len(txs)))).Round(2)
	}
	return entity.Metrics{Total: total, Cantidad: len(txs), TicketPromedio: ticket}
}

// dailySeries agrega totales por día calendario, ordenados ascendente por fecha.
func dailySeries(txs []*entity.Transaction) []entity.DailyPoint {
	byDay := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		dia := tx.Fecha.Format("2006-01-02")
		byDay[dia] = byDay[dia].Add(tx.Total)
	}

	out := make([]entity.DailyPoint, 0, len(byDay))
	for dia, total := range byDay {
		out = append(out, entity.DailyPoint{Fecha: dia, Total: total.Round(2)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha < out[j].Fecha })
	return out
}

// topProducts arma el top por cantidad. La identidad del producto es el id de
// catálogo; si una línea no trae id se usa el SKU, y en último caso el nombre.
// Empates conservan el orden de primera aparición.
func (a *Aggregator) topProducts(txs []*entity.Transaction) []entity.TopProduct {
	type acc struct {
		entry entity.TopProduct
		order int
	}
	byKey := make(map[string]*acc)

	for _, tx := range txs {
		for _, it := range tx.Items {
			key := it.ProductoID
			if key == "" {
				key = it.SKU
			}
			if key == "" {
				key = it.Nombre
			}
			if key == "" {
				continue
			}
			e, ok := byKey[key]
			if !ok {
				e = &acc{
					entry: entity.TopProduct{ProductoID: it.ProductoID, Nombre: it.Nombre, SKU: it.SKU},
					order: len(byKey),
				}
				byKey[key] = e
			}
			e.entry.Cantidad += it.Cantidad
			e.entry.Total = e.entry.Total.Add(it.Subtotal)
		}
	}

	list := make([]*acc, 0, len(byKey))
	for _, e := range byKey {
		list = append(list, e)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].entry.Cantidad != list[j].entry.Cantidad {
			return list[i].entry.Cantidad > list[j].entry.Cantidad
		}
		return list[i].order < list[j].order
	})

	out := make([]entity.TopProduct, 0, topN)
	for _, e := range list {
		if len(out) == topN {
			break
		}
		entry := e.entry
		entry.Total = entry.Total.Round(2)
		// Enriquecer el nombre desde el catálogo cuando se conoce el id.
		if entry.ProductoID != "" {
			if p, err := a.productos.GetByID(entry.ProductoID); err == nil {
				entry.Nombre = p.Name
				if entry.SKU == "" {
					entry.SKU = p.SKU
				}
			}
		}
		out = append(out, entry)
	}
	return out
}

func detailRows(txs []*entity.Transaction) []entity.DetailRow {
	out := make([]entity.DetailRow, 0, len(txs))
	for _, tx := range txs {
		row := entity.DetailRow{
			ID:     tx.ID,
			Fecha:  tx.Fecha.Format("2006-01-02"),
			Nombre: tx.Cliente.Nombre,
			Total:  tx.Total.Round(2),
		}
		for _, it := range tx.Items {
			row.Items = append(row.Items, entity.DetailLine{Nombre: it.Nombre, Cantidad: it.Cantidad})
		}
		out = append(out, row)
	}
	return out
}
