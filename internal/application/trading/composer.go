// Package trading compone ventas y compras: valida el formulario, agrupa las
// líneas, resuelve precios de catálogo, ajusta inventario y persiste la
// transacción. Si algo falla después de tocar el stock, los ajustes aplicados
// se deshacen en el mismo orden en que se aplicaron.
package trading

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/application/store"
	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

// Composer arma transacciones sobre los almacenes de productos, ventas y compras.
type Composer struct {
	productos *store.ProductStore
	ventas    *store.TransactionStore
	compras   *store.TransactionStore
	log       *logger.Logger
}

func NewComposer(productos *store.ProductStore, ventas, compras *store.TransactionStore, log *logger.Logger) *Composer {
	return &Composer{productos: productos, ventas: ventas, compras: compras, log: log}
}

// groupedLine línea ya agrupada por producto.
type groupedLine struct {
	productoID string
	cantidad   int
	override   *decimal.Decimal
}

// groupItems agrupa líneas repetidas del mismo producto sumando cantidades.
// Si varias líneas traen precio, gana el último no negativo.
func groupItems(items []dto.TransactionItemRequest) ([]*groupedLine, error) {
	byID := make(map[string]*groupedLine)
	var order []*groupedLine

	for _, it := range items {
		id := strings.TrimSpace(it.ProductoID)
		if id == "" {
			return nil, fmt.Errorf("línea sin producto: %w", domain.ErrInvalidInput)
		}
		if it.Cantidad <= 0 {
			return nil, fmt.Errorf("la cantidad debe ser un entero positivo: %w", domain.ErrInvalidInput)
		}
		g, ok := byID[id]
		if !ok {
			g = &groupedLine{productoID: id}
			byID[id] = g
			order = append(order, g)
		}
		g.cantidad += it.Cantidad
		if it.PrecioUnitario != nil && !it.PrecioUnitario.IsNegative() {
			override := *it.PrecioUnitario
			g.override = &override
		}
	}
	return order, nil
}

// Create compone y registra una venta o una compra.
func (c *Composer) Create(ctx context.Context, kind entity.TransactionKind, in dto.TransactionRequest) (*entity.Transaction, error) {
	if strings.TrimSpace(in.Cliente.ID) == "" || strings.TrimSpace(in.Cliente.Nombre) == "" {
		return nil, fmt.Errorf("la transacción necesita un tercero con id y nombre: %w", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("la transacción necesita al menos una línea: %w", domain.ErrInvalidInput)
	}

	if err := c.productos.Load(ctx, false); err != nil {
		return nil, err
	}
	target := c.storeFor(kind)
	if target == nil {
		return nil, fmt.Errorf("tipo de transacción desconocido %q: %w", kind, domain.ErrInvalidInput)
	}
	if err := target.Load(ctx, false); err != nil {
		return nil, err
	}

	grouped, err := groupItems(in.Items)
	if err != nil {
		return nil, err
	}

	// Resolver catálogo y armar las líneas definitivas antes de tocar el stock.
	lines := make([]entity.LineItem, 0, len(grouped))
	total := decimal.Zero
	for _, g := range grouped {
		p, err := c.productos.GetByID(g.productoID)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", g.productoID, err)
		}
		precio := p.Price
		if g.override != nil {
			precio = *g.override
		}
		subtotal := precio.Mul(decimal.NewFromInt(int64(g.cantidad))).Round(2)
		lines = append(lines, entity.LineItem{
			ProductoID:     p.ID,
			SKU:            p.SKU,
			Nombre:         p.Name,
			Cantidad:       g.cantidad,
			PrecioUnitario: precio,
			Subtotal:       subtotal,
		})
		total = total.Add(subtotal)
	}
	total = total.Round(2)

	// Ajustar inventario línea por línea, registrando lo aplicado para poder
	// deshacerlo si una línea posterior o la persistencia fallan.
	type applied struct {
		productoID string
		delta      int
	}
	var undo []applied

	rollback := func() {
		for _, a := range undo {
			if _, err := c.productos.AdjustStock(a.productoID, -a.delta); err != nil {
				// El deshacer es best effort: se reporta y se sigue con el resto.
				c.log.Error().Err(err).Str("producto", a.productoID).Int("delta", -a.delta).
					Msg("No se pudo revertir un ajuste de inventario")
			}
		}
	}

	for _, line := range lines {
		delta := line.Cantidad
		if kind == entity.KindSale {
			delta = -delta
		}
		if _, err := c.productos.AdjustStock(line.ProductoID, delta); err != nil {
			rollback()
			return nil, err
		}
		undo = append(undo, applied{productoID: line.ProductoID, delta: delta})
	}

	tx := &entity.Transaction{
		ID:    idPrefix(kind) + uuid.NewString(),
		Fecha: time.Now().UTC(),
		Cliente: entity.PartyRef{
			ID:              strings.TrimSpace(in.Cliente.ID),
			Nombre:          strings.TrimSpace(in.Cliente.Nombre),
			NumeroDocumento: strings.TrimSpace(in.Cliente.NumeroDocumento),
		},
		Items: lines,
		Total: total,
		Notas: strings.TrimSpace(in.Notas),
	}

	persisted, err := target.Persist(ctx, tx)
	if err != nil {
		rollback()
		return nil, err
	}

	c.log.Info().Str("tipo", string(kind)).Str("id", persisted.ID).
		Str("total", persisted.Total.String()).Int("lineas", len(persisted.Items)).
		Msg("Transacción registrada")
	return persisted, nil
}

// idPrefix distingue a simple vista el id de una venta del de una compra.
func idPrefix(kind entity.TransactionKind) string {
	if kind == entity.KindPurchase {
		return "cmp-"
	}
	return "vta-"
}

func (c *Composer) storeFor(kind entity.TransactionKind) *store.TransactionStore {
	switch kind {
	case entity.KindSale:
		return c.ventas
	case entity.KindPurchase:
		return c.compras
	}
	return nil
}
