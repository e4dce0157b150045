package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// TransactionAPI cliente de /ventas o /compras según la ruta configurada.
// Las dos rutas comparten forma, así que el cliente es el mismo.
type TransactionAPI struct {
	c    *Client
	path string
}

// NewVentaAPI cliente de /ventas.
func NewVentaAPI(c *Client) *TransactionAPI {
	return &TransactionAPI{c: c, path: "/ventas"}
}

// NewCompraAPI cliente de /compras. Esta ruta puede no existir todavía en el
// backend; en ese caso do devuelve ErrRouteNotImplemented y el caller decide
// si cae al snapshot local.
func NewCompraAPI(c *Client) *TransactionAPI {
	return &TransactionAPI{c: c, path: "/compras"}
}

// FetchAll lista las transacciones del endpoint.
func (a *TransactionAPI) FetchAll(ctx context.Context) ([]*entity.Transaction, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodGet, a.path, nil, &raw, false); err != nil {
		return nil, err
	}
	items, err := unwrapList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Transaction, 0, len(items))
	for _, m := range items {
		out = append(out, transactionFrom(m))
	}
	return out, nil
}

// Create registra una transacción ya compuesta.
func (a *TransactionAPI) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodPost, a.path, tx, &raw, false); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return tx, nil
	}
	m, err := unwrapObject(raw)
	if err != nil {
		return tx, nil
	}
	created := transactionFrom(m)
	if created.ID == "" {
		return tx, nil
	}
	return created, nil
}
