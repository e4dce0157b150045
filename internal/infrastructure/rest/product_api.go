package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// ProductAPI cliente de /productos.
type ProductAPI struct {
	c *Client
}

func NewProductAPI(c *Client) *ProductAPI {
	return &ProductAPI{c: c}
}

// FetchAll trae el catálogo completo.
func (a *ProductAPI) FetchAll(ctx context.Context) ([]*entity.Product, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodGet, "/productos", nil, &raw, false); err != nil {
		return nil, err
	}
	items, err := unwrapList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(items))
	for _, m := range items {
		out = append(out, productFrom(m))
	}
	return out, nil
}

// Create registra un producto nuevo y devuelve la versión del backend
// (que puede incluir el id asignado por el servidor).
func (a *ProductAPI) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodPost, "/productos", p, &raw, false); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return p, nil
	}
	m, err := unwrapObject(raw)
	if err != nil {
		return p, nil
	}
	created := productFrom(m)
	if created.ID == "" {
		created.ID = p.ID
	}
	return created, nil
}
