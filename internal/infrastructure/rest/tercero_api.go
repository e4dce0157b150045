package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// TerceroAPI cliente de /clientes. El backend publica la ruta como "clientes"
// aunque la entidad cubre clientes y proveedores.
type TerceroAPI struct {
	c *Client
}

func NewTerceroAPI(c *Client) *TerceroAPI {
	return &TerceroAPI{c: c}
}

// FetchAll lista terceros, opcionalmente filtrados por texto libre.
func (a *TerceroAPI) FetchAll(ctx context.Context, search string) ([]*entity.Tercero, error) {
	path := "/clientes"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodGet, path, nil, &raw, false); err != nil {
		return nil, err
	}
	items, err := unwrapList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Tercero, 0, len(items))
	for _, m := range items {
		out = append(out, terceroFrom(m))
	}
	return out, nil
}

// GetByID trae un tercero puntual. Un 404 acá sí significa "no existe".
func (a *TerceroAPI) GetByID(ctx context.Context, id string) (*entity.Tercero, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodGet, "/clientes/"+url.PathEscape(id), nil, &raw, true); err != nil {
		return nil, err
	}
	m, err := unwrapObject(raw)
	if err != nil {
		return nil, err
	}
	return terceroFrom(m), nil
}

// Create registra un tercero nuevo.
func (a *TerceroAPI) Create(ctx context.Context, t *entity.Tercero) (*entity.Tercero, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodPost, "/clientes", t, &raw, false); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return t, nil
	}
	m, err := unwrapObject(raw)
	if err != nil {
		return t, nil
	}
	created := terceroFrom(m)
	if created.ID == "" {
		created.ID = t.ID
	}
	return created, nil
}

// Update reemplaza un tercero existente.
func (a *TerceroAPI) Update(ctx context.Context, id string, t *entity.Tercero) (*entity.Tercero, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodPut, "/clientes/"+url.PathEscape(id), t, &raw, true); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return t, nil
	}
	m, err := unwrapObject(raw)
	if err != nil {
		return t, nil
	}
	return terceroFrom(m), nil
}

// Delete elimina un tercero.
func (a *TerceroAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/clientes/"+url.PathEscape(id), nil, nil, true)
}
