// Package rest implementa los clientes HTTP contra el backend del mini ERP.
// Todos los clientes comparten un Client base que adjunta el Bearer token de la
// sesión guardada y traduce los status del backend a errores de dominio.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cast"

	"github.com/jhoicas/minierp-gateway/internal/domain"
	"github.com/jhoicas/minierp-gateway/internal/domain/repository"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

// Client cliente base del backend REST.
type Client struct {
	base    string
	http    *http.Client
	session repository.SessionStore
	log     *logger.Logger
}

// NewClient crea el cliente base. baseURL sin slash final.
func NewClient(baseURL string, timeout time.Duration, session repository.SessionStore, log *logger.Logger) *Client {
	return &Client{
		base:    baseURL,
		http:    &http.Client{Timeout: timeout},
		session: session,
		log:     log,
	}
}

// do ejecuta una petición JSON y decodifica la respuesta en out (si no es nil).
//
// Traducción de status:
//   - 401 limpia la sesión guardada y devuelve ErrSessionExpired
//   - 404 en ruta de colección significa que el backend aún no implementa la ruta
//     (ErrRouteNotImplemented); en ruta de ítem es un recurso inexistente (ErrNotFound)
//   - cualquier otro no-2xx se devuelve como *domain.APIError con el mensaje del cuerpo
//   - un fallo de transporte se envuelve en ErrBackendUnavailable
func (c *Client) do(ctx context.Context, method, path string, body, out any, itemRoute bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar cuerpo de %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("construir petición %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess, err := c.session.Get(); err == nil && sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("leer respuesta de %s %s: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if err := c.session.Clear(); err != nil {
			c.log.Warn().Err(err).Msg("No se pudo limpiar la sesión tras un 401")
		}
		return domain.ErrSessionExpired
	case resp.StatusCode == http.StatusNotFound && !itemRoute:
		return domain.ErrRouteNotImplemented
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		return domain.NewAPIError(resp.StatusCode, errorMessage(raw))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decodificar respuesta de %s %s: %w", method, path, err)
		}
	}
	return nil
}

// errorMessage extrae el mensaje de error del cuerpo de una respuesta no-2xx.
// El backend no es consistente en el nombre del campo.
func errorMessage(raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, key := range []string{"mensaje", "message", "error", "detalle"} {
		if v, ok := body[key]; ok {
			if s := cast.ToString(v); s != "" {
				return s
			}
		}
	}
	return ""
}
