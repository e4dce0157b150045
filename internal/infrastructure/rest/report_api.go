package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// ReportAPI cliente de /reportes. El backend puede no tener implementado el
// módulo de reportes; en ese caso el agregador local calcula el resumen.
type ReportAPI struct {
	c *Client
}

func NewReportAPI(c *Client) *ReportAPI {
	return &ReportAPI{c: c}
}

// FetchSummary pide el resumen del período al backend.
func (a *ReportAPI) FetchSummary(ctx context.Context, desde, hasta string) (*entity.Summary, error) {
	q := url.Values{}
	q.Set("desde", desde)
	q.Set("hasta", hasta)

	var summary entity.Summary
	if err := a.c.do(ctx, http.MethodGet, "/reportes?"+q.Encode(), nil, &summary, false); err != nil {
		return nil, err
	}
	// El backend no siempre devuelve el rango; se normaliza acá.
	if summary.Rango.Desde == "" {
		summary.Rango = entity.DateRange{Desde: desde, Hasta: hasta}
	}
	return &summary, nil
}
