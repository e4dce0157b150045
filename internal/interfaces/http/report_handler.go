package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/minierp-gateway/internal/application/reports"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// SummaryPDFGenerator puerto del generador de PDF del resumen.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, s *entity.Summary) ([]byte, error)
}

// ReportHandler maneja el módulo de reportes: resumen JSON y exportes.
type ReportHandler struct {
	agg *reports.Aggregator
	pdf SummaryPDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(agg *reports.Aggregator, pdf SummaryPDFGenerator) *ReportHandler {
	return &ReportHandler{agg: agg, pdf: pdf}
}

// Summary godoc
// @Summary      Resumen del período
// @Tags         reportes
// @Produce      json
// @Param        desde  query  string  true  "Inicio del rango (YYYY-MM-DD)"
// @Param        hasta  query  string  true  "Fin del rango (YYYY-MM-DD)"
// @Success      200  {object}  entity.Summary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/resumen [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	s, err := h.agg.GetSummary(c.UserContext(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

// CSV godoc
// @Summary      Exportar una vista del resumen a CSV
// @Tags         reportes
// @Produce      text/csv
// @Param        desde  query  string  true  "Inicio del rango (YYYY-MM-DD)"
// @Param        hasta  query  string  true  "Fin del rango (YYYY-MM-DD)"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/resumen.csv [get]
func (h *ReportHandler) CSV(vista string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := h.agg.GetSummary(c.UserContext(), c.Query("desde"), c.Query("hasta"))
		if err != nil {
			return respondError(c, err)
		}
		raw, err := reports.ExportCSV(s, vista)
		if err != nil {
			return respondError(c, err)
		}

		nombre := "reporte_" + vista + "_" + s.Rango.Desde + "_" + s.Rango.Hasta + ".csv"
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
		return c.Send(raw)
	}
}

// PDF godoc
// @Summary      Exportar el resumen del período a PDF
// @Tags         reportes
// @Produce      application/pdf
// @Param        desde  query  string  true  "Inicio del rango (YYYY-MM-DD)"
// @Param        hasta  query  string  true  "Fin del rango (YYYY-MM-DD)"
// @Success      200  {string}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/resumen.pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	s, err := h.agg.GetSummary(c.UserContext(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return respondError(c, err)
	}
	raw, err := h.pdf.GenerateSummaryPDF(c.UserContext(), s)
	if err != nil {
		return respondError(c, err)
	}

	nombre := "reporte_" + s.Rango.Desde + "_" + s.Rango.Hasta + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(raw)
}
