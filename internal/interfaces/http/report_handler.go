package http

import (
	"mime"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appreport "github.com/jhoicas/inventario-libros/internal/application/report"
)

// ReportHandler descarga del reporte PDF.
type ReportHandler struct {
	uc  *appreport.UseCase
	log zerolog.Logger
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *appreport.UseCase, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Download godoc
// @Summary      Descargar reporte de inventario
// @Description  PDF con el inventario agrupado por categoría y los totales.
// @Tags         report
// @Produce      application/pdf
// @Success      200
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/report [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	res, err := h.uc.Generate(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachment(res.Filename))
	c.Set("X-Report-Items", strconv.Itoa(res.ItemCount))
	return c.Send(res.PDF)
}

// attachment codifica el nombre según RFC 2231 cuando no es ASCII (filename*=utf-8''...).
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
