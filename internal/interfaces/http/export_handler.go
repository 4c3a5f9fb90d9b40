package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador-api/internal/application/dto"
	"github.com/jhoicas/facturador-api/internal/application/export"
	"github.com/jhoicas/facturador-api/internal/domain"
)

// ExportHandler maneja las descargas del documento en todos los formatos.
type ExportHandler struct {
	svc *export.Service
}

// NewExportHandler construye el handler.
func NewExportHandler(svc *export.Service) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// deliver traduce el resultado/error de una exportación a la respuesta HTTP;
// una exportación en curso responde 409.
func deliver(c *fiber.Ctx, out *export.Result, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrExportInProgress) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EXPORT_IN_PROGRESS", Message: "ya hay una exportación en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+out.Filename+`"`)
	return c.Send(out.Data)
}

// JSON descarga el estado completo serializado.
func (h *ExportHandler) JSON(c *fiber.Ctx) error {
	out, err := h.svc.JSON()
	return deliver(c, out, err)
}

// CSV descarga las líneas del documento.
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	out, err := h.svc.CSV()
	return deliver(c, out, err)
}

// XML descarga el árbol del documento.
func (h *ExportHandler) XML(c *fiber.Ctx) error {
	out, err := h.svc.XML()
	return deliver(c, out, err)
}

// PDF descarga la representación imprimible.
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	out, err := h.svc.PDF()
	return deliver(c, out, err)
}

// HTML descarga el render del tema pedido (?theme=, por defecto modern).
func (h *ExportHandler) HTML(c *fiber.Ctx) error {
	out, err := h.svc.HTML(c.Query("theme"))
	return deliver(c, out, err)
}

// Status indica si hay una exportación en curso.
func (h *ExportHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"exporting": h.svc.Exporting()})
}
