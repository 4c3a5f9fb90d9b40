package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador-api/internal/application/docstore"
	"github.com/jhoicas/facturador-api/internal/application/dto"
	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// DocumentHandler maneja las peticiones HTTP sobre el documento en edición.
type DocumentHandler struct {
	store *docstore.Store
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(store *docstore.Store) *DocumentHandler {
	return &DocumentHandler{store: store}
}

// documentResponse arma el snapshot completo que devuelve cada mutación: el
// cliente siempre recibe el estado resultante con totales y etiquetas.
func (h *DocumentHandler) documentResponse() dto.DocumentResponse {
	snap := h.store.Snapshot()
	return dto.DocumentResponse{
		Document:           snap,
		LastDocumentNumber: h.store.LastNumber(),
		Totals: dto.TotalsResponse{
			Totals:    h.store.Totals(),
			Formatted: h.store.FormattedTotals(),
		},
		Labels: dto.BuildLabels(snap.Meta.DocumentType),
	}
}

// Get devuelve el documento completo con totales y etiquetas.
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.documentResponse())
}

// GetTotals devuelve solo los totales derivados.
func (h *DocumentHandler) GetTotals(c *fiber.Ctx) error {
	return c.JSON(dto.TotalsResponse{
		Totals:    h.store.Totals(),
		Formatted: h.store.FormattedTotals(),
	})
}

// Validate corre las validaciones de perfil; los errores son consultivos,
// nunca bloquean mutaciones ni exportaciones.
func (h *DocumentHandler) Validate(c *fiber.Ctx) error {
	errs := h.store.Validate()
	return c.JSON(dto.ValidationResponse{Valid: len(errs) == 0, Errors: errs})
}

// UpdateMeta aplica un merge parcial de cabecera; fechas y plazo pasan por
// la conciliación de fechas.
func (h *DocumentHandler) UpdateMeta(c *fiber.Ctx) error {
	var in dto.MetaPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.UpdateMeta(in)
	return c.JSON(h.documentResponse())
}

// UpdateMoney aplica impuesto, descuento, moneda y redondeo.
func (h *DocumentHandler) UpdateMoney(c *fiber.Ctx) error {
	var in dto.MoneyPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.UpdateMoney(in)
	return c.JSON(h.documentResponse())
}

// UpdateClient merge parcial del perfil del cliente.
func (h *DocumentHandler) UpdateClient(c *fiber.Ctx) error {
	var in dto.ClientPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.UpdateClient(in)
	return c.JSON(h.documentResponse())
}

// UpdateClientAddress merge de la dirección de facturación; si el envío
// sigue la facturación, la edición se refleja en ambos.
func (h *DocumentHandler) UpdateClientAddress(c *fiber.Ctx) error {
	var in dto.AddressPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.UpdateClientAddress(in)
	return c.JSON(h.documentResponse())
}

// UpdateClientShipping merge del destinatario de envío.
func (h *DocumentHandler) UpdateClientShipping(c *fiber.Ctx) error {
	var in dto.ShippingPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.UpdateClientShipping(in)
	return c.JSON(h.documentResponse())
}

// ToggleShipTo alterna la dirección de envío separada; al activarla por
// primera vez siembra el envío desde la facturación.
func (h *DocumentHandler) ToggleShipTo(c *fiber.Ctx) error {
	h.store.ToggleShipToDifferentAddress()
	return c.JSON(h.documentResponse())
}

// UpdateIssuerContact merge de los datos de contacto del emisor.
func (h *DocumentHandler) UpdateIssuerContact(c *fiber.Ctx) error {
	var in dto.ContactPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.UpdateIssuerContact(in)
	return c.JSON(h.documentResponse())
}

// UpdateIssuerAddress merge de la dirección del emisor.
func (h *DocumentHandler) UpdateIssuerAddress(c *fiber.Ctx) error {
	var in dto.AddressPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.UpdateIssuerAddress(in)
	return c.JSON(h.documentResponse())
}

// UpdateIssuerBusiness merge de los datos legales del emisor.
func (h *DocumentHandler) UpdateIssuerBusiness(c *fiber.Ctx) error {
	var in dto.BusinessPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.UpdateIssuerBusiness(in)
	return c.JSON(h.documentResponse())
}

// UpdateIssuerBranding flags de logo/firma y ancho del logo.
func (h *DocumentHandler) UpdateIssuerBranding(c *fiber.Ctx) error {
	var in dto.BrandingPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.UpdateIssuerBranding(in)
	return c.JSON(h.documentResponse())
}

// SetLogo reemplaza el logo embebido; body nulo lo elimina.
func (h *DocumentHandler) SetLogo(c *fiber.Ctx) error {
	var in *entity.BrandAsset
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	h.store.SetLogo(in)
	return c.JSON(h.documentResponse())
}

// SetSignature reemplaza la firma (dibujada, subida o tipeada); body nulo
// la elimina.
func (h *DocumentHandler) SetSignature(c *fiber.Ctx) error {
	var in *entity.SignatureAsset
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	h.store.SetSignature(in)
	return c.JSON(h.documentResponse())
}

// AddPaymentMethod agrega un método de pago del emisor.
func (h *DocumentHandler) AddPaymentMethod(c *fiber.Ctx) error {
	var in entity.PaymentMethod
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type es requerido"})
	}
	h.store.AddPaymentMethod(in)
	return c.Status(fiber.StatusCreated).JSON(h.documentResponse())
}

// RemovePaymentMethod elimina el método de pago por índice.
func (h *DocumentHandler) RemovePaymentMethod(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "índice inválido"})
	}
	if err := h.store.RemovePaymentMethod(index); err != nil {
		return notFound(c, "método de pago no encontrado")
	}
	return c.JSON(h.documentResponse())
}

// SetDescription fija la descripción libre del documento.
func (h *DocumentHandler) SetDescription(c *fiber.Ctx) error {
	var in dto.SetDescriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.SetDescription(in.Description)
	return c.JSON(h.documentResponse())
}

// SetIssuerKind cambia el flujo del emisor (freelancer|business).
func (h *DocumentHandler) SetIssuerKind(c *fiber.Ctx) error {
	var in dto.SetIssuerKindRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.SetIssuerKind(in.Kind)
	return c.JSON(h.documentResponse())
}

// SetType cambia el tipo de documento: reinicia cabecera y número al
// vocabulario del nuevo tipo, preservando fecha de emisión, cliente y líneas.
func (h *DocumentHandler) SetType(c *fiber.Ctx) error {
	var in dto.SetTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.store.SetDocumentType(entity.DocumentType(in.Type)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TYPE", Message: "tipo de documento desconocido"})
	}
	return c.JSON(h.documentResponse())
}

// NewNumber emite el siguiente número de la secuencia.
func (h *DocumentHandler) NewNumber(c *fiber.Ctx) error {
	h.store.GenerateNewNumber()
	return c.JSON(h.documentResponse())
}

// AddItem agrega una línea vacía (cantidad 1, tarifa 0).
func (h *DocumentHandler) AddItem(c *fiber.Ctx) error {
	h.store.AddItem()
	return c.Status(fiber.StatusCreated).JSON(h.documentResponse())
}

// UpdateItem merge parcial de una línea; el importe se recalcula siempre.
func (h *DocumentHandler) UpdateItem(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ItemPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.store.UpdateItem(id, in); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return notFound(c, "línea no encontrada")
		}
		return internalError(c, err)
	}
	return c.JSON(h.documentResponse())
}

// RemoveItem elimina una línea; un documento sin líneas es válido.
func (h *DocumentHandler) RemoveItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.store.RemoveItem(id); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return notFound(c, "línea no encontrada")
		}
		return internalError(c, err)
	}
	return c.JSON(h.documentResponse())
}

// Reset restaura el documento por defecto preservando emisor, flujo y tipo,
// y emite un número nuevo.
func (h *DocumentHandler) Reset(c *fiber.Ctx) error {
	h.store.Reset()
	return c.JSON(h.documentResponse())
}

// Clear borra todo, emisor incluido.
func (h *DocumentHandler) Clear(c *fiber.Ctx) error {
	h.store.Clear()
	return c.JSON(h.documentResponse())
}

// ── Respuestas de error compartidas ──────────────────────────────────────────

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
