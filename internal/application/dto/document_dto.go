package dto

import (
	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// Patches de mutación: cada uno aplica un merge superficial sobre su
// sub-objeto y nada más. Los campos numéricos de dinero llegan como texto
// (entrada de formulario); texto malformado se coacciona a cero.

// ContactPatch body para PATCH /api/document/issuer/contact.
type ContactPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// AddressPatch merge parcial de una dirección (emisor, cliente o envío).
type AddressPatch struct {
	Line1      *string `json:"line1,omitempty"`
	Line2      *string `json:"line2,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Country    *string `json:"country,omitempty"`
}

// BusinessPatch body para PATCH /api/document/issuer/business.
type BusinessPatch struct {
	LegalName  *string `json:"legal_name,omitempty"`
	TradeName  *string `json:"trade_name,omitempty"`
	TaxID      *string `json:"tax_id,omitempty"`
	TaxIDLabel *string `json:"tax_id_label,omitempty"`
}

// BrandingPatch flags y ancho de logo; los assets van por setters dedicados.
type BrandingPatch struct {
	LogoEnabled      *bool `json:"logo_enabled,omitempty"`
	SignatureEnabled *bool `json:"signature_enabled,omitempty"`
	LogoWidthPx      *int  `json:"logo_width_px,omitempty"`
}

// ClientPatch body para PATCH /api/document/client.
type ClientPatch struct {
	Name        *string `json:"name,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	TaxID       *string `json:"tax_id,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

// ShippingPatch nombre del destinatario y/o dirección de envío.
type ShippingPatch struct {
	Name    *string       `json:"name,omitempty"`
	Address *AddressPatch `json:"address,omitempty"`
}

// MetaPatch campos simples de cabecera. Las fechas y el plazo tienen
// mutadores propios porque pasan por la conciliación.
type MetaPatch struct {
	Title          *string `json:"title,omitempty"`
	DocumentNumber *string `json:"document_number,omitempty"`
	PONumber       *string `json:"po_number,omitempty"`
	PaymentMethod  *string `json:"payment_method,omitempty"`
	FooterNote     *string `json:"footer_note,omitempty"`
	IssueDate      *string `json:"issue_date,omitempty"`
	DueDate        *string `json:"due_date,omitempty"`
	PaymentTerms   *string `json:"payment_terms,omitempty"`
}

// MoneyPatch body para PATCH /api/document/money.
type MoneyPatch struct {
	TaxValue        *string `json:"tax_value,omitempty"`
	TaxMode         *string `json:"tax_mode,omitempty"`
	DiscountValue   *string `json:"discount_value,omitempty"`
	DiscountMode    *string `json:"discount_mode,omitempty"`
	CurrencyCode    *string `json:"currency_code,omitempty"`
	RoundingEnabled *bool   `json:"rounding_enabled,omitempty"`
}

// ItemPatch body para PATCH /api/document/items/:id. Amount no es editable:
// se recalcula siempre como cantidad × tarifa.
type ItemPatch struct {
	Description *string `json:"description,omitempty"`
	Quantity    *string `json:"quantity,omitempty"`
	Rate        *string `json:"rate,omitempty"`
}

// SetTypeRequest body para POST /api/document/type.
type SetTypeRequest struct {
	Type string `json:"type"`
}

// SetIssuerKindRequest body para POST /api/document/issuer-kind.
type SetIssuerKindRequest struct {
	Kind string `json:"kind"` // freelancer | business
}

// SetDescriptionRequest body para PATCH /api/document/description.
type SetDescriptionRequest struct {
	Description string `json:"description"`
}

// FieldError error de validación de perfil, no fatal.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse respuesta de GET /api/document/validate.
type ValidationResponse struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// TotalsResponse totales crudos + formateados para mostrar.
type TotalsResponse struct {
	Totals    document.Totals          `json:"totals"`
	Formatted document.FormattedTotals `json:"formatted"`
}

// LabelsResponse paquete de etiquetas y flags de visibilidad del tipo actual.
type LabelsResponse struct {
	Number         string `json:"number"`
	Date           string `json:"date"`
	Due            string `json:"due"`
	Term           string `json:"term"`
	Total          string `json:"total"`
	From           string `json:"from"`
	To             string `json:"to"`
	Ship           string `json:"ship,omitempty"`
	IsQuoteLike    bool   `json:"is_quote_like"`
	IsReceipt      bool   `json:"is_receipt"`
	IsCreditNote   bool   `json:"is_credit_note"`
	ShowSecondDate bool   `json:"show_second_date"`
	ShowTerms      bool   `json:"show_terms"`
}

// DocumentResponse snapshot completo para GET /api/document.
type DocumentResponse struct {
	Document           entity.DocumentState `json:"document"`
	LastDocumentNumber string               `json:"last_document_number,omitempty"`
	Totals             TotalsResponse       `json:"totals"`
	Labels             LabelsResponse       `json:"labels"`
}

// BuildLabels arma la respuesta de etiquetas para un tipo.
func BuildLabels(t entity.DocumentType) LabelsResponse {
	b := document.Labels(t)
	return LabelsResponse{
		Number: b.Number, Date: b.Date, Due: b.Due, Term: b.Term,
		Total: b.Total, From: b.From, To: b.To, Ship: b.Ship,
		IsQuoteLike:    document.IsQuoteLike(t),
		IsReceipt:      document.IsReceipt(t),
		IsCreditNote:   document.IsCreditNote(t),
		ShowSecondDate: document.ShowSecondDate(t),
		ShowTerms:      document.ShowTerms(t),
	}
}
