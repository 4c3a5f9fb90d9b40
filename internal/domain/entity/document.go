package entity

import "github.com/shopspring/decimal"

// Tipos de documento soportados.
type DocumentType string

const (
	DocInvoice    DocumentType = "INVOICE"
	DocTaxInvoice DocumentType = "TAX_INVOICE"
	DocQuotation  DocumentType = "QUOTATION"
	DocEstimate   DocumentType = "ESTIMATE"
	DocReceipt    DocumentType = "RECEIPT"
	DocCreditNote DocumentType = "CREDIT_NOTE"
)

// Modos de cálculo para impuesto y descuento.
const (
	ModePercentage = "percentage"
	ModeFixed      = "fixed"
)

// LineItem es una línea del documento. Amount se recalcula siempre como
// Quantity × Rate; no se aceptan ediciones manuales de Amount.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// MoneyConfig agrupa impuesto, descuento, moneda y política de redondeo.
// Los valores negativos no se rechazan a nivel de modelo; el único tope
// aplicado es descuento ≤ subtotal (ver el motor de totales).
type MoneyConfig struct {
	TaxValue        decimal.Decimal `json:"tax_value"`
	TaxMode         string          `json:"tax_mode"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	DiscountMode    string          `json:"discount_mode"`
	CurrencyCode    string          `json:"currency_code"`
	RoundingEnabled bool            `json:"rounding_enabled"`
}

// DocumentMeta datos de cabecera: tipo, título, número y fechas.
// Exactamente uno de {DueDate, PaymentTerms} es el campo "conductor";
// DueDateManuallyEdited indica cuál.
type DocumentMeta struct {
	DocumentType          DocumentType `json:"document_type"`
	Title                 string       `json:"title"`
	DocumentNumber        string       `json:"document_number"`
	PONumber              string       `json:"po_number,omitempty"`
	PaymentMethod         string       `json:"payment_method,omitempty"`
	IssueDate             string       `json:"issue_date"`
	DueDate               string       `json:"due_date"`
	DueDateManuallyEdited bool         `json:"due_date_manually_edited"`
	PaymentTerms          *int         `json:"payment_terms,omitempty"`
	FooterNote            string       `json:"footer_note,omitempty"`
}

// DocumentState es el agregado raíz: una instancia por sesión, persistida
// completa bajo una clave fija de almacenamiento local.
type DocumentState struct {
	// IssuerMode preferencia de flujo (freelancer|business); sobrevive al reset.
	IssuerMode             string        `json:"issuer_mode"`
	Issuer                 IssuerProfile `json:"issuer"`
	Client                 ClientProfile `json:"client"`
	Meta                   DocumentMeta  `json:"meta"`
	Money                  MoneyConfig   `json:"money"`
	Items                  []LineItem    `json:"items"`
	ShipToDifferentAddress bool          `json:"ship_to_different_address"`
	Description            string        `json:"description,omitempty"`
}

// Clone devuelve una copia profunda del agregado; los snapshots que salen
// del store nunca comparten memoria con el estado interno.
func (s DocumentState) Clone() DocumentState {
	out := s
	out.Issuer = s.Issuer.Clone()
	out.Client = s.Client.Clone()
	if s.Meta.PaymentTerms != nil {
		terms := *s.Meta.PaymentTerms
		out.Meta.PaymentTerms = &terms
	}
	out.Items = make([]LineItem, len(s.Items))
	copy(out.Items, s.Items)
	return out
}
