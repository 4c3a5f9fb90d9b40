package document

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// LabelBundle vocabulario de un tipo de documento: qué texto mostrar para
// número, fechas, total y encabezados de las partes.
type LabelBundle struct {
	Number string
	Date   string
	Due    string
	Term   string
	Total  string
	From   string
	To     string
	Ship   string // vacío cuando el tipo no tiene sección de envío
}

// Catálogo de etiquetas por tipo (vocabulario del producto, en inglés).
var labelCatalogue = map[entity.DocumentType]LabelBundle{
	entity.DocInvoice: {
		Number: "Invoice No", Date: "Issue Date", Due: "Due Date",
		Term: "Payment Terms", Total: "Total Due",
		From: "From", To: "Bill To", Ship: "Ship To",
	},
	entity.DocTaxInvoice: {
		Number: "Tax Invoice No", Date: "Issue Date", Due: "Due Date",
		Term: "Payment Terms", Total: "Total (Inc. Tax)",
		From: "Sold By", To: "Billed To", Ship: "Ship To",
	},
	entity.DocReceipt: {
		Number: "Receipt No", Date: "Receipt Date", Due: "Payment Date",
		Term: "Payment Mode", Total: "Amount Paid",
		From: "Issued By", To: "Received From",
	},
	entity.DocQuotation: {
		Number: "Quote No", Date: "Quote Date", Due: "Valid Until",
		Term: "Valid For", Total: "Estimated Total",
		From: "Proposed By", To: "Prepared For", Ship: "Site Location",
	},
	entity.DocEstimate: {
		Number: "Estimate No", Date: "Date", Due: "Valid Until",
		Term: "Validity (Days)", Total: "Estimate",
		From: "Estimated By", To: "Estimate For", Ship: "Site Location",
	},
	entity.DocCreditNote: {
		Number: "Credit Note No", Date: "Date", Due: "Ref Invoice",
		Term: "Terms", Total: "Credit Amount",
		From: "Issued By", To: "Credited To",
	},
}

// Labels devuelve el paquete de etiquetas del tipo; tipos desconocidos caen
// al vocabulario de factura (fail closed).
func Labels(t entity.DocumentType) LabelBundle {
	if b, ok := labelCatalogue[t]; ok {
		return b
	}
	return labelCatalogue[entity.DocInvoice]
}

// IsQuoteLike indica cotización o estimado (documentos sin obligación de pago).
func IsQuoteLike(t entity.DocumentType) bool {
	return t == entity.DocQuotation || t == entity.DocEstimate
}

func IsReceipt(t entity.DocumentType) bool    { return t == entity.DocReceipt }
func IsCreditNote(t entity.DocumentType) bool { return t == entity.DocCreditNote }

// ShowSecondDate los recibos no muestran segunda fecha ni plazo.
func ShowSecondDate(t entity.DocumentType) bool { return t != entity.DocReceipt }
func ShowTerms(t entity.DocumentType) bool      { return t != entity.DocReceipt }

// DefaultTerms plazo de pago por defecto en días: inmediato para recibos y
// notas de crédito, estándar para el resto.
func DefaultTerms(t entity.DocumentType, standard int) int {
	if IsReceipt(t) || IsCreditNote(t) {
		return 0
	}
	return standard
}

// NumberPrefix prefijo de numeración por tipo.
func NumberPrefix(t entity.DocumentType) string {
	switch t {
	case entity.DocQuotation:
		return "QT-"
	case entity.DocEstimate:
		return "EST-"
	case entity.DocReceipt:
		return "RCPT-"
	case entity.DocCreditNote:
		return "CN-"
	default:
		return "INV-"
	}
}

var titleCaser = cases.Title(language.English)

// DefaultTitle título humanizado del tipo: TAX_INVOICE → "Tax Invoice".
func DefaultTitle(t entity.DocumentType) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(string(t), "_", " ")))
}

// DefaultFooterNote nota de pie por defecto según el tipo.
func DefaultFooterNote(t entity.DocumentType) string {
	if t == entity.DocQuotation {
		return "Valid for 14 days"
	}
	return "Thank you for your business!"
}
