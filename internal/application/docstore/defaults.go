package docstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// Defaults valores iniciales configurables para documentos nuevos.
type Defaults struct {
	Currency string // ej. "USD"
	Terms    int    // plazo estándar en días para tipos con vencimiento
	Title    string
	Note     string
}

const defaultLogoWidthPx = 120

func defaultIssuer(d Defaults) entity.IssuerProfile {
	return entity.IssuerProfile{
		Kind:           "individual",
		PaymentMethods: []entity.PaymentMethod{},
		Branding:       entity.Branding{LogoWidthPx: defaultLogoWidthPx},
		Preferences: entity.Preferences{
			DefaultCurrency: d.Currency,
			DefaultTitle:    d.Title,
			DefaultTerms:    d.Terms,
			DefaultNote:     d.Note,
		},
	}
}

func defaultClient() entity.ClientProfile {
	return entity.ClientProfile{}
}

// defaultMeta cabecera por defecto para un tipo: emisión hoy (medianoche
// UTC), plazo según el tipo, vencimiento derivado del plazo.
func defaultMeta(t entity.DocumentType, now time.Time, standardTerms int) entity.DocumentMeta {
	issue := document.ToUTCMidnightISO(now)
	terms := document.DefaultTerms(t, standardTerms)
	return entity.DocumentMeta{
		DocumentType:          t,
		Title:                 document.DefaultTitle(t),
		DocumentNumber:        document.NextNumber("", t),
		IssueDate:             issue,
		DueDate:               document.AddDays(issue, terms),
		DueDateManuallyEdited: false,
		PaymentTerms:          &terms,
		FooterNote:            document.DefaultFooterNote(t),
	}
}

func defaultMoney(d Defaults) entity.MoneyConfig {
	return entity.MoneyConfig{
		TaxValue:        decimal.Zero,
		TaxMode:         entity.ModePercentage,
		DiscountValue:   decimal.Zero,
		DiscountMode:    entity.ModeFixed,
		CurrencyCode:    d.Currency,
		RoundingEnabled: true,
	}
}

// defaultItem línea nueva: cantidad 1, tarifa 0.
func defaultItem() entity.LineItem {
	return entity.LineItem{
		ID:       uuid.NewString(),
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.Zero,
		Amount:   decimal.Zero,
	}
}

// defaultState agregado inicial completo (un ítem editable, tipo factura).
func defaultState(d Defaults, now time.Time) entity.DocumentState {
	return entity.DocumentState{
		IssuerMode: "freelancer",
		Issuer:     defaultIssuer(d),
		Client:     defaultClient(),
		Meta:       defaultMeta(entity.DocInvoice, now, d.Terms),
		Money:      defaultMoney(d),
		Items:      []entity.LineItem{defaultItem()},
	}
}
