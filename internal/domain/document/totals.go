package document

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// Totals resultado del motor de totales. Los intermedios van siempre
// redondeados a 2 decimales; Total respeta la política de redondeo.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

// Calculate deriva los totales en orden fijo:
//
//	subtotal → descuento (con tope en subtotal) → base gravable → impuesto → total
//
// El descuento jamás produce base gravable negativa; el redondeo final es a
// unidad entera cuando RoundingEnabled, a 2 decimales si no.
func Calculate(items []entity.LineItem, money entity.MoneyConfig) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Quantity.Mul(it.Rate))
	}

	discount := money.DiscountValue
	if money.DiscountMode == entity.ModePercentage {
		discount = subtotal.Mul(money.DiscountValue).Div(oneHundred)
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	tax := money.TaxValue
	if money.TaxMode == entity.ModePercentage {
		tax = taxable.Mul(money.TaxValue).Div(oneHundred)
	}

	total := taxable.Add(tax)
	if money.RoundingEnabled {
		total = total.Round(0)
	} else {
		total = total.Round(2)
	}

	return Totals{
		Subtotal:       subtotal.Round(2),
		DiscountAmount: discount.Round(2),
		TaxableAmount:  taxable.Round(2),
		TaxAmount:      tax.Round(2),
		Total:          total,
	}
}

// FormattedTotals totales listos para mostrar, con formato de moneda local.
type FormattedTotals struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// localeFor INR usa agrupación india (en-IN); el resto formato en-US.
func localeFor(code string) language.Tag {
	if code == "INR" {
		return language.MustParse("en-IN")
	}
	return language.AmericanEnglish
}

// FormatAmount formatea un monto con símbolo y agrupación de dígitos según
// la moneda. Códigos desconocidos degradan a "COD 12.34".
func FormatAmount(v decimal.Decimal, code string) string {
	p := message.NewPrinter(localeFor(code))
	f, _ := v.Float64()
	unit, err := currency.ParseISO(code)
	if err != nil {
		return p.Sprintf("%s %v", code, number.Decimal(f, number.Scale(2)))
	}
	return p.Sprintf("%v%v", currency.NarrowSymbol(unit), number.Decimal(f, number.Scale(2)))
}

// Format aplica FormatAmount a cada figura de los totales.
func Format(t Totals, code string) FormattedTotals {
	return FormattedTotals{
		Subtotal: FormatAmount(t.Subtotal, code),
		Discount: FormatAmount(t.DiscountAmount, code),
		Tax:      FormatAmount(t.TaxAmount, code),
		Total:    FormatAmount(t.Total, code),
	}
}
