package document_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

func item(qty, rate string) entity.LineItem {
	q, _ := decimal.NewFromString(qty)
	r, _ := decimal.NewFromString(rate)
	return entity.LineItem{Quantity: q, Rate: r, Amount: q.Mul(r)}
}

func money(taxVal, taxMode, discVal, discMode string, rounding bool) entity.MoneyConfig {
	return entity.MoneyConfig{
		TaxValue:        document.CoerceDecimal(taxVal),
		TaxMode:         taxMode,
		DiscountValue:   document.CoerceDecimal(discVal),
		DiscountMode:    discMode,
		CurrencyCode:    "USD",
		RoundingEnabled: rounding,
	}
}

// Escenario de referencia: 2×100 con IVA 10% y sin descuento.
func TestCalculate_ImpuestoPorcentualSinDescuento(t *testing.T) {
	items := []entity.LineItem{item("2", "100")}
	got := document.Calculate(items, money("10", entity.ModePercentage, "0", entity.ModePercentage, false))

	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal: %s", got.Subtotal)
	assert.True(t, got.TaxableAmount.Equal(decimal.NewFromInt(200)))
	assert.True(t, got.TaxAmount.Equal(decimal.NewFromInt(20)))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(220)))
}

func TestCalculate_DescuentoFijo(t *testing.T) {
	items := []entity.LineItem{item("2", "100")}
	got := document.Calculate(items, money("10", entity.ModePercentage, "50", entity.ModeFixed, false))

	assert.True(t, got.DiscountAmount.Equal(decimal.NewFromInt(50)))
	assert.True(t, got.TaxableAmount.Equal(decimal.NewFromInt(150)))
	assert.True(t, got.TaxAmount.Equal(decimal.NewFromInt(15)))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(165)))
}

// El descuento se topa en el subtotal: 150% de 100 descuenta 100, no 150.
func TestCalculate_DescuentoTopadoEnSubtotal(t *testing.T) {
	items := []entity.LineItem{item("1", "100")}
	got := document.Calculate(items, money("18", entity.ModePercentage, "150", entity.ModePercentage, false))

	assert.True(t, got.DiscountAmount.Equal(decimal.NewFromInt(100)), "descuento topado: %s", got.DiscountAmount)
	assert.True(t, got.TaxableAmount.IsZero(), "base gravable nunca negativa")
	assert.True(t, got.TaxAmount.IsZero(), "impuesto porcentual sobre base cero es cero")
	assert.True(t, got.Total.IsZero())
}

func TestCalculate_RedondeoATotalEntero(t *testing.T) {
	items := []entity.LineItem{item("3", "33.33")}

	conRedondeo := document.Calculate(items, money("0", entity.ModePercentage, "0", entity.ModeFixed, true))
	sinRedondeo := document.Calculate(items, money("0", entity.ModePercentage, "0", entity.ModeFixed, false))

	assert.True(t, conRedondeo.Total.Equal(decimal.NewFromInt(100)), "redondeo a unidad: %s", conRedondeo.Total)
	assert.True(t, sinRedondeo.Total.Equal(decimal.RequireFromString("99.99")))
	// Los intermedios se redondean a 2 decimales independientemente del total.
	assert.True(t, conRedondeo.Subtotal.Equal(decimal.RequireFromString("99.99")))
}

func TestCalculate_SubtotalEsSumaExacta(t *testing.T) {
	items := []entity.LineItem{item("1.5", "10"), item("2", "0.25"), item("0", "99")}
	got := document.Calculate(items, money("0", entity.ModePercentage, "0", entity.ModeFixed, false))
	assert.True(t, got.Subtotal.Equal(decimal.RequireFromString("15.5")))
}

// Política abierta documentada: valores negativos fluyen sin clamp salvo el
// tope descuento≤subtotal.
func TestCalculate_ImpuestoFijoNegativoFluye(t *testing.T) {
	items := []entity.LineItem{item("1", "100")}
	got := document.Calculate(items, money("-10", entity.ModeFixed, "0", entity.ModeFixed, false))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(90)))
}

func TestCoerceDecimal_LenidadACero(t *testing.T) {
	casos := []struct {
		raw  string
		want string
	}{
		{"12.50", "12.5"},
		{"", "0"},
		{"abc", "0"},
		{"12abc", "0"},
		{"  7 ", "7"},
	}
	for _, c := range casos {
		got := document.CoerceDecimal(c.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "coerce(%q) = %s", c.raw, got)
	}
}

func TestFormat_MonedaPorLocale(t *testing.T) {
	totals := document.Totals{
		Subtotal: decimal.RequireFromString("1234567.89"),
		Total:    decimal.RequireFromString("1234567.89"),
	}

	usd := document.Format(totals, "USD")
	assert.Equal(t, "$1,234,567.89", usd.Total, "USD usa agrupación en-US")

	inr := document.Format(totals, "INR")
	assert.Equal(t, "₹12,34,567.89", inr.Total, "INR usa agrupación india")
}
