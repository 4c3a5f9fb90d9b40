package document

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// CoerceDecimal convierte texto numérico a decimal. Entrada malformada se
// coacciona a cero en lugar de fallar: política de lenidad deliberada del
// producto, no un error de validación.
func CoerceDecimal(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(raw); err == nil {
		return d
	}
	return decimal.NewFromFloat(cast.ToFloat64(raw))
}
