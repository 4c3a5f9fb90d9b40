package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

func TestNextNumber(t *testing.T) {
	casos := []struct {
		name string
		last string
		typ  entity.DocumentType
		want string
	}{
		{"incrementa conservando prefijo", "INV-0007", entity.DocInvoice, "INV-0008"},
		{"conserva ancho de relleno", "QT-0099", entity.DocQuotation, "QT-0100"},
		{"sin número previo siembra por tipo", "", entity.DocReceipt, "RCPT-0001"},
		{"siembra estimado", "", entity.DocEstimate, "EST-0001"},
		{"siembra nota de crédito", "", entity.DocCreditNote, "CN-0001"},
		{"sin dígitos finales vuelve a sembrar", "FACTURA", entity.DocInvoice, "INV-0001"},
		{"crece más allá del relleno", "INV-9999", entity.DocInvoice, "INV-10000"},
		{"prefijo arbitrario se respeta", "2026/077", entity.DocInvoice, "2026/078"},
	}

	for _, c := range casos {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, document.NextNumber(c.last, c.typ))
		})
	}
}
