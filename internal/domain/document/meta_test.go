package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

func metaConPlazo(issue string, terms int) *entity.DocumentMeta {
	return &entity.DocumentMeta{
		DocumentType: entity.DocInvoice,
		IssueDate:    issue,
		DueDate:      document.AddDays(issue, terms),
		PaymentTerms: &terms,
	}
}

// Mover la emisión con el plazo como conductor desplaza el vencimiento
// exactamente terms días desde la nueva emisión.
func TestApplyIssueDate_PlazoConductor(t *testing.T) {
	m := metaConPlazo("2026-03-01T00:00:00Z", 30)

	document.ApplyIssueDate(m, "2026-04-01T00:00:00Z")

	require.NotNil(t, m.PaymentTerms)
	assert.Equal(t, 30, *m.PaymentTerms, "el plazo no cambia")
	assert.Equal(t, "2026-05-01T00:00:00Z", m.DueDate, "vencimiento = emisión + 30")
	assert.False(t, m.DueDateManuallyEdited)
}

// Con el vencimiento editado a mano, mover la emisión recalcula el plazo.
func TestApplyIssueDate_VencimientoConductor(t *testing.T) {
	m := metaConPlazo("2026-03-01T00:00:00Z", 30)
	document.ApplyDueDate(m, "2026-03-21T00:00:00Z")
	require.True(t, m.DueDateManuallyEdited)

	document.ApplyIssueDate(m, "2026-03-11T00:00:00Z")

	assert.Equal(t, "2026-03-21T00:00:00Z", m.DueDate, "el vencimiento manual no se toca")
	require.NotNil(t, m.PaymentTerms)
	assert.Equal(t, 10, *m.PaymentTerms, "plazo recalculado desde la nueva emisión")
}

// Sin plazo ni vencimiento manual, la emisión cambia sola.
func TestApplyIssueDate_SinCamposDependientes(t *testing.T) {
	m := &entity.DocumentMeta{IssueDate: "2026-03-01T00:00:00Z", DueDate: "2026-03-08T00:00:00Z"}

	document.ApplyIssueDate(m, "2026-06-01T00:00:00Z")

	assert.Equal(t, "2026-06-01T00:00:00Z", m.IssueDate)
	assert.Equal(t, "2026-03-08T00:00:00Z", m.DueDate, "vencimiento intacto")
	assert.Nil(t, m.PaymentTerms)
}

func TestApplyDueDate_RecalculaPlazoYMarcaFlag(t *testing.T) {
	m := metaConPlazo("2026-03-01T00:00:00Z", 7)

	document.ApplyDueDate(m, "2026-03-31T00:00:00Z")

	assert.True(t, m.DueDateManuallyEdited)
	require.NotNil(t, m.PaymentTerms)
	assert.Equal(t, 30, *m.PaymentTerms)
}

// Un vencimiento anterior a la emisión deja el plazo indefinido, no negativo.
func TestApplyDueDate_PlazoNegativoQuedaIndefinido(t *testing.T) {
	m := metaConPlazo("2026-03-15T00:00:00Z", 7)

	document.ApplyDueDate(m, "2026-03-01T00:00:00Z")

	assert.True(t, m.DueDateManuallyEdited)
	assert.Nil(t, m.PaymentTerms, "plazo negativo se descarta")
	assert.Equal(t, "2026-03-01T00:00:00Z", m.DueDate)
}

func TestApplyDueDate_SinEmisionEsNoOp(t *testing.T) {
	m := &entity.DocumentMeta{}
	document.ApplyDueDate(m, "2026-03-01T00:00:00Z")
	assert.Empty(t, m.DueDate)
	assert.False(t, m.DueDateManuallyEdited)
}

func TestApplyTerms(t *testing.T) {
	t.Run("entero válido recalcula vencimiento y limpia flag", func(t *testing.T) {
		m := metaConPlazo("2026-03-01T00:00:00Z", 7)
		m.DueDateManuallyEdited = true

		document.ApplyTerms(m, "15")

		require.NotNil(t, m.PaymentTerms)
		assert.Equal(t, 15, *m.PaymentTerms)
		assert.Equal(t, "2026-03-16T00:00:00Z", m.DueDate)
		assert.False(t, m.DueDateManuallyEdited, "el plazo vuelve a ser conductor")
	})

	t.Run("vacío limpia plazo y flag", func(t *testing.T) {
		m := metaConPlazo("2026-03-01T00:00:00Z", 7)
		m.DueDateManuallyEdited = true

		document.ApplyTerms(m, "")

		assert.Nil(t, m.PaymentTerms)
		assert.False(t, m.DueDateManuallyEdited)
	})

	t.Run("no entero o negativo se ignora en silencio", func(t *testing.T) {
		m := metaConPlazo("2026-03-01T00:00:00Z", 7)
		before := *m

		document.ApplyTerms(m, "7.5")
		document.ApplyTerms(m, "-3")
		document.ApplyTerms(m, "abc")

		assert.Equal(t, before.DueDate, m.DueDate, "ningún cambio de estado")
		require.NotNil(t, m.PaymentTerms)
		assert.Equal(t, 7, *m.PaymentTerms)
	})
}
