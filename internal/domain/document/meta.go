package document

import (
	"strconv"
	"strings"

	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// Conciliación de fechas de cabecera: máquina de estados sobre
// {IssueDate, DueDate, PaymentTerms, DueDateManuallyEdited} con tres
// transiciones. El flag marca cuál de {vencimiento, plazo} es el campo
// conductor; editar uno recalcula el otro.

// ApplyIssueDate fija la fecha de emisión y recalcula el campo no conductor:
// con vencimiento editado a mano se recalcula el plazo; si no, con plazo
// definido se recalcula el vencimiento. Sin ninguna de las dos condiciones,
// vencimiento y plazo quedan intactos.
func ApplyIssueDate(m *entity.DocumentMeta, iso string) {
	m.IssueDate = iso
	switch {
	case m.DueDateManuallyEdited && m.DueDate != "":
		terms := DiffInDays(iso, m.DueDate)
		m.PaymentTerms = &terms
	case m.PaymentTerms != nil:
		m.DueDate = AddDays(iso, *m.PaymentTerms)
	}
}

// ApplyDueDate fija el vencimiento, marca el flag de edición manual y
// recalcula el plazo; plazos negativos se descartan (quedan indefinidos).
// Sin fecha de emisión es un no-op.
func ApplyDueDate(m *entity.DocumentMeta, iso string) {
	if m.IssueDate == "" {
		return
	}
	m.DueDate = iso
	m.DueDateManuallyEdited = true
	terms := DiffInDays(m.IssueDate, iso)
	if terms < 0 {
		m.PaymentTerms = nil
		return
	}
	m.PaymentTerms = &terms
}

// ApplyTerms procesa el plazo como texto de entrada: vacío limpia plazo y
// flag; texto no entero o negativo se ignora en silencio; un entero válido
// fija el plazo, recalcula el vencimiento (si hay emisión) y limpia el flag,
// reafirmando el plazo como campo conductor.
func ApplyTerms(m *entity.DocumentMeta, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		m.PaymentTerms = nil
		m.DueDateManuallyEdited = false
		return
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return
	}
	m.PaymentTerms = &days
	if m.IssueDate != "" {
		m.DueDate = AddDays(m.IssueDate, days)
	}
	m.DueDateManuallyEdited = false
}
