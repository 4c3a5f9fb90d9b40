package export

import (
	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// Snapshot entrada de solo lectura para renderers y serializadores: el
// agregado, el último número emitido y los totales ya derivados.
type Snapshot struct {
	Document           entity.DocumentState     `json:"document"`
	LastDocumentNumber string                   `json:"last_document_number,omitempty"`
	Totals             document.Totals          `json:"totals"`
	Formatted          document.FormattedTotals `json:"formatted_totals"`
}

// PDFGenerator puerto del generador de PDF (implementado con Maroto en
// infrastructure/pdf).
type PDFGenerator interface {
	GeneratePDF(snap Snapshot) ([]byte, error)
}

// HTMLRenderer puerto del renderer de temas (implementado en
// infrastructure/render).
type HTMLRenderer interface {
	RenderHTML(snap Snapshot, theme string) (string, error)
}
