// Package export implementa la superficie de exportación del documento:
// JSON, CSV, XML, PDF y HTML. Las exportaciones son single-flight: un flag
// en curso rechaza solicitudes concurrentes para evitar capturas dobles;
// no hay cancelación y un fallo termina solo ese intento.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"regexp"
	"sync/atomic"

	"github.com/jhoicas/facturador-api/internal/application/docstore"
	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/pkg/logger"
)

// Result artefacto exportado: bytes, nombre sugerido y content type.
type Result struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Service orquesta las exportaciones leyendo snapshots del store.
type Service struct {
	store *docstore.Store
	pdf   PDFGenerator
	html  HTMLRenderer
	log   *logger.Logger

	exporting atomic.Bool
}

// NewService construye el servicio; pdf y html pueden ser nil en tests que
// solo ejercitan los formatos planos.
func NewService(store *docstore.Store, pdf PDFGenerator, html HTMLRenderer, log *logger.Logger) *Service {
	return &Service{store: store, pdf: pdf, html: html, log: log}
}

// Exporting indica si hay una exportación en curso.
func (s *Service) Exporting() bool { return s.exporting.Load() }

// begin toma el flag single-flight; devuelve error si ya hay una en curso.
func (s *Service) begin() error {
	if !s.exporting.CompareAndSwap(false, true) {
		return domain.ErrExportInProgress
	}
	return nil
}

// end libera el flag en éxito y en fallo por igual.
func (s *Service) end() { s.exporting.Store(false) }

// snapshot arma la entrada de solo lectura con totales ya derivados.
func (s *Service) snapshot() Snapshot {
	st := s.store.Snapshot()
	totals := document.Calculate(st.Items, st.Money)
	return Snapshot{
		Document:           st,
		LastDocumentNumber: s.store.LastNumber(),
		Totals:             totals,
		Formatted:          document.Format(totals, st.Money.CurrencyCode),
	}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// baseFilename deriva el nombre del artefacto del número de documento.
func baseFilename(snap Snapshot) string {
	name := unsafeFilename.ReplaceAllString(snap.Document.Meta.DocumentNumber, "-")
	if name == "" || name == "-" {
		name = "document"
	}
	return name
}

// JSON serializa el estado completo tal cual (el mismo esquema persistido).
func (s *Service) JSON() (*Result, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	snap := s.snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return &Result{
		Data:        data,
		Filename:    baseFilename(snap) + ".json",
		ContentType: "application/json",
	}, nil
}

// CSV fila de cabecera Description,Qty,Rate,Amount y una fila por línea.
func (s *Service) CSV() (*Result, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	snap := s.snapshot()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{"Description", "Qty", "Rate", "Amount"}}
	for _, it := range snap.Document.Items {
		rows = append(rows, []string{
			it.Description,
			it.Quantity.String(),
			it.Rate.StringFixed(2),
			it.Amount.StringFixed(2),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	return &Result{
		Data:        buf.Bytes(),
		Filename:    baseFilename(snap) + ".csv",
		ContentType: "text/csv; charset=utf-8",
	}, nil
}

// XML árbol completo del documento (ver xml.go).
func (s *Service) XML() (*Result, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	snap := s.snapshot()
	data, err := buildXML(snap)
	if err != nil {
		return nil, fmt.Errorf("export xml: %w", err)
	}
	return &Result{
		Data:        data,
		Filename:    baseFilename(snap) + ".xml",
		ContentType: "application/xml",
	}, nil
}

// PDF representación A4 del documento vía el generador inyectado.
func (s *Service) PDF() (*Result, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if s.pdf == nil {
		return nil, fmt.Errorf("export pdf: generador no configurado")
	}
	snap := s.snapshot()
	data, err := s.pdf.GeneratePDF(snap)
	if err != nil {
		if s.log != nil {
			s.log.Error().Err(err).Msg("exportación PDF falló")
		}
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	return &Result{
		Data:        data,
		Filename:    baseFilename(snap) + ".pdf",
		ContentType: "application/pdf",
	}, nil
}

// HTML render del tema visual elegido (modern|minimal|corporate|fun|compact).
func (s *Service) HTML(theme string) (*Result, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if s.html == nil {
		return nil, fmt.Errorf("export html: renderer no configurado")
	}
	snap := s.snapshot()
	out, err := s.html.RenderHTML(snap, theme)
	if err != nil {
		return nil, fmt.Errorf("export html: %w", err)
	}
	return &Result{
		Data:        []byte(out),
		Filename:    baseFilename(snap) + ".html",
		ContentType: "text/html; charset=utf-8",
	}, nil
}
