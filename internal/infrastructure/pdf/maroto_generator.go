// Package pdf implementa la representación imprimible del documento usando
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Logo + Título         │  N° Documento + Fechas     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTES: Emisor | Cliente | Envío (según tipo)              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | Tarifa | Importe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuesto / TOTAL           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Métodos de pago + Firma + Nota al pie                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/facturador-api/internal/application/export"
	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoGenerator implementa export.PDFGenerator usando Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator construye el generador.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// GeneratePDF genera el PDF del snapshot y devuelve sus bytes.
func (g *MarotoGenerator) GeneratePDF(snap export.Snapshot) ([]byte, error) {
	doc := snap.Document
	labels := document.Labels(doc.Meta.DocumentType)
	title := doc.Meta.Title
	if title == "" {
		title = document.DefaultTitle(doc.Meta.DocumentType)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title+" "+doc.Meta.DocumentNumber, true).
		WithAuthor(doc.Issuer.DisplayName(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, labels, title)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(doc, labels))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(doc) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(snap, labels))

	for _, r := range footerRows(doc) {
		m.AddRows(r)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: logo + título (izq) y número + fechas (der).
func headerRow(doc entity.DocumentState, labels document.LabelBundle, title string) []core.Row {
	left := col.New(7)
	if logo, ext, ok := decodeLogo(doc.Issuer.Branding); ok {
		left.Add(image.NewFromBytes(logo, ext, props.Rect{Percent: 60}))
	} else {
		left.Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Issuer.DisplayName(), props.Text{
				Size: 10, Top: 10, Color: colorGray,
			}),
		)
	}

	metaTexts := []core.Component{
		text.New(labels.Number, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorGray, Top: 1,
		}),
		text.New(doc.Meta.DocumentNumber, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 5,
		}),
		text.New(labels.Date+": "+shortDate(doc.Meta.IssueDate), props.Text{
			Size: 8, Align: align.Right, Top: 12, Color: colorGray,
		}),
	}
	if document.ShowSecondDate(doc.Meta.DocumentType) && doc.Meta.DueDate != "" {
		metaTexts = append(metaTexts, text.New(
			labels.Due+": "+shortDate(doc.Meta.DueDate), props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}))
	}
	if document.ShowTerms(doc.Meta.DocumentType) && doc.Meta.PaymentTerms != nil {
		metaTexts = append(metaTexts, text.New(
			labels.Term+": "+strconv.Itoa(*doc.Meta.PaymentTerms)+" days", props.Text{
				Size: 8, Align: align.Right, Top: 20, Color: colorGray,
			}))
	}

	return []core.Row{row.New(26).Add(left, col.New(5).Add(metaTexts...))}
}

// partiesRow: emisor, cliente y envío en columnas, con el vocabulario del
// tipo de documento.
func partiesRow(doc entity.DocumentState, labels document.LabelBundle) core.Row {
	party := func(size int, heading string, lines []string) core.Col {
		c := col.New(size).Add(text.New(heading, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))
		top := 6.0
		for _, l := range lines {
			c.Add(text.New(l, props.Text{Size: 8, Top: top, Color: colorGray}))
			top += 4
		}
		return c
	}

	issuerLines := append([]string{doc.Issuer.DisplayName()}, addressLines(doc.Issuer.Address)...)
	if b := doc.Issuer.Business; b != nil && b.TaxID != "" {
		label := b.TaxIDLabel
		if label == "" {
			label = "Tax ID"
		}
		issuerLines = append(issuerLines, label+": "+b.TaxID)
	}
	if doc.Issuer.Contact.Email != "" {
		issuerLines = append(issuerLines, doc.Issuer.Contact.Email)
	}

	clientLines := []string{doc.Client.Name}
	if doc.Client.CompanyName != "" {
		clientLines = append(clientLines, doc.Client.CompanyName)
	}
	clientLines = append(clientLines, addressLines(doc.Client.Address)...)
	if doc.Client.Email != "" {
		clientLines = append(clientLines, doc.Client.Email)
	}

	cols := []core.Col{}
	if doc.ShipToDifferentAddress && doc.Client.Shipping != nil && labels.Ship != "" {
		name := doc.Client.Shipping.Name
		if name == "" {
			name = doc.Client.Name
		}
		shipLines := append([]string{name}, addressLines(doc.Client.Shipping.Address)...)
		cols = append(cols,
			party(4, labels.From, issuerLines),
			party(4, labels.To, clientLines),
			party(4, labels.Ship, shipLines),
		)
	} else {
		cols = append(cols,
			party(6, labels.From, issuerLines),
			party(6, labels.To, clientLines),
		)
	}

	height := 10 + 4*maxLines(issuerLines, clientLines)
	return row.New(float64(height)).Add(cols...)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 6, align.Left),
		h("Qty", 1, align.Center),
		h("Rate", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

// tableItemRows: una fila por línea del documento.
func tableItemRows(doc entity.DocumentState) []core.Row {
	code := doc.Money.CurrencyCode
	result := make([]core.Row, 0, len(doc.Items))
	for _, it := range doc.Items {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				document.FormatAmount(it.Rate, code),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				document.FormatAmount(it.Amount, code),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha; descuento e impuesto
// solo cuando aportan algo.
func totalsRow(snap export.Snapshot, labels document.LabelBundle) core.Row {
	type entryPair struct{ label, value string }
	entries := []entryPair{{"Subtotal:", snap.Formatted.Subtotal}}
	if !snap.Totals.DiscountAmount.IsZero() {
		entries = append(entries, entryPair{"Discount:", "-" + snap.Formatted.Discount})
	}
	if !snap.Totals.TaxAmount.IsZero() {
		entries = append(entries, entryPair{"Tax:", snap.Formatted.Tax})
	}

	labelsCol := col.New(3)
	valuesCol := col.New(3)
	top := 1.0
	for _, e := range entries {
		labelsCol.Add(text.New(e.label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		valuesCol.Add(text.New(e.value, props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
		top += 5
	}
	labelsCol.Add(text.New(labels.Total+":", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2, Top: top + 1,
	}))
	valuesCol.Add(text.New(snap.Formatted.Total, props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1, Top: top + 1,
	}))

	return row.New(top + 9).Add(col.New(6), labelsCol, valuesCol)
}

// footerRows: métodos de pago, firma y nota al pie.
func footerRows(doc entity.DocumentState) []core.Row {
	var rows []core.Row

	if len(doc.Issuer.PaymentMethods) > 0 {
		rows = append(rows,
			line.NewRow(3),
			row.New(6).Add(col.New(12).Add(
				text.New("PAYMENT DETAILS", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
			)),
		)
		for _, pm := range doc.Issuer.PaymentMethods {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New(paymentLine(pm), props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
			)))
		}
	}

	branding := doc.Issuer.Branding
	if branding.SignatureEnabled && branding.Signature != nil {
		sig := branding.Signature
		if data, ext, ok := decodeDataURL(sig.DataURL); ok {
			rows = append(rows, row.New(22).Add(
				col.New(8),
				col.New(4).Add(
					image.NewFromBytes(data, ext, props.Rect{Percent: 70}),
					text.New("Authorized Signature", props.Text{
						Size: 7, Align: align.Center, Color: colorGray, Top: 18,
					}),
				),
			))
		} else if sig.Kind == entity.SignatureTyped && sig.Typed != nil && sig.Typed.Text != "" {
			rows = append(rows, row.New(14).Add(
				col.New(8),
				col.New(4).Add(
					text.New(sig.Typed.Text, props.Text{
						Style: fontstyle.Italic, Size: 14, Align: align.Center, Top: 1,
					}),
					text.New("Authorized Signature", props.Text{
						Size: 7, Align: align.Center, Color: colorGray, Top: 9,
					}),
				),
			))
		}
	}

	if doc.Meta.FooterNote != "" {
		rows = append(rows,
			line.NewRow(2),
			line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
			row.New(8).Add(col.New(12).Add(
				text.New(doc.Meta.FooterNote, props.Text{
					Size: 7.5, Color: colorGray, Top: 2, Align: align.Center,
				}),
			)),
		)
	}
	return rows
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// paymentLine aplana un método de pago a una línea de texto.
func paymentLine(pm entity.PaymentMethod) string {
	label := pm.Label
	var value string
	switch pm.Type {
	case entity.PaymentBank:
		if label == "" {
			label = "Bank Transfer"
		}
		parts := make([]string, 0, 4)
		for _, p := range []string{pm.BankName, pm.AccountName, pm.AccountNumber, pm.BankCode} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		value = strings.Join(parts, " | ")
	case entity.PaymentUPI:
		if label == "" {
			label = "UPI"
		}
		value = pm.UPIID
	case entity.PaymentPaypal:
		if label == "" {
			label = "PayPal"
		}
		value = pm.PaypalEmail
	case entity.PaymentCashapp:
		if label == "" {
			label = "Cash App"
		}
		value = pm.CashTag
	default:
		if label == "" {
			label = "Payment"
		}
		value = pm.CustomValue
	}
	return label + ": " + value
}

// decodeLogo decodifica el logo embebido si está habilitado.
func decodeLogo(b entity.Branding) ([]byte, extension.Type, bool) {
	if !b.LogoEnabled || b.Logo == nil {
		return nil, "", false
	}
	return decodeDataURL(b.Logo.DataURL)
}

// decodeDataURL extrae los bytes y la extensión Maroto de una data URL de
// imagen; formatos no soportados por gofpdf (svg, webp) se descartan.
func decodeDataURL(raw string) ([]byte, extension.Type, bool) {
	const marker = ";base64,"
	idx := strings.Index(raw, marker)
	if !strings.HasPrefix(raw, "data:image/") || idx < 0 {
		return nil, "", false
	}
	var ext extension.Type
	switch raw[len("data:image/"):idx] {
	case "png":
		ext = extension.Png
	case "jpeg", "jpg":
		ext = extension.Jpg
	default:
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(raw[idx+len(marker):])
	if err != nil {
		return nil, "", false
	}
	return data, ext, true
}

func addressLines(a entity.Address) []string {
	lines := make([]string, 0, 4)
	for _, l := range []string{a.Line1, a.Line2} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	locality := make([]string, 0, 3)
	for _, l := range []string{a.City, a.State, a.PostalCode} {
		if l != "" {
			locality = append(locality, l)
		}
	}
	if len(locality) > 0 {
		lines = append(lines, strings.Join(locality, ", "))
	}
	if a.Country != "" {
		lines = append(lines, a.Country)
	}
	return lines
}

func shortDate(iso string) string {
	if len(iso) >= 10 {
		return iso[:10]
	}
	return iso
}

func maxLines(groups ...[]string) int {
	max := 0
	for _, g := range groups {
		if len(g) > max {
			max = len(g)
		}
	}
	return max
}
