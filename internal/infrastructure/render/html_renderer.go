package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador-api/internal/application/export"
	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

const documentHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}} {{.Number}}</title>
  <style>
    :root {
      --primary: {{.Theme.Primary}};
      --accent: {{.Theme.Accent}};
      --text: {{.Theme.Text}};
      --muted: {{.Theme.Muted}};
      --border: {{.Theme.Border}};
      --font: "{{.Theme.Font}}";
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: var(--font), "Helvetica Neue", Arial, sans-serif;
      color: var(--text);
      background: {{.Theme.Background}};
    }
    .document { max-width: 820px; margin: 0 auto; }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid var(--primary);
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .brand img { max-width: {{.LogoWidth}}px; }
    .title {
      color: var(--primary);
      font-size: 26px;
      font-weight: 700;
      margin: 0 0 4px;
    }
    .meta { text-align: right; font-size: 14px; }
    .label {
      color: var(--muted);
      {{if .Theme.HeadingUC}}text-transform: uppercase;{{end}}
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .parties {
      display: flex;
      gap: 32px;
      margin-bottom: 24px;
      font-size: 14px;
    }
    .parties > div { flex: 1; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td {
      padding: 10px;
      border-bottom: 1px solid var(--border);
      text-align: left;
    }
    th {
      {{if .Theme.HeadingUC}}text-transform: uppercase;{{end}}
      font-size: 11px;
      letter-spacing: 0.04em;
      color: var(--muted);
    }
    td.num, th.num { text-align: right; }
    .totals {
      margin-top: 16px;
      margin-left: auto;
      width: 280px;
      font-size: 14px;
    }
    .totals .row {
      display: flex;
      justify-content: space-between;
      padding: 4px 0;
    }
    .totals .grand {
      border-top: 2px solid var(--primary);
      margin-top: 6px;
      padding-top: 8px;
      font-size: 17px;
      font-weight: 700;
      color: var(--accent);
    }
    .payments, .footer {
      border-top: 1px solid var(--border);
      margin-top: 24px;
      padding-top: 16px;
      font-size: 13px;
    }
    .footer { color: var(--muted); font-size: 12px; }
    .signature { margin-top: 32px; text-align: right; }
    .signature img { max-height: 64px; }
    .signature .typed { font-size: 24px; font-style: italic; }
  </style>
</head>
<body>
  <div class="document">
    <div class="header">
      <div class="brand">
        {{if .LogoURL}}<img src="{{.LogoURL}}" alt="Logo" />{{end}}
        <h1 class="title">{{.Title}}</h1>
        <div>{{.IssuerName}}</div>
      </div>
      <div class="meta">
        <div class="label">{{.Labels.Number}}</div>
        <div><strong>{{.Number}}</strong></div>
        <div class="label">{{.Labels.Date}}</div>
        <div>{{formatDate .IssueDate}}</div>
        {{if .ShowDue}}
        <div class="label">{{.Labels.Due}}</div>
        <div>{{formatDate .DueDate}}</div>
        {{end}}
        {{if .Terms}}
        <div class="label">{{.Labels.Term}}</div>
        <div>{{.Terms}} days</div>
        {{end}}
        {{if .PONumber}}
        <div class="label">PO Number</div>
        <div>{{.PONumber}}</div>
        {{end}}
      </div>
    </div>

    <div class="parties">
      <div>
        <div class="label">{{.Labels.From}}</div>
        <div><strong>{{.IssuerName}}</strong></div>
        {{if .IssuerTaxID}}<div>{{.IssuerTaxIDLabel}}: {{.IssuerTaxID}}</div>{{end}}
        {{range .IssuerAddress}}<div>{{.}}</div>{{end}}
        {{if .IssuerEmail}}<div>{{.IssuerEmail}}</div>{{end}}
        {{if .IssuerPhone}}<div>{{.IssuerPhone}}</div>{{end}}
      </div>
      <div>
        <div class="label">{{.Labels.To}}</div>
        <div><strong>{{.ClientName}}</strong></div>
        {{if .ClientCompany}}<div>{{.ClientCompany}}</div>{{end}}
        {{if .ClientTaxID}}<div>Tax ID: {{.ClientTaxID}}</div>{{end}}
        {{range .ClientAddress}}<div>{{.}}</div>{{end}}
        {{if .ClientEmail}}<div>{{.ClientEmail}}</div>{{end}}
        {{if .ClientPhone}}<div>{{.ClientPhone}}</div>{{end}}
      </div>
      {{if .ShipName}}
      <div>
        <div class="label">{{.Labels.Ship}}</div>
        <div><strong>{{.ShipName}}</strong></div>
        {{range .ShipAddress}}<div>{{.}}</div>{{end}}
      </div>
      {{end}}
    </div>

    {{if .Description}}<div class="parties"><div>{{.Description}}</div></div>{{end}}

    <table>
      <thead>
        <tr>
          <th>Description</th>
          <th class="num">Qty</th>
          <th class="num">Rate</th>
          <th class="num">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Description}}</td>
          <td class="num">{{.Quantity}}</td>
          <td class="num">{{.Rate}}</td>
          <td class="num">{{.Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="row"><span>Subtotal</span><span>{{.Formatted.Subtotal}}</span></div>
      {{if .ShowDiscount}}<div class="row"><span>Discount</span><span>-{{.Formatted.Discount}}</span></div>{{end}}
      {{if .ShowTax}}<div class="row"><span>Tax</span><span>{{.Formatted.Tax}}</span></div>{{end}}
      <div class="row grand"><span>{{.Labels.Total}}</span><span>{{.Formatted.Total}}</span></div>
    </div>

    {{if .Payments}}
    <div class="payments">
      <div class="label">Payment Details</div>
      {{range .Payments}}<div><strong>{{.Label}}:</strong> {{.Value}}</div>{{end}}
    </div>
    {{end}}

    {{if .SignatureURL}}
    <div class="signature">
      <img src="{{.SignatureURL}}" alt="Signature" />
      <div class="label">Authorized Signature</div>
    </div>
    {{else if .SignatureText}}
    <div class="signature">
      <div class="typed" style="font-family: '{{.SignatureFont}}'; color: {{.SignatureColor}};">{{.SignatureText}}</div>
      <div class="label">Authorized Signature</div>
    </div>
    {{end}}

    {{if .FooterNote}}
    <div class="footer">{{.FooterNote}}</div>
    {{end}}
  </div>
</body>
</html>
`

// itemView línea ya formateada para la plantilla.
type itemView struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

// paymentView método de pago aplanado a etiqueta + valor.
type paymentView struct {
	Label string
	Value string
}

// templateData datos ya resueltos de la plantilla; todo string o bool, sin
// lógica de dominio dentro del HTML.
type templateData struct {
	Theme     Theme
	Labels    document.LabelBundle
	Title     string
	Number    string
	IssueDate string
	DueDate   string
	ShowDue   bool
	Terms     string
	PONumber  string

	LogoURL   template.URL
	LogoWidth int

	IssuerName       string
	IssuerTaxID      string
	IssuerTaxIDLabel string
	IssuerAddress    []string
	IssuerEmail      string
	IssuerPhone      string

	ClientName    string
	ClientCompany string
	ClientTaxID   string
	ClientAddress []string
	ClientEmail   string
	ClientPhone   string

	ShipName    string
	ShipAddress []string

	Description string
	Items       []itemView

	Formatted    document.FormattedTotals
	ShowDiscount bool
	ShowTax      bool

	Payments []paymentView

	SignatureURL   template.URL
	SignatureText  string
	SignatureFont  string
	SignatureColor string

	FooterNote string
}

// HTMLRenderer renderiza el documento a un HTML autocontenido con el tema
// elegido. Implementa el puerto HTMLRenderer de la capa de export.
type HTMLRenderer struct {
	tpl *template.Template
}

// NewHTMLRenderer compila la plantilla una sola vez; la plantilla es
// constante, así que un fallo de parseo es un bug y panic es aceptable.
func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"formatDate": formatDate,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("document").Funcs(funcs).Parse(documentHTMLTemplate)),
	}
}

// RenderHTML materializa el snapshot con el tema pedido; temas desconocidos
// caen al tema por defecto.
func (r *HTMLRenderer) RenderHTML(snap export.Snapshot, theme string) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, buildTemplateData(snap, ResolveTheme(theme))); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildTemplateData(snap export.Snapshot, theme Theme) templateData {
	doc := snap.Document
	labels := document.Labels(doc.Meta.DocumentType)

	data := templateData{
		Theme:     theme,
		Labels:    labels,
		Title:     doc.Meta.Title,
		Number:    doc.Meta.DocumentNumber,
		IssueDate: doc.Meta.IssueDate,
		DueDate:   doc.Meta.DueDate,
		ShowDue:   document.ShowSecondDate(doc.Meta.DocumentType) && doc.Meta.DueDate != "",
		PONumber:  doc.Meta.PONumber,

		IssuerName:    doc.Issuer.DisplayName(),
		IssuerAddress: addressLines(doc.Issuer.Address),
		IssuerEmail:   doc.Issuer.Contact.Email,
		IssuerPhone:   doc.Issuer.Contact.Phone,

		ClientName:    doc.Client.Name,
		ClientCompany: doc.Client.CompanyName,
		ClientTaxID:   doc.Client.TaxID,
		ClientAddress: addressLines(doc.Client.Address),
		ClientEmail:   doc.Client.Email,
		ClientPhone:   doc.Client.Phone,

		Description: doc.Description,
		Formatted:   snap.Formatted,

		ShowDiscount: !snap.Totals.DiscountAmount.IsZero(),
		ShowTax:      !snap.Totals.TaxAmount.IsZero(),

		FooterNote: doc.Meta.FooterNote,
	}
	if data.Title == "" {
		data.Title = document.DefaultTitle(doc.Meta.DocumentType)
	}

	if document.ShowTerms(doc.Meta.DocumentType) && doc.Meta.PaymentTerms != nil {
		data.Terms = strconv.Itoa(*doc.Meta.PaymentTerms)
	}

	if b := doc.Issuer.Business; b != nil && b.TaxID != "" {
		data.IssuerTaxID = b.TaxID
		data.IssuerTaxIDLabel = b.TaxIDLabel
		if data.IssuerTaxIDLabel == "" {
			data.IssuerTaxIDLabel = "Tax ID"
		}
	}

	branding := doc.Issuer.Branding
	if branding.LogoEnabled && branding.Logo != nil && branding.Logo.DataURL != "" {
		data.LogoURL = safeDataURL(branding.Logo.DataURL)
		data.LogoWidth = branding.LogoWidthPx
		if data.LogoWidth <= 0 {
			data.LogoWidth = 160
		}
	}
	if branding.SignatureEnabled && branding.Signature != nil {
		sig := branding.Signature
		if sig.Kind == entity.SignatureTyped && sig.Typed != nil {
			data.SignatureText = sig.Typed.Text
			data.SignatureFont = sanitizeFont(sig.Typed.Font)
			data.SignatureColor = sanitizeColor(sig.Typed.Color)
		} else if sig.DataURL != "" {
			data.SignatureURL = safeDataURL(sig.DataURL)
		}
	}

	if doc.ShipToDifferentAddress && doc.Client.Shipping != nil && labels.Ship != "" {
		data.ShipName = doc.Client.Shipping.Name
		if data.ShipName == "" {
			data.ShipName = doc.Client.Name
		}
		data.ShipAddress = addressLines(doc.Client.Shipping.Address)
	}

	code := doc.Money.CurrencyCode
	data.Items = make([]itemView, 0, len(doc.Items))
	for _, it := range doc.Items {
		data.Items = append(data.Items, itemView{
			Description: it.Description,
			Quantity:    formatQuantity(it.Quantity),
			Rate:        document.FormatAmount(it.Rate, code),
			Amount:      document.FormatAmount(it.Amount, code),
		})
	}

	for _, pm := range doc.Issuer.PaymentMethods {
		data.Payments = append(data.Payments, flattenPayment(pm))
	}
	return data
}

// flattenPayment reduce la variante etiquetada a un par etiqueta/valor para
// mostrar; los métodos bancarios concatenan sus campos en una línea.
func flattenPayment(pm entity.PaymentMethod) (view paymentView) {
	view.Label = pm.Label
	switch pm.Type {
	case entity.PaymentBank:
		if view.Label == "" {
			view.Label = "Bank Transfer"
		}
		parts := make([]string, 0, 4)
		for _, p := range []string{pm.BankName, pm.AccountName, pm.AccountNumber, pm.BankCode} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		view.Value = strings.Join(parts, " · ")
	case entity.PaymentUPI:
		if view.Label == "" {
			view.Label = "UPI"
		}
		view.Value = pm.UPIID
	case entity.PaymentPaypal:
		if view.Label == "" {
			view.Label = "PayPal"
		}
		view.Value = pm.PaypalEmail
	case entity.PaymentCashapp:
		if view.Label == "" {
			view.Label = "Cash App"
		}
		view.Value = pm.CashTag
	default:
		if view.Label == "" {
			view.Label = "Payment"
		}
		view.Value = pm.CustomValue
	}
	return view
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

func formatDate(iso string) string {
	if iso == "" {
		return "-"
	}
	if len(iso) >= 10 {
		return iso[:10]
	}
	return iso
}

func formatQuantity(q decimal.Decimal) string {
	return q.String()
}

// safeDataURL admite solo data URLs de imagen; cualquier otro esquema se
// descarta para no inyectar recursos externos en un HTML "autocontenido".
func safeDataURL(raw string) template.URL {
	if strings.HasPrefix(raw, "data:image/") {
		return template.URL(raw)
	}
	return ""
}

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
	fontFamilyFilter = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
)

func sanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return "#111827"
}

func sanitizeFont(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed != "" && fontFamilyFilter.MatchString(trimmed) {
		return trimmed
	}
	return "Dancing Script"
}
