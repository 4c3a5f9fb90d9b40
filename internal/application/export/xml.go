package export

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// buildXML arma el árbol XML del documento: cabecera, partes, líneas y
// totales. El vocabulario de elementos sigue las etiquetas del tipo.
func buildXML(snap Snapshot) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("document")
	root.CreateAttr("type", string(snap.Document.Meta.DocumentType))

	meta := root.CreateElement("meta")
	m := snap.Document.Meta
	meta.CreateElement("title").SetText(m.Title)
	meta.CreateElement("number").SetText(m.DocumentNumber)
	meta.CreateElement("issue_date").SetText(m.IssueDate)
	if document.ShowSecondDate(m.DocumentType) {
		meta.CreateElement("due_date").SetText(m.DueDate)
	}
	if m.PaymentTerms != nil && document.ShowTerms(m.DocumentType) {
		meta.CreateElement("payment_terms_days").SetText(strconv.Itoa(*m.PaymentTerms))
	}
	if m.PONumber != "" {
		meta.CreateElement("po_number").SetText(m.PONumber)
	}

	issuer := root.CreateElement("issuer")
	issuer.CreateElement("name").SetText(snap.Document.Issuer.DisplayName())
	issuer.CreateElement("email").SetText(snap.Document.Issuer.Contact.Email)
	addAddress(issuer, snap.Document.Issuer.Address)
	if b := snap.Document.Issuer.Business; b != nil && b.TaxID != "" {
		tax := issuer.CreateElement("tax_id")
		tax.CreateAttr("label", b.TaxIDLabel)
		tax.SetText(b.TaxID)
	}

	client := root.CreateElement("client")
	client.CreateElement("name").SetText(snap.Document.Client.Name)
	if snap.Document.Client.CompanyName != "" {
		client.CreateElement("company").SetText(snap.Document.Client.CompanyName)
	}
	client.CreateElement("email").SetText(snap.Document.Client.Email)
	addAddress(client, snap.Document.Client.Address)
	if sh := snap.Document.Client.Shipping; sh != nil && snap.Document.ShipToDifferentAddress {
		ship := client.CreateElement("shipping")
		if sh.Name != "" {
			ship.CreateElement("name").SetText(sh.Name)
		}
		addAddress(ship, sh.Address)
	}

	items := root.CreateElement("items")
	for _, it := range snap.Document.Items {
		line := items.CreateElement("item")
		line.CreateAttr("id", it.ID)
		line.CreateElement("description").SetText(it.Description)
		line.CreateElement("quantity").SetText(it.Quantity.String())
		line.CreateElement("rate").SetText(it.Rate.StringFixed(2))
		line.CreateElement("amount").SetText(it.Amount.StringFixed(2))
	}

	totals := root.CreateElement("totals")
	totals.CreateAttr("currency", snap.Document.Money.CurrencyCode)
	totals.CreateElement("subtotal").SetText(snap.Totals.Subtotal.StringFixed(2))
	totals.CreateElement("discount").SetText(snap.Totals.DiscountAmount.StringFixed(2))
	totals.CreateElement("taxable").SetText(snap.Totals.TaxableAmount.StringFixed(2))
	totals.CreateElement("tax").SetText(snap.Totals.TaxAmount.StringFixed(2))
	totals.CreateElement("total").SetText(snap.Totals.Total.String())

	doc.Indent(2)
	return doc.WriteToBytes()
}

func addAddress(parent *etree.Element, a entity.Address) {
	addr := parent.CreateElement("address")
	addr.CreateElement("line1").SetText(a.Line1)
	if a.Line2 != "" {
		addr.CreateElement("line2").SetText(a.Line2)
	}
	addr.CreateElement("city").SetText(a.City)
	addr.CreateElement("state").SetText(a.State)
	addr.CreateElement("postal_code").SetText(a.PostalCode)
	if a.Country != "" {
		addr.CreateElement("country").SetText(a.Country)
	}
}
