package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador-api/internal/application/docstore"
	"github.com/jhoicas/facturador-api/internal/application/export"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store  *docstore.Store
	Export *export.Service
}

// Router registra las rutas de la API. Sin autenticación: es una herramienta
// monousuario, el análogo de una app local.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Documento en edición
	doc := api.Group("/document")
	docHandler := NewDocumentHandler(deps.Store)
	doc.Get("/", docHandler.Get)
	doc.Get("/totals", docHandler.GetTotals)
	doc.Get("/validate", docHandler.Validate)

	doc.Patch("/meta", docHandler.UpdateMeta)
	doc.Patch("/money", docHandler.UpdateMoney)
	doc.Patch("/description", docHandler.SetDescription)
	doc.Patch("/client", docHandler.UpdateClient)
	doc.Patch("/client/address", docHandler.UpdateClientAddress)
	doc.Patch("/client/shipping", docHandler.UpdateClientShipping)

	doc.Patch("/issuer/contact", docHandler.UpdateIssuerContact)
	doc.Patch("/issuer/address", docHandler.UpdateIssuerAddress)
	doc.Patch("/issuer/business", docHandler.UpdateIssuerBusiness)
	doc.Patch("/issuer/branding", docHandler.UpdateIssuerBranding)
	doc.Put("/issuer/logo", docHandler.SetLogo)
	doc.Put("/issuer/signature", docHandler.SetSignature)

	doc.Post("/type", docHandler.SetType)
	doc.Post("/number", docHandler.NewNumber)
	doc.Post("/issuer-kind", docHandler.SetIssuerKind)

	doc.Post("/items", docHandler.AddItem)
	doc.Patch("/items/:id", docHandler.UpdateItem)
	doc.Delete("/items/:id", docHandler.RemoveItem)

	doc.Post("/payment-methods", docHandler.AddPaymentMethod)
	doc.Delete("/payment-methods/:index", docHandler.RemovePaymentMethod)

	doc.Post("/ship-to-toggle", docHandler.ToggleShipTo)
	doc.Post("/reset", docHandler.Reset)
	doc.Post("/clear", docHandler.Clear)

	// Exportaciones
	exp := api.Group("/export")
	exportHandler := NewExportHandler(deps.Export)
	exp.Get("/json", exportHandler.JSON)
	exp.Get("/csv", exportHandler.CSV)
	exp.Get("/xml", exportHandler.XML)
	exp.Get("/pdf", exportHandler.PDF)
	exp.Get("/html", exportHandler.HTML)
	exp.Get("/status", exportHandler.Status)
}
