package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-api/internal/application/docstore"
	"github.com/jhoicas/facturador-api/internal/application/dto"
	"github.com/jhoicas/facturador-api/internal/application/export"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
	"github.com/jhoicas/facturador-api/internal/infrastructure/render"
	apphttp "github.com/jhoicas/facturador-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la app completa sobre un store en memoria, sin
// persistencia y con reloj fijo. El PDF queda fuera: los tests HTTP
// ejercitan el cableado, no la generación binaria.
func buildTestApp(t *testing.T) (*fiber.App, *docstore.Store) {
	t.Helper()
	store := docstore.New(docstore.Defaults{Currency: "USD", Terms: 7}, nil, nil,
		func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) })
	svc := export.NewService(store, nil, render.NewHTMLRenderer(), nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Store: store, Export: svc})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, dto.DocumentResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out dto.DocumentResponse
	if resp.StatusCode < 300 {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Documento
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDocument_EstadoPorDefecto(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, out := doJSON(t, app, http.MethodGet, "/api/document/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.DocInvoice, out.Document.Meta.DocumentType)
	assert.Len(t, out.Document.Items, 1)
	assert.Equal(t, "Invoice No", out.Labels.Number)
	assert.Equal(t, "$0.00", out.Totals.Formatted.Total)
}

func TestPatchMeta_FechasPasanPorConciliacion(t *testing.T) {
	app, _ := buildTestApp(t)

	issue := "2026-04-01T00:00:00Z"
	resp, out := doJSON(t, app, http.MethodPatch, "/api/document/meta",
		dto.MetaPatch{IssueDate: &issue})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, issue, out.Document.Meta.IssueDate)
	// el plazo por defecto (7 días) sigue al nuevo issue date
	assert.Equal(t, "2026-04-08T00:00:00Z", out.Document.Meta.DueDate)
}

func TestItems_AltaEdicionBaja(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, out := doJSON(t, app, http.MethodPost, "/api/document/items", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, out.Document.Items, 2)
	id := out.Document.Items[1].ID

	qty, rate := "3", "25.50"
	resp, out = doJSON(t, app, http.MethodPatch, "/api/document/items/"+id,
		dto.ItemPatch{Quantity: &qty, Rate: &rate})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "$76.50", out.Totals.Formatted.Subtotal)
	// con redondeo activo (default) el total va al entero más cercano
	assert.Equal(t, "$77.00", out.Totals.Formatted.Total)

	resp, out = doJSON(t, app, http.MethodDelete, "/api/document/items/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, out.Document.Items, 1)
}

func TestUpdateItem_IDDesconocido404(t *testing.T) {
	app, _ := buildTestApp(t)

	desc := "x"
	resp, _ := doJSON(t, app, http.MethodPatch, "/api/document/items/no-existe",
		dto.ItemPatch{Description: &desc})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSetType_TipoInvalido400(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/document/type",
		dto.SetTypeRequest{Type: "PURCHASE_ORDER"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetType_CambiaVocabulario(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, out := doJSON(t, app, http.MethodPost, "/api/document/type",
		dto.SetTypeRequest{Type: "QUOTATION"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Quote No", out.Labels.Number)
	assert.True(t, out.Labels.IsQuoteLike)
	assert.Contains(t, out.Document.Meta.DocumentNumber, "QT-")
}

func TestPaymentMethods_AltaYBaja(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, out := doJSON(t, app, http.MethodPost, "/api/document/payment-methods",
		entity.PaymentMethod{Type: entity.PaymentUPI, UPIID: "dev@upi"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, out.Document.Issuer.PaymentMethods, 1)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/document/payment-methods/5", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, out = doJSON(t, app, http.MethodDelete, "/api/document/payment-methods/0", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, out.Document.Issuer.PaymentMethods)
}

func TestPaymentMethods_SinTipo400(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/document/payment-methods",
		entity.PaymentMethod{Label: "sin tipo"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidate_ErroresConsultivos(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/document/validate", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "validar nunca falla la petición")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ValidationResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.False(t, out.Valid, "el estado por defecto no tiene emisor ni cliente")
	assert.NotEmpty(t, out.Errors)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestExportJSON_DescargaConNombre(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/export/json", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}

func TestExportHTML_TemaPorQuery(t *testing.T) {
	app, store := buildTestApp(t)
	name := "ACME"
	store.UpdateClient(dto.ClientPatch{Name: &name})

	req := httptest.NewRequest(http.MethodGet, "/api/export/html?theme=corporate", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ACME")
	assert.Contains(t, string(raw), "#1e3a5f", "paleta del tema corporate")
}

func TestExportPDF_SinGenerador500(t *testing.T) {
	// con el puerto PDF en nil la exportación falla limpiamente y libera el flag
	store := docstore.New(docstore.Defaults{Currency: "USD", Terms: 7}, nil, nil, nil)
	svc := export.NewService(store, nil, nil, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Store: store, Export: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/export/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, svc.Exporting(), "el flag se libera también en fallo")
}
