package docstore_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-api/internal/application/docstore"
	"github.com/jhoicas/facturador-api/internal/application/dto"
	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

var testDefaults = docstore.Defaults{
	Currency: "USD",
	Terms:    7,
	Title:    "INVOICE",
	Note:     "",
}

// fakePersister captura cada snapshot persistido.
type fakePersister struct {
	saves []docstore.PersistedState
	err   error
}

func (f *fakePersister) Save(ps *docstore.PersistedState) error {
	if f.err != nil {
		return f.err
	}
	f.saves = append(f.saves, *ps)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
}

func newStore() *docstore.Store {
	return docstore.New(testDefaults, nil, nil, fixedNow)
}

func str(s string) *string { return &s }

func TestNew_EstadoPorDefecto(t *testing.T) {
	s := newStore()
	snap := s.Snapshot()

	assert.Equal(t, entity.DocInvoice, snap.Meta.DocumentType)
	assert.Equal(t, "INV-0001", snap.Meta.DocumentNumber)
	assert.Equal(t, "2026-03-01T00:00:00Z", snap.Meta.IssueDate, "emisión a medianoche UTC")
	assert.Equal(t, "2026-03-08T00:00:00Z", snap.Meta.DueDate, "vencimiento = emisión + plazo estándar")
	require.NotNil(t, snap.Meta.PaymentTerms)
	assert.Equal(t, 7, *snap.Meta.PaymentTerms)
	require.Len(t, snap.Items, 1, "siempre arranca con una línea editable")
	assert.True(t, snap.Items[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, snap.Money.RoundingEnabled)
}

func TestUpdateItem_RecalculaAmountSiempre(t *testing.T) {
	s := newStore()
	id := s.Snapshot().Items[0].ID

	require.NoError(t, s.UpdateItem(id, dto.ItemPatch{Quantity: str("2"), Rate: str("100")}))

	it := s.Snapshot().Items[0]
	assert.True(t, it.Amount.Equal(decimal.NewFromInt(200)), "amount = qty × rate: %s", it.Amount)

	// Texto malformado se coacciona a cero, no a error.
	require.NoError(t, s.UpdateItem(id, dto.ItemPatch{Quantity: str("abc")}))
	assert.True(t, s.Snapshot().Items[0].Amount.IsZero())
}

func TestUpdateItem_IDInexistente(t *testing.T) {
	s := newStore()
	err := s.UpdateItem("no-existe", dto.ItemPatch{Rate: str("1")})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestAddRemoveItem(t *testing.T) {
	s := newStore()
	added := s.AddItem()
	assert.Len(t, s.Snapshot().Items, 2)

	require.NoError(t, s.RemoveItem(added.ID))
	first := s.Snapshot().Items[0].ID
	require.NoError(t, s.RemoveItem(first))
	// El modelo permite quedar sin líneas; el mínimo lo impone la UI.
	assert.Empty(t, s.Snapshot().Items)
}

func TestTotals_EscenarioReferencia(t *testing.T) {
	s := newStore()
	id := s.Snapshot().Items[0].ID
	require.NoError(t, s.UpdateItem(id, dto.ItemPatch{Quantity: str("2"), Rate: str("100")}))
	s.UpdateMoney(dto.MoneyPatch{TaxValue: str("10"), TaxMode: str(entity.ModePercentage)})

	got := s.Totals()
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, got.TaxAmount.Equal(decimal.NewFromInt(20)))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(220)))
}

func TestUpdateClientAddress_EspejoDeEnvio(t *testing.T) {
	s := newStore()
	s.UpdateClient(dto.ClientPatch{Name: str("ACME Corp")})

	// Activar y desactivar el envío distinto deja un bloque de envío sembrado.
	assert.True(t, s.ToggleShipToDifferentAddress())
	assert.False(t, s.ToggleShipToDifferentAddress())

	// Con "misma dirección" activo, editar facturación espeja el envío.
	s.UpdateClientAddress(dto.AddressPatch{Line1: str("Calle 10 #4-32"), City: str("Bogotá")})
	snap := s.Snapshot()
	require.NotNil(t, snap.Client.Shipping)
	assert.Equal(t, "Calle 10 #4-32", snap.Client.Shipping.Address.Line1)
	assert.Equal(t, "ACME Corp", snap.Client.Shipping.Name, "sembrado con el nombre del cliente")

	// Al optar por otra dirección, el espejo se rompe.
	assert.True(t, s.ToggleShipToDifferentAddress())
	s.UpdateClientAddress(dto.AddressPatch{City: str("Medellín")})
	snap = s.Snapshot()
	assert.Equal(t, "Bogotá", snap.Client.Shipping.Address.City, "el envío ya no sigue a facturación")
	assert.Equal(t, "Medellín", snap.Client.Address.City)
}

func TestSetDocumentType_ResetDeCabeceraSinTocarElResto(t *testing.T) {
	s := newStore()
	s.UpdateClient(dto.ClientPatch{Name: str("ACME")})
	id := s.Snapshot().Items[0].ID
	require.NoError(t, s.UpdateItem(id, dto.ItemPatch{Description: str("Diseño"), Rate: str("50")}))

	require.NoError(t, s.SetDocumentType(entity.DocReceipt))
	snap := s.Snapshot()

	require.NotNil(t, snap.Meta.PaymentTerms)
	assert.Equal(t, 0, *snap.Meta.PaymentTerms, "recibo: plazo 0")
	assert.Equal(t, snap.Meta.IssueDate, snap.Meta.DueDate, "vencimiento = emisión")
	assert.Equal(t, "Receipt", snap.Meta.Title)
	assert.Equal(t, "RCPT-0001", snap.Meta.DocumentNumber)
	assert.Equal(t, "ACME", snap.Client.Name, "cliente intacto")
	assert.Equal(t, "Diseño", snap.Items[0].Description, "líneas intactas")
}

func TestSetDocumentType_TipoInvalido(t *testing.T) {
	s := newStore()
	assert.ErrorIs(t, s.SetDocumentType("PURCHASE_ORDER"), domain.ErrInvalidInput)
}

func TestGenerateNewNumber_Secuencia(t *testing.T) {
	s := newStore()

	assert.Equal(t, "INV-0001", s.GenerateNewNumber())
	assert.Equal(t, "INV-0002", s.GenerateNewNumber())
	assert.Equal(t, "INV-0002", s.Snapshot().Meta.DocumentNumber)
	assert.Equal(t, "INV-0002", s.LastNumber())
}

func TestReset_ConservaEmisorYTipo(t *testing.T) {
	s := newStore()
	s.SetIssuerKind("business")
	s.UpdateIssuerBusiness(dto.BusinessPatch{LegalName: str("Estudio Nieto SAS")})
	s.UpdateClient(dto.ClientPatch{Name: str("ACME")})
	require.NoError(t, s.SetDocumentType(entity.DocQuotation))
	s.GenerateNewNumber() // QT-0001

	s.Reset()
	snap := s.Snapshot()

	assert.Equal(t, "business", snap.IssuerMode, "preferencia de modo sobrevive")
	require.NotNil(t, snap.Issuer.Business)
	assert.Equal(t, "Estudio Nieto SAS", snap.Issuer.Business.LegalName, "perfil del emisor sobrevive")
	assert.Equal(t, entity.DocQuotation, snap.Meta.DocumentType, "el tipo no vuelve a factura")
	assert.Equal(t, "QT-0002", snap.Meta.DocumentNumber, "número regenerado")
	assert.Empty(t, snap.Client.Name, "cliente restaurado a defaults")
	require.Len(t, snap.Items, 1)
	assert.Empty(t, snap.Items[0].Description)
}

func TestClear_BorraTodo(t *testing.T) {
	s := newStore()
	s.UpdateIssuerContact(dto.ContactPatch{Name: str("Julia")})
	s.GenerateNewNumber()

	s.Clear()
	snap := s.Snapshot()

	assert.Empty(t, snap.Issuer.Contact.Name, "el perfil del emisor también se borra")
	assert.Empty(t, s.LastNumber(), "contador de numeración reiniciado")
	assert.Equal(t, "INV-0001", snap.Meta.DocumentNumber)
}

func TestMutadores_PersistenCadaCambio(t *testing.T) {
	p := &fakePersister{}
	s := docstore.New(testDefaults, p, nil, fixedNow)

	s.UpdateClient(dto.ClientPatch{Name: str("ACME")})
	s.AddItem()

	require.Len(t, p.saves, 2, "un snapshot por mutación")
	assert.Equal(t, "ACME", p.saves[1].Document.Client.Name)
}

func TestPersistencia_FalloSeTraga(t *testing.T) {
	p := &fakePersister{err: assert.AnError}
	s := docstore.New(testDefaults, p, nil, fixedNow)

	// Ningún pánico ni error visible: el almacenamiento es consultivo.
	s.UpdateClient(dto.ClientPatch{Name: str("ACME")})
	assert.Equal(t, "ACME", s.Snapshot().Client.Name)
}

func TestHydrate_RestauraBlob(t *testing.T) {
	s := newStore()
	s.UpdateClient(dto.ClientPatch{Name: str("ACME")})
	s.GenerateNewNumber()
	blob := docstore.PersistedState{
		Document:           s.Snapshot(),
		LastDocumentNumber: s.LastNumber(),
	}

	restored := newStore()
	restored.Hydrate(&blob)

	assert.Equal(t, "ACME", restored.Snapshot().Client.Name)
	assert.Equal(t, "INV-0001", restored.LastNumber())
	restored.Hydrate(nil) // no-op
	assert.Equal(t, "ACME", restored.Snapshot().Client.Name)
}

func TestSnapshot_EsCopiaProfunda(t *testing.T) {
	s := newStore()
	snap := s.Snapshot()
	snap.Items[0].Description = "mutado por fuera"
	snap.Client.Name = "mutado"

	assert.Empty(t, s.Snapshot().Items[0].Description, "el snapshot no comparte memoria")
	assert.Empty(t, s.Snapshot().Client.Name)
}

func TestValidate_PerfilesIncompletos(t *testing.T) {
	s := newStore()
	errs := s.Validate()
	require.NotEmpty(t, errs)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["issuer.contact.name"])
	assert.True(t, fields["issuer.contact.email"])
	assert.True(t, fields["client.name"])

	s.UpdateIssuerContact(dto.ContactPatch{Email: str("no-es-email")})
	errs = s.Validate()
	found := false
	for _, e := range errs {
		if e.Field == "issuer.contact.email" && e.Message == "Email is not valid" {
			found = true
		}
	}
	assert.True(t, found, "email malformado falla el regex")
}

func TestValidate_ModoEmpresaExigeRazonSocial(t *testing.T) {
	s := newStore()
	s.SetIssuerKind("business")

	var legal *dto.FieldError
	for _, e := range s.Validate() {
		if e.Field == "issuer.business.legal_name" {
			legal = &e
			break
		}
	}
	require.NotNil(t, legal)
}
