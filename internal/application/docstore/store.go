// Package docstore contiene el DocumentStateStore: la única fuente de verdad
// del documento en edición. Expone mutadores granulares (merge superficial
// por sub-objeto), deriva totales y fechas con el dominio puro y notifica a
// un Persister tras cada mutación. La persistencia es best-effort: un fallo
// se registra y se traga, nunca llega al mutador.
package docstore

import (
	"sync"
	"time"

	"github.com/jhoicas/facturador-api/internal/application/dto"
	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/domain/document"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
	"github.com/jhoicas/facturador-api/pkg/logger"
)

// PersistedState blob persistido bajo la clave fija de almacenamiento:
// el agregado completo más el último número emitido.
type PersistedState struct {
	Document           entity.DocumentState `json:"document"`
	LastDocumentNumber string               `json:"last_document_number,omitempty"`
}

// Persister puerto de persistencia; implementado en infrastructure/storage.
type Persister interface {
	Save(ps *PersistedState) error
}

// Store agregado mutable con mutadores atómicos. Cada mutador produce un
// snapshot consistente; ningún lector observa un estado a medias.
type Store struct {
	mu         sync.RWMutex
	state      entity.DocumentState
	lastNumber string

	defaults  Defaults
	persister Persister
	log       *logger.Logger
	now       func() time.Time
}

// New construye el store con el estado por defecto. persister puede ser nil
// (sin persistencia, útil en tests); now nil usa time.Now.
func New(defaults Defaults, persister Persister, log *logger.Logger, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		state:     defaultState(defaults, now()),
		defaults:  defaults,
		persister: persister,
		log:       log,
		now:       now,
	}
}

// Hydrate restaura un blob persistido (carga inicial). Blob nil es no-op.
func (s *Store) Hydrate(ps *PersistedState) {
	if ps == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = ps.Document.Clone()
	s.lastNumber = ps.LastDocumentNumber
	if len(s.state.Items) == 0 {
		s.state.Items = []entity.LineItem{}
	}
}

// mutate ejecuta fn bajo el lock y persiste el snapshot resultante.
func (s *Store) mutate(fn func(st *entity.DocumentState)) {
	s.mu.Lock()
	fn(&s.state)
	snap := PersistedState{Document: s.state.Clone(), LastDocumentNumber: s.lastNumber}
	s.mu.Unlock()
	s.persist(&snap)
}

// persist guarda best-effort; los fallos se registran y se tragan porque el
// almacenamiento es consultivo, no autoritativo.
func (s *Store) persist(ps *PersistedState) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ps); err != nil && s.log != nil {
		s.log.Warn().Err(err).Msg("persistencia del documento falló; se continúa")
	}
}

// Snapshot copia profunda del agregado para lectores (render, export).
func (s *Store) Snapshot() entity.DocumentState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// LastNumber último número de documento emitido (vacío si ninguno).
func (s *Store) LastNumber() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastNumber
}

// Totals deriva los totales del estado actual.
func (s *Store) Totals() document.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.Calculate(s.state.Items, s.state.Money)
}

// FormattedTotals totales con formato de moneda local.
func (s *Store) FormattedTotals() document.FormattedTotals {
	s.mu.RLock()
	items, money := s.state.Items, s.state.Money
	s.mu.RUnlock()
	return document.Format(document.Calculate(items, money), money.CurrencyCode)
}

// ── Emisor ────────────────────────────────────────────────────────────────────

// SetIssuerKind alterna freelancer/business; al entrar a business se crea el
// bloque legal vacío si no existía (nunca se destruyen datos ya cargados).
func (s *Store) SetIssuerKind(kind string) {
	if kind != "business" {
		kind = "freelancer"
	}
	s.mutate(func(st *entity.DocumentState) {
		st.IssuerMode = kind
		if kind == "business" {
			st.Issuer.Kind = "business"
			if st.Issuer.Business == nil {
				st.Issuer.Business = &entity.BusinessInfo{TaxIDLabel: "Tax ID"}
			}
			return
		}
		st.Issuer.Kind = "individual"
	})
}

// UpdateIssuerContact merge superficial del contacto del emisor.
func (s *Store) UpdateIssuerContact(p dto.ContactPatch) {
	s.mutate(func(st *entity.DocumentState) {
		applyStr(&st.Issuer.Contact.Name, p.Name)
		applyStr(&st.Issuer.Contact.Email, p.Email)
		applyStr(&st.Issuer.Contact.Phone, p.Phone)
	})
}

// UpdateIssuerAddress merge superficial de la dirección del emisor.
func (s *Store) UpdateIssuerAddress(p dto.AddressPatch) {
	s.mutate(func(st *entity.DocumentState) {
		mergeAddress(&st.Issuer.Address, p)
	})
}

// UpdateIssuerBusiness merge del bloque legal; lo crea si no existía.
func (s *Store) UpdateIssuerBusiness(p dto.BusinessPatch) {
	s.mutate(func(st *entity.DocumentState) {
		if st.Issuer.Business == nil {
			st.Issuer.Business = &entity.BusinessInfo{}
		}
		applyStr(&st.Issuer.Business.LegalName, p.LegalName)
		applyStr(&st.Issuer.Business.TradeName, p.TradeName)
		applyStr(&st.Issuer.Business.TaxID, p.TaxID)
		applyStr(&st.Issuer.Business.TaxIDLabel, p.TaxIDLabel)
	})
}

// UpdateIssuerBranding flags de logo/firma y ancho del logo.
func (s *Store) UpdateIssuerBranding(p dto.BrandingPatch) {
	s.mutate(func(st *entity.DocumentState) {
		if p.LogoEnabled != nil {
			st.Issuer.Branding.LogoEnabled = *p.LogoEnabled
		}
		if p.SignatureEnabled != nil {
			st.Issuer.Branding.SignatureEnabled = *p.SignatureEnabled
		}
		if p.LogoWidthPx != nil {
			st.Issuer.Branding.LogoWidthPx = *p.LogoWidthPx
		}
	})
}

// SetLogo fija o quita (nil) el logo del emisor.
func (s *Store) SetLogo(asset *entity.BrandAsset) {
	s.mutate(func(st *entity.DocumentState) {
		st.Issuer.Branding.Logo = asset
	})
}

// SetSignature fija o quita (nil) la firma del emisor.
func (s *Store) SetSignature(asset *entity.SignatureAsset) {
	s.mutate(func(st *entity.DocumentState) {
		st.Issuer.Branding.Signature = asset
	})
}

// AddPaymentMethod agrega un método de cobro (lista sin tope).
func (s *Store) AddPaymentMethod(pm entity.PaymentMethod) {
	s.mutate(func(st *entity.DocumentState) {
		st.Issuer.PaymentMethods = append(st.Issuer.PaymentMethods, pm)
	})
}

// RemovePaymentMethod elimina por índice.
func (s *Store) RemovePaymentMethod(index int) error {
	var err error
	s.mutate(func(st *entity.DocumentState) {
		if index < 0 || index >= len(st.Issuer.PaymentMethods) {
			err = domain.ErrNotFound
			return
		}
		st.Issuer.PaymentMethods = append(
			st.Issuer.PaymentMethods[:index],
			st.Issuer.PaymentMethods[index+1:]...,
		)
	})
	return err
}

// ── Cliente ───────────────────────────────────────────────────────────────────

// UpdateClient merge superficial de los datos del cliente.
func (s *Store) UpdateClient(p dto.ClientPatch) {
	s.mutate(func(st *entity.DocumentState) {
		applyStr(&st.Client.Name, p.Name)
		applyStr(&st.Client.CompanyName, p.CompanyName)
		applyStr(&st.Client.TaxID, p.TaxID)
		applyStr(&st.Client.Email, p.Email)
		applyStr(&st.Client.Phone, p.Phone)
	})
}

// UpdateClientAddress merge de la dirección de facturación. Mientras "enviar
// a la misma dirección" está activo, el envío se mantiene sincronizado con
// facturación; el usuario rompe el espejo al optar por otra dirección.
func (s *Store) UpdateClientAddress(p dto.AddressPatch) {
	s.mutate(func(st *entity.DocumentState) {
		mergeAddress(&st.Client.Address, p)
		if !st.ShipToDifferentAddress && st.Client.Shipping != nil {
			st.Client.Shipping.Address = st.Client.Address
		}
	})
}

// UpdateClientShipping nombre del destinatario y/o dirección de envío.
func (s *Store) UpdateClientShipping(p dto.ShippingPatch) {
	s.mutate(func(st *entity.DocumentState) {
		if st.Client.Shipping == nil {
			st.Client.Shipping = &entity.ShippingDetails{}
		}
		applyStr(&st.Client.Shipping.Name, p.Name)
		if p.Address != nil {
			mergeAddress(&st.Client.Shipping.Address, *p.Address)
		}
	})
}

// ToggleShipToDifferentAddress alterna el flag; al activarlo por primera vez
// siembra el envío con el nombre del cliente y su dirección de facturación.
func (s *Store) ToggleShipToDifferentAddress() bool {
	var active bool
	s.mutate(func(st *entity.DocumentState) {
		st.ShipToDifferentAddress = !st.ShipToDifferentAddress
		active = st.ShipToDifferentAddress
		if active && st.Client.Shipping == nil {
			st.Client.Shipping = &entity.ShippingDetails{
				Name:    st.Client.Name,
				Address: st.Client.Address,
			}
		}
	})
	return active
}

// ── Cabecera y dinero ────────────────────────────────────────────────────────

// UpdateMeta merge de campos simples; fechas y plazo pasan por la
// conciliación del dominio (exactamente un campo conductor a la vez).
func (s *Store) UpdateMeta(p dto.MetaPatch) {
	s.mutate(func(st *entity.DocumentState) {
		applyStr(&st.Meta.Title, p.Title)
		applyStr(&st.Meta.DocumentNumber, p.DocumentNumber)
		applyStr(&st.Meta.PONumber, p.PONumber)
		applyStr(&st.Meta.PaymentMethod, p.PaymentMethod)
		applyStr(&st.Meta.FooterNote, p.FooterNote)
		if p.IssueDate != nil {
			document.ApplyIssueDate(&st.Meta, *p.IssueDate)
		}
		if p.DueDate != nil {
			document.ApplyDueDate(&st.Meta, *p.DueDate)
		}
		if p.PaymentTerms != nil {
			document.ApplyTerms(&st.Meta, *p.PaymentTerms)
		}
	})
}

// UpdateMoney merge de impuesto/descuento/moneda/redondeo. Texto numérico
// malformado se coacciona a cero (lenidad deliberada).
func (s *Store) UpdateMoney(p dto.MoneyPatch) {
	s.mutate(func(st *entity.DocumentState) {
		if p.TaxValue != nil {
			st.Money.TaxValue = document.CoerceDecimal(*p.TaxValue)
		}
		applyStr(&st.Money.TaxMode, p.TaxMode)
		if p.DiscountValue != nil {
			st.Money.DiscountValue = document.CoerceDecimal(*p.DiscountValue)
		}
		applyStr(&st.Money.DiscountMode, p.DiscountMode)
		applyStr(&st.Money.CurrencyCode, p.CurrencyCode)
		if p.RoundingEnabled != nil {
			st.Money.RoundingEnabled = *p.RoundingEnabled
		}
	})
}

// SetDescription texto libre del documento.
func (s *Store) SetDescription(text string) {
	s.mutate(func(st *entity.DocumentState) {
		st.Description = text
	})
}

// ── Líneas ────────────────────────────────────────────────────────────────────

// AddItem agrega una línea con los defaults (cantidad 1, tarifa 0).
func (s *Store) AddItem() entity.LineItem {
	item := defaultItem()
	s.mutate(func(st *entity.DocumentState) {
		st.Items = append(st.Items, item)
	})
	return item
}

// UpdateItem merge de una línea; Amount se recalcula siempre como
// cantidad × tarifa, sin importar qué campo cambió.
func (s *Store) UpdateItem(id string, p dto.ItemPatch) error {
	err := domain.ErrItemNotFound
	s.mutate(func(st *entity.DocumentState) {
		for i := range st.Items {
			if st.Items[i].ID != id {
				continue
			}
			it := &st.Items[i]
			applyStr(&it.Description, p.Description)
			if p.Quantity != nil {
				it.Quantity = document.CoerceDecimal(*p.Quantity)
			}
			if p.Rate != nil {
				it.Rate = document.CoerceDecimal(*p.Rate)
			}
			it.Amount = it.Quantity.Mul(it.Rate)
			err = nil
			return
		}
	})
	return err
}

// RemoveItem elimina una línea. El modelo permite quedar en cero líneas;
// la superficie de edición es la que exige mínimo una.
func (s *Store) RemoveItem(id string) error {
	err := domain.ErrItemNotFound
	s.mutate(func(st *entity.DocumentState) {
		for i := range st.Items {
			if st.Items[i].ID == id {
				st.Items = append(st.Items[:i], st.Items[i+1:]...)
				err = nil
				return
			}
		}
	})
	return err
}

// ── Tipo, numeración y ciclo de vida ─────────────────────────────────────────

// SetDocumentType cambia el tipo y restaura la cabecera a los defaults de
// ese tipo (título, prefijo de número, plazo, nota de pie) conservando la
// fecha de emisión actual y sin tocar emisor, cliente ni líneas.
func (s *Store) SetDocumentType(t entity.DocumentType) error {
	if _, ok := map[entity.DocumentType]bool{
		entity.DocInvoice: true, entity.DocTaxInvoice: true,
		entity.DocQuotation: true, entity.DocEstimate: true,
		entity.DocReceipt: true, entity.DocCreditNote: true,
	}[t]; !ok {
		return domain.ErrInvalidInput
	}
	s.mutate(func(st *entity.DocumentState) {
		meta := defaultMeta(t, s.now(), s.defaults.Terms)
		if st.Meta.IssueDate != "" {
			meta.IssueDate = st.Meta.IssueDate
			meta.DueDate = document.AddDays(meta.IssueDate, *meta.PaymentTerms)
		}
		st.Meta = meta
	})
	return nil
}

// GenerateNewNumber emite el siguiente número y lo aplica a la cabecera.
func (s *Store) GenerateNewNumber() string {
	var next string
	s.mutate(func(st *entity.DocumentState) {
		next = document.NextNumber(s.lastNumber, st.Meta.DocumentType)
		s.lastNumber = next
		st.Meta.DocumentNumber = next
	})
	return next
}

// Reset "documento nuevo, mismo perfil": conserva el perfil del emisor, su
// preferencia de modo y el tipo de documento actual; restaura cliente,
// líneas, dinero y cabecera a defaults y emite número nuevo.
func (s *Store) Reset() {
	s.mutate(func(st *entity.DocumentState) {
		issuer := st.Issuer.Clone()
		mode := st.IssuerMode
		docType := st.Meta.DocumentType

		next := document.NextNumber(s.lastNumber, docType)
		s.lastNumber = next

		*st = defaultState(s.defaults, s.now())
		st.Issuer = issuer
		st.IssuerMode = mode
		st.Meta = defaultMeta(docType, s.now(), s.defaults.Terms)
		st.Meta.DocumentNumber = next
	})
}

// Clear borra todo a los defaults iniciales, incluido el perfil del emisor
// y el contador de numeración.
func (s *Store) Clear() {
	s.mutate(func(st *entity.DocumentState) {
		s.lastNumber = ""
		*st = defaultState(s.defaults, s.now())
	})
}

// ── Helpers de merge ─────────────────────────────────────────────────────────

func applyStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func mergeAddress(dst *entity.Address, p dto.AddressPatch) {
	applyStr(&dst.Line1, p.Line1)
	applyStr(&dst.Line2, p.Line2)
	applyStr(&dst.City, p.City)
	applyStr(&dst.State, p.State)
	applyStr(&dst.PostalCode, p.PostalCode)
	applyStr(&dst.Country, p.Country)
}
