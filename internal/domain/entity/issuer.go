package entity

// Tipos de firma soportados para el asset de firma.
const (
	SignatureDraw   = "draw"
	SignatureUpload = "upload"
	SignatureTyped  = "typed"
)

// BrandAsset imagen embebida (logo) como data URL.
type BrandAsset struct {
	DataURL  string `json:"data_url"`
	Filename string `json:"filename,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// TypedSignature payload cuando la firma es tipeada (no dibujada ni subida).
type TypedSignature struct {
	Text  string `json:"text"`
	Font  string `json:"font"`
	Color string `json:"color"`
}

// SignatureAsset firma del emisor: dibujada, subida o tipeada.
type SignatureAsset struct {
	BrandAsset
	Kind  string          `json:"kind"`
	Typed *TypedSignature `json:"typed,omitempty"`
}

// Branding opciones visuales del emisor.
type Branding struct {
	Logo             *BrandAsset     `json:"logo,omitempty"`
	Signature        *SignatureAsset `json:"signature,omitempty"`
	LogoEnabled      bool            `json:"logo_enabled"`
	SignatureEnabled bool            `json:"signature_enabled"`
	LogoWidthPx      int             `json:"logo_width_px"`
}

// BusinessInfo datos legales; presente solo cuando Kind == "business".
type BusinessInfo struct {
	LegalName  string `json:"legal_name"`
	TradeName  string `json:"trade_name,omitempty"`
	TaxID      string `json:"tax_id,omitempty"`
	TaxIDLabel string `json:"tax_id_label,omitempty"`
}

// ContactInfo persona de contacto del emisor.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Tipos de método de pago (variante etiquetada; cada tipo usa su subconjunto
// de campos).
const (
	PaymentBank    = "bank"
	PaymentUPI     = "upi"
	PaymentPaypal  = "paypal"
	PaymentCashapp = "cashapp"
	PaymentCustom  = "custom"
)

// PaymentMethod método de cobro del emisor.
type PaymentMethod struct {
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`

	// bank
	BankName      string `json:"bank_name,omitempty"`
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	BankCode      string `json:"bank_code,omitempty"` // IFSC / SWIFT / routing

	// upi
	UPIID string `json:"upi_id,omitempty"`

	// paypal
	PaypalEmail string `json:"paypal_email,omitempty"`

	// cashapp
	CashTag string `json:"cash_tag,omitempty"`

	// custom
	CustomValue string `json:"custom_value,omitempty"`
}

// Preferences valores por defecto del emisor para documentos nuevos.
type Preferences struct {
	DefaultCurrency string `json:"default_currency"`
	DefaultTitle    string `json:"default_title"`
	DefaultTerms    int    `json:"default_terms"`
	DefaultNote     string `json:"default_note,omitempty"`
}

// IssuerProfile la parte que emite el documento (individual o empresa).
type IssuerProfile struct {
	Kind           string          `json:"kind"` // individual | business
	Contact        ContactInfo     `json:"contact"`
	Address        Address         `json:"address"`
	Business       *BusinessInfo   `json:"business,omitempty"`
	Branding       Branding        `json:"branding"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	Preferences    Preferences     `json:"preferences"`
}

// DisplayName resuelve el nombre a mostrar: tradeName → legalName → contacto.
func (p IssuerProfile) DisplayName() string {
	if p.Business != nil {
		if p.Business.TradeName != "" {
			return p.Business.TradeName
		}
		if p.Business.LegalName != "" {
			return p.Business.LegalName
		}
	}
	return p.Contact.Name
}

// Clone copia profunda del perfil del emisor.
func (p IssuerProfile) Clone() IssuerProfile {
	out := p
	if p.Business != nil {
		b := *p.Business
		out.Business = &b
	}
	if p.Branding.Logo != nil {
		l := *p.Branding.Logo
		out.Branding.Logo = &l
	}
	if p.Branding.Signature != nil {
		s := *p.Branding.Signature
		if p.Branding.Signature.Typed != nil {
			t := *p.Branding.Signature.Typed
			s.Typed = &t
		}
		out.Branding.Signature = &s
	}
	out.PaymentMethods = make([]PaymentMethod, len(p.PaymentMethods))
	copy(out.PaymentMethods, p.PaymentMethods)
	return out
}
