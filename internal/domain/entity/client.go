package entity

// Address dirección reutilizable (facturación y envío).
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"`
}

// ShippingDetails destinatario de envío cuando difiere de facturación.
type ShippingDetails struct {
	Name    string  `json:"name,omitempty"`
	Address Address `json:"address"`
}

// ClientProfile la parte que recibe el documento.
type ClientProfile struct {
	Name        string           `json:"name"`
	CompanyName string           `json:"company_name,omitempty"`
	TaxID       string           `json:"tax_id,omitempty"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Address     Address          `json:"address"`
	Shipping    *ShippingDetails `json:"shipping,omitempty"`
}

// Clone copia profunda del perfil del cliente.
func (c ClientProfile) Clone() ClientProfile {
	out := c
	if c.Shipping != nil {
		s := *c.Shipping
		out.Shipping = &s
	}
	return out
}
