package docstore

import (
	"regexp"
	"strings"

	"github.com/jhoicas/facturador-api/internal/application/dto"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// Validación de perfiles: no fatal, bloquea avanzar en el flujo de edición
// con una lista de errores por campo.

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func missing(v string) bool { return strings.TrimSpace(v) == "" }

func validateAddress(prefix string, a entity.Address, out []dto.FieldError) []dto.FieldError {
	if missing(a.Line1) {
		out = append(out, dto.FieldError{Field: prefix + ".line1", Message: "Address line is required"})
	}
	if missing(a.City) {
		out = append(out, dto.FieldError{Field: prefix + ".city", Message: "City is required"})
	}
	if missing(a.State) {
		out = append(out, dto.FieldError{Field: prefix + ".state", Message: "State is required"})
	}
	if missing(a.PostalCode) {
		out = append(out, dto.FieldError{Field: prefix + ".postal_code", Message: "Postal code is required"})
	}
	return out
}

// ValidateIssuer perfil del emisor: nombre, email válido, dirección completa
// y razón social cuando está en modo empresa.
func ValidateIssuer(p entity.IssuerProfile) []dto.FieldError {
	var out []dto.FieldError
	if missing(p.Contact.Name) {
		out = append(out, dto.FieldError{Field: "issuer.contact.name", Message: "Name is required"})
	}
	if missing(p.Contact.Email) {
		out = append(out, dto.FieldError{Field: "issuer.contact.email", Message: "Email is required"})
	} else if !emailPattern.MatchString(p.Contact.Email) {
		out = append(out, dto.FieldError{Field: "issuer.contact.email", Message: "Email is not valid"})
	}
	out = validateAddress("issuer.address", p.Address, out)
	if p.Kind == "business" && (p.Business == nil || missing(p.Business.LegalName)) {
		out = append(out, dto.FieldError{Field: "issuer.business.legal_name", Message: "Legal name is required for business mode"})
	}
	return out
}

// ValidateClient perfil del cliente: nombre, email válido y dirección.
func ValidateClient(c entity.ClientProfile) []dto.FieldError {
	var out []dto.FieldError
	if missing(c.Name) {
		out = append(out, dto.FieldError{Field: "client.name", Message: "Name is required"})
	}
	if !missing(c.Email) && !emailPattern.MatchString(c.Email) {
		out = append(out, dto.FieldError{Field: "client.email", Message: "Email is not valid"})
	}
	out = validateAddress("client.address", c.Address, out)
	return out
}

// Validate valida ambos perfiles del estado actual.
func (s *Store) Validate() []dto.FieldError {
	snap := s.Snapshot()
	out := ValidateIssuer(snap.Issuer)
	return append(out, ValidateClient(snap.Client)...)
}
