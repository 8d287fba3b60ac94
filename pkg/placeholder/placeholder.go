// Package placeholder substitutes company tokens of the form {{empresa.X}}
// inside free-text answers before they reach the PDF canvas. The token set is
// a fixed enumeration derived from CompanyData; unknown tokens render empty.
// Substitution is fail-soft: text that does not parse as a template passes
// through untouched.
package placeholder

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-reportgen/pkg/model"
)

// Recognized token names under the "empresa" namespace. Anything outside
// this list resolves to the empty string.
const (
	TokenName         = "nome"
	TokenTaxID        = "cnpj"
	TokenStateTaxID   = "ie"
	TokenPhone        = "telefone"
	TokenEmail        = "email"
	TokenWebsite      = "site"
	TokenAddress      = "endereco"
	TokenStreet       = "rua"
	TokenNumber       = "numero"
	TokenDistrict     = "bairro"
	TokenCity         = "cidade"
	TokenState        = "estado"
	TokenPostalCode   = "cep"
	TokenContact      = "contato"
	TokenContactPhone = "contato_telefone"
	TokenContactEmail = "contato_email"
)

// Context enumerates the closed token set for one company.
func Context(company *model.CompanyData) map[string]string {
	tokens := map[string]string{
		TokenName:         "",
		TokenTaxID:        "",
		TokenStateTaxID:   "",
		TokenPhone:        "",
		TokenEmail:        "",
		TokenWebsite:      "",
		TokenAddress:      "",
		TokenStreet:       "",
		TokenNumber:       "",
		TokenDistrict:     "",
		TokenCity:         "",
		TokenState:        "",
		TokenPostalCode:   "",
		TokenContact:      "",
		TokenContactPhone: "",
		TokenContactEmail: "",
	}
	if company == nil {
		return tokens
	}
	tokens[TokenName] = company.Name
	tokens[TokenTaxID] = company.TaxID
	tokens[TokenStateTaxID] = company.StateTaxID
	tokens[TokenPhone] = company.Phone
	tokens[TokenEmail] = company.Email
	tokens[TokenWebsite] = company.Website
	tokens[TokenAddress] = company.Address.Line()
	tokens[TokenStreet] = company.Address.Street
	tokens[TokenNumber] = company.Address.Number
	tokens[TokenDistrict] = company.Address.District
	tokens[TokenCity] = company.Address.City
	tokens[TokenState] = company.Address.State
	tokens[TokenPostalCode] = company.Address.PostalCode
	tokens[TokenContact] = company.Contact.Name
	tokens[TokenContactPhone] = company.Contact.Phone
	tokens[TokenContactEmail] = company.Contact.Email
	return tokens
}

// Apply substitutes the enumerated tokens into text. Text without template
// markers, or text that fails to parse, is returned unchanged.
func Apply(text string, company *model.CompanyData) string {
	if !strings.Contains(text, "{{") {
		return text
	}

	tmpl, err := pongo2.FromString(text)
	if err != nil {
		return text
	}

	tokens := Context(company)
	empresa := make(map[string]any, len(tokens))
	for name, value := range tokens {
		empresa[name] = value
	}

	out, err := tmpl.Execute(pongo2.Context{"empresa": empresa})
	if err != nil {
		return text
	}
	return out
}
