// Package model holds the shared report document model renderers consume:
// the resolved schema, the raw form data, and the caller-supplied inspection
// metadata, branding, and signature records.
package model

import (
	"strings"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

// Document is the fully resolved input a renderer lays out. Schema is nil on
// the legacy path. All fields are read-only during a rendering pass.
type Document struct {
	Title      string
	Schema     *schema.FormSchema
	Data       formdata.FormData
	General    *GeneralInformation
	Signatures *SignatureData
	Company    *CompanyData
}

// GeneralInformation is the flat inspection metadata block rendered at the
// top of every report. Absent fields render as the "-" placeholder, never
// blank.
type GeneralInformation struct {
	Company        string `json:"company,omitempty"`
	PropertyName   string `json:"propertyName,omitempty"`
	PropertyID     string `json:"propertyId,omitempty"`
	Address        string `json:"address,omitempty"`
	BuildingType   string `json:"buildingType,omitempty"`
	FloorArea      string `json:"floorArea,omitempty"`
	InspectionDate string `json:"inspectionDate,omitempty"`
	InspectionType string `json:"inspectionType,omitempty"`
	NextInspection string `json:"nextInspection,omitempty"`
	InspectorName  string `json:"inspectorName,omitempty"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
	Temperature    string `json:"temperature,omitempty"`
	Humidity       string `json:"humidity,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// Empty reports whether no structured information was supplied at all.
func (g *GeneralInformation) Empty() bool {
	return g == nil || *g == GeneralInformation{}
}

// SummaryLine builds the one-line banner shown beneath the report title:
// "Company – Property | Inspection type | Date". Missing parts are skipped.
func (g *GeneralInformation) SummaryLine() string {
	if g.Empty() {
		return ""
	}
	var parts []string
	owner := strings.TrimSpace(g.Company)
	property := strings.TrimSpace(g.PropertyName)
	switch {
	case owner != "" && property != "":
		parts = append(parts, owner+" – "+property)
	case owner != "":
		parts = append(parts, owner)
	case property != "":
		parts = append(parts, property)
	}
	if v := strings.TrimSpace(g.InspectionType); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(g.InspectionDate); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, " | ")
}

// Address is the structured company address used for branding and template
// placeholder substitution.
type Address struct {
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Line flattens the address into a single display line, skipping empty parts.
func (a Address) Line() string {
	var parts []string
	street := strings.TrimSpace(a.Street)
	if number := strings.TrimSpace(a.Number); street != "" && number != "" {
		street += ", " + number
	}
	for _, part := range []string{street, a.Complement, a.District, a.City, a.State, a.PostalCode} {
		if v := strings.TrimSpace(part); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " - ")
}

// ContactPerson identifies the company contact printed on reports.
type ContactPerson struct {
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// CompanyData carries the service company identity used for the branding
// header and for {{empresa.*}} placeholder substitution in free-text fields.
type CompanyData struct {
	Name        string        `json:"name"`
	TaxID       string        `json:"taxId,omitempty"`
	StateTaxID  string        `json:"stateTaxId,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Email       string        `json:"email,omitempty"`
	Website     string        `json:"website,omitempty"`
	LogoDataURI string        `json:"logo,omitempty"`
	Address     Address       `json:"address,omitempty"`
	Contact     ContactPerson `json:"contact,omitempty"`
}

// SignatureEntry is one party's signature block. Image, when present, is a
// data-URI payload; any other non-empty value renders the "signed digitally"
// caption.
type SignatureEntry struct {
	Name  string `json:"name,omitempty"`
	Date  string `json:"date,omitempty"`
	Image string `json:"image,omitempty"`
}

// Empty reports whether the entry carries nothing to render.
func (e SignatureEntry) Empty() bool {
	return strings.TrimSpace(e.Name) == "" && strings.TrimSpace(e.Date) == "" && strings.TrimSpace(e.Image) == ""
}

// SignatureData holds the inspector and client signature blocks.
type SignatureData struct {
	Inspector SignatureEntry `json:"inspector,omitempty"`
	Client    SignatureEntry `json:"client,omitempty"`
}

// Empty reports whether neither party signed.
func (s *SignatureData) Empty() bool {
	return s == nil || (s.Inspector.Empty() && s.Client.Empty())
}
