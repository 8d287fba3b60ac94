// Package schema defines the declarative form-schema model that drives
// inspection report rendering, together with loading, registry, and
// resolution helpers.
package schema

import "strings"

// FieldType is the closed set of field kinds a schema may declare. Unknown
// tags normalize to FieldTypeUnknown so every field always renders through
// the generic fallback rather than disappearing.
type FieldType string

const (
	FieldTypeSectionHeader    FieldType = "section-header"
	FieldTypeSubsectionHeader FieldType = "subsection-header"
	FieldTypeInput            FieldType = "input"
	FieldTypeSelect           FieldType = "select"
	FieldTypeTextarea         FieldType = "textarea"
	FieldTypeCheckbox         FieldType = "checkbox"
	FieldTypeRadio            FieldType = "radio"
	FieldTypePhoto            FieldType = "photo"
	FieldTypeRepeater         FieldType = "repeater"
	FieldTypeTable            FieldType = "table"
	FieldTypeSignature        FieldType = "signature"
	FieldTypeUnknown          FieldType = "unknown"
)

var knownFieldTypes = map[FieldType]struct{}{
	FieldTypeSectionHeader:    {},
	FieldTypeSubsectionHeader: {},
	FieldTypeInput:            {},
	FieldTypeSelect:           {},
	FieldTypeTextarea:         {},
	FieldTypeCheckbox:         {},
	FieldTypeRadio:            {},
	FieldTypePhoto:            {},
	FieldTypeRepeater:         {},
	FieldTypeTable:            {},
	FieldTypeSignature:        {},
}

// ColumnType enumerates the cell formatting rules a table column may declare.
type ColumnType string

const (
	ColumnTypeDate     ColumnType = "date"
	ColumnTypeNumber   ColumnType = "number"
	ColumnTypeCheckbox ColumnType = "checkbox"
	ColumnTypeSelect   ColumnType = "select"
	ColumnTypeText     ColumnType = "text"
)

// Option is a value/label pair for select and radio fields.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Display returns the human label for an option, falling back to its value.
func (o Option) Display() string {
	if strings.TrimSpace(o.Label) != "" {
		return o.Label
	}
	return o.Value
}

// TableColumn describes one column of a tabular field.
type TableColumn struct {
	ID      string     `json:"id" yaml:"id"`
	Label   string     `json:"label,omitempty" yaml:"label,omitempty"`
	Type    ColumnType `json:"type,omitempty" yaml:"type,omitempty"`
	Unit    string     `json:"unit,omitempty" yaml:"unit,omitempty"`
	Options []Option   `json:"options,omitempty" yaml:"options,omitempty"`
	Align   string     `json:"align,omitempty" yaml:"align,omitempty"`
	Width   float64    `json:"width,omitempty" yaml:"width,omitempty"`
}

// Field models a single question inside a section or subsection. DataKey is
// the dotted path into the form data; when empty the field ID is used.
type Field struct {
	ID      string    `json:"id" yaml:"id"`
	DataKey string    `json:"dataKey,omitempty" yaml:"dataKey,omitempty"`
	Label   string    `json:"label,omitempty" yaml:"label,omitempty"`
	Type    FieldType `json:"type,omitempty" yaml:"type,omitempty"`

	// Input extras.
	Unit      string `json:"unit,omitempty" yaml:"unit,omitempty"`
	InputType string `json:"inputType,omitempty" yaml:"inputType,omitempty"`

	// Select/radio extras.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// Radio numeric/date follow-up, resolved at "<dataKey>_value".
	IncludeField bool   `json:"includeField,omitempty" yaml:"includeField,omitempty"`
	FieldLabel   string `json:"fieldLabel,omitempty" yaml:"fieldLabel,omitempty"`
	FieldType    string `json:"fieldType,omitempty" yaml:"fieldType,omitempty"`

	// Table extras.
	Columns []TableColumn `json:"columns,omitempty" yaml:"columns,omitempty"`

	// Repeater sub-fields.
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Key returns the data path for the field, defaulting to its ID.
func (f Field) Key() string {
	if strings.TrimSpace(f.DataKey) != "" {
		return f.DataKey
	}
	return f.ID
}

// Kind normalizes the declared type tag. Empty tags default to input;
// anything outside the closed set maps to FieldTypeUnknown.
func (f Field) Kind() FieldType {
	tag := FieldType(strings.TrimSpace(strings.ToLower(string(f.Type))))
	if tag == "" {
		return FieldTypeInput
	}
	if _, ok := knownFieldTypes[tag]; ok {
		return tag
	}
	return FieldTypeUnknown
}

// Subsection groups fields under a secondary heading.
type Subsection struct {
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Section is an ordered group of fields and subsections. Conditional sections
// only render when the inspection frequency matches one of the declared
// required frequencies; sections without the flag always render.
type Section struct {
	ID                  string       `json:"id" yaml:"id"`
	Title               string       `json:"title" yaml:"title"`
	Icon                string       `json:"icon,omitempty" yaml:"icon,omitempty"`
	Description         string       `json:"description,omitempty" yaml:"description,omitempty"`
	Fields              []Field      `json:"fields,omitempty" yaml:"fields,omitempty"`
	Subsections         []Subsection `json:"subsections,omitempty" yaml:"subsections,omitempty"`
	ConditionalDisplay  bool         `json:"conditionalDisplay,omitempty" yaml:"conditionalDisplay,omitempty"`
	RequiredFrequencies []string     `json:"requiredFrequencies,omitempty" yaml:"requiredFrequencies,omitempty"`
}

// FormSchema is the declarative description of a complete inspection form.
// Once resolved for a report it is treated as immutable for that rendering
// pass.
type FormSchema struct {
	ID       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}
