package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Extension namespace recognized on OpenAPI schemas. Properties may override
// the derived widget ("radio", "table", "photo", ...) and sections may carry
// conditional-display frequency tags:
//
//	x-reportgen:
//	  widget: radio
//	  frequencies: [mensal, anual]
const extensionNamespace = "x-reportgen"

// FromOpenAPI converts a named component schema of an OpenAPI document into a
// FormSchema. Top-level object properties become sections; their properties
// become fields. Scalar top-level properties are grouped into a leading
// "general" section so nothing silently drops.
func FromOpenAPI(ctx context.Context, raw []byte, name string) (FormSchema, error) {
	if len(raw) == 0 {
		return FormSchema{}, errors.New("schema: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return FormSchema{}, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return FormSchema{}, errors.New("schema: openapi document has no component schemas")
	}

	ref, ok := spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return FormSchema{}, fmt.Errorf("schema: component schema %q not found", name)
	}

	root := ref.Value
	doc := FormSchema{
		ID:    name,
		Title: strings.TrimSpace(root.Title),
	}
	if doc.Title == "" {
		doc.Title = name
	}

	var general Section
	for _, propName := range sortedPropertyNames(root.Properties) {
		prop := root.Properties[propName]
		if prop == nil || prop.Value == nil {
			continue
		}
		if isObjectSchema(prop.Value) && len(prop.Value.Properties) > 0 {
			doc.Sections = append(doc.Sections, sectionFromSchema(propName, prop.Value))
			continue
		}
		general.Fields = append(general.Fields, fieldFromSchema(propName, prop.Value))
	}

	if len(general.Fields) > 0 {
		general.ID = "general"
		general.Title = "Informações Gerais"
		doc.Sections = append([]Section{general}, doc.Sections...)
	}
	if len(doc.Sections) == 0 {
		return FormSchema{}, fmt.Errorf("schema: component schema %q yields no sections", name)
	}
	return doc, nil
}

func sectionFromSchema(id string, src *openapi3.Schema) Section {
	section := Section{
		ID:          id,
		Title:       strings.TrimSpace(src.Title),
		Description: src.Description,
	}
	if section.Title == "" {
		section.Title = humanize(id)
	}

	if ext := extensionMap(src.Extensions); ext != nil {
		if freqs := stringSlice(ext["frequencies"]); len(freqs) > 0 {
			section.ConditionalDisplay = true
			section.RequiredFrequencies = freqs
		}
		if icon, ok := ext["icon"].(string); ok {
			section.Icon = icon
		}
	}

	for _, propName := range sortedPropertyNames(src.Properties) {
		prop := src.Properties[propName]
		if prop == nil || prop.Value == nil {
			continue
		}
		field := fieldFromSchema(propName, prop.Value)
		field.DataKey = id + "." + propName
		section.Fields = append(section.Fields, field)
	}
	return section
}

func fieldFromSchema(id string, src *openapi3.Schema) Field {
	field := Field{
		ID:    id,
		Label: strings.TrimSpace(src.Title),
		Type:  widgetFor(src),
	}
	if field.Label == "" {
		field.Label = humanize(id)
	}

	if len(src.Enum) > 0 {
		for _, raw := range src.Enum {
			value := fmt.Sprintf("%v", raw)
			field.Options = append(field.Options, Option{Value: value, Label: value})
		}
	}

	switch field.Type {
	case FieldTypeInput:
		switch src.Format {
		case "date", "date-time":
			field.InputType = "date"
		case "":
			if isNumericSchema(src) {
				field.InputType = "number"
			}
		}
	case FieldTypeRepeater:
		if src.Items != nil && src.Items.Value != nil {
			for _, subName := range sortedPropertyNames(src.Items.Value.Properties) {
				sub := src.Items.Value.Properties[subName]
				if sub == nil || sub.Value == nil {
					continue
				}
				field.Fields = append(field.Fields, fieldFromSchema(subName, sub.Value))
			}
		}
	case FieldTypeTable:
		if src.Items != nil && src.Items.Value != nil {
			for _, colName := range sortedPropertyNames(src.Items.Value.Properties) {
				col := src.Items.Value.Properties[colName]
				if col == nil || col.Value == nil {
					continue
				}
				field.Columns = append(field.Columns, TableColumn{
					ID:    colName,
					Label: humanize(colName),
					Type:  columnTypeFor(col.Value),
				})
			}
		}
	}
	return field
}

func widgetFor(src *openapi3.Schema) FieldType {
	if ext := extensionMap(src.Extensions); ext != nil {
		if widget, ok := ext["widget"].(string); ok && widget != "" {
			return Field{Type: FieldType(widget)}.Kind()
		}
	}

	switch {
	case isBooleanSchema(src):
		return FieldTypeCheckbox
	case len(src.Enum) > 0:
		return FieldTypeSelect
	case isArraySchema(src):
		if src.Items != nil && src.Items.Value != nil && len(src.Items.Value.Properties) > 0 {
			return FieldTypeRepeater
		}
		return FieldTypeInput
	case isStringSchema(src) && src.MaxLength == nil && src.Format == "":
		return FieldTypeInput
	default:
		return FieldTypeInput
	}
}

func columnTypeFor(src *openapi3.Schema) ColumnType {
	switch {
	case isBooleanSchema(src):
		return ColumnTypeCheckbox
	case isNumericSchema(src):
		return ColumnTypeNumber
	case src.Format == "date" || src.Format == "date-time":
		return ColumnTypeDate
	case len(src.Enum) > 0:
		return ColumnTypeSelect
	default:
		return ColumnTypeText
	}
}

func extensionMap(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	ext, ok := raw[extensionNamespace].(map[string]any)
	if !ok {
		return nil
	}
	return ext
}

func stringSlice(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func sortedPropertyNames(props map[string]*openapi3.SchemaRef) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isObjectSchema(src *openapi3.Schema) bool  { return hasType(src, "object") }
func isArraySchema(src *openapi3.Schema) bool   { return hasType(src, "array") }
func isBooleanSchema(src *openapi3.Schema) bool { return hasType(src, "boolean") }
func isStringSchema(src *openapi3.Schema) bool  { return hasType(src, "string") }

func isNumericSchema(src *openapi3.Schema) bool {
	return hasType(src, "number") || hasType(src, "integer")
}

func hasType(src *openapi3.Schema, want string) bool {
	if src == nil || src.Type == nil {
		return false
	}
	for _, value := range src.Type.Slice() {
		if value == want {
			return true
		}
	}
	return false
}

// humanize turns camelCase or snake_case identifiers into readable labels.
func humanize(id string) string {
	if id == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range id {
		switch {
		case r == '_' || r == '-':
			b.WriteByte(' ')
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	label := strings.TrimSpace(b.String())
	if label == "" {
		return id
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
