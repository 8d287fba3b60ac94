package pdfform

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

// FieldRenderer draws one schema field onto the canvas. The value argument is
// the raw resolved payload; ok reports whether resolution found anything.
type FieldRenderer func(c *canvas, field schema.Field, value any, ok bool)

// FieldRegistry maps field types to their renderers. Lookups for types
// without an entry fall back to the generic renderer so no field ever
// disappears from the report.
type FieldRegistry struct {
	renderers map[schema.FieldType]FieldRenderer
	fallback  FieldRenderer
}

// NewFieldRegistry creates an empty registry with the generic fallback.
func NewFieldRegistry() *FieldRegistry {
	return &FieldRegistry{
		renderers: make(map[schema.FieldType]FieldRenderer),
		fallback:  renderGeneric,
	}
}

// NewDefaultFieldRegistry creates a registry with every built-in field
// renderer installed.
func NewDefaultFieldRegistry() *FieldRegistry {
	r := NewFieldRegistry()
	r.Register(schema.FieldTypeSectionHeader, renderSectionHeader)
	r.Register(schema.FieldTypeSubsectionHeader, renderSubsectionHeader)
	r.Register(schema.FieldTypeInput, renderInput)
	r.Register(schema.FieldTypeSelect, renderSelect)
	r.Register(schema.FieldTypeTextarea, renderTextarea)
	r.Register(schema.FieldTypeCheckbox, renderCheckbox)
	r.Register(schema.FieldTypeRadio, renderRadio)
	r.Register(schema.FieldTypePhoto, renderPhoto)
	r.Register(schema.FieldTypeRepeater, renderRepeater)
	r.Register(schema.FieldTypeTable, renderTable)
	r.Register(schema.FieldTypeSignature, renderSignatureField)
	r.Register(schema.FieldTypeUnknown, renderGeneric)
	return r
}

// Register installs a renderer for a field type, replacing any existing one.
func (r *FieldRegistry) Register(kind schema.FieldType, renderer FieldRenderer) {
	if renderer == nil {
		return
	}
	r.renderers[kind] = renderer
}

// Resolve returns the renderer for a field type, or the generic fallback.
func (r *FieldRegistry) Resolve(kind schema.FieldType) FieldRenderer {
	if renderer, ok := r.renderers[kind]; ok {
		return renderer
	}
	return r.fallback
}

// renderField resolves the field's value and dispatches through the registry.
func (c *canvas) renderField(field schema.Field) {
	value, ok := c.doc.Data.Resolve(field.Key())
	c.registry.Resolve(field.Kind())(c, field, value, ok)
}

// renderSectionHeader draws an inline headline field. Structural section
// titles come from the composer; this covers headers declared as fields.
func renderSectionHeader(c *canvas, field schema.Field, _ any, _ bool) {
	c.ensureRoom(breakHeader)
	c.lc.Advance(2)
	c.writeWrapped(strings.ToUpper(c.cleanText(field.Label)), "B", 11, c.style.Primary)
	c.lc.Advance(2)
}

func renderSubsectionHeader(c *canvas, field schema.Field, _ any, _ bool) {
	c.ensureRoom(breakSubheader)
	c.lc.Advance(1)
	c.writeWrapped(c.cleanText(field.Label), "B", 10, c.style.Accent)
	c.lc.Advance(1)
}

// renderInput draws a label/value pair, appending the declared unit to
// non-empty values.
func renderInput(c *canvas, field schema.Field, value any, ok bool) {
	c.ensureRoom(breakField)
	c.writeLabel(c.cleanText(field.Label))

	text := ""
	if ok {
		text = formdata.Stringify(value)
	}
	if text != "" && field.Unit != "" {
		text += " " + field.Unit
	}
	c.writeValue(text)
}

// renderSelect resolves the stored value against the declared options so the
// report shows the human label, not the stored code.
func renderSelect(c *canvas, field schema.Field, value any, ok bool) {
	c.ensureRoom(breakField)
	c.writeLabel(c.cleanText(field.Label))

	text := ""
	if ok {
		text = optionLabel(field.Options, formdata.Stringify(value))
	}
	c.writeValue(text)
}

// optionLabel maps a stored value to its option label. Matching is
// case-insensitive on the value; unmatched values pass through unchanged.
func optionLabel(options []schema.Option, stored string) string {
	if stored == "" {
		return ""
	}
	for _, opt := range options {
		if strings.EqualFold(opt.Value, stored) {
			return opt.Display()
		}
	}
	return stored
}

// renderTextarea draws free text capped at the configured character budget.
func renderTextarea(c *canvas, field schema.Field, value any, ok bool) {
	c.ensureRoom(breakField)
	c.writeLabel(c.cleanText(field.Label))

	text := ""
	if ok {
		text = truncate(formdata.Stringify(value), c.options.EffectiveTextLimit())
	}
	c.writeValue(text)
}

// renderCheckbox draws a small square, filled when the value counts as
// ticked, followed by the label on the same line.
func renderCheckbox(c *canvas, field schema.Field, value any, _ bool) {
	c.ensureRoom(breakField)

	const box = 4.0
	x := c.lc.Left()
	y := c.lc.Y

	c.setDrawColor(c.style.Accent)
	c.pdf.Rect(x, y, box, box, "D")
	if formdata.Checked(value) {
		c.setFillColor(c.style.Primary)
		c.pdf.Rect(x+0.8, y+0.8, box-1.6, box-1.6, "F")
	}

	c.setFont("", valueFontSize)
	c.setTextColor(colorBlack)
	c.pdf.SetXY(x+box+2, y-0.5)
	c.pdf.CellFormat(c.lc.Width()-box-2, lineHeight, c.tr(c.cleanText(field.Label)), "", 0, "L", false, 0, "")
	c.lc.Advance(box + 3)
}

// defaultTriState is the option set radio fields fall back to when the schema
// declares none.
var defaultTriState = []schema.Option{
	{Value: "sim", Label: "Sim"},
	{Value: "nao", Label: "Não"},
	{Value: "na", Label: "N/A"},
}

// renderRadio draws the question, then one circle per option with the
// selected one filled. Stored answers match option values after accent
// folding so "Não" and "nao" select the same circle. When IncludeField is
// set, a numeric or date follow-up renders beneath from "<dataKey>_value".
func renderRadio(c *canvas, field schema.Field, value any, ok bool) {
	c.ensureRoom(breakField)
	c.writeLabel(c.cleanText(field.Label))

	options := field.Options
	if len(options) == 0 {
		options = defaultTriState
	}

	stored := ""
	if ok {
		stored = normalizeAnswer(formdata.Stringify(value))
	}

	const radius = 1.8
	x := c.lc.Left() + 2
	y := c.lc.Y + radius + 0.5

	c.setFont("", valueFontSize)
	for _, opt := range options {
		selected := stored != "" && normalizeAnswer(opt.Value) == stored

		c.setDrawColor(c.style.Accent)
		c.pdf.Circle(x+radius, y, radius, "D")
		if selected {
			c.setFillColor(c.style.Primary)
			c.pdf.Circle(x+radius, y, radius-0.6, "F")
		}

		label := opt.Display()
		c.setTextColor(colorBlack)
		c.pdf.SetXY(x+2*radius+1.5, y-lineHeight/2)
		c.pdf.CellFormat(30, lineHeight, c.tr(label), "", 0, "L", false, 0, "")
		x += 2*radius + 1.5 + c.pdf.GetStringWidth(c.tr(label)) + 8
	}
	c.lc.Advance(2*radius + 3)

	if field.IncludeField {
		followKey := field.Key() + "_value"
		followValue, followOK := c.doc.Data.Resolve(followKey)
		label := field.FieldLabel
		if strings.TrimSpace(label) == "" {
			label = "Valor"
		}
		c.lc.PushLeft(4)
		renderInput(c, schema.Field{
			ID:        followKey,
			Label:     label,
			InputType: field.FieldType,
		}, followValue, followOK)
		c.lc.PopLeft()
	}
	c.lc.Advance(1)
}

// renderRepeater renders each record of an array value as an indented block
// of its sub-fields. Record scoping swaps the canvas data for the record map
// so sub-field keys resolve relative to the record.
func renderRepeater(c *canvas, field schema.Field, value any, ok bool) {
	c.ensureRoom(breakField)
	c.writeLabel(c.cleanText(field.Label))

	records, _ := value.([]any)
	if !ok || len(records) == 0 {
		c.writeValue("")
		return
	}

	outer := c.doc.Data
	defer func() { c.doc.Data = outer }()

	for i, record := range records {
		scope, isMap := record.(map[string]any)
		if !isMap {
			c.lc.PushLeft(6)
			c.writeValue(formdata.Stringify(record))
			c.lc.PopLeft()
			continue
		}

		c.lc.PushLeft(6)
		c.writeWrapped(fmt.Sprintf("Item %d", i+1), "B", labelFontSize, c.style.Muted)
		c.doc.Data = formdata.FormData(scope)
		for _, sub := range field.Fields {
			c.renderField(sub)
		}
		c.doc.Data = outer
		c.lc.PopLeft()
		c.lc.Advance(1)
	}
}

// renderGeneric is the fallback for unknown field types: a plain label/value
// pair so no declared field is silently dropped.
func renderGeneric(c *canvas, field schema.Field, value any, ok bool) {
	c.ensureRoom(breakField)
	c.writeLabel(c.cleanText(field.Label))

	text := ""
	if ok {
		text = formdata.Stringify(value)
	}
	c.writeValue(text)
}
