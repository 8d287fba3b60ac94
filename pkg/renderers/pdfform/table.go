package pdfform

import (
	"strings"
	"time"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

const (
	tableRowHeight    = 6.0
	tableHeaderHeight = 7.0
	tableFontSize     = 8.0
)

// renderTable draws a bordered grid for an array of record objects. Every
// declared column renders for every record; rows paginate individually and
// the header row repeats after each break.
func renderTable(c *canvas, field schema.Field, value any, ok bool) {
	c.ensureRoom(breakField)
	c.writeLabel(c.cleanText(field.Label))

	if len(field.Columns) == 0 {
		c.writeValue("")
		return
	}

	records, _ := value.([]any)
	if !ok || len(records) == 0 {
		c.writeValue("")
		return
	}

	widths := columnWidths(field.Columns, c.lc.Width())

	c.drawTableHeader(field.Columns, widths)
	for _, record := range records {
		if c.lc.NeedsBreak(breakTableRow) {
			c.pdf.AddPage()
			c.lc.StartPage()
			c.drawTableHeader(field.Columns, widths)
		}
		c.drawTableRow(field.Columns, widths, record)
	}
	c.lc.Advance(3)
}

// columnWidths distributes the content width across columns, honoring any
// declared fixed widths and splitting the remainder evenly.
func columnWidths(columns []schema.TableColumn, total float64) []float64 {
	widths := make([]float64, len(columns))
	remaining := total
	flexible := 0
	for i, col := range columns {
		if col.Width > 0 && col.Width < total {
			widths[i] = col.Width
			remaining -= col.Width
		} else {
			flexible++
		}
	}
	if flexible > 0 {
		share := remaining / float64(flexible)
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

func (c *canvas) drawTableHeader(columns []schema.TableColumn, widths []float64) {
	c.setFont("B", tableFontSize)
	c.setFillColor(c.style.HeaderFill)
	c.setTextColor(c.style.Accent)
	c.setDrawColor(c.style.RuleLine)

	c.pdf.SetXY(c.lc.Left(), c.lc.Y)
	for i, col := range columns {
		label := col.Label
		if strings.TrimSpace(label) == "" {
			label = col.ID
		}
		c.pdf.CellFormat(widths[i], tableHeaderHeight, c.tr(c.cleanText(label)), "1", 0, "C", true, 0, "")
	}
	c.lc.Advance(tableHeaderHeight)
}

func (c *canvas) drawTableRow(columns []schema.TableColumn, widths []float64, record any) {
	c.setFont("", tableFontSize)
	c.setTextColor(colorBlack)
	c.setDrawColor(c.style.RuleLine)

	fields, _ := record.(map[string]any)

	c.pdf.SetXY(c.lc.Left(), c.lc.Y)
	for i, col := range columns {
		var cell any
		if fields != nil {
			cell = fields[col.ID]
		}
		align := col.Align
		if align == "" {
			align = defaultAlign(col.Type)
		}
		c.pdf.CellFormat(widths[i], tableRowHeight, c.tr(formatCell(col, cell)), "1", 0, align, false, 0, "")
	}
	c.lc.Advance(tableRowHeight)
}

func defaultAlign(kind schema.ColumnType) string {
	switch kind {
	case schema.ColumnTypeNumber:
		return "R"
	case schema.ColumnTypeCheckbox, schema.ColumnTypeDate:
		return "C"
	default:
		return "L"
	}
}

// formatCell renders one cell value per its column type. Missing or empty
// values always render as "-".
func formatCell(col schema.TableColumn, value any) string {
	if value == nil {
		return placeholderDash
	}

	switch col.Type {
	case schema.ColumnTypeDate:
		return dashWhenEmpty(formatDate(formdata.Stringify(value)))
	case schema.ColumnTypeNumber:
		text := formdata.Stringify(value)
		if strings.TrimSpace(text) == "" {
			return placeholderDash
		}
		if col.Unit != "" {
			text += " " + col.Unit
		}
		return text
	case schema.ColumnTypeCheckbox:
		if formdata.Checked(value) {
			return "Sim"
		}
		return "Não"
	case schema.ColumnTypeSelect:
		return dashWhenEmpty(optionLabel(col.Options, formdata.Stringify(value)))
	default:
		return dashWhenEmpty(formdata.Stringify(value))
	}
}

// acceptedDateLayouts are tried in order when localizing a stored date.
var acceptedDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// formatDate localizes ISO-style dates to dd/mm/yyyy. Unparsable values pass
// through unchanged so odd payloads still show something.
func formatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return raw
}
