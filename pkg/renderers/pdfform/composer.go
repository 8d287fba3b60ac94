package pdfform

import (
	"strings"

	"github.com/goliatone/go-reportgen/pkg/frequency"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

// renderSections walks the schema in declaration order, skipping conditional
// sections whose required frequencies do not match the report's.
func (c *canvas) renderSections() {
	for _, section := range c.doc.Schema.Sections {
		if !frequency.SectionVisible(section, c.doc.Data) {
			continue
		}
		c.renderSection(section)
	}
}

func (c *canvas) renderSection(section schema.Section) {
	c.ensureRoom(breakHeader)
	c.drawSectionTitle(section)

	if desc := strings.TrimSpace(section.Description); desc != "" {
		c.writeWrapped(c.cleanText(desc), "I", 8.5, c.style.Muted)
		c.lc.Advance(1.5)
	}

	for _, field := range section.Fields {
		c.renderField(field)
	}

	for _, sub := range section.Subsections {
		c.renderSubsection(sub)
	}
	c.lc.Advance(3)
}

// drawSectionTitle draws the uppercased section headline over a filled band,
// prefixing the declared icon glyph when present.
func (c *canvas) drawSectionTitle(section schema.Section) {
	title := strings.ToUpper(c.cleanText(section.Title))
	if icon := strings.TrimSpace(section.Icon); icon != "" {
		title = icon + "  " + title
	}

	const bandHeight = 8.0
	c.setFillColor(c.style.HeaderFill)
	c.pdf.Rect(c.lc.Left(), c.lc.Y, c.lc.Width(), bandHeight, "F")

	c.setFont("B", 11)
	c.setTextColor(c.style.Primary)
	c.pdf.SetXY(c.lc.Left()+2, c.lc.Y)
	c.pdf.CellFormat(c.lc.Width()-4, bandHeight, c.tr(title), "", 0, "L", false, 0, "")
	c.lc.Advance(bandHeight + 2)
}

func (c *canvas) renderSubsection(sub schema.Subsection) {
	c.ensureRoom(breakSubheader)

	if title := strings.TrimSpace(sub.Title); title != "" {
		c.writeWrapped(c.cleanText(title), "B", 10, c.style.Accent)
		c.lc.Advance(1)
	}
	if desc := strings.TrimSpace(sub.Description); desc != "" {
		c.writeWrapped(c.cleanText(desc), "I", 8.5, c.style.Muted)
		c.lc.Advance(1)
	}

	c.lc.PushLeft(3)
	for _, field := range sub.Fields {
		c.renderField(field)
	}
	c.lc.PopLeft()
	c.lc.Advance(1.5)
}
