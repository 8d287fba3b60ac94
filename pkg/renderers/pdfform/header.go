package pdfform

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-reportgen/pkg/model"
)

const productMark = "FireReport"

// drawHeader paints the first-page branding band: product mark on the left,
// company identity on the right, then the centered report title and summary
// line. The cursor lands at firstPageTop, or firstPageTopSummary when a
// summary line was drawn.
func (c *canvas) drawHeader() {
	const bandTop = 12.0
	const bandHeight = 22.0

	c.setFillColor(c.style.HeaderFill)
	c.pdf.Rect(margin, bandTop, pageWidth-2*margin, bandHeight, "F")

	// Product mark.
	c.setFont("B", 16)
	c.setTextColor(c.style.Primary)
	c.pdf.SetXY(margin+4, bandTop+4)
	c.pdf.CellFormat(60, 8, productMark, "", 0, "L", false, 0, "")
	c.setFont("", 7)
	c.setTextColor(c.style.Muted)
	c.pdf.SetXY(margin+4, bandTop+12)
	c.pdf.CellFormat(80, 4, c.tr("Relatório de Inspeção de Sistemas de Combate a Incêndio"), "", 0, "L", false, 0, "")

	c.drawCompanyIdentity(bandTop, bandHeight)

	// Title, centered beneath the band.
	title := strings.TrimSpace(c.doc.Title)
	if title == "" {
		title = "Relatório de Inspeção"
	}
	c.setFont("B", 13)
	c.setTextColor(colorBlack)
	c.pdf.SetXY(margin, bandTop+bandHeight+4)
	c.pdf.CellFormat(pageWidth-2*margin, 7, c.tr(c.cleanText(title)), "", 0, "C", false, 0, "")

	c.lc.Y = firstPageTop
	if summary := c.doc.General.SummaryLine(); summary != "" {
		c.setFont("", 9)
		c.setTextColor(c.style.Muted)
		c.pdf.SetXY(margin, bandTop+bandHeight+11)
		c.pdf.CellFormat(pageWidth-2*margin, 5, c.tr(c.cleanText(summary)), "", 0, "C", false, 0, "")
		c.lc.Y = firstPageTopSummary
	}

	c.setDrawColor(c.style.RuleLine)
	c.pdf.Line(margin, c.lc.Y-3, pageWidth-margin, c.lc.Y-3)
}

// drawCompanyIdentity draws the service company's logo or name on the right
// side of the branding band.
func (c *canvas) drawCompanyIdentity(bandTop, bandHeight float64) {
	company := c.doc.Company
	if company == nil {
		return
	}

	right := pageWidth - margin - 4

	if uri := strings.TrimSpace(company.LogoDataURI); uri != "" {
		if img, err := parseDataURI(uri); err == nil {
			const logoW, logoH = 36.0, 14.0
			c.embedImage("company-logo", img, right-logoW, bandTop+3, logoW, logoH)
			c.drawCompanyDetail(company, right, bandTop+logoH+4)
			return
		}
	}

	c.setFont("B", 10)
	c.setTextColor(c.style.Accent)
	c.pdf.SetXY(right-70, bandTop+4)
	c.pdf.CellFormat(70, 5, c.tr(company.Name), "", 0, "R", false, 0, "")
	c.drawCompanyDetail(company, right, bandTop+10)
}

func (c *canvas) drawCompanyDetail(company *model.CompanyData, right, y float64) {
	var details []string
	if v := strings.TrimSpace(company.TaxID); v != "" {
		details = append(details, "CNPJ: "+v)
	}
	if v := strings.TrimSpace(company.Phone); v != "" {
		details = append(details, v)
	}
	if len(details) == 0 {
		return
	}
	c.setFont("", 7)
	c.setTextColor(c.style.Muted)
	c.pdf.SetXY(right-70, y)
	c.pdf.CellFormat(70, 4, c.tr(strings.Join(details, " | ")), "", 0, "R", false, 0, "")
}

// generalRow is one labeled line of the general information grid.
type generalRow struct {
	label string
	value string
}

// drawGeneralInfo renders the inspection metadata as a two-column grid. The
// block always renders; absent fields show the "-" placeholder.
func (c *canvas) drawGeneralInfo() {
	g := c.doc.General
	if g == nil {
		g = &model.GeneralInformation{}
	}

	rows := []generalRow{
		{"Empresa", g.Company},
		{"Propriedade", g.PropertyName},
		{"Código", g.PropertyID},
		{"Endereço", g.Address},
		{"Tipo de Edificação", g.BuildingType},
		{"Área Construída", g.FloorArea},
		{"Data da Inspeção", formatDate(g.InspectionDate)},
		{"Tipo de Inspeção", g.InspectionType},
		{"Próxima Inspeção", formatDate(g.NextInspection)},
		{"Responsável Técnico", g.InspectorName},
		{"Registro Profissional", g.LicenseNumber},
		{"Temperatura", g.Temperature},
		{"Umidade", g.Humidity},
	}

	c.ensureRoom(breakHeader)
	c.writeWrapped("INFORMAÇÕES GERAIS", "B", 11, c.style.Primary)
	c.lc.Advance(1.5)

	const rowHeight = 5.5
	colWidth := c.lc.Width() / 2

	for i := 0; i < len(rows); i += 2 {
		c.ensureRoom(breakField)
		c.drawGeneralCell(rows[i], c.lc.Left(), colWidth, rowHeight)
		if i+1 < len(rows) {
			c.drawGeneralCell(rows[i+1], c.lc.Left()+colWidth, colWidth, rowHeight)
		}
		c.lc.Advance(rowHeight)
	}

	if notes := strings.TrimSpace(g.Notes); notes != "" {
		c.lc.Advance(1.5)
		c.writeLabel("Observações")
		c.writeValue(notes)
	}
	c.lc.Advance(4)
}

func (c *canvas) drawGeneralCell(row generalRow, x, width, height float64) {
	c.setFont("B", 8.5)
	c.setTextColor(c.style.Accent)
	c.pdf.SetXY(x, c.lc.Y)
	labelWidth := c.pdf.GetStringWidth(c.tr(row.label+": ")) + 1
	c.pdf.CellFormat(labelWidth, height, c.tr(row.label+":"), "", 0, "L", false, 0, "")

	c.setFont("", 8.5)
	c.setTextColor(colorBlack)
	c.pdf.CellFormat(width-labelWidth, height, c.tr(dashWhenEmpty(c.cleanText(row.value))), "", 0, "L", false, 0, "")
}

// applyFooters stamps every page's footer once the final page count is known:
// a rule line, the artifact filename on the left, the generating user
// centered, and "Página X de N" on the right.
func (c *canvas) applyFooters() {
	total := c.pdf.PageCount()
	const footerY = pageHeight - 10

	for page := 1; page <= total; page++ {
		c.pdf.SetPage(page)

		c.setDrawColor(c.style.RuleLine)
		c.pdf.Line(margin, footerY-2, pageWidth-margin, footerY-2)

		c.setFont("", 7)
		c.setTextColor(c.style.Muted)

		if name := strings.TrimSpace(c.options.Filename); name != "" {
			c.pdf.SetXY(margin, footerY)
			c.pdf.CellFormat(70, 4, c.tr(name), "", 0, "L", false, 0, "")
		}
		c.pdf.SetXY(margin+60, footerY)
		c.pdf.CellFormat(pageWidth-2*margin-120, 4, c.tr("Gerado por "+c.options.EffectiveGeneratedBy()), "", 0, "C", false, 0, "")
		c.pdf.SetXY(pageWidth-margin-40, footerY)
		c.pdf.CellFormat(40, 4, c.tr(fmt.Sprintf("Página %d de %d", page, total)), "", 0, "R", false, 0, "")
	}
	c.pdf.SetPage(total)
}
