// Package legacy renders reports for payloads that resolve no schema. It
// scans the flat form data, infers a section for every answer key, and lays
// the questions out with tri-state answer markers. Layout is intentionally
// simpler than the schema path; it exists so old payloads keep producing
// reports.
package legacy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-reportgen/internal/inference"
	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/frequency"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/render"
)

// RendererName is the registry key for the schemaless PDF path.
const RendererName = "pdf-legacy"

const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 15.0
	contentTop = 25.0

	breakQuestion = 30.0
	breakHeader   = 50.0
	breakSummary  = 60.0

	lineHeight = 5.0
)

// answer is one scanned question with its normalized response.
type answer struct {
	question inference.Question
	text     string
}

// Renderer is the schemaless fallback PDF renderer.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the legacy renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return RendererName
}

func (r *Renderer) ContentType() string {
	return "application/pdf"
}

// Render scans the payload, groups answers by inferred cadence, and draws
// each group under a shaded section header, closing with the non-conformity
// summary and the footer pass.
func (r *Renderer) Render(ctx context.Context, doc model.Document, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("legacy: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(doc.Data) == 0 {
		return nil, errors.New("legacy: document has no form data")
	}

	c := newCanvas(doc, options)

	grouped := groupAnswers(doc.Data)

	c.drawHeader()
	c.drawGeneralInfo()
	for _, tag := range frequency.Order() {
		answers := grouped[tag]
		if len(answers) == 0 {
			continue
		}
		c.drawSection(tag, answers)
	}
	c.drawNonConformities(grouped)
	c.applyFooters()

	if c.pdf.Err() {
		return nil, fmt.Errorf("legacy: layout: %w", c.pdf.Error())
	}

	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("legacy: serialize: %w", err)
	}
	return buf.Bytes(), nil
}

// groupAnswers scans the flat payload, skipping header keys and non-scalar
// values, and buckets the rest by inferred cadence. Keys sort alphabetically
// inside each bucket for stable output.
func groupAnswers(data formdata.FormData) map[frequency.Tag][]answer {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	grouped := make(map[frequency.Tag][]answer)
	for _, key := range keys {
		if inference.IsGeneralKey(key) {
			continue
		}
		value := formdata.Normalize(data[key])
		switch value.(type) {
		case map[string]any, []any:
			continue
		}
		q := inference.QuestionFor(key)
		grouped[q.Section] = append(grouped[q.Section], answer{
			question: q,
			text:     formdata.Stringify(value),
		})
	}
	return grouped
}

type canvas struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	style   render.Style
	options render.RenderOptions
	doc     model.Document
	lc      *render.Context
}

func newCanvas(doc model.Document, options render.RenderOptions) *canvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	style := render.DefaultStyle()
	if options.Style != nil {
		style = *options.Style
	}

	return &canvas{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		style:   style,
		options: options,
		doc:     doc,
		lc: render.NewContext(render.Metrics{
			PageWidth:  pageWidth,
			PageHeight: pageHeight,
			Margin:     margin,
			ContentTop: contentTop,
		}),
	}
}

func (c *canvas) ensureRoom(threshold float64) {
	if !c.lc.NeedsBreak(threshold) {
		return
	}
	c.pdf.AddPage()
	c.lc.StartPage()
}

func (c *canvas) setFont(styleStr string, size float64) {
	c.pdf.SetFont(c.style.FontFamily, styleStr, size)
}

func (c *canvas) drawHeader() {
	title := strings.TrimSpace(c.doc.Title)
	if title == "" {
		title = "Relatório de Inspeção"
	}

	c.setFont("B", 14)
	c.pdf.SetTextColor(c.style.Primary[0], c.style.Primary[1], c.style.Primary[2])
	c.pdf.SetXY(margin, 15)
	c.pdf.CellFormat(pageWidth-2*margin, 8, c.tr(title), "", 0, "C", false, 0, "")

	if summary := c.doc.General.SummaryLine(); summary != "" {
		c.setFont("", 9)
		c.pdf.SetTextColor(c.style.Muted[0], c.style.Muted[1], c.style.Muted[2])
		c.pdf.SetXY(margin, 23)
		c.pdf.CellFormat(pageWidth-2*margin, 5, c.tr(summary), "", 0, "C", false, 0, "")
		c.lc.Y = 32
	} else {
		c.lc.Y = 28
	}

	c.pdf.SetDrawColor(c.style.RuleLine[0], c.style.RuleLine[1], c.style.RuleLine[2])
	c.pdf.Line(margin, c.lc.Y-2, pageWidth-margin, c.lc.Y-2)
	c.lc.Advance(2)
}

func (c *canvas) drawSection(tag frequency.Tag, answers []answer) {
	c.ensureRoom(breakHeader)

	const bandHeight = 8.0
	c.pdf.SetFillColor(c.style.HeaderFill[0], c.style.HeaderFill[1], c.style.HeaderFill[2])
	c.pdf.Rect(margin, c.lc.Y, pageWidth-2*margin, bandHeight, "F")

	c.setFont("B", 11)
	c.pdf.SetTextColor(c.style.Primary[0], c.style.Primary[1], c.style.Primary[2])
	c.pdf.SetXY(margin+2, c.lc.Y)
	c.pdf.CellFormat(pageWidth-2*margin-4, bandHeight, c.tr(strings.ToUpper(tag.Label())), "", 0, "L", false, 0, "")
	c.lc.Advance(bandHeight + 2)

	for _, a := range answers {
		c.drawQuestion(a)
	}
	c.lc.Advance(3)
}

// drawQuestion writes the question text then the three tri-state markers with
// the matching one filled. Answers outside the tri-state set print as plain
// text instead.
func (c *canvas) drawQuestion(a answer) {
	c.ensureRoom(breakQuestion)

	c.setFont("", 9)
	c.pdf.SetTextColor(0, 0, 0)
	// Wrap the UTF-8 text; translate each line to the page encoding only at
	// draw time. SplitText cannot take translated bytes.
	lines := c.pdf.SplitText(foldLatin(a.question.Text), pageWidth-2*margin)
	for _, line := range lines {
		c.pdf.SetXY(margin, c.lc.Y)
		c.pdf.CellFormat(pageWidth-2*margin, lineHeight, c.tr(line), "", 0, "L", false, 0, "")
		c.lc.Advance(lineHeight)
	}

	normalized := normalizeAnswer(a.text)
	switch normalized {
	case "sim", "nao", "na", "n/a", "true", "false", "":
		c.drawTriState(normalized)
	default:
		c.setFont("I", 9)
		c.pdf.SetTextColor(c.style.Accent[0], c.style.Accent[1], c.style.Accent[2])
		c.pdf.SetXY(margin+4, c.lc.Y)
		c.pdf.CellFormat(pageWidth-2*margin-4, lineHeight, c.tr(a.text), "", 0, "L", false, 0, "")
		c.lc.Advance(lineHeight + 2)
	}
}

func (c *canvas) drawTriState(normalized string) {
	selected := normalized
	switch normalized {
	case "true":
		selected = "sim"
	case "false":
		selected = "nao"
	case "n/a":
		selected = "na"
	}

	const radius = 1.8
	x := margin + 4
	y := c.lc.Y + radius + 0.5

	c.setFont("", 9)
	for _, opt := range []struct{ value, label string }{
		{"sim", "Sim"},
		{"nao", "Não"},
		{"na", "N/A"},
	} {
		c.pdf.SetDrawColor(c.style.Accent[0], c.style.Accent[1], c.style.Accent[2])
		c.pdf.Circle(x+radius, y, radius, "D")
		if opt.value == selected {
			fill := c.style.Primary
			if opt.value == "nao" {
				fill = c.style.Danger
			}
			c.pdf.SetFillColor(fill[0], fill[1], fill[2])
			c.pdf.Circle(x+radius, y, radius-0.6, "F")
		}

		c.pdf.SetTextColor(0, 0, 0)
		c.pdf.SetXY(x+2*radius+1.5, y-lineHeight/2)
		c.pdf.CellFormat(20, lineHeight, c.tr(opt.label), "", 0, "L", false, 0, "")
		x += 2*radius + 1.5 + c.pdf.GetStringWidth(c.tr(opt.label)) + 10
	}
	c.lc.Advance(2*radius + 3.5)
}

// drawNonConformities draws the closing summary box listing every question
// answered "não". The box is omitted entirely when there are none.
func (c *canvas) drawNonConformities(grouped map[frequency.Tag][]answer) {
	var failed []answer
	for _, tag := range frequency.Order() {
		for _, a := range grouped[tag] {
			if isNonConform(a.text) {
				failed = append(failed, a)
			}
		}
	}
	if len(failed) == 0 {
		return
	}

	c.ensureRoom(breakSummary)
	c.lc.Advance(3)

	boxHeight := 8.0 + float64(len(failed))*lineHeight + 2
	c.pdf.SetDrawColor(c.style.Danger[0], c.style.Danger[1], c.style.Danger[2])
	c.pdf.Rect(margin, c.lc.Y, pageWidth-2*margin, boxHeight, "D")

	c.setFont("B", 11)
	c.pdf.SetTextColor(c.style.Danger[0], c.style.Danger[1], c.style.Danger[2])
	c.pdf.SetXY(margin+2, c.lc.Y+1)
	heading := fmt.Sprintf("NÃO CONFORMIDADES (%d)", len(failed))
	c.pdf.CellFormat(pageWidth-2*margin-4, 7, c.tr(heading), "", 0, "L", false, 0, "")
	c.lc.Advance(8)

	c.setFont("", 9)
	c.pdf.SetTextColor(0, 0, 0)
	for _, a := range failed {
		c.pdf.SetXY(margin+4, c.lc.Y)
		c.pdf.CellFormat(pageWidth-2*margin-8, lineHeight, c.tr("• "+a.question.Text), "", 0, "L", false, 0, "")
		c.lc.Advance(lineHeight)
	}
	c.lc.Advance(4)
}

// isNonConform reports whether an answer counts as a failed item.
func isNonConform(text string) bool {
	switch normalizeAnswer(text) {
	case "nao", "false":
		return true
	}
	return false
}

func normalizeAnswer(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	return strings.ReplaceAll(lowered, "não", "nao")
}

// Typographic characters folded onto latin-1 stand-ins before wrapping.
// SplitText indexes the 256-entry font width table by rune, so anything
// above latin-1 must be folded before measuring.
var latinFold = strings.NewReplacer(
	"…", "...",
	"•", "·",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
)

func foldLatin(text string) string {
	text = latinFold.Replace(text)
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, text)
}

func dashWhenEmpty(text string) string {
	if strings.TrimSpace(text) == "" {
		return "-"
	}
	return text
}

var acceptedDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "02/01/2006"}

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

// drawGeneralInfo renders the inspection metadata as a two-column grid. The
// block always renders; absent fields show the "-" placeholder.
func (c *canvas) drawGeneralInfo() {
	g := c.doc.General
	if g == nil {
		g = &model.GeneralInformation{}
	}

	rows := []struct{ label, value string }{
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
	c.setFont("B", 11)
	c.pdf.SetTextColor(c.style.Primary[0], c.style.Primary[1], c.style.Primary[2])
	c.pdf.SetXY(margin, c.lc.Y)
	c.pdf.CellFormat(pageWidth-2*margin, 6, c.tr("INFORMAÇÕES GERAIS"), "", 0, "L", false, 0, "")
	c.lc.Advance(7.5)

	const rowHeight = 5.5
	colWidth := (pageWidth - 2*margin) / 2

	for i := 0; i < len(rows); i += 2 {
		c.ensureRoom(breakQuestion)
		c.drawGeneralCell(rows[i].label, rows[i].value, margin, colWidth, rowHeight)
		if i+1 < len(rows) {
			c.drawGeneralCell(rows[i+1].label, rows[i+1].value, margin+colWidth, colWidth, rowHeight)
		}
		c.lc.Advance(rowHeight)
	}

	if notes := strings.TrimSpace(g.Notes); notes != "" {
		c.lc.Advance(1.5)
		c.setFont("B", 9)
		c.pdf.SetTextColor(c.style.Accent[0], c.style.Accent[1], c.style.Accent[2])
		c.pdf.SetXY(margin, c.lc.Y)
		c.pdf.CellFormat(pageWidth-2*margin, lineHeight, c.tr("Observações"), "", 0, "L", false, 0, "")
		c.lc.Advance(lineHeight)

		c.setFont("", 9)
		c.pdf.SetTextColor(0, 0, 0)
		for _, line := range c.pdf.SplitText(foldLatin(notes), pageWidth-2*margin) {
			c.ensureRoom(breakQuestion)
			c.pdf.SetXY(margin, c.lc.Y)
			c.pdf.CellFormat(pageWidth-2*margin, lineHeight, c.tr(line), "", 0, "L", false, 0, "")
			c.lc.Advance(lineHeight)
		}
	}
	c.lc.Advance(4)
}

func (c *canvas) drawGeneralCell(label, value string, x, width, height float64) {
	c.setFont("B", 8.5)
	c.pdf.SetTextColor(c.style.Accent[0], c.style.Accent[1], c.style.Accent[2])
	c.pdf.SetXY(x, c.lc.Y)
	labelWidth := c.pdf.GetStringWidth(c.tr(label+": ")) + 1
	c.pdf.CellFormat(labelWidth, height, c.tr(label+":"), "", 0, "L", false, 0, "")

	c.setFont("", 8.5)
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.CellFormat(width-labelWidth, height, c.tr(dashWhenEmpty(value)), "", 0, "L", false, 0, "")
}

// applyFooters stamps the page footer on every page after layout.
func (c *canvas) applyFooters() {
	total := c.pdf.PageCount()
	const footerY = pageHeight - 10

	for page := 1; page <= total; page++ {
		c.pdf.SetPage(page)

		c.pdf.SetDrawColor(c.style.RuleLine[0], c.style.RuleLine[1], c.style.RuleLine[2])
		c.pdf.Line(margin, footerY-2, pageWidth-margin, footerY-2)

		c.setFont("", 7)
		c.pdf.SetTextColor(c.style.Muted[0], c.style.Muted[1], c.style.Muted[2])

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
