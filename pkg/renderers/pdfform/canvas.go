package pdfform

import (
	"fmt"
	"html"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/placeholder"
	"github.com/goliatone/go-reportgen/pkg/render"
)

// Localized placeholder strings.
const (
	placeholderDash      = "-"
	placeholderNotFilled = "(não preenchido)"
	placeholderNoPhoto   = "(nenhuma foto anexada)"
	placeholderSignature = "(Assinatura)"
	captionSignedDigital = "(assinado digitalmente)"
	captionImageFailed   = "(imagem não pôde ser incorporada)"
)

const (
	lineHeight    = 5.0
	labelFontSize = 9.0
	valueFontSize = 9.0
)

var sanitizer = bluemonday.StrictPolicy()

var colorBlack = render.RGB{0, 0, 0}

// canvas bundles the fpdf document, the layout context, and the document
// being rendered. One canvas serves exactly one Render call.
type canvas struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	style    render.Style
	options  render.RenderOptions
	registry *FieldRegistry
	doc      model.Document
	lc       *render.Context
	imageSeq int
}

// imageName returns a document-unique fpdf resource name. fpdf silently
// reuses the first image registered under a name, so every embed gets a
// fresh one.
func (c *canvas) imageName(prefix string) string {
	c.imageSeq++
	return fmt.Sprintf("%s-%d", prefix, c.imageSeq)
}

// ensureRoom forces a page break when the cursor has entered the bottom band
// reserved for the given block kind.
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

func (c *canvas) setTextColor(rgb render.RGB) {
	c.pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
}

func (c *canvas) setFillColor(rgb render.RGB) {
	c.pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
}

func (c *canvas) setDrawColor(rgb render.RGB) {
	c.pdf.SetDrawColor(rgb[0], rgb[1], rgb[2])
}

// cleanText runs company placeholder substitution and strips any markup that
// arrived from rich-text inputs.
func (c *canvas) cleanText(text string) string {
	text = placeholder.Apply(text, c.doc.Company)
	if strings.ContainsAny(text, "<>&") {
		text = html.UnescapeString(sanitizer.Sanitize(text))
	}
	return text
}

// Typographic characters folded onto latin-1 stand-ins before wrapping.
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

// foldLatin rewrites text so every rune fits the single-byte font range.
// SplitText indexes the 256-entry width table by rune, so anything above
// latin-1 must be folded before measuring.
func foldLatin(text string) string {
	text = latinFold.Replace(text)
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, text)
}

// writeWrapped draws text wrapped to the active content width, advancing the
// cursor one line at a time and breaking pages as needed. Wrapping happens on
// the UTF-8 text; translation to the page encoding happens per line at draw
// time. Returns the number of lines written.
func (c *canvas) writeWrapped(text string, fontStyle string, size float64, color render.RGB) int {
	c.setFont(fontStyle, size)
	c.setTextColor(color)

	lines := c.pdf.SplitText(foldLatin(text), c.lc.Width())
	for _, line := range lines {
		c.ensureRoom(breakField)
		c.pdf.SetXY(c.lc.Left(), c.lc.Y)
		c.pdf.CellFormat(c.lc.Width(), lineHeight, c.tr(line), "", 0, "L", false, 0, "")
		c.lc.Advance(lineHeight)
	}
	return len(lines)
}

// writeLabel draws a field label in the standard bold style.
func (c *canvas) writeLabel(label string) {
	if strings.TrimSpace(label) == "" {
		return
	}
	c.writeWrapped(label, "B", labelFontSize, c.style.Accent)
}

// writeValue draws a value line in the standard style, substituting the
// localized empty placeholder for blank text.
func (c *canvas) writeValue(text string) {
	if strings.TrimSpace(text) == "" {
		text = placeholderNotFilled
	}
	c.writeWrapped(c.cleanText(text), "", valueFontSize, colorBlack)
	c.lc.Advance(1.5)
}

// truncate trims text to the configured budget, appending an ellipsis marker
// when the limit was exceeded.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}

// dashWhenEmpty applies the fixed "-" placeholder convention.
func dashWhenEmpty(text string) string {
	if strings.TrimSpace(text) == "" {
		return placeholderDash
	}
	return text
}

// normalizeAnswer lowers, trims, and folds "não" onto "nao" so stored
// answers match option values regardless of accent usage.
func normalizeAnswer(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	return strings.ReplaceAll(lowered, "não", "nao")
}
