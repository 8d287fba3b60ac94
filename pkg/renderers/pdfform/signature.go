package pdfform

import (
	"strings"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

// drawSignatures draws the inspector and client signature boxes side by side
// at the end of the report. Nothing renders when no signature data exists.
func (c *canvas) drawSignatures() {
	sigs := c.doc.Signatures
	if sigs == nil || sigs.Empty() {
		return
	}

	c.ensureRoom(breakSignature)
	c.lc.Advance(4)

	left := c.lc.Left()
	gap := c.lc.Width() - 2*signatureBoxW
	if gap < 5 {
		gap = 5
	}
	top := c.lc.Y

	hInspector := c.drawSignatureBox(left, top, "Responsável Técnico", sigs.Inspector)
	hClient := c.drawSignatureBox(left+signatureBoxW+gap, top, "Cliente", sigs.Client)

	h := hInspector
	if hClient > h {
		h = hClient
	}
	c.lc.Y = top + h
	c.lc.Advance(4)
}

// drawSignatureBox draws one bordered signature area with its caption and,
// beneath it, the signer's name and date. Returns the total height consumed.
func (c *canvas) drawSignatureBox(x, y float64, role string, entry model.SignatureEntry) float64 {
	c.setDrawColor(c.style.RuleLine)
	c.pdf.Rect(x, y, signatureBoxW, signatureBoxH, "D")

	caption := placeholderSignature
	if uri := strings.TrimSpace(entry.Image); uri != "" {
		if img, err := parseDataURI(uri); err == nil {
			name := c.imageName("signature-" + strings.ToLower(strings.ReplaceAll(role, " ", "-")))
			c.embedImage(name, img, x+2, y+2, signatureBoxW-4, signatureBoxH-4)
			caption = ""
		} else {
			caption = captionSignedDigital
		}
	}

	if caption != "" {
		c.setFont("I", 8)
		c.setTextColor(c.style.Muted)
		c.pdf.SetXY(x, y+signatureBoxH/2-2)
		c.pdf.CellFormat(signatureBoxW, 4, c.tr(caption), "", 0, "C", false, 0, "")
	}

	line := y + signatureBoxH + 2
	c.setFont("B", 8.5)
	c.setTextColor(colorBlack)
	c.pdf.SetXY(x, line)
	c.pdf.CellFormat(signatureBoxW, 4, c.tr(dashWhenEmpty(entry.Name)), "", 0, "C", false, 0, "")
	line += 4

	c.setFont("", 8)
	c.setTextColor(c.style.Muted)
	detail := role
	if date := strings.TrimSpace(entry.Date); date != "" {
		detail += " - " + formatDate(date)
	}
	c.pdf.SetXY(x, line)
	c.pdf.CellFormat(signatureBoxW, 4, c.tr(detail), "", 0, "C", false, 0, "")
	line += 4

	return line - y
}

// renderSignatureField draws an inline signature declared as a schema field.
// The value may be a bare data-URI or a record with image, name, and date
// keys.
func renderSignatureField(c *canvas, field schema.Field, value any, ok bool) {
	c.ensureRoom(breakSignature)
	c.writeLabel(c.cleanText(field.Label))

	entry := signatureEntryFrom(value, ok)

	x := c.lc.Left()
	y := c.lc.Y
	h := c.drawSignatureBox(x, y, "Assinatura", entry)
	c.lc.Advance(h + 3)
}

func signatureEntryFrom(value any, ok bool) model.SignatureEntry {
	if !ok || value == nil {
		return model.SignatureEntry{}
	}
	switch v := value.(type) {
	case string:
		return model.SignatureEntry{Image: v}
	case map[string]any:
		entry := model.SignatureEntry{}
		for _, key := range []string{"image", "data", "dataUri", "signature"} {
			if s, _ := v[key].(string); strings.HasPrefix(strings.TrimSpace(s), "data:image/") {
				entry.Image = s
				break
			}
		}
		if s, okName := v["name"]; okName {
			entry.Name = formdata.Stringify(s)
		}
		if s, okDate := v["date"]; okDate {
			entry.Date = formdata.Stringify(s)
		}
		return entry
	default:
		return model.SignatureEntry{}
	}
}
