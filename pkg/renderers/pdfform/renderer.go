// Package pdfform renders schema-driven inspection reports to PDF. A form
// schema's sections drive the layout: each field dispatches through a
// renderer registry keyed by field type, an explicit layout context tracks
// the cursor and page breaks, and a terminal pass stamps the footer on every
// page once the final page count is known.
package pdfform

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/render"
)

// RendererName is the registry key for the schema-based PDF path.
const RendererName = "pdf-form"

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 15.0

	// Cursor position after a page break on continuation pages.
	contentTop = 25.0

	// Cursor positions after the first-page branding header.
	firstPageTop        = 50.0
	firstPageTopSummary = 56.0
)

// Page-break thresholds by block kind: the distance from the page bottom a
// block of that kind still needs to start on the current page.
const (
	breakField     = 30.0
	breakHeader    = 50.0
	breakSubheader = 40.0
	breakSignature = 55.0
	breakPhoto     = 60.0
	breakTableRow  = 30.0
)

type config struct {
	registry *FieldRegistry
}

// Option customises the renderer.
type Option func(*config)

// WithFieldRegistry replaces the built-in field renderer registry.
func WithFieldRegistry(registry *FieldRegistry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// Renderer is the schema-based PDF renderer.
type Renderer struct {
	registry *FieldRegistry
}

// Ensure the contract is satisfied.
var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = NewDefaultFieldRegistry()
	}
	return &Renderer{registry: cfg.registry}, nil
}

func (r *Renderer) Name() string {
	return RendererName
}

func (r *Renderer) ContentType() string {
	return "application/pdf"
}

// Render lays out the document: branding header, general information block,
// schema sections, signatures, then the footer pass.
func (r *Renderer) Render(ctx context.Context, doc model.Document, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("pdfform: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Schema == nil || len(doc.Schema.Sections) == 0 {
		return nil, errors.New("pdfform: document has no schema")
	}

	c := newCanvas(doc, options, r.registry)

	c.drawHeader()
	c.drawGeneralInfo()
	c.renderSections()
	c.drawSignatures()
	c.applyFooters()

	if c.pdf.Err() {
		return nil, fmt.Errorf("pdfform: layout: %w", c.pdf.Error())
	}

	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdfform: serialize: %w", err)
	}
	return buf.Bytes(), nil
}

// newCanvas builds the fpdf document and layout context shared by all
// drawing routines.
func newCanvas(doc model.Document, options render.RenderOptions, registry *FieldRegistry) *canvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	style := render.DefaultStyle()
	if options.Style != nil {
		style = *options.Style
	}

	return &canvas{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		style:    style,
		options:  options,
		registry: registry,
		doc:      doc,
		lc: render.NewContext(render.Metrics{
			PageWidth:  pageWidth,
			PageHeight: pageHeight,
			Margin:     margin,
			ContentTop: contentTop,
		}),
	}
}
