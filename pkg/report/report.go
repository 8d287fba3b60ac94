// Package report coordinates the full pipeline from a raw form payload to a
// finished PDF: schema resolution, renderer selection, theme styling, and the
// audit trail. It applies sensible defaults (both PDF renderers registered,
// default resolution chain) while remaining open to dependency injection.
package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/logging"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/renderers/legacy"
	"github.com/goliatone/go-reportgen/pkg/renderers/pdfform"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithSchemaLookup injects the schema store backing ID and title resolution.
func WithSchemaLookup(lookup schema.Lookup) Option {
	return func(o *Orchestrator) {
		o.lookup = lookup
	}
}

// WithResolver replaces the default schema resolution chain.
func WithResolver(resolver *schema.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithDefaultRenderer overrides the renderer used for schema-resolved reports
// when a request omits an explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector wires a go-theme selector; resolved selections drive the
// report palette. Selection failures fall back to the default style.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// WithValidation enables a structural check of every generated artifact
// before it is returned.
func WithValidation() Option {
	return func(o *Orchestrator) {
		o.validate = true
	}
}

// WithClock overrides the time source used for filenames and audit records.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// Orchestrator coordinates schema resolution, rendering, and auditing.
type Orchestrator struct {
	registry        *render.Registry
	resolver        *schema.Resolver
	lookup          schema.Lookup
	themes          theme.ThemeSelector
	defaultRenderer string
	validate        bool
	now             func() time.Time

	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: pdfform.RendererName,
		now:             time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to generate one report.
type Request struct {
	// Title of the report; also the last-resort schema lookup key.
	Title string

	// Data is the raw form payload.
	Data formdata.FormData

	// Schema bypasses resolution when the caller already holds one.
	Schema *schema.FormSchema

	// SchemaID resolves through the configured schema lookup.
	SchemaID string

	// Renderer names the renderer to use. If empty, the orchestrator picks
	// the schema path when a schema resolves and the legacy path otherwise.
	Renderer string

	// General, Signatures, and Company override the blocks otherwise
	// extracted from the payload.
	General    *model.GeneralInformation
	Signatures *model.SignatureData
	Company    *model.CompanyData

	// Theme and Variant select the report palette through the configured
	// theme selector. Empty means the default style.
	Theme   string
	Variant string

	// RenderOptions carries per-request rendering instructions. A zero
	// Filename is replaced with the generated artifact name.
	RenderOptions render.RenderOptions
}

// Result is one generated artifact with its metadata.
type Result struct {
	// PDF is the finished artifact.
	PDF []byte

	// Filename is the suggested artifact name.
	Filename string

	// Renderer is the name of the renderer that produced the artifact.
	Renderer string

	// SchemaID identifies the resolved schema; empty on the legacy path.
	SchemaID string

	// AuditID ties the artifact to its audit log record.
	AuditID string
}

// Generate resolves the schema, selects a renderer, and produces the report.
// The audit record is written before rendering starts so failed generations
// still leave a trace.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("report: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}
	if len(req.Data) == 0 && req.Schema == nil {
		return nil, errors.New("report: form data is required")
	}

	audit := o.newAuditRecord(req)
	audit.log("report requested")

	resolved, hasSchema := o.resolver.Resolve(schema.Query{
		Schema:   req.Schema,
		SchemaID: req.SchemaID,
		Title:    req.Title,
		Data:     req.Data,
		Lookup:   o.lookup,
	})

	doc := o.buildDocument(req, resolved, hasSchema)

	renderer, err := o.rendererFor(req.Renderer, hasSchema)
	if err != nil {
		audit.fail(err)
		return nil, err
	}

	options := req.RenderOptions
	if options.Style == nil {
		options.Style = o.styleFor(req)
	}
	if strings.TrimSpace(options.Filename) == "" {
		options.Filename = Filename(req.Title, propertyOf(doc), o.now())
	}

	output, err := renderer.Render(ctx, doc, options)
	if err != nil {
		audit.fail(err)
		return nil, fmt.Errorf("report: render: %w", err)
	}

	if o.validate {
		if err := validateArtifact(output); err != nil {
			audit.fail(err)
			return nil, fmt.Errorf("report: artifact validation: %w", err)
		}
	}

	audit.complete(renderer.Name(), len(output))

	return &Result{
		PDF:      output,
		Filename: options.Filename,
		Renderer: renderer.Name(),
		SchemaID: resolved.ID,
		AuditID:  audit.id,
	}, nil
}

// GenerateBase64 renders the report and returns the artifact as a standard
// base64 string for transports that cannot carry binary payloads.
func (o *Orchestrator) GenerateBase64(ctx context.Context, req Request) (string, *Result, error) {
	result, err := o.Generate(ctx, req)
	if err != nil {
		return "", nil, err
	}
	return base64.StdEncoding.EncodeToString(result.PDF), result, nil
}

// buildDocument assembles the renderer input, preferring request-level
// overrides over blocks extracted from the payload.
func (o *Orchestrator) buildDocument(req Request, resolved schema.FormSchema, hasSchema bool) model.Document {
	doc := model.Document{
		Title:      req.Title,
		Data:       req.Data,
		General:    req.General,
		Signatures: req.Signatures,
		Company:    req.Company,
	}
	if hasSchema {
		doc.Schema = &resolved
		if doc.Title == "" {
			doc.Title = resolved.Title
		}
	}
	if doc.General == nil {
		doc.General = extractGeneral(req.Data)
	}
	if doc.Signatures == nil {
		doc.Signatures = extractSignatures(req.Data)
	}
	if doc.Company == nil {
		doc.Company = extractCompany(req.Data)
	}
	return doc
}

func (o *Orchestrator) rendererFor(name string, hasSchema bool) (render.Renderer, error) {
	target := strings.TrimSpace(name)
	if target == "" {
		if hasSchema {
			target = o.defaultRenderer
		} else {
			target = legacy.RendererName
		}
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("report: renderer %q: %w", target, err)
	}
	return renderer, nil
}

// styleFor resolves the request's theme through the selector. Any failure
// falls back to the default palette so a missing theme never blocks a report.
func (o *Orchestrator) styleFor(req Request) *render.Style {
	if o.themes == nil || strings.TrimSpace(req.Theme) == "" {
		return nil
	}
	selection, err := o.themes.Select(req.Theme, req.Variant)
	if err != nil {
		logging.Logger().Warn("theme selection failed",
			slog.String("theme", req.Theme),
			slog.String("variant", req.Variant),
			slog.String("error", err.Error()))
		return nil
	}
	style := render.StyleFromSelection(selection)
	return &style
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.resolver == nil {
		o.resolver = schema.NewResolver()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()

		formRenderer, err := pdfform.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("report: default renderer: %w", err)
		} else {
			o.registry.MustRegister(formRenderer)
			o.registry.MustRegister(legacy.New())
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = pdfform.RendererName
	}
	if o.now == nil {
		o.now = time.Now
	}

	o.defaultsApplied = true
}

func propertyOf(doc model.Document) string {
	if doc.General != nil {
		return doc.General.PropertyName
	}
	return ""
}

// validateArtifact re-reads the generated bytes so a structurally broken PDF
// is caught before it reaches the caller.
func validateArtifact(output []byte) error {
	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed

	pdfCtx, err := api.ReadContext(bytes.NewReader(output), conf)
	if err != nil {
		return err
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return err
	}
	if pdfCtx.PageCount < 1 {
		return errors.New("artifact has no pages")
	}
	return nil
}
