// Package reportgen generates fire-protection inspection reports as PDF
// documents. Form schemas describe the report layout; raw submission payloads
// supply the answers. Payloads that resolve no schema still render through a
// legacy fallback layout, so every submission produces a report.
package reportgen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/report"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

// FormData is the raw form payload; alias exported via the root package for
// convenience.
type FormData = formdata.FormData

// FormSchema is the declarative form description driving the report layout.
type FormSchema = schema.FormSchema

// Request describes one report generation.
type Request = report.Request

// Result is one generated artifact with its metadata.
type Result = report.Result

// RenderOptions carries per-request rendering instructions such as style
// overrides or the textarea truncation budget.
type RenderOptions = render.RenderOptions

// GeneralInformation is the inspection metadata block at the top of a report.
type GeneralInformation = model.GeneralInformation

// CompanyData carries the service company branding and placeholder values.
type CompanyData = model.CompanyData

// SignatureData holds the inspector and client signature blocks.
type SignatureData = model.SignatureData

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...report.Option) *report.Orchestrator {
	return report.New(options...)
}

// GeneratePDF resolves a schema for the payload and renders the report. It is
// the simplest entry point for callers that just want PDF bytes.
func GeneratePDF(ctx context.Context, req Request, options ...report.Option) ([]byte, error) {
	gen := report.New(options...)
	result, err := gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.PDF, nil
}

// GeneratePDFBase64 renders the report and returns the artifact base64
// encoded for transports that cannot carry binary payloads.
func GeneratePDFBase64(ctx context.Context, req Request, options ...report.Option) (string, error) {
	gen := report.New(options...)
	encoded, _, err := gen.GenerateBase64(ctx, req)
	return encoded, err
}

// WithSchemaLookup registers the schema store backing ID and title
// resolution.
func WithSchemaLookup(lookup schema.Lookup) report.Option {
	return report.WithSchemaLookup(lookup)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) report.Option {
	return report.WithThemeSelector(selector)
}

// WithValidation enables a structural check of every generated artifact.
func WithValidation() report.Option {
	return report.WithValidation()
}
