// Package testsupport collects fixture loading and PDF assertion helpers
// shared by the package test suites.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

// LoadSchema reads a schema fixture. Testing helpers fail the test on error
// to keep contract tests concise.
func LoadSchema(t *testing.T, path string) schema.FormSchema {
	t.Helper()

	doc, err := LoadSchemaFromPath(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return doc
}

// LoadSchemaFromPath returns a FormSchema without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadSchemaFromPath(path string) (schema.FormSchema, error) {
	if path == "" {
		return schema.FormSchema{}, errors.New("testsupport: schema path is required")
	}
	doc, err := schema.LoadFile(path)
	if err != nil {
		return schema.FormSchema{}, fmt.Errorf("testsupport: load schema: %w", err)
	}
	return doc, nil
}

// MustLoadFormData loads a JSON fixture into a form payload.
func MustLoadFormData(t *testing.T, path string) formdata.FormData {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load form data: %v", err)
	}
	var out formdata.FormData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal form data: %v", err)
	}
	return out
}

// PDFPageCount parses the generated bytes and returns the page count, failing
// the test when the artifact is not a readable PDF.
func PDFPageCount(t *testing.T, pdf []byte) int {
	t.Helper()

	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(pdf), conf)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		t.Fatalf("page count: %v", err)
	}
	return ctx.PageCount
}

// RequireValidPDF asserts the generated bytes parse as a PDF with at least
// one page.
func RequireValidPDF(t *testing.T, pdf []byte) {
	t.Helper()

	if len(pdf) == 0 {
		t.Fatal("empty pdf output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("output does not start with PDF header: %q", pdf[:min(len(pdf), 16)])
	}
	if pages := PDFPageCount(t, pdf); pages < 1 {
		t.Fatalf("pdf has %d pages", pages)
	}
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is
// set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
