package pdfform

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/logging"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/schema"
	"github.com/goliatone/go-reportgen/pkg/testsupport"
)

func testSchema() *schema.FormSchema {
	return &schema.FormSchema{
		ID:    "sprinkler-monthly",
		Title: "Inspeção Mensal de Sprinklers",
		Sections: []schema.Section{
			{
				ID:          "system",
				Title:       "Sistema de Sprinklers",
				Description: "Verificações do sistema hidráulico.",
				Fields: []schema.Field{
					{ID: "systemPressure", Label: "Pressão do sistema", Type: schema.FieldTypeInput, Unit: "bar"},
					{ID: "valvesOpen", Label: "Válvulas abertas e travadas?", Type: schema.FieldTypeRadio},
					{ID: "gaugesCondition", Label: "Condição dos manômetros", Type: schema.FieldTypeSelect, Options: []schema.Option{
						{Value: "good", Label: "Bom"},
						{Value: "broken", Label: "Danificado"},
					}},
					{ID: "hasSpareHeads", Label: "Possui bicos reserva", Type: schema.FieldTypeCheckbox},
					{ID: "observations", Label: "Observações", Type: schema.FieldTypeTextarea},
				},
			},
			{
				ID:                  "annualOnly",
				Title:               "Itens Anuais",
				ConditionalDisplay:  true,
				RequiredFrequencies: []string{"annual"},
				Fields: []schema.Field{
					{ID: "fullFlowTest", Label: "Teste de fluxo pleno", Type: schema.FieldTypeRadio},
				},
			},
		},
	}
}

func testData() formdata.FormData {
	return formdata.FormData{
		"frequency":       "mensal",
		"systemPressure":  7.5,
		"valvesOpen":      "sim",
		"gaugesCondition": "good",
		"hasSpareHeads":   true,
		"observations":    "Sistema operando dentro dos parâmetros.",
	}
}

func testDocument() model.Document {
	return model.Document{
		Title:  "Inspeção Mensal de Sprinklers",
		Schema: testSchema(),
		Data:   testData(),
		General: &model.GeneralInformation{
			Company:        "Condomínio Central",
			PropertyName:   "Torre B",
			InspectionDate: "2026-08-12",
			InspectorName:  "M. Ferreira",
		},
	}
}

func TestRenderProducesValidPDF(t *testing.T) {
	t.Parallel()

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), testDocument(), render.RenderOptions{
		Filename:    "Report_Test_2026-08-12.pdf",
		GeneratedBy: "tester",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.RequireValidPDF(t, output)
}

func TestRenderRequiresSchema(t *testing.T) {
	t.Parallel()

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	doc := testDocument()
	doc.Schema = nil
	if _, err := renderer.Render(testsupport.Context(), doc, render.RenderOptions{}); err == nil {
		t.Fatal("expected error without schema")
	}
	if _, err := renderer.Render(nil, testDocument(), render.RenderOptions{}); err == nil {
		t.Fatal("expected error without context")
	}
}

func TestRenderPaginatesLongReports(t *testing.T) {
	t.Parallel()

	doc := testDocument()
	section := schema.Section{ID: "bulk", Title: "Itens Extensos"}
	for i := 0; i < 80; i++ {
		id := fmt.Sprintf("item%d", i)
		section.Fields = append(section.Fields, schema.Field{
			ID:    id,
			Label: fmt.Sprintf("Item de verificação número %d", i),
			Type:  schema.FieldTypeRadio,
		})
		doc.Data[id] = "sim"
	}
	doc.Schema.Sections = append(doc.Schema.Sections, section)

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if pages := testsupport.PDFPageCount(t, output); pages < 2 {
		t.Fatalf("expected pagination, got %d page(s)", pages)
	}
}

func TestRenderSkipsNonMatchingConditionalSections(t *testing.T) {
	t.Parallel()

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	monthly := testDocument()
	monthlyOut, err := renderer.Render(testsupport.Context(), monthly, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render monthly: %v", err)
	}

	annual := testDocument()
	annual.Data["frequency"] = "anual"
	annual.Data["fullFlowTest"] = "nao"
	annualOut, err := renderer.Render(testsupport.Context(), annual, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render annual: %v", err)
	}

	// The annual rendering carries one extra section, so it cannot be
	// smaller than the monthly one.
	if len(annualOut) <= len(monthlyOut)-100 {
		t.Fatalf("annual output (%d bytes) unexpectedly smaller than monthly (%d bytes)", len(annualOut), len(monthlyOut))
	}
	testsupport.RequireValidPDF(t, monthlyOut)
	testsupport.RequireValidPDF(t, annualOut)
}

func TestRenderWithSignaturesAndPhotos(t *testing.T) {
	t.Parallel()

	doc := testDocument()
	doc.Schema.Sections[0].Fields = append(doc.Schema.Sections[0].Fields,
		schema.Field{ID: "photos", Label: "Fotos", Type: schema.FieldTypePhoto},
		schema.Field{ID: "inspectorSign", Label: "Assinatura do inspetor", Type: schema.FieldTypeSignature},
		schema.Field{ID: "clientSign", Label: "Assinatura do cliente", Type: schema.FieldTypeSignature},
	)
	doc.Data["photos"] = []any{
		pngDataURI(t),
		map[string]any{"name": "registro.png", "data": pngDataURI(t)},
		map[string]any{"name": "quebrada.png", "data": "data:image/png;base64,AAAA"},
	}
	// Two inline signature boxes share the same role caption; each must get
	// its own embedded image resource.
	doc.Data["inspectorSign"] = pngDataURI(t)
	doc.Data["clientSign"] = pngDataURI(t)
	doc.Signatures = &model.SignatureData{
		Inspector: model.SignatureEntry{Name: "M. Ferreira", Date: "2026-08-12", Image: pngDataURI(t)},
		Client:    model.SignatureEntry{Name: "Síndico", Date: "2026-08-12"},
	}

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.RequireValidPDF(t, output)
}

func TestRenderWrapsAccentedText(t *testing.T) {
	t.Parallel()

	doc := testDocument()
	doc.Data["observations"] = "A inspeção verificou a pressão, a vazão e a sinalização de emergência. " +
		"Atenção: manômetros com leitura instável… substituição recomendada • prazo de 30 dias – " +
		"ações corretivas descritas nas “observações” do responsável técnico."

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.RequireValidPDF(t, output)
}

func TestRenderPhotoLabelsAreNotEmbedFailures(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer logging.SetLogger(nil)

	doc := testDocument()
	doc.Schema.Sections[0].Fields = append(doc.Schema.Sections[0].Fields,
		schema.Field{ID: "photos", Label: "Fotos", Type: schema.FieldTypePhoto},
	)
	doc.Data["photos"] = []any{"hidrante-bloco-a.jpg", "registro de recalque"}

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.RequireValidPDF(t, output)

	// Descriptive strings are captions, not broken uploads.
	if strings.Contains(buf.String(), "photo skipped") {
		t.Fatalf("label entries logged as embed failures:\n%s", buf.String())
	}
}

func TestImageNamesAreUnique(t *testing.T) {
	t.Parallel()

	c := &canvas{}
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		for _, prefix := range []string{"photo-fotos", "signature-assinatura"} {
			name := c.imageName(prefix)
			if seen[name] {
				t.Fatalf("duplicate image name %q", name)
			}
			seen[name] = true
		}
	}
}

// pngDataURI builds a small valid PNG payload.
func pngDataURI(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
