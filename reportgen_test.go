package reportgen

import (
	"testing"

	"github.com/goliatone/go-reportgen/pkg/schema"
	"github.com/goliatone/go-reportgen/pkg/testsupport"
)

func TestGeneratePDF(t *testing.T) {
	t.Parallel()

	doc := schema.FormSchema{
		ID:    "quick",
		Title: "Inspeção Rápida",
		Sections: []schema.Section{
			{ID: "s", Title: "Sistema", Fields: []schema.Field{
				{ID: "pressure", Label: "Pressão", Unit: "bar"},
			}},
		},
	}

	output, err := GeneratePDF(testsupport.Context(), Request{
		Title:  "Inspeção Rápida",
		Schema: &doc,
		Data:   FormData{"pressure": 7.5},
	})
	if err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	testsupport.RequireValidPDF(t, output)
}

func TestGeneratePDFBase64(t *testing.T) {
	t.Parallel()

	encoded, err := GeneratePDFBase64(testsupport.Context(), Request{
		Data: FormData{"dailyCheck": "sim"},
	})
	if err != nil {
		t.Fatalf("GeneratePDFBase64: %v", err)
	}
	if encoded == "" {
		t.Fatal("empty output")
	}
}
