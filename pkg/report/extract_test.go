package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/model"
)

func TestExtractGeneral(t *testing.T) {
	t.Parallel()

	data := formdata.FormData{
		"company":        "Condomínio Central",
		"propertyName":   "Torre B",
		"floorArea":      1200.5,
		"inspectionDate": "2026-08-12",
		"unrelated":      "ignored",
	}

	got := extractGeneral(data)
	want := &model.GeneralInformation{
		Company:        "Condomínio Central",
		PropertyName:   "Torre B",
		FloorArea:      "1200.5",
		InspectionDate: "2026-08-12",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractGeneralStructuredCompanySkipped(t *testing.T) {
	t.Parallel()

	data := formdata.FormData{
		"company":      map[string]any{"name": "Extintores Sul"},
		"propertyName": "Torre B",
	}
	got := extractGeneral(data)
	if got == nil || got.Company != "" || got.PropertyName != "Torre B" {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractGeneralEmpty(t *testing.T) {
	t.Parallel()

	if got := extractGeneral(formdata.FormData{"other": "x"}); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
	if got := extractGeneral(nil); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestExtractSignatures(t *testing.T) {
	t.Parallel()

	data := formdata.FormData{
		"signatures": map[string]any{
			"inspector": map[string]any{
				"name":  "M. Ferreira",
				"date":  "2026-08-12",
				"image": "data:image/png;base64,AAAA",
			},
			"client": "Síndico",
		},
	}

	got := extractSignatures(data)
	if got == nil {
		t.Fatal("nil signatures")
	}
	if got.Inspector.Name != "M. Ferreira" || got.Inspector.Image == "" {
		t.Fatalf("inspector = %+v", got.Inspector)
	}
	if got.Client.Name != "Síndico" {
		t.Fatalf("client = %+v", got.Client)
	}
}

func TestExtractSignaturesBareEntry(t *testing.T) {
	t.Parallel()

	got := extractSignatures(formdata.FormData{
		"signature": "data:image/png;base64,AAAA",
	})
	if got == nil || got.Inspector.Image == "" {
		t.Fatalf("got %+v", got)
	}

	if got := extractSignatures(formdata.FormData{"other": 1}); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestExtractCompany(t *testing.T) {
	t.Parallel()

	data := formdata.FormData{
		"company": map[string]any{
			"name":  "Extintores Sul Ltda",
			"taxId": "12.345.678/0001-90",
			"address": map[string]any{
				"city":  "Porto Alegre",
				"state": "RS",
			},
		},
	}

	got := extractCompany(data)
	if got == nil {
		t.Fatal("nil company")
	}
	if got.Name != "Extintores Sul Ltda" || got.TaxID != "12.345.678/0001-90" {
		t.Fatalf("company = %+v", got)
	}
	if got.Address.City != "Porto Alegre" {
		t.Fatalf("address = %+v", got.Address)
	}
}

func TestExtractCompanyStringValueIgnored(t *testing.T) {
	t.Parallel()

	if got := extractCompany(formdata.FormData{"company": "Condomínio Central"}); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
	if got := extractCompany(formdata.FormData{"company": map[string]any{"taxId": "x"}}); got != nil {
		t.Fatalf("nameless company = %+v, want nil", got)
	}
}
