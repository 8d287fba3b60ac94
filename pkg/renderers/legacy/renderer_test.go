package legacy

import (
	"testing"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/frequency"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/testsupport"
)

func legacyData() formdata.FormData {
	return formdata.FormData{
		"frequency":      "mensal",
		"company":        "Condomínio Central",
		"propertyName":   "Torre B",
		"inspectionDate": "2026-08-12",

		"dailyValvesSealed":        "sim",
		"weeklyPumpHouseCondition": "nao",
		"monthlyGaugesReading":     "sim",
		"annualFullFlowTest":       "Não",
		"testMainDrain":            "n/a",
		"monthlyCustomNote":        "pressão levemente abaixo do normal",
	}
}

func TestRenderProducesValidPDF(t *testing.T) {
	t.Parallel()

	renderer := New()
	output, err := renderer.Render(testsupport.Context(), model.Document{
		Title: "Relatório de Inspeção",
		Data:  legacyData(),
		General: &model.GeneralInformation{
			Company:      "Condomínio Central",
			PropertyName: "Torre B",
		},
	}, render.RenderOptions{GeneratedBy: "tester"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.RequireValidPDF(t, output)
}

func TestRenderRequiresData(t *testing.T) {
	t.Parallel()

	renderer := New()
	if _, err := renderer.Render(testsupport.Context(), model.Document{}, render.RenderOptions{}); err == nil {
		t.Fatal("expected error without form data")
	}
	if _, err := renderer.Render(nil, model.Document{Data: legacyData()}, render.RenderOptions{}); err == nil {
		t.Fatal("expected error without context")
	}
}

func TestGroupAnswers(t *testing.T) {
	t.Parallel()

	grouped := groupAnswers(legacyData())

	// Header keys never become questions.
	for _, answers := range grouped {
		for _, a := range answers {
			switch a.question.Key {
			case "frequency", "company", "propertyName", "inspectionDate":
				t.Fatalf("general key %q leaked into questions", a.question.Key)
			}
		}
	}

	if got := len(grouped[frequency.Daily]); got != 1 {
		t.Fatalf("daily answers = %d", got)
	}
	if got := len(grouped[frequency.Monthly]); got != 2 {
		t.Fatalf("monthly answers = %d", got)
	}
	if got := len(grouped[frequency.Test]); got != 1 {
		t.Fatalf("test answers = %d", got)
	}
}

func TestGroupAnswersSkipsStructuredValues(t *testing.T) {
	t.Parallel()

	data := formdata.FormData{
		"dailyCheck": "sim",
		"dailyPhotos": []any{
			map[string]any{"name": "a.png"},
		},
		"dailyMeta": map[string]any{"nested": true},
	}

	grouped := groupAnswers(data)
	if got := len(grouped[frequency.Daily]); got != 1 {
		t.Fatalf("daily answers = %d, want 1 (structured values skipped)", got)
	}
}

func TestNonConformityDetection(t *testing.T) {
	t.Parallel()

	grouped := groupAnswers(legacyData())

	var failed int
	for _, tag := range frequency.Order() {
		for _, a := range grouped[tag] {
			if isNonConform(a.text) {
				failed++
			}
		}
	}
	// weeklyPumpHouseCondition ("nao") and annualFullFlowTest ("Não").
	if failed != 2 {
		t.Fatalf("non-conformities = %d, want 2", failed)
	}
}

func TestIsNonConform(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"nao", "Não", " NÃO ", "false"} {
		if !isNonConform(text) {
			t.Errorf("isNonConform(%q) = false", text)
		}
	}
	for _, text := range []string{"sim", "n/a", "", "observação livre"} {
		if isNonConform(text) {
			t.Errorf("isNonConform(%q) = true", text)
		}
	}
}

func TestRenderWrapsAccentedQuestions(t *testing.T) {
	t.Parallel()

	data := formdata.FormData{
		"monthlyLongQuestion": "verificação das condições de operação, sinalização e acesso às válvulas de " +
			"controle, incluindo manômetros com leitura instável… e itens pendentes • prazo de 30 dias",
	}

	renderer := New()
	output, err := renderer.Render(testsupport.Context(), model.Document{Data: data}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.RequireValidPDF(t, output)
}

func TestRenderAlwaysIncludesGeneralInfo(t *testing.T) {
	t.Parallel()

	renderer := New()

	bare, err := renderer.Render(testsupport.Context(), model.Document{Data: legacyData()}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render bare: %v", err)
	}

	full, err := renderer.Render(testsupport.Context(), model.Document{
		Data: legacyData(),
		General: &model.GeneralInformation{
			Company:        "Condomínio Central",
			PropertyName:   "Torre B",
			Address:        "Av. Ipiranga, 1200 - Porto Alegre/RS",
			BuildingType:   "Residencial multifamiliar",
			InspectionDate: "2026-08-12",
			InspectorName:  "M. Ferreira",
			LicenseNumber:  "CREA-RS 123456",
			Notes: "Acesso à casa de bombas liberado pelo zelador. Teste realizado com a rede " +
				"pressurizada e acompanhamento do síndico durante toda a inspeção.",
		},
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render full: %v", err)
	}

	testsupport.RequireValidPDF(t, bare)
	testsupport.RequireValidPDF(t, full)

	// The grid renders on both, but populated values and the notes block
	// only appear on the second document.
	if len(full) <= len(bare) {
		t.Fatalf("general info missing: full %d bytes, bare %d bytes", len(full), len(bare))
	}
}

func TestRenderWithoutNonConformities(t *testing.T) {
	t.Parallel()

	renderer := New()
	clean := formdata.FormData{
		"dailyValvesSealed":    "sim",
		"monthlyGaugesReading": "sim",
	}
	output, err := renderer.Render(testsupport.Context(), model.Document{Data: clean}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.RequireValidPDF(t, output)
}
