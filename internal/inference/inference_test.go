package inference

import (
	"testing"

	"github.com/goliatone/go-reportgen/pkg/frequency"
)

func TestIsGeneralKey(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"frequency", "schemaId", "propertyName", "signatures"} {
		if !IsGeneralKey(key) {
			t.Errorf("IsGeneralKey(%q) = false", key)
		}
	}
	for _, key := range []string{"dailyValvesSealed", "customCheck", ""} {
		if IsGeneralKey(key) {
			t.Errorf("IsGeneralKey(%q) = true", key)
		}
	}
}

func TestInferSection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want frequency.Tag
	}{
		{key: "dailyValvesSealed", want: frequency.Daily},
		{key: "inspecaoSemanalBombas", want: frequency.Weekly},
		{key: "monthlyGauges", want: frequency.Monthly},
		{key: "checagemTrimestral", want: frequency.Quarterly},
		{key: "semiannualHydrant", want: frequency.Semiannual},
		{key: "annualFlowTest", want: frequency.Annual},
		{key: "fiveYearPipeCheck", want: frequency.FiveYear},
		{key: "valvula5Anos", want: frequency.FiveYear},
		{key: "testMainDrain", want: frequency.Test},
		{key: "somethingElse", want: frequency.Other},
	}

	for _, tc := range tests {
		if got := InferSection(tc.key); got != tc.want {
			t.Errorf("InferSection(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestQuestionForPrefersKnownTable(t *testing.T) {
	t.Parallel()

	q := QuestionFor("annualFullFlowTest")
	if q.Section != frequency.Annual {
		t.Fatalf("Section = %q", q.Section)
	}
	if q.Key != "annualFullFlowTest" {
		t.Fatalf("Key = %q", q.Key)
	}
	if q.Text == "" || q.Text == "Annual full flow test?" {
		t.Fatalf("expected fixed wording, got %q", q.Text)
	}
}

func TestQuestionForFallsBackToHeuristics(t *testing.T) {
	t.Parallel()

	q := QuestionFor("monthlyCustomCheck")
	if q.Section != frequency.Monthly {
		t.Fatalf("Section = %q", q.Section)
	}
	if q.Text != "Monthly custom check?" {
		t.Fatalf("Text = %q", q.Text)
	}
}

func TestHumanize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{key: "camelCaseKey", want: "Camel case key?"},
		{key: "snake_case_key", want: "Snake case key?"},
		{key: "kebab-case", want: "Kebab case?"},
		{key: "single", want: "Single?"},
		{key: "", want: ""},
	}
	for _, tc := range tests {
		if got := Humanize(tc.key); got != tc.want {
			t.Errorf("Humanize(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}
