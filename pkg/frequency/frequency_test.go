package frequency

import (
	"testing"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

func TestCanonicalAliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Tag
		ok   bool
	}{
		{raw: "mensal", want: Monthly, ok: true},
		{raw: "Monthly", want: Monthly, ok: true},
		{raw: " ANUAL ", want: Annual, ok: true},
		{raw: "quinquenal", want: FiveYear, ok: true},
		{raw: "5anos", want: FiveYear, ok: true},
		{raw: "teste", want: Test, ok: true},
		{raw: "bimestral", ok: false},
		{raw: "", ok: false},
	}

	for _, tc := range tests {
		got, ok := Canonical(tc.raw)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("Canonical(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMatchesCrossLanguage(t *testing.T) {
	t.Parallel()

	if !Matches("mensal", "monthly") {
		t.Error("mensal should match monthly")
	}
	if !Matches("Anual", "annual") {
		t.Error("Anual should match annual")
	}
	if Matches("mensal", "annual") {
		t.Error("mensal should not match annual")
	}
	// Custom tags outside the vocabulary match only themselves.
	if !Matches("custom-cycle", "Custom-Cycle") {
		t.Error("custom tags should match case-insensitively")
	}
	if Matches("custom-cycle", "other-cycle") {
		t.Error("different custom tags should not match")
	}
}

func TestSectionVisible(t *testing.T) {
	t.Parallel()

	conditional := schema.Section{
		ConditionalDisplay:  true,
		RequiredFrequencies: []string{"monthly", "annual"},
	}

	tests := []struct {
		name    string
		section schema.Section
		data    formdata.FormData
		want    bool
	}{
		{
			name:    "unconditional always renders",
			section: schema.Section{},
			data:    formdata.FormData{"frequency": "daily"},
			want:    true,
		},
		{
			name:    "conditional without declared frequencies renders",
			section: schema.Section{ConditionalDisplay: true},
			data:    formdata.FormData{"frequency": "daily"},
			want:    true,
		},
		{
			name:    "matching alias renders",
			section: conditional,
			data:    formdata.FormData{"frequency": "mensal"},
			want:    true,
		},
		{
			name:    "non matching frequency hides",
			section: conditional,
			data:    formdata.FormData{"frequency": "semanal"},
			want:    false,
		},
		{
			name:    "no frequency selected renders",
			section: conditional,
			data:    formdata.FormData{},
			want:    true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := SectionVisible(tc.section, tc.data); got != tc.want {
				t.Fatalf("SectionVisible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOrderCoversAllLabels(t *testing.T) {
	t.Parallel()

	for _, tag := range Order() {
		if tag.Label() == string(tag) {
			t.Errorf("tag %q has no display label", tag)
		}
	}
}
