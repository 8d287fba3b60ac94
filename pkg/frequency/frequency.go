// Package frequency defines the single inspection-cadence vocabulary shared
// by schema-driven section visibility and the legacy key inference. Tags are
// canonical; Portuguese and English spellings alias onto them.
package frequency

import (
	"strings"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

// Tag is a canonical inspection cadence.
type Tag string

const (
	Daily      Tag = "daily"
	Weekly     Tag = "weekly"
	Monthly    Tag = "monthly"
	Quarterly  Tag = "quarterly"
	Semiannual Tag = "semiannual"
	Annual     Tag = "annual"
	FiveYear   Tag = "fiveyear"
	Test       Tag = "test"
	Other      Tag = "other"
)

var aliases = map[string]Tag{
	"daily":      Daily,
	"diario":     Daily,
	"diária":     Daily,
	"diaria":     Daily,
	"weekly":     Weekly,
	"semanal":    Weekly,
	"monthly":    Monthly,
	"mensal":     Monthly,
	"quarterly":  Quarterly,
	"trimestral": Quarterly,
	"semiannual": Semiannual,
	"semestral":  Semiannual,
	"annual":     Annual,
	"anual":      Annual,
	"fiveyear":   FiveYear,
	"5anos":      FiveYear,
	"quinquenal": FiveYear,
	"test":       Test,
	"teste":      Test,
	"other":      Other,
	"outros":     Other,
}

// Labels in the report locale, used for section titles on the legacy path.
var labels = map[Tag]string{
	Daily:      "Inspeção Diária",
	Weekly:     "Inspeção Semanal",
	Monthly:    "Inspeção Mensal",
	Quarterly:  "Inspeção Trimestral",
	Semiannual: "Inspeção Semestral",
	Annual:     "Inspeção Anual",
	FiveYear:   "Inspeção Quinquenal",
	Test:       "Testes",
	Other:      "Outros Itens",
}

// Canonical maps a raw tag onto the canonical vocabulary. Unknown spellings
// report false.
func Canonical(raw string) (Tag, bool) {
	tag, ok := aliases[strings.ToLower(strings.TrimSpace(raw))]
	return tag, ok
}

// Matches reports whether two raw tags name the same cadence. Tags outside
// the vocabulary only match themselves, compared case-insensitively, so
// custom tags still work end to end.
func Matches(a, b string) bool {
	ca, okA := Canonical(a)
	cb, okB := Canonical(b)
	if okA && okB {
		return ca == cb
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Label returns the display title for a tag.
func (t Tag) Label() string {
	if label, ok := labels[t]; ok {
		return label
	}
	return string(t)
}

// Order returns the fixed presentation order for legacy sections.
func Order() []Tag {
	return []Tag{Daily, Weekly, Monthly, Quarterly, Semiannual, Annual, FiveYear, Test, Other}
}

// SectionVisible applies the conditional-display rule: sections without the
// flag always render; conditional sections render when no frequency was
// selected (fail-open) or when the selected frequency matches one of the
// declared required frequencies.
func SectionVisible(section schema.Section, data formdata.FormData) bool {
	if !section.ConditionalDisplay || len(section.RequiredFrequencies) == 0 {
		return true
	}
	selected := data.Frequency()
	if selected == "" {
		return true
	}
	for _, required := range section.RequiredFrequencies {
		if Matches(selected, required) {
			return true
		}
	}
	return false
}
