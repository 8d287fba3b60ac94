// Package inference maps flat legacy form-data keys onto report sections and
// question texts. It only serves the legacy rendering path and is isolated so
// the heuristics can be replaced without touching schema-based rendering.
package inference

import (
	"strings"

	"github.com/goliatone/go-reportgen/pkg/frequency"
)

// Question is an inferred (section, text) pair for one legacy answer key.
type Question struct {
	Key     string
	Section frequency.Tag
	Text    string
}

// generalKeys are flat keys that belong to the report header, not to the
// question body.
var generalKeys = map[string]struct{}{
	"frequency":      {},
	"schema":         {},
	"schemaId":       {},
	"company":        {},
	"propertyName":   {},
	"propertyId":     {},
	"address":        {},
	"buildingType":   {},
	"floorArea":      {},
	"inspectionDate": {},
	"inspectionType": {},
	"nextInspection": {},
	"inspectorName":  {},
	"licenseNumber":  {},
	"temperature":    {},
	"humidity":       {},
	"notes":          {},
	"signature":      {},
	"signatures":     {},
}

// knownQuestions fixes wording for recurring NFPA-25 style answer keys so
// common legacy payloads read well without a schema.
var knownQuestions = map[string]Question{
	"dailyValvesSealed":        {Section: frequency.Daily, Text: "As válvulas de controle estão seladas e travadas na posição correta?"},
	"dailyGaugesCondition":     {Section: frequency.Daily, Text: "Os manômetros apresentam leitura normal e bom estado?"},
	"weeklyValveInspection":    {Section: frequency.Weekly, Text: "As válvulas de controle foram inspecionadas visualmente?"},
	"weeklyPumpHouseCondition": {Section: frequency.Weekly, Text: "A casa de bombas está limpa, aquecida e ventilada?"},
	"monthlyGaugesReading":     {Section: frequency.Monthly, Text: "Os manômetros do sistema foram lidos e registrados?"},
	"monthlyAlarmValves":       {Section: frequency.Monthly, Text: "As válvulas de alarme estão livres de danos externos?"},
	"quarterlyAlarmTest":       {Section: frequency.Quarterly, Text: "O alarme de fluxo de água foi testado?"},
	"quarterlyHydrantCaps":     {Section: frequency.Quarterly, Text: "Os tampões dos hidrantes estão no lugar e em bom estado?"},
	"annualFullFlowTest":       {Section: frequency.Annual, Text: "O teste de fluxo pleno da bomba de incêndio foi realizado?"},
	"annualSprinklerCondition": {Section: frequency.Annual, Text: "Os chuveiros automáticos estão livres de corrosão, tinta e danos?"},
	"annualHangersInspection":  {Section: frequency.Annual, Text: "Os suportes e tirantes da tubulação foram inspecionados?"},
	"fiveYearInternalPipe":     {Section: frequency.FiveYear, Text: "A inspeção interna obstrutiva da tubulação foi realizada?"},
	"fiveYearGaugeCalibration": {Section: frequency.FiveYear, Text: "Os manômetros foram recalibrados ou substituídos?"},
	"testMainDrain":            {Section: frequency.Test, Text: "O teste do dreno principal foi executado?"},
	"testAntifreezeSolution":   {Section: frequency.Test, Text: "A solução anticongelante foi testada?"},
}

// sectionHints are checked in order against the lowercased key; the first
// substring match wins.
var sectionHints = []struct {
	substr string
	tag    frequency.Tag
}{
	{"daily", frequency.Daily},
	{"diario", frequency.Daily},
	{"weekly", frequency.Weekly},
	{"semanal", frequency.Weekly},
	{"monthly", frequency.Monthly},
	{"mensal", frequency.Monthly},
	{"quarterly", frequency.Quarterly},
	{"trimestral", frequency.Quarterly},
	{"semiannual", frequency.Semiannual},
	{"semestral", frequency.Semiannual},
	{"annual", frequency.Annual},
	{"anual", frequency.Annual},
	{"fiveyear", frequency.FiveYear},
	{"5", frequency.FiveYear},
	{"test", frequency.Test},
	{"teste", frequency.Test},
}

// IsGeneralKey reports whether the key belongs to the header block and must
// be skipped by the legacy question scan.
func IsGeneralKey(key string) bool {
	_, ok := generalKeys[key]
	return ok
}

// InferSection maps a raw key onto a cadence tag using the ordered substring
// hints, defaulting to Other.
func InferSection(key string) frequency.Tag {
	lowered := strings.ToLower(key)
	for _, hint := range sectionHints {
		if strings.Contains(lowered, hint.substr) {
			return hint.tag
		}
	}
	return frequency.Other
}

// QuestionFor resolves a legacy key to its section and question text,
// preferring the fixed table and falling back to the naming heuristics.
func QuestionFor(key string) Question {
	if q, ok := knownQuestions[key]; ok {
		q.Key = key
		return q
	}
	return Question{
		Key:     key,
		Section: InferSection(key),
		Text:    Humanize(key),
	}
}

// Humanize converts camelCase and snake_case keys into readable question
// text.
func Humanize(key string) string {
	if key == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteByte(' ')
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return key
	}
	return strings.ToUpper(text[:1]) + text[1:] + "?"
}
