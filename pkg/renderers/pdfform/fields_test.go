package pdfform

import (
	"strings"
	"testing"

	"github.com/goliatone/go-reportgen/pkg/schema"
)

func TestOptionLabel(t *testing.T) {
	t.Parallel()

	options := []schema.Option{
		{Value: "good", Label: "Bom"},
		{Value: "broken"},
	}

	tests := []struct {
		stored string
		want   string
	}{
		{stored: "good", want: "Bom"},
		{stored: "GOOD", want: "Bom"},
		{stored: "broken", want: "broken"},
		{stored: "unlisted", want: "unlisted"},
		{stored: "", want: ""},
	}
	for _, tc := range tests {
		if got := optionLabel(options, tc.stored); got != tc.want {
			t.Errorf("optionLabel(%q) = %q, want %q", tc.stored, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("curto", 10); got != "curto" {
		t.Fatalf("truncate = %q", got)
	}
	long := strings.Repeat("a", 20)
	got := truncate(long, 10)
	if len([]rune(got)) != 11 || !strings.HasSuffix(got, "…") {
		t.Fatalf("truncate = %q", got)
	}
	// Rune-aware: multibyte text is not split mid-character.
	if got := truncate("ação preventiva", 4); got != "ação…" {
		t.Fatalf("truncate = %q", got)
	}
}

func TestFoldLatin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "pressão normal", want: "pressão normal"},
		{raw: "leitura instável…", want: "leitura instável..."},
		{raw: "• item um", want: "· item um"},
		{raw: "prazo – 30 dias", want: "prazo - 30 dias"},
		{raw: "“citação”", want: `"citação"`},
		{raw: "japonês: 火災", want: "japonês: ??"},
	}
	for _, tc := range tests {
		if got := foldLatin(tc.raw); got != tc.want {
			t.Errorf("foldLatin(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "Não", want: "nao"},
		{raw: " NÃO ", want: "nao"},
		{raw: "nao", want: "nao"},
		{raw: "Sim", want: "sim"},
		{raw: "N/A", want: "n/a"},
	}
	for _, tc := range tests {
		if got := normalizeAnswer(tc.raw); got != tc.want {
			t.Errorf("normalizeAnswer(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFieldRegistryFallback(t *testing.T) {
	t.Parallel()

	registry := NewDefaultFieldRegistry()
	for _, kind := range []schema.FieldType{
		schema.FieldTypeInput,
		schema.FieldTypeRadio,
		schema.FieldTypeTable,
		schema.FieldTypeUnknown,
	} {
		if registry.Resolve(kind) == nil {
			t.Errorf("no renderer for %q", kind)
		}
	}

	// A type never registered still resolves to the generic fallback.
	empty := NewFieldRegistry()
	if empty.Resolve(schema.FieldTypePhoto) == nil {
		t.Fatal("empty registry should fall back")
	}
}

func TestColumnWidths(t *testing.T) {
	t.Parallel()

	columns := []schema.TableColumn{
		{ID: "a", Width: 40},
		{ID: "b"},
		{ID: "c"},
	}
	widths := columnWidths(columns, 180)
	if widths[0] != 40 {
		t.Fatalf("fixed width = %v", widths[0])
	}
	if widths[1] != 70 || widths[2] != 70 {
		t.Fatalf("flexible widths = %v", widths)
	}

	even := columnWidths([]schema.TableColumn{{ID: "a"}, {ID: "b"}}, 180)
	if even[0] != 90 || even[1] != 90 {
		t.Fatalf("even split = %v", even)
	}
}

func TestFormatCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		col   schema.TableColumn
		value any
		want  string
	}{
		{name: "nil is dash", col: schema.TableColumn{Type: schema.ColumnTypeText}, value: nil, want: "-"},
		{name: "date localizes", col: schema.TableColumn{Type: schema.ColumnTypeDate}, value: "2026-03-15", want: "15/03/2026"},
		{name: "date passthrough", col: schema.TableColumn{Type: schema.ColumnTypeDate}, value: "março", want: "março"},
		{name: "number", col: schema.TableColumn{Type: schema.ColumnTypeNumber}, value: float64(5), want: "5"},
		{name: "number with unit", col: schema.TableColumn{Type: schema.ColumnTypeNumber, Unit: "bar"}, value: 7.5, want: "7.5 bar"},
		{name: "checkbox true", col: schema.TableColumn{Type: schema.ColumnTypeCheckbox}, value: true, want: "Sim"},
		{name: "checkbox false", col: schema.TableColumn{Type: schema.ColumnTypeCheckbox}, value: "0", want: "Não"},
		{name: "select maps label", col: schema.TableColumn{Type: schema.ColumnTypeSelect, Options: []schema.Option{{Value: "ok", Label: "Aprovado"}}}, value: "ok", want: "Aprovado"},
		{name: "text empty is dash", col: schema.TableColumn{Type: schema.ColumnTypeText}, value: "  ", want: "-"},
		{name: "untyped falls back to text", col: schema.TableColumn{}, value: "livre", want: "livre"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := formatCell(tc.col, tc.value); got != tc.want {
				t.Fatalf("formatCell = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "2026-08-12", want: "12/08/2026"},
		{raw: "2026-08-12T10:30:00Z", want: "12/08/2026"},
		{raw: "12/08/2026", want: "12/08/2026"},
		{raw: "não informado", want: "não informado"},
		{raw: "", want: ""},
	}
	for _, tc := range tests {
		if got := formatDate(tc.raw); got != tc.want {
			t.Errorf("formatDate(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseDataURI(t *testing.T) {
	t.Parallel()

	img, err := parseDataURI(pngDataURI(t))
	if err != nil {
		t.Fatalf("parseDataURI: %v", err)
	}
	if img.format != "png" || img.width != 8 || img.height != 8 {
		t.Fatalf("decoded = %+v", img)
	}

	bad := []string{
		"",
		"https://example.com/photo.png",
		"data:image/png;base64,!!!",
		"data:image/png;base64,AAAA",
		"data:text/plain;base64,aGVsbG8=",
	}
	for _, raw := range bad {
		if _, err := parseDataURI(raw); err == nil {
			t.Errorf("parseDataURI(%.30q) succeeded, want error", raw)
		}
	}
}

func TestPhotoData(t *testing.T) {
	t.Parallel()

	uri, caption := photoData("data:image/png;base64,AAAA")
	if uri == "" || caption != "" {
		t.Fatalf("bare string: uri=%q caption=%q", uri, caption)
	}

	uri, caption = photoData(map[string]any{
		"name": "hidrante.png",
		"data": "data:image/png;base64,AAAA",
	})
	if uri == "" || caption != "hidrante.png" {
		t.Fatalf("record: uri=%q caption=%q", uri, caption)
	}

	uri, caption = photoData(map[string]any{"filename": "sem-imagem.png"})
	if uri != "" || caption != "sem-imagem.png" {
		t.Fatalf("caption only: uri=%q caption=%q", uri, caption)
	}

	// Bare strings without a data-URI prefix are labels, never images.
	uri, caption = photoData("broken-not-an-image")
	if uri != "" || caption != "broken-not-an-image" {
		t.Fatalf("label string: uri=%q caption=%q", uri, caption)
	}

	if uri, _ := photoData(42); uri != "" {
		t.Fatalf("unexpected uri from scalar: %q", uri)
	}
}

func TestSignatureEntryFrom(t *testing.T) {
	t.Parallel()

	entry := signatureEntryFrom("data:image/png;base64,AAAA", true)
	if entry.Image == "" {
		t.Fatal("data uri string should map to image")
	}

	entry = signatureEntryFrom(map[string]any{
		"name":  "M. Ferreira",
		"date":  "2026-08-12",
		"image": "data:image/png;base64,AAAA",
	}, true)
	if entry.Name != "M. Ferreira" || entry.Date != "2026-08-12" || entry.Image == "" {
		t.Fatalf("entry = %+v", entry)
	}

	if got := signatureEntryFrom(nil, false); !got.Empty() {
		t.Fatalf("missing value should be empty, got %+v", got)
	}
}
