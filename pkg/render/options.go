package render

import "strings"

// RenderOptions carries per-request instructions renderers can use without
// mutating the document model.
type RenderOptions struct {
	// Style overrides the default palette/typography, typically derived from
	// a go-theme selection. Nil means DefaultStyle().
	Style *Style

	// Filename is stamped on the footer's left slot of every page.
	Filename string

	// GeneratedBy overrides the fixed footer caption.
	GeneratedBy string

	// TextLimit raises the textarea truncation budget. Values are clamped to
	// [DefaultTextLimit, MaxTextLimit]; zero keeps the default.
	TextLimit int
}

// Textarea truncation budgets.
const (
	DefaultTextLimit = 500
	MaxTextLimit     = 1000
)

// DefaultGeneratedBy is the footer caption used when no user name is set.
const DefaultGeneratedBy = "FireReport"

// EffectiveGeneratedBy resolves the footer caption for this request. The
// caption is present on every page; requests can only replace it, not
// remove it.
func (o RenderOptions) EffectiveGeneratedBy() string {
	if s := strings.TrimSpace(o.GeneratedBy); s != "" {
		return s
	}
	return DefaultGeneratedBy
}

// EffectiveTextLimit resolves the truncation budget for this request.
func (o RenderOptions) EffectiveTextLimit() int {
	if o.TextLimit <= 0 {
		return DefaultTextLimit
	}
	if o.TextLimit > MaxTextLimit {
		return MaxTextLimit
	}
	if o.TextLimit < DefaultTextLimit {
		return DefaultTextLimit
	}
	return o.TextLimit
}
