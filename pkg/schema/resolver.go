package schema

import (
	"encoding/json"
	"strings"
)

// Query carries everything a resolution strategy may inspect when deciding
// which schema applies to a report.
type Query struct {
	// Explicit schema object supplied by the caller. Highest priority.
	Schema *FormSchema
	// Explicit schema ID, resolved through the Lookup.
	SchemaID string
	// Form title, used as the last-resort lookup key.
	Title string
	// Raw form data; may embed a schema inline under "schema" or reference
	// one by ID under "schemaId".
	Data map[string]any
	// Lookup backs the ID and title strategies. Optional.
	Lookup Lookup
}

// Strategy attempts to produce a schema for a query. Returning false means
// "not mine", letting the chain move on.
type Strategy interface {
	Resolve(q Query) (FormSchema, bool)
}

// StrategyFunc adapts a function into a Strategy.
type StrategyFunc func(q Query) (FormSchema, bool)

// Resolve delegates to the underlying function.
func (fn StrategyFunc) Resolve(q Query) (FormSchema, bool) {
	return fn(q)
}

// Resolver runs an ordered strategy chain, short-circuiting on the first
// match. A nil or empty resolver never matches, which routes reports onto the
// legacy rendering path.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds the default chain: explicit schema object, explicit
// schema ID, schema embedded in the form data, then title lookup.
func NewResolver() *Resolver {
	return &Resolver{
		strategies: []Strategy{
			StrategyFunc(resolveExplicit),
			StrategyFunc(resolveByID),
			StrategyFunc(resolveEmbedded),
			StrategyFunc(resolveByTitle),
		},
	}
}

// NewResolverWith builds a resolver from a custom strategy chain.
func NewResolverWith(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Resolve runs the chain. The second return is false when no strategy
// matched.
func (r *Resolver) Resolve(q Query) (FormSchema, bool) {
	if r == nil {
		return FormSchema{}, false
	}
	for _, strategy := range r.strategies {
		if strategy == nil {
			continue
		}
		if doc, ok := strategy.Resolve(q); ok {
			return doc, true
		}
	}
	return FormSchema{}, false
}

func resolveExplicit(q Query) (FormSchema, bool) {
	if q.Schema == nil || len(q.Schema.Sections) == 0 {
		return FormSchema{}, false
	}
	return *q.Schema, true
}

func resolveByID(q Query) (FormSchema, bool) {
	id := strings.TrimSpace(q.SchemaID)
	if id == "" || q.Lookup == nil {
		return FormSchema{}, false
	}
	return q.Lookup.Get(id)
}

func resolveEmbedded(q Query) (FormSchema, bool) {
	if len(q.Data) == 0 {
		return FormSchema{}, false
	}

	if id, ok := q.Data["schemaId"].(string); ok && strings.TrimSpace(id) != "" && q.Lookup != nil {
		if doc, found := q.Lookup.Get(id); found {
			return doc, true
		}
	}

	raw, ok := q.Data["schema"]
	if !ok {
		return FormSchema{}, false
	}
	switch v := raw.(type) {
	case FormSchema:
		if len(v.Sections) > 0 {
			return v, true
		}
	case *FormSchema:
		if v != nil && len(v.Sections) > 0 {
			return *v, true
		}
	case map[string]any:
		if doc, ok := schemaFromMap(v); ok {
			return doc, true
		}
	}
	return FormSchema{}, false
}

func resolveByTitle(q Query) (FormSchema, bool) {
	title := strings.TrimSpace(q.Title)
	if title == "" || q.Lookup == nil {
		return FormSchema{}, false
	}
	return q.Lookup.GetByTitle(title)
}

// schemaFromMap re-decodes an inline schema payload that arrived as generic
// JSON. Malformed payloads degrade to "no schema" rather than erroring.
func schemaFromMap(raw map[string]any) (FormSchema, bool) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return FormSchema{}, false
	}
	doc, err := ParseJSON(payload)
	if err != nil || len(doc.Sections) == 0 {
		return FormSchema{}, false
	}
	return doc, true
}
