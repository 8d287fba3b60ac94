package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore()
	store.MustRegister(FormSchema{
		ID:    "stored-id",
		Title: "Relatório Armazenado",
		Sections: []Section{
			{ID: "s", Title: "Seção", Fields: []Field{{ID: "f"}}},
		},
	})
	return store
}

func TestResolverPriorityOrder(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	explicit := FormSchema{
		ID:       "explicit",
		Sections: []Section{{ID: "x", Fields: []Field{{ID: "f"}}}},
	}

	tests := []struct {
		name   string
		query  Query
		wantID string
		ok     bool
	}{
		{
			name: "explicit schema wins over everything",
			query: Query{
				Schema:   &explicit,
				SchemaID: "stored-id",
				Title:    "Relatório Armazenado",
				Lookup:   store,
			},
			wantID: "explicit",
			ok:     true,
		},
		{
			name:   "schema id through lookup",
			query:  Query{SchemaID: "stored-id", Lookup: store},
			wantID: "stored-id",
			ok:     true,
		},
		{
			name: "schema id embedded in data",
			query: Query{
				Data:   map[string]any{"schemaId": "stored-id"},
				Lookup: store,
			},
			wantID: "stored-id",
			ok:     true,
		},
		{
			name: "schema object embedded in data",
			query: Query{
				Data: map[string]any{
					"schema": map[string]any{
						"id": "inline",
						"sections": []any{
							map[string]any{"id": "s", "fields": []any{map[string]any{"id": "f"}}},
						},
					},
				},
			},
			wantID: "inline",
			ok:     true,
		},
		{
			name:   "title as last resort",
			query:  Query{Title: "relatório armazenado", Lookup: store},
			wantID: "stored-id",
			ok:     true,
		},
		{
			name:  "nothing matches",
			query: Query{Title: "desconhecido", Lookup: store},
			ok:    false,
		},
		{
			name:  "no lookup configured",
			query: Query{SchemaID: "stored-id"},
			ok:    false,
		},
	}

	resolver := NewResolver()
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc, ok := resolver.Resolve(tc.query)
			if ok != tc.ok {
				t.Fatalf("Resolve ok = %v, want %v", ok, tc.ok)
			}
			if ok && doc.ID != tc.wantID {
				t.Fatalf("resolved %q, want %q", doc.ID, tc.wantID)
			}
		})
	}
}

func TestResolverIgnoresEmptySchemas(t *testing.T) {
	t.Parallel()

	resolver := NewResolver()

	// An explicit schema with no sections must not short-circuit the chain.
	store := testStore(t)
	doc, ok := resolver.Resolve(Query{
		Schema:   &FormSchema{ID: "hollow"},
		SchemaID: "stored-id",
		Lookup:   store,
	})
	if !ok || doc.ID != "stored-id" {
		t.Fatalf("resolved (%q, %v), want stored-id", doc.ID, ok)
	}
}

func TestResolverMalformedEmbeddedSchema(t *testing.T) {
	t.Parallel()

	resolver := NewResolver()
	_, ok := resolver.Resolve(Query{
		Data: map[string]any{"schema": map[string]any{"sections": "not-a-list"}},
	})
	if ok {
		t.Fatal("malformed embedded schema should not resolve")
	}
}

func TestNewResolverWithCustomChain(t *testing.T) {
	t.Parallel()

	want := FormSchema{ID: "custom", Sections: []Section{{ID: "s"}}}
	resolver := NewResolverWith(StrategyFunc(func(Query) (FormSchema, bool) {
		return want, true
	}))

	got, ok := resolver.Resolve(Query{})
	if !ok {
		t.Fatal("custom strategy did not resolve")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNilResolverNeverMatches(t *testing.T) {
	t.Parallel()

	var resolver *Resolver
	if _, ok := resolver.Resolve(Query{Title: "x"}); ok {
		t.Fatal("nil resolver should not match")
	}
}
