package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Lookup is the registry contract the report orchestrator resolves schemas
// through. Both lookups are best-effort: a miss is reported through the bool,
// never an error.
type Lookup interface {
	Get(id string) (FormSchema, bool)
	GetByTitle(title string) (FormSchema, bool)
}

// Store is an in-memory Lookup implementation keyed by schema ID with a
// secondary case-insensitive title index. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]FormSchema
	byTitle map[string]string
}

// NewStore creates an empty schema store.
func NewStore() *Store {
	return &Store{
		byID:    make(map[string]FormSchema),
		byTitle: make(map[string]string),
	}
}

// Register adds a schema by its ID. Schemas without an ID or with a duplicate
// ID return an error so misconfigured schema directories fail loudly.
func (s *Store) Register(doc FormSchema) error {
	id := strings.TrimSpace(doc.ID)
	if id == "" {
		return fmt.Errorf("schema: schema %q has no id", doc.Title)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[id]; exists {
		return fmt.Errorf("schema: schema %q already registered", id)
	}
	s.byID[id] = doc
	if title := titleKey(doc.Title); title != "" {
		s.byTitle[title] = id
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (s *Store) MustRegister(doc FormSchema) {
	if err := s.Register(doc); err != nil {
		panic(err)
	}
}

// Get returns the schema registered under id.
func (s *Store) Get(id string) (FormSchema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.byID[strings.TrimSpace(id)]
	return doc, ok
}

// GetByTitle returns the schema whose title matches, ignoring case and
// surrounding whitespace.
func (s *Store) GetByTitle(title string) (FormSchema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTitle[titleKey(title)]
	if !ok {
		return FormSchema{}, false
	}
	doc, ok := s.byID[id]
	return doc, ok
}

// IDs returns the sorted list of registered schema IDs.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
