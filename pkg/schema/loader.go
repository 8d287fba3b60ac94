package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a JSON form-schema document.
func ParseJSON(raw []byte) (FormSchema, error) {
	if len(raw) == 0 {
		return FormSchema{}, errors.New("schema: empty document")
	}
	var out FormSchema
	if err := json.Unmarshal(raw, &out); err != nil {
		return FormSchema{}, fmt.Errorf("schema: parse json: %w", err)
	}
	return out, nil
}

// ParseYAML decodes a YAML form-schema document.
func ParseYAML(raw []byte) (FormSchema, error) {
	if len(raw) == 0 {
		return FormSchema{}, errors.New("schema: empty document")
	}
	var out FormSchema
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return FormSchema{}, fmt.Errorf("schema: parse yaml: %w", err)
	}
	return out, nil
}

// Parse decodes a schema document, choosing the codec from the payload. JSON
// is tried first; anything else falls through to YAML.
func Parse(raw []byte) (FormSchema, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return ParseJSON(raw)
	}
	return ParseYAML(raw)
}

// LoadFile reads and decodes a schema document from disk, using the file
// extension to pick the codec.
func LoadFile(path string) (FormSchema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return FormSchema{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return decodeByExtension(path, raw)
}

// LoadFS walks an fs.FS and loads every .json/.yaml/.yml document into a
// Store. Files that fail to decode abort the load so configuration mistakes
// surface immediately.
func LoadFS(fsys fs.FS) (*Store, error) {
	if fsys == nil {
		return nil, errors.New("schema: fs is required")
	}
	store := NewStore()
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSchemaFile(path) {
			return nil
		}
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		doc, err := decodeByExtension(path, raw)
		if err != nil {
			return err
		}
		if err := store.Register(doc); err != nil {
			return fmt.Errorf("schema: register %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func decodeByExtension(path string, raw []byte) (FormSchema, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(raw)
	case ".json":
		return ParseJSON(raw)
	default:
		return Parse(raw)
	}
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
