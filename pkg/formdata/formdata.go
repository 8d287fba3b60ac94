// Package formdata resolves schema field values out of arbitrary nested form
// payloads. Resolution never errors: malformed paths, wrong shapes, and
// missing keys all degrade to "no value".
package formdata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FormData is the raw, caller-supplied form payload. It has no fixed shape
// and is only interpreted through a schema.
type FormData map[string]any

// Resolve walks a dotted key path through the payload. Numeric segments index
// into arrays; a non-numeric segment against an array, or any nil
// intermediate, reports a miss.
func (d FormData) Resolve(path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" || d == nil {
		return nil, false
	}

	var current any = map[string]any(d)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case FormData:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
		if current == nil {
			return nil, false
		}
	}
	return current, true
}

// Frequency returns the inspection frequency tag stored in the payload, if
// any. Empty string means "no frequency selected".
func (d FormData) Frequency() string {
	raw, ok := d.Resolve("frequency")
	if !ok {
		return ""
	}
	s, _ := Normalize(raw).(string)
	return strings.TrimSpace(s)
}

// Normalize unwraps option-shaped values so renderers see a uniform scalar
// whether the source stored a raw value or a {value, label} object. The value
// wins; the label is the fallback.
func Normalize(value any) any {
	node, ok := value.(map[string]any)
	if !ok {
		return value
	}
	if v, ok := node["value"]; ok && v != nil {
		return v
	}
	if l, ok := node["label"]; ok && l != nil {
		return l
	}
	return value
}

// Checked reports whether a checkbox-ish value counts as ticked. The accepted
// set is fixed: true, "true", "1", 1, "sim" (any casing).
func Checked(value any) bool {
	switch v := Normalize(value).(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "sim":
			return true
		}
	case int:
		return v == 1
	case float64:
		return v == 1
	}
	return false
}

// Stringify renders any value shape as display text. Arrays join with ", ",
// option objects unwrap, other objects fall back to compact JSON so a
// malformed payload still produces output instead of a panic.
func Stringify(value any) string {
	switch v := Normalize(value).(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "Sim"
		}
		return "Não"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(v, ", ")
	default:
		if payload, err := json.Marshal(v); err == nil {
			return string(payload)
		}
		return fmt.Sprintf("%v", v)
	}
}
