// Package document provides the shared JSON value model helpers used
// by the write, query and stream engines. Values are the plain decoded
// forms: map[string]any, []any, string, float64, bool and nil.
package document

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
)

// Decode parses raw JSON bytes into a value.
func Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Load reads and parses the document at path. Errors name the path.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	v, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON in %q: %w", path, err)
	}

	return v, nil
}

// Encode serializes a value as indented or compact JSON text.
func Encode(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// AsObject returns the value as a JSON object mapping.
func AsObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsArray returns the value as a JSON array.
func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// IsObject reports whether the value is a JSON object.
func IsObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// IsArray reports whether the value is a JSON array.
func IsArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

// TypeName returns the JSON type name of a decoded value.
func TypeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}

// Text renders a value for line-oriented output: strings are bare,
// everything else is compact JSON with surrounding quotes stripped.
func Text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return strings.Trim(string(data), `"`)
}
