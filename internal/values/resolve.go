package values

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
)

// Format records how a value payload was read.
type Format string

const (
	FormatEmpty   Format = "empty"
	FormatJSON    Format = "json"
	FormatRelaxed Format = "relaxed"
	FormatObject  Format = "object"
)

// ErrInvalidShape indicates well-formed input that is not a name-to-number object.
var ErrInvalidShape = errors.New("values: expected an object of numbers")

// ShapeError names the offending key, or is keyless when the payload itself
// is not an object.
type ShapeError struct {
	Key  string
	Type string
}

func (e *ShapeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("values must be an object of numbers, got %s", e.Type)
	}
	return fmt.Sprintf("value for %q must be a number, got %s", e.Key, e.Type)
}

func (e *ShapeError) Unwrap() error { return ErrInvalidShape }

// Resolve reads a value payload. Strict JSON is tried first; text that is not
// valid JSON is handed to ParseRelaxed.
func Resolve(raw string) (Map, Format, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Map{}, FormatEmpty, nil
	}

	var decoded interface{}
	if err := sonic.UnmarshalString(text, &decoded); err == nil {
		m, err := FromAny(decoded)
		if err != nil {
			return nil, FormatJSON, err
		}
		return m, FormatJSON, nil
	}

	m, err := ParseRelaxed(text)
	if err != nil {
		return nil, FormatRelaxed, err
	}
	return m, FormatRelaxed, nil
}

// FromAny converts an already decoded JSON object.
func FromAny(v interface{}) (Map, error) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, &ShapeError{Type: typeName(v)}
	}
	out := make(Map, len(obj))
	for key, raw := range obj {
		f, ok := toFloat(raw)
		if !ok {
			return nil, &ShapeError{Key: key, Type: typeName(raw)}
		}
		out[key] = f
	}
	return out, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// Keys returns the names in m, sorted.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
