package uncertainty

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/errprop/internal/types"
	"github.com/GriffinCanCode/errprop/internal/values"
)

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// FailureFrom creates a failed result classified by Kind
func FailureFrom(err error) (*types.Result, error) {
	msg := err.Error()
	kind := Kind(err)
	return &types.Result{Success: false, Error: &msg, Kind: &kind}, nil
}

// GetString extracts a string from params
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

// GetNumber extracts a float64 from params
func GetNumber(params map[string]interface{}, key string) (float64, bool) {
	return toNumber(params[key])
}

// GetNumbers extracts an array of numbers with type coercion
func GetNumbers(params map[string]interface{}, key string) ([]float64, bool) {
	arr, ok := params[key].([]interface{})
	if !ok {
		return nil, false
	}
	numbers := make([]float64, 0, len(arr))
	for _, v := range arr {
		n, ok := toNumber(v)
		if !ok {
			return nil, false
		}
		numbers = append(numbers, n)
	}
	return numbers, true
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// NormalizeParams turns a decoded "params" field into parameter names.
// Absent params mean none; anything but a list is an *InputShapeError.
// Non-string and blank entries are dropped and the rest trimmed.
func NormalizeParams(raw interface{}) ([]string, error) {
	var items []interface{}
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case []interface{}:
		items = v
	case []string:
		items = make([]interface{}, len(v))
		for i := range v {
			items[i] = v[i]
		}
	default:
		return nil, &InputShapeError{Field: "params", Expected: "a list", Got: jsonType(raw)}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// ResolveVals reads a decoded "vals" field: text goes through values.Resolve,
// an object is converted directly.
func ResolveVals(raw interface{}) (values.Map, values.Format, error) {
	switch v := raw.(type) {
	case nil:
		return values.Map{}, values.FormatEmpty, nil
	case string:
		return values.Resolve(v)
	case map[string]interface{}:
		m, err := values.FromAny(v)
		return m, values.FormatObject, err
	case map[string]float64:
		return values.Map(v), values.FormatObject, nil
	case values.Map:
		return v, values.FormatObject, nil
	}
	return nil, "", &InputShapeError{Field: "vals", Expected: "a string or an object", Got: jsonType(raw)}
}

func jsonType(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
