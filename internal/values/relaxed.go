package values

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Map binds variable names to numbers.
type Map map[string]float64

// Relaxed parser errors. Typed errors below unwrap to one of these.
var (
	ErrInvalidPair   = errors.New("values: invalid key:value pair")
	ErrInvalidKey    = errors.New("values: invalid key")
	ErrEmptyValue    = errors.New("values: empty value")
	ErrInvalidNumber = errors.New("values: invalid number")
)

// InvalidPairError is a segment without a ":" separator.
type InvalidPairError struct {
	Segment string
}

func (e *InvalidPairError) Error() string {
	return fmt.Sprintf("invalid key:value pair %q: each pair must be written as key:value", e.Segment)
}

func (e *InvalidPairError) Unwrap() error { return ErrInvalidPair }

// InvalidKeyError is a key that is not an identifier.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %q: keys start with a letter or underscore followed by letters, digits or underscores", e.Key)
}

func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }

// EmptyValueError is a key with nothing after the colon.
type EmptyValueError struct {
	Key string
}

func (e *EmptyValueError) Error() string {
	return fmt.Sprintf("empty value for key %q", e.Key)
}

func (e *EmptyValueError) Unwrap() error { return ErrEmptyValue }

// InvalidNumberError is a value that parses as neither integer nor float.
type InvalidNumberError struct {
	Key  string
	Text string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("value %q for key %q is not an integer or decimal number", e.Text, e.Key)
}

func (e *InvalidNumberError) Unwrap() error { return ErrInvalidNumber }

var (
	keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	// Decimal literals only; "_" may group digits as in 1_000.
	numberPattern = regexp.MustCompile(`^[+-]?(\d(_?\d)*(\.(\d(_?\d)*)?)?|\.\d(_?\d)*)([eE][+-]?\d(_?\d)*)?$`)
)

// ParseRelaxed parses unquoted "key: value, key: value" text.
//
// Blank input yields an empty map. Segments are split on ",", trimmed, and
// empty segments skipped. Each segment splits on its first ":" only, so a
// value containing a colon fails number parsing. Values parse as integers
// first, then as floats; only finite decimal literals are accepted. A
// repeated key keeps its last value.
func ParseRelaxed(input string) (Map, error) {
	out := Map{}
	if strings.TrimSpace(input) == "" {
		return out, nil
	}

	for _, raw := range strings.Split(input, ",") {
		segment := strings.TrimSpace(raw)
		if segment == "" {
			continue
		}
		key, text, ok := strings.Cut(segment, ":")
		if !ok {
			return nil, &InvalidPairError{Segment: segment}
		}
		key = strings.TrimSpace(key)
		text = strings.TrimSpace(text)

		if !keyPattern.MatchString(key) {
			return nil, &InvalidKeyError{Key: key}
		}
		if text == "" {
			return nil, &EmptyValueError{Key: key}
		}
		v, err := parseNumber(text)
		if err != nil {
			return nil, &InvalidNumberError{Key: key, Text: text}
		}
		out[key] = v
	}
	return out, nil
}

func parseNumber(text string) (float64, error) {
	if !numberPattern.MatchString(text) {
		return 0, ErrInvalidNumber
	}
	digits := strings.ReplaceAll(text, "_", "")
	if i, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return float64(i), nil
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, ErrInvalidNumber
	}
	return f, nil
}
