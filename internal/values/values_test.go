package values

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelaxed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Map
	}{
		{"empty", "", Map{}},
		{"whitespace", "   ", Map{}},
		{"spaced pairs", "x: 0.1, y:2", Map{"x": 0.1, "y": 2}},
		{"compact pairs", "x:0.1,y:2", Map{"x": 0.1, "y": 2}},
		{"padding", "  item_count  :  100  ,  price  :  9.99  ", Map{"item_count": 100, "price": 9.99}},
		{"negative and float", "z_index: -5, scale: 1.0", Map{"z_index": -5, "scale": 1}},
		{"single", "singleKey:123", Map{"singleKey": 123}},
		{"many", "a:1,b:2,c:3,d:4,e:5", Map{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5}},
		{"zero", "value:0", Map{"value": 0}},
		{"last write wins", "key1: 10 , key1: 20", Map{"key1": 20}},
		{"trailing comma", " trailing_comma_test : 1 , ", Map{"trailing_comma_test": 1}},
		{"empty segments", "a:1,,b:2", Map{"a": 1, "b": 2}},
		{"exponent", "dx: 5e-2", Map{"dx": 0.05}},
		{"explicit sign", "x: +3", Map{"x": 3}},
		{"digit grouping", "n: 1_000, f: 2_500.5", Map{"n": 1000, "f": 2500.5}},
		{"trailing point", "x: 5., y: -.25", Map{"x": 5, "y": -0.25}},
		{"integer beyond int64", "big: 99999999999999999999", Map{"big": 1e20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelaxed(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRelaxedErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{"missing colon", "x:0.1,y", ErrInvalidPair},
		{"not a number", "x:0.1,y:abc", ErrInvalidNumber},
		{"empty key", "x:0.1,:2", ErrInvalidKey},
		{"leading digit", "1key:0.1,y:2", ErrInvalidKey},
		{"space in key", "key with space:1", ErrInvalidKey},
		{"colon in value", "x:val1:val2", ErrInvalidNumber},
		{"empty value", "x:", ErrEmptyValue},
		{"infinity", "x: inf", ErrInvalidNumber},
		{"signed infinity", "x: -Infinity", ErrInvalidNumber},
		{"nan", "x: nan", ErrInvalidNumber},
		{"hex float", "x: 0x1p-2", ErrInvalidNumber},
		{"hex integer", "x: 0x10", ErrInvalidNumber},
		{"overflow", "x: 1e999", ErrInvalidNumber},
		{"misplaced underscore", "x: 1__0", ErrInvalidNumber},
		{"trailing underscore", "x: 10_", ErrInvalidNumber},
		{"bare point", "x: .", ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelaxed(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
		})
	}
}

func TestParseRelaxedErrorDetails(t *testing.T) {
	_, err := ParseRelaxed("x:0.1, y ")
	var pair *InvalidPairError
	require.True(t, errors.As(err, &pair))
	assert.Equal(t, "y", pair.Segment)

	_, err = ParseRelaxed("1key:0.1")
	var key *InvalidKeyError
	require.True(t, errors.As(err, &key))
	assert.Equal(t, "1key", key.Key)

	_, err = ParseRelaxed("x:")
	var empty *EmptyValueError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "x", empty.Key)

	_, err = ParseRelaxed("x: 1.2.3")
	var num *InvalidNumberError
	require.True(t, errors.As(err, &num))
	assert.Equal(t, "x", num.Key)
	assert.Equal(t, "1.2.3", num.Text)
	assert.Contains(t, err.Error(), "1.2.3")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   Map
		format Format
	}{
		{"json object", `{"x": 1.2, "dx": 0.05}`, Map{"x": 1.2, "dx": 0.05}, FormatJSON},
		{"json integers", ` {"n": 3} `, Map{"n": 3}, FormatJSON},
		{"relaxed fallback", "x: 1.2, dx: 0.05", Map{"x": 1.2, "dx": 0.05}, FormatRelaxed},
		{"empty", "  ", Map{}, FormatEmpty},
		{"empty json object", "{}", Map{}, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, format, err := Resolve(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		sentinel error
		format   Format
	}{
		{"json array", `[1, 2]`, ErrInvalidShape, FormatJSON},
		{"json scalar", `42`, ErrInvalidShape, FormatJSON},
		{"json string value", `{"x": "1"}`, ErrInvalidShape, FormatJSON},
		{"json null value", `{"x": null}`, ErrInvalidShape, FormatJSON},
		{"broken relaxed", "x: 1, y", ErrInvalidPair, FormatRelaxed},
		{"broken json falls back", `{"x": 1`, ErrInvalidKey, FormatRelaxed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, format, err := Resolve(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestFromAny(t *testing.T) {
	got, err := FromAny(map[string]interface{}{"a": 1.5, "b": 2, "c": int64(3)})
	require.NoError(t, err)
	assert.Equal(t, Map{"a": 1.5, "b": 2, "c": 3}, got)

	_, err = FromAny(map[string]interface{}{"a": true})
	var shape *ShapeError
	require.True(t, errors.As(err, &shape))
	assert.Equal(t, "a", shape.Key)
	assert.Equal(t, "boolean", shape.Type)

	_, err = FromAny("x: 1")
	require.True(t, errors.As(err, &shape))
	assert.Equal(t, "", shape.Key)
	assert.Equal(t, "string", shape.Type)
}

func TestMapKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "dx", "x"}, Map{"x": 1, "a": 2, "dx": 3}.Keys())
}
