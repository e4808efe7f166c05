package uncertainty

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/errprop/internal/propagation"
	"github.com/GriffinCanCode/errprop/internal/symbolic"
	"github.com/GriffinCanCode/errprop/internal/values"
)

// Error kinds reported to clients next to the error message.
const (
	KindMissingSymbols    = "missing_symbols"
	KindParseError        = "parse_error"
	KindInvalidParameter  = "invalid_parameter"
	KindMissingValues     = "missing_values"
	KindInvalidPair       = "invalid_pair"
	KindInvalidKey        = "invalid_key"
	KindEmptyValue        = "empty_value"
	KindInvalidNumber     = "invalid_number"
	KindInvalidInputShape = "invalid_input_shape"
	KindFormulaTooLong    = "formula_too_long"
	KindTooManyParams     = "too_many_params"
	KindGradientMismatch  = "gradient_mismatch"
	KindTooFewSamples     = "too_few_samples"
	KindInvalidSample     = "invalid_sample"
	KindInternal          = "internal"
)

// ErrInvalidInputShape indicates a request field of the wrong JSON type.
var ErrInvalidInputShape = errors.New("uncertainty: invalid input shape")

// InputShapeError names the field and the type that was received.
type InputShapeError struct {
	Field    string
	Expected string
	Got      string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("invalid %s format: expected %s, got %s", e.Field, e.Expected, e.Got)
}

func (e *InputShapeError) Unwrap() error { return ErrInvalidInputShape }

// Kind classifies err for clients. Errors that are not input failures are
// KindInternal.
func Kind(err error) string {
	var limit *propagation.LimitError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &limit):
		if limit.What == "formula" {
			return KindFormulaTooLong
		}
		return KindTooManyParams
	case errors.Is(err, propagation.ErrMissingSymbols):
		return KindMissingSymbols
	case errors.Is(err, symbolic.ErrParse):
		return KindParseError
	case errors.Is(err, propagation.ErrInvalidParameter):
		return KindInvalidParameter
	case errors.Is(err, propagation.ErrMissingValues):
		return KindMissingValues
	case errors.Is(err, values.ErrInvalidPair):
		return KindInvalidPair
	case errors.Is(err, values.ErrInvalidKey):
		return KindInvalidKey
	case errors.Is(err, values.ErrEmptyValue):
		return KindEmptyValue
	case errors.Is(err, values.ErrInvalidNumber):
		return KindInvalidNumber
	case errors.Is(err, values.ErrInvalidShape), errors.Is(err, ErrInvalidInputShape):
		return KindInvalidInputShape
	case errors.Is(err, propagation.ErrGradientMismatch):
		return KindGradientMismatch
	case errors.Is(err, propagation.ErrTooFewSamples):
		return KindTooFewSamples
	case errors.Is(err, propagation.ErrInvalidSample):
		return KindInvalidSample
	}
	return KindInternal
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return err != nil && Kind(err) != KindInternal
}
