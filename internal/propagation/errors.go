package propagation

import (
	"errors"
	"fmt"
	"strings"
)

// Engine errors. Typed errors below unwrap to one of these.
var (
	// ErrMissingSymbols indicates the formula uses a symbol that is not a declared parameter.
	ErrMissingSymbols = errors.New("propagation: formula references undeclared symbols")

	// ErrInvalidParameter indicates a parameter or value key that is not an identifier.
	ErrInvalidParameter = errors.New("propagation: invalid parameter name")

	// ErrMissingValues indicates numeric evaluation with unbound symbols.
	ErrMissingValues = errors.New("propagation: missing values")

	// ErrGradientMismatch indicates a symbolic partial disagreeing with finite differences.
	ErrGradientMismatch = errors.New("propagation: gradient mismatch")
)

// MissingSymbolsError names the formula symbols absent from the parameter list.
type MissingSymbolsError struct {
	Symbols []string
}

func (e *MissingSymbolsError) Error() string {
	return fmt.Sprintf("missing symbols in parameters: %s", strings.Join(e.Symbols, ", "))
}

func (e *MissingSymbolsError) Unwrap() error { return ErrMissingSymbols }

// InvalidParameterError carries the rejected name.
type InvalidParameterError struct {
	Name string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter name %q: must match [A-Za-z_][A-Za-z0-9_]*", e.Name)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

// MissingValuesError names symbols left unbound after substitution.
type MissingValuesError struct {
	Symbols []string
}

func (e *MissingValuesError) Error() string {
	return fmt.Sprintf("no values for symbols: %s", strings.Join(e.Symbols, ", "))
}

func (e *MissingValuesError) Unwrap() error { return ErrMissingValues }

// GradientMismatchError reports the parameter with the largest deviation.
type GradientMismatchError struct {
	Param     string
	Symbolic  float64
	Numeric   float64
	Deviation float64
}

func (e *GradientMismatchError) Error() string {
	return fmt.Sprintf("d/d%s: symbolic %g, finite difference %g (deviation %g)",
		e.Param, e.Symbolic, e.Numeric, e.Deviation)
}

func (e *GradientMismatchError) Unwrap() error { return ErrGradientMismatch }

// ErrLimitExceeded indicates input larger than the configured limits.
var ErrLimitExceeded = errors.New("propagation: input exceeds limits")

// LimitError names the limit that was exceeded.
type LimitError struct {
	What  string
	Limit int
	Got   int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s too large: %d exceeds limit %d", e.What, e.Got, e.Limit)
}

func (e *LimitError) Unwrap() error { return ErrLimitExceeded }
