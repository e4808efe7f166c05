package propagation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/errprop/internal/symbolic"
)

// ErrorSymbol returns the name of the uncertainty symbol for param.
func ErrorSymbol(param string) string { return "d" + param }

// Term is one parameter's slot in the propagation sum.
type Term struct {
	Param       string
	ErrorSymbol string
	Partial     symbolic.Expr
}

// Derivation holds a parsed formula and its partial derivatives, one per
// declared parameter in declaration order. The symbolic error expression and
// its LaTeX rendering are both assembled from Terms.
type Derivation struct {
	Formula string
	Expr    symbolic.Expr
	Params  []string
	Terms   []Term
}

// Derive parses formula, checks that every free symbol is declared in params
// and differentiates with respect to each parameter. Repeated parameters
// collapse onto their first occurrence.
func Derive(formula string, params []string) (*Derivation, error) {
	expr, err := symbolic.Parse(formula)
	if err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}
	declared, err := normalizeParams(params)
	if err != nil {
		return nil, err
	}
	if missing := missingSymbols(expr, declared); len(missing) > 0 {
		return nil, &MissingSymbolsError{Symbols: missing}
	}

	terms := make([]Term, len(declared))
	for i, p := range declared {
		terms[i] = Term{
			Param:       p,
			ErrorSymbol: ErrorSymbol(p),
			Partial:     symbolic.Diff(expr, p),
		}
	}
	return &Derivation{Formula: formula, Expr: expr, Params: declared, Terms: terms}, nil
}

func normalizeParams(params []string) ([]string, error) {
	seen := make(map[string]struct{}, len(params))
	out := make([]string, 0, len(params))
	for _, p := range params {
		if !symbolic.IsIdentifier(p) {
			return nil, &InvalidParameterError{Name: p}
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func missingSymbols(expr symbolic.Expr, declared []string) []string {
	known := make(map[string]struct{}, len(declared))
	for _, p := range declared {
		known[p] = struct{}{}
	}
	var missing []string
	for _, s := range symbolic.FreeSymbols(expr) {
		if _, ok := known[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

// ErrorExpression returns sqrt(sum_i (partial_i * d<p_i>)**2). The sum keeps
// one square per parameter, zero partials included, and is left unsimplified.
func (d *Derivation) ErrorExpression() symbolic.Expr {
	squares := make([]symbolic.Expr, len(d.Terms))
	for i, t := range d.Terms {
		squares[i] = symbolic.Square(t.product())
	}
	return symbolic.Sqrt(symbolic.Sum(squares...))
}

func (t Term) product() symbolic.Expr {
	return symbolic.MulOf(t.Partial, symbolic.S(t.ErrorSymbol))
}

// ErrorLaTeX renders the error expression term by term:
// \sqrt{\left(<partial> <dp>\right)^2 + ...}. A partial that is a sum is
// parenthesised so the product groups as in ErrorExpression.
func (d *Derivation) ErrorLaTeX() string {
	parts := make([]string, len(d.Terms))
	for i, t := range d.Terms {
		parts[i] = `\left(` + partialLaTeX(t.Partial) + " " + symbolic.S(t.ErrorSymbol).LaTeX() + `\right)^2`
	}
	return `\sqrt{` + strings.Join(parts, " + ") + "}"
}

func partialLaTeX(e symbolic.Expr) string {
	if _, ok := e.(*symbolic.Add); ok {
		return `\left(` + e.LaTeX() + `\right)`
	}
	return e.LaTeX()
}

// FormulaLaTeX renders the parsed formula.
func (d *Derivation) FormulaLaTeX() string { return d.Expr.LaTeX() }

// Value evaluates the formula itself at values.
func (d *Derivation) Value(values map[string]float64) (float64, error) {
	return Evaluate(d.Expr, values)
}

// Uncertainty evaluates the error expression at values.
func (d *Derivation) Uncertainty(values map[string]float64) (float64, error) {
	return Evaluate(d.ErrorExpression(), values)
}

// DeriveErrorExpression builds the symbolic error-propagation expression for
// formula over params.
func DeriveErrorExpression(formula string, params []string) (symbolic.Expr, error) {
	d, err := Derive(formula, params)
	if err != nil {
		return nil, err
	}
	return d.ErrorExpression(), nil
}

// RenderErrorExpressionLaTeX renders the error expression for formula over
// params. Validation matches DeriveErrorExpression.
func RenderErrorExpressionLaTeX(formula string, params []string) (string, error) {
	d, err := Derive(formula, params)
	if err != nil {
		return "", err
	}
	return d.ErrorLaTeX(), nil
}

// RenderFormulaLaTeX parses formula and renders it as LaTeX.
func RenderFormulaLaTeX(formula string) (string, error) {
	e, err := symbolic.Parse(formula)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return e.LaTeX(), nil
}

// SubstituteAndEvaluate replaces every symbol named in values simultaneously.
// Keys are normalised through the formula parser, so " x " binds x.
//
// With numeric unset the substituted expression is returned exact. With
// numeric set every number is reduced to a float: a fully bound expression
// becomes a single *symbolic.Num, while symbols left unbound stay symbolic
// around float coefficients.
func SubstituteAndEvaluate(expr symbolic.Expr, values map[string]float64, numeric bool) (symbolic.Expr, error) {
	bound, err := normalizeValues(values)
	if err != nil {
		return nil, err
	}
	sub := symbolic.Subs(expr, symbolic.Numbers(bound))
	if !numeric {
		return sub, nil
	}
	return symbolic.EvalF(sub), nil
}

// ResultString renders the outcome of SubstituteAndEvaluate: numbers through
// FormatResult, residual expressions as text. A residual without symbols,
// such as a power of zero left unfolded, is evaluated so 1/0 prints as "oo".
func ResultString(e symbolic.Expr) string {
	if n, ok := e.(*symbolic.Num); ok {
		return FormatResult(n.Float64())
	}
	if len(symbolic.FreeSymbols(e)) == 0 {
		if v, ok := e.Eval(nil); ok {
			return FormatResult(v)
		}
	}
	return e.String()
}

// Evaluate reduces expr to a float with every symbol bound from values.
func Evaluate(expr symbolic.Expr, values map[string]float64) (float64, error) {
	bound, err := normalizeValues(values)
	if err != nil {
		return 0, err
	}
	v, err := symbolic.Evaluate(expr, bound)
	var unbound *symbolic.UnboundError
	if errors.As(err, &unbound) {
		return 0, &MissingValuesError{Symbols: unbound.Symbols}
	}
	return v, err
}

func normalizeValues(values map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(values))
	for key, v := range values {
		name := strings.TrimSpace(key)
		if !symbolic.IsIdentifier(name) {
			return nil, &InvalidParameterError{Name: key}
		}
		out[name] = v
	}
	return out, nil
}

// FormatResult renders an evaluation result with 15 significant digits.
// Non-finite results print as "nan", "oo" or "-oo".
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "oo"
	case math.IsInf(v, -1):
		return "-oo"
	}
	return strconv.FormatFloat(v, 'g', 15, 64)
}

// MissingFrom lists the symbols of d's error expression that values does not
// bind, sorted. Keys are trimmed as in Evaluate.
func (d *Derivation) MissingFrom(values map[string]float64) []string {
	bound := make(map[string]struct{}, len(values))
	for key := range values {
		bound[strings.TrimSpace(key)] = struct{}{}
	}
	var missing []string
	for _, name := range d.Symbols() {
		if _, ok := bound[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Symbols returns every parameter and error symbol the error expression uses.
func (d *Derivation) Symbols() []string {
	seen := map[string]struct{}{}
	for _, t := range d.Terms {
		seen[t.ErrorSymbol] = struct{}{}
		for _, s := range symbolic.FreeSymbols(t.Partial) {
			seen[s] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
