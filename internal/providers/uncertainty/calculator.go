package uncertainty

import (
	"context"
	"math"
	"strings"

	"github.com/GriffinCanCode/errprop/internal/propagation"
	"github.com/GriffinCanCode/errprop/internal/symbolic"
	"github.com/GriffinCanCode/errprop/internal/values"
)

// Input is one propagation request. Params and Vals hold the decoded JSON
// fields: params a list, vals text or an object.
type Input struct {
	Formula string
	Params  interface{}
	Vals    interface{}
}

// Outcome is everything a propagation request reports.
type Outcome struct {
	Formula          string                     `json:"formula"`
	Params           []string                   `json:"params"`
	Vals             values.Map                 `json:"vals"`
	Format           values.Format              `json:"format"`
	Result           string                     `json:"result"`
	Uncertainty      *float64                   `json:"uncertainty,omitempty"`
	Value            *float64                   `json:"value,omitempty"`
	ErrorExpression  string                     `json:"error_expression"`
	TexFormula       string                     `json:"tex_formula"`
	TexOriginFormula string                     `json:"tex_originformula"`
	Contributions    []propagation.Contribution `json:"contributions,omitempty"`
}

// Calculator runs the propagation pipeline shared by the HTTP API, the
// provider tools and the CLI.
type Calculator struct {
	limits propagation.Limits
}

// NewCalculator creates a calculator bounded by limits
func NewCalculator(limits propagation.Limits) *Calculator {
	return &Calculator{limits: limits}
}

// Limits returns the configured input limits
func (c *Calculator) Limits() propagation.Limits {
	return c.limits
}

// Calculate normalises the input, resolves the values, derives the error
// expression and evaluates it.
//
// The formula is trimmed and params reduced to non-empty trimmed strings.
// Values are resolved before the formula is touched, so a malformed vals
// payload is reported ahead of formula errors. Symbols left unbound keep the
// result symbolic; Uncertainty, Value and Contributions are only set when
// every symbol has a value and the numbers are finite.
func (c *Calculator) Calculate(ctx context.Context, in Input) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formula := strings.TrimSpace(in.Formula)
	params, err := NormalizeParams(in.Params)
	if err != nil {
		return nil, err
	}
	if err := c.limits.Check(formula, params); err != nil {
		return nil, err
	}
	vals, format, err := ResolveVals(in.Vals)
	if err != nil {
		return nil, err
	}

	d, err := propagation.Derive(formula, params)
	if err != nil {
		return nil, err
	}
	expr := d.ErrorExpression()
	evaluated, err := propagation.SubstituteAndEvaluate(expr, vals, true)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Formula:          formula,
		Params:           params,
		Vals:             vals,
		Format:           format,
		Result:           propagation.ResultString(evaluated),
		ErrorExpression:  expr.String(),
		TexFormula:       d.ErrorLaTeX(),
		TexOriginFormula: d.FormulaLaTeX(),
	}
	if n, ok := evaluated.(*symbolic.Num); ok {
		out.Uncertainty = finite(n.Float64())
	}
	if len(d.MissingFrom(vals)) > 0 {
		return out, nil
	}
	if v, err := d.Value(vals); err == nil {
		out.Value = finite(v)
	}
	if parts, total, err := d.Contributions(vals); err == nil && !math.IsNaN(total) && !math.IsInf(total, 0) {
		out.Contributions = parts
	}
	return out, nil
}

// Latex renders the formula and, when params are given, its error expression.
func (c *Calculator) Latex(formula string, rawParams interface{}) (origin, errorTeX string, err error) {
	formula = strings.TrimSpace(formula)
	params, err := NormalizeParams(rawParams)
	if err != nil {
		return "", "", err
	}
	if err := c.limits.Check(formula, params); err != nil {
		return "", "", err
	}
	if origin, err = propagation.RenderFormulaLaTeX(formula); err != nil {
		return "", "", err
	}
	if len(params) == 0 {
		return origin, "", nil
	}
	errorTeX, err = propagation.RenderErrorExpressionLaTeX(formula, params)
	if err != nil {
		return "", "", err
	}
	return origin, errorTeX, nil
}

// CheckGradient derives formula and compares its partials with finite
// differences at the given values.
func (c *Calculator) CheckGradient(ctx context.Context, in Input, tol float64) (*propagation.GradientReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	formula := strings.TrimSpace(in.Formula)
	params, err := NormalizeParams(in.Params)
	if err != nil {
		return nil, err
	}
	if err := c.limits.Check(formula, params); err != nil {
		return nil, err
	}
	vals, _, err := ResolveVals(in.Vals)
	if err != nil {
		return nil, err
	}
	d, err := propagation.Derive(formula, params)
	if err != nil {
		return nil, err
	}
	return d.CheckGradient(vals, tol)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
