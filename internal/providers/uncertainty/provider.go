package uncertainty

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/errprop/internal/propagation"
	"github.com/GriffinCanCode/errprop/internal/types"
)

// DefaultTolerance bounds the relative deviation accepted by check_gradient.
const DefaultTolerance = 1e-6

// Provider exposes the propagation engine as service tools
type Provider struct {
	calc *Calculator
}

// NewProvider creates an uncertainty provider over calc
func NewProvider(calc *Calculator) *Provider {
	return &Provider{calc: calc}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "uncertainty",
		Name:        "Uncertainty Service",
		Description: "Propagation of measurement uncertainty through algebraic formulas",
		Category:    types.CategoryUncertainty,
		Capabilities: []string{
			"error_propagation",
			"symbolic_differentiation",
			"latex",
			"value_parsing",
			"measurement_statistics",
		},
		Tools: p.tools(),
		DataModels: []types.DataModel{
			{
				Name: "Contribution",
				Fields: map[string]string{
					"param":    "string",
					"partial":  "number",
					"error":    "number",
					"absolute": "number",
					"share":    "number",
				},
			},
		},
	}
}

func (p *Provider) tools() []types.Tool {
	formula := types.Parameter{Name: "formula", Type: "string", Description: "Algebraic formula, e.g. 3*x**2 + 1/z", Required: true}
	params := types.Parameter{Name: "params", Type: "array", Description: "Independent variables", Required: true}
	vals := types.Parameter{Name: "vals", Type: "string|object", Description: "Values for parameters and their d-prefixed uncertainties", Required: true}

	return []types.Tool{
		{
			ID:          "uncertainty.propagate",
			Name:        "Propagate",
			Description: "Derive and evaluate the propagated uncertainty of a formula",
			Parameters:  []types.Parameter{formula, params, vals},
			Returns:     "object",
		},
		{
			ID:          "uncertainty.latex",
			Name:        "LaTeX",
			Description: "Render a formula and its error expression as LaTeX",
			Parameters: []types.Parameter{
				formula,
				{Name: "params", Type: "array", Description: "Independent variables", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "uncertainty.parse_values",
			Name:        "Parse Values",
			Description: "Parse JSON or relaxed key: value text into numbers",
			Parameters:  []types.Parameter{vals},
			Returns:     "object",
		},
		{
			ID:          "uncertainty.check_gradient",
			Name:        "Check Gradient",
			Description: "Compare symbolic partial derivatives with finite differences",
			Parameters: []types.Parameter{
				formula, params, vals,
				{Name: "tolerance", Type: "number", Description: "Accepted relative deviation", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "uncertainty.measure",
			Name:        "Measure",
			Description: "Mean and standard error of repeated readings",
			Parameters: []types.Parameter{
				{Name: "samples", Type: "array", Description: "Repeated readings of one quantity", Required: true},
				{Name: "name", Type: "string", Description: "Variable the readings bind", Required: false},
			},
			Returns: "object",
		},
	}
}

// Execute routes to the requested tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "uncertainty.propagate":
		return p.propagate(ctx, params)
	case "uncertainty.latex":
		return p.latex(params)
	case "uncertainty.parse_values":
		return p.parseValues(params)
	case "uncertainty.check_gradient":
		return p.checkGradient(ctx, params)
	case "uncertainty.measure":
		return p.measure(params)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) propagate(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	formula, ok := GetString(params, "formula")
	if !ok {
		return Failure("formula parameter required")
	}
	out, err := p.calc.Calculate(ctx, Input{Formula: formula, Params: params["params"], Vals: params["vals"]})
	if err != nil {
		if !IsClientError(err) {
			return nil, err
		}
		return FailureFrom(err)
	}

	data := map[string]interface{}{
		"formula":           out.Formula,
		"params":            out.Params,
		"vals":              out.Vals,
		"format":            string(out.Format),
		"result":            out.Result,
		"error_expression":  out.ErrorExpression,
		"tex_formula":       out.TexFormula,
		"tex_originformula": out.TexOriginFormula,
	}
	if out.Uncertainty != nil {
		data["uncertainty"] = *out.Uncertainty
	}
	if out.Value != nil {
		data["value"] = *out.Value
	}
	if out.Contributions != nil {
		data["contributions"] = out.Contributions
	}
	return Success(data)
}

func (p *Provider) latex(params map[string]interface{}) (*types.Result, error) {
	formula, ok := GetString(params, "formula")
	if !ok {
		return Failure("formula parameter required")
	}
	origin, errorTeX, err := p.calc.Latex(formula, params["params"])
	if err != nil {
		return FailureFrom(err)
	}
	data := map[string]interface{}{"tex_originformula": origin}
	if errorTeX != "" {
		data["tex_formula"] = errorTeX
	}
	return Success(data)
}

func (p *Provider) parseValues(params map[string]interface{}) (*types.Result, error) {
	raw, ok := params["vals"]
	if !ok {
		return Failure("vals parameter required")
	}
	vals, format, err := ResolveVals(raw)
	if err != nil {
		return FailureFrom(err)
	}
	return Success(map[string]interface{}{"vals": vals, "format": string(format)})
}

func (p *Provider) checkGradient(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	formula, ok := GetString(params, "formula")
	if !ok {
		return Failure("formula parameter required")
	}
	tol, ok := GetNumber(params, "tolerance")
	if !ok || tol <= 0 {
		tol = DefaultTolerance
	}

	report, err := p.calc.CheckGradient(ctx, Input{Formula: formula, Params: params["params"], Vals: params["vals"]}, tol)
	if report == nil {
		if !IsClientError(err) {
			return nil, err
		}
		return FailureFrom(err)
	}
	return Success(map[string]interface{}{
		"ok":            err == nil,
		"params":        report.Params,
		"symbolic":      report.Symbolic,
		"numeric":       report.Numeric,
		"max_deviation": report.MaxDeviation,
		"tolerance":     tol,
	})
}

func (p *Provider) measure(params map[string]interface{}) (*types.Result, error) {
	samples, ok := GetNumbers(params, "samples")
	if !ok {
		return Failure("samples parameter required")
	}
	m, err := propagation.Measure(samples)
	if err != nil {
		return FailureFrom(err)
	}
	data := map[string]interface{}{
		"n":      m.N,
		"mean":   m.Mean,
		"stddev": m.StdDev,
		"stderr": m.StdErr,
	}
	if name, ok := GetString(params, "name"); ok && name != "" {
		data["vals"] = m.Bind(name)
	}
	return Success(data)
}
