package propagation

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
)

// Contribution is one parameter's share of the propagated uncertainty.
type Contribution struct {
	Param    string  `json:"param"`
	Partial  float64 `json:"partial"`
	Error    float64 `json:"error"`
	Absolute float64 `json:"absolute"`
	Share    float64 `json:"share"`
}

// Contributions evaluates each term at values. Absolute is |partial*error|
// and Share is the term's fraction of the total variance. The second result
// is the combined uncertainty, the Euclidean norm of the absolute terms.
func (d *Derivation) Contributions(values map[string]float64) ([]Contribution, float64, error) {
	bound, err := normalizeValues(values)
	if err != nil {
		return nil, 0, err
	}
	out := make([]Contribution, len(d.Terms))
	abs := make([]float64, len(d.Terms))
	for i, t := range d.Terms {
		partial, err := Evaluate(t.Partial, bound)
		if err != nil {
			return nil, 0, err
		}
		dp, ok := bound[t.ErrorSymbol]
		if !ok {
			return nil, 0, &MissingValuesError{Symbols: []string{t.ErrorSymbol}}
		}
		abs[i] = math.Abs(partial * dp)
		out[i] = Contribution{Param: t.Param, Partial: partial, Error: dp, Absolute: abs[i]}
	}

	total := floats.Norm(abs, 2)
	variance := make([]float64, len(abs))
	floats.MulTo(variance, abs, abs)
	if sum := floats.Sum(variance); sum > 0 {
		for i := range out {
			out[i].Share = variance[i] / sum
		}
	}
	return out, total, nil
}

// GradientReport compares symbolic partials with a central finite-difference
// gradient of the formula.
type GradientReport struct {
	Params       []string  `json:"params"`
	Symbolic     []float64 `json:"symbolic"`
	Numeric      []float64 `json:"numeric"`
	MaxDeviation float64   `json:"max_deviation"`
}

// CheckGradient evaluates the partial derivatives at values and compares them
// with fd.Gradient. Deviations are relative to max(1, |numeric|). A deviation
// above tol returns the report together with a *GradientMismatchError.
func (d *Derivation) CheckGradient(values map[string]float64, tol float64) (*GradientReport, error) {
	bound, err := normalizeValues(values)
	if err != nil {
		return nil, err
	}
	x := make([]float64, len(d.Params))
	symbolicGrad := make([]float64, len(d.Params))
	for i, t := range d.Terms {
		v, ok := bound[t.Param]
		if !ok {
			return nil, &MissingValuesError{Symbols: []string{t.Param}}
		}
		x[i] = v
		if symbolicGrad[i], err = Evaluate(t.Partial, bound); err != nil {
			return nil, err
		}
	}

	env := make(map[string]float64, len(bound))
	for k, v := range bound {
		env[k] = v
	}
	f := func(p []float64) float64 {
		for i, name := range d.Params {
			env[name] = p[i]
		}
		v, _ := d.Expr.Eval(env)
		return v
	}
	numeric := fd.Gradient(nil, f, x, &fd.Settings{Formula: fd.Central})

	report := &GradientReport{Params: d.Params, Symbolic: symbolicGrad, Numeric: numeric}
	var worst *GradientMismatchError
	for i := range numeric {
		dev := math.Abs(symbolicGrad[i]-numeric[i]) / math.Max(1, math.Abs(numeric[i]))
		if math.IsNaN(dev) {
			dev = math.Inf(1)
		}
		if dev > report.MaxDeviation {
			report.MaxDeviation = dev
			worst = &GradientMismatchError{
				Param:     d.Params[i],
				Symbolic:  symbolicGrad[i],
				Numeric:   numeric[i],
				Deviation: dev,
			}
		}
	}
	if worst != nil && report.MaxDeviation > tol {
		return report, worst
	}
	return report, nil
}
