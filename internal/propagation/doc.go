// Package propagation derives and evaluates first-order uncertainty
// propagation for a formula over declared parameters.
//
// For f(p_1, ..., p_n) the error expression is
//
//	sqrt( (df/dp_1 * dp_1)**2 + ... + (df/dp_n * dp_n)**2 )
//
// where dp_i is the uncertainty symbol "d" + p_i. A Derivation carries the
// parsed formula and its partials; the symbolic expression, its LaTeX, the
// per-parameter contributions and the gradient check are all computed from it.
//
// Example:
//
//	d, err := propagation.Derive("3*x**2 + 1/z", []string{"x", "z"})
//	if err != nil {
//		return err
//	}
//	sigma, err := d.Uncertainty(map[string]float64{"x": 1.2, "dx": 0.05, "z": 0.5, "dz": 0.001})
package propagation
