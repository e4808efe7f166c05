package symbolic

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Expr is a node of an algebraic expression tree.
//
// Nodes returned by the exported constructors (AddOf, MulOf, PowOf, ...) are
// canonical: Simplify on them is the identity. The raw builders Sum, Square
// and Sqrt keep their structure until Simplify is called.
type Expr interface {
	// Simplify returns the canonical form of the expression.
	Simplify() Expr

	// String renders the expression as plain text in Python syntax.
	String() string

	// LaTeX renders the expression in LaTeX math notation.
	LaTeX() string

	// Diff returns the partial derivative with respect to the named symbol.
	Diff(name string) Expr

	// Subs replaces symbols simultaneously. Replacement values are never
	// themselves substituted.
	Subs(values map[string]Expr) Expr

	// Eval reduces the expression to a float. It reports false when a
	// symbol has no binding in env.
	Eval(env map[string]float64) (float64, bool)
}

// Operator precedence used by the printers.
const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

func precedence(e Expr) int {
	switch v := e.(type) {
	case *Add:
		return precAdd
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok && c.IsNegative() {
			return precAdd
		}
		return precMul
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsNegative() {
			return precMul
		}
		return precPow
	case *Num:
		if v.IsNegative() {
			return precAdd
		}
		if v.Exact() && !v.IsInteger() {
			return precMul
		}
	}
	return precAtom
}

// Equal reports whether two expressions have the same canonical form.
func Equal(a, b Expr) bool {
	return a.Simplify().String() == b.Simplify().String()
}

// Diff returns the canonical partial derivative of e with respect to name.
func Diff(e Expr, name string) Expr {
	return e.Diff(name).Simplify()
}

// Subs substitutes all values simultaneously and canonicalises the result.
func Subs(e Expr, values map[string]Expr) Expr {
	return e.Subs(values).Simplify()
}

// FreeSymbols returns the sorted, de-duplicated symbol names in e.
func FreeSymbols(e Expr) []string {
	seen := map[string]struct{}{}
	collectSymbols(e, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

// DependsOn reports whether name occurs free in e.
func DependsOn(e Expr, name string) bool {
	switch v := e.(type) {
	case *Sym:
		return v.name == name
	case *Add:
		for _, t := range v.terms {
			if DependsOn(t, name) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if DependsOn(f, name) {
				return true
			}
		}
	case *Pow:
		return DependsOn(v.base, name) || DependsOn(v.exp, name)
	case *Func:
		return DependsOn(v.arg, name)
	}
	return false
}

// UnboundError reports symbols that had no value during evaluation.
type UnboundError struct {
	Symbols []string
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("unbound symbols: %s", strings.Join(e.Symbols, ", "))
}

// Evaluate reduces e to a float using env. Symbols missing from env are
// reported through *UnboundError.
func Evaluate(e Expr, env map[string]float64) (float64, error) {
	v, ok := e.Eval(env)
	if ok {
		return v, nil
	}
	var missing []string
	for _, name := range FreeSymbols(e) {
		if _, bound := env[name]; !bound {
			missing = append(missing, name)
		}
	}
	return 0, &UnboundError{Symbols: missing}
}

// Numbers converts a float mapping to substitution values. Integral values
// become exact integers.
func Numbers(values map[string]float64) map[string]Expr {
	out := make(map[string]Expr, len(values))
	for name, v := range values {
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			out[name] = N(int64(v))
			continue
		}
		out[name] = Float(v)
	}
	return out
}

func simplifyAll(es []Expr) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = e.Simplify()
	}
	return out
}

func substituteAll(es []Expr, values map[string]Expr) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = e.Subs(values)
	}
	return out
}

// EvalF converts every number and constant in e to a float and refolds, so
// fully bound subtrees collapse to a single float while free symbols stay
// symbolic. Integer exponents are kept exact.
func EvalF(e Expr) Expr {
	switch v := e.(type) {
	case *Num:
		return Float(v.Float64())
	case *Const:
		return Float(v.value())
	case *Add:
		return AddOf(mapExprs(v.terms, EvalF)...)
	case *Mul:
		return MulOf(mapExprs(v.factors, EvalF)...)
	case *Pow:
		exp := v.exp
		if n, ok := exp.(*Num); !ok || !n.IsInteger() {
			exp = EvalF(exp)
		}
		return PowOf(EvalF(v.base), exp)
	case *Func:
		return FuncOf(v.name, EvalF(v.arg))
	}
	return e
}

func mapExprs(es []Expr, f func(Expr) Expr) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = f(e)
	}
	return out
}
