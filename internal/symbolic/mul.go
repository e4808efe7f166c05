package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// Mul is an n-ary product. In canonical form the numeric coefficient, if any,
// is the first factor and no two factors share a base.
type Mul struct {
	factors   []Expr
	canonical bool
}

// MulOf returns the canonical product of factors.
func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Div returns a / b.
func Div(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

// Neg returns -a.
func Neg(a Expr) Expr { return MulOf(N(-1), a) }

func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

func (m *Mul) Simplify() Expr {
	if m.canonical {
		return m
	}
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range simplifyAll(m.factors) {
		if inner, ok := f.(*Mul); ok {
			flat = append(flat, inner.factors...)
			continue
		}
		flat = append(flat, f)
	}

	type group struct {
		base Expr
		exps []Expr
	}
	coeff := N(1)
	groups := map[string]*group{}
	var order []string
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		base, exp := asPower(f)
		key := base.String()
		if g, seen := groups[key]; seen {
			g.exps = append(g.exps, exp)
			continue
		}
		groups[key] = &group{base: base, exps: []Expr{exp}}
		order = append(order, key)
	}

	others := make([]Expr, 0, len(order))
	redo := false
	for _, key := range order {
		g := groups[key]
		p := PowOf(g.base, AddOf(g.exps...))
		switch v := p.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Mul:
			redo = true
			others = append(others, v.factors...)
		default:
			others = append(others, p)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if redo {
		return MulOf(append([]Expr{coeff}, others...)...)
	}
	// A number times a single sum distributes: 2*(x + 1) is 2*x + 2.
	if len(others) == 1 && !coeff.IsOne() {
		if sum, ok := others[0].(*Add); ok {
			terms := make([]Expr, len(sum.terms))
			for i, t := range sum.terms {
				terms[i] = MulOf(coeff, t)
			}
			return AddOf(terms...)
		}
	}
	sortFactors(others)

	switch {
	case len(others) == 0:
		return coeff
	case coeff.IsOne() && len(others) == 1:
		return others[0]
	case coeff.IsOne():
		return &Mul{factors: others, canonical: true}
	}
	return &Mul{factors: append([]Expr{coeff}, others...), canonical: true}
}

func asPower(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

func sortFactors(fs []Expr) {
	rank := func(e Expr) int {
		base, _ := asPower(e)
		switch base.(type) {
		case *Sym, *Const, *Num:
			return 0
		case *Func:
			return 2
		}
		return 1
	}
	sort.SliceStable(fs, func(i, j int) bool {
		ri, rj := rank(fs[i]), rank(fs[j])
		if ri != rj {
			return ri < rj
		}
		bi, _ := asPower(fs[i])
		bj, _ := asPower(fs[j])
		if bi.String() != bj.String() {
			return bi.String() < bj.String()
		}
		return fs[i].String() < fs[j].String()
	})
}

func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i, fi := range m.factors {
		if !DependsOn(fi, name) {
			continue
		}
		parts := make([]Expr, 0, len(m.factors))
		parts = append(parts, fi.Diff(name))
		for j, fj := range m.factors {
			if j != i {
				parts = append(parts, fj)
			}
		}
		terms = append(terms, MulOf(parts...))
	}
	return AddOf(terms...)
}

func (m *Mul) Subs(values map[string]Expr) Expr {
	return MulOf(substituteAll(m.factors, values)...)
}

func (m *Mul) Eval(env map[string]float64) (float64, bool) {
	acc := 1.0
	for _, f := range m.factors {
		v, ok := f.Eval(env)
		if !ok {
			return 0, false
		}
		acc *= v
	}
	return acc, true
}

// fraction splits a product into sign, numerator and denominator factors for
// printing. Denominator factors are returned with positive exponents.
func (m *Mul) fraction() (negative bool, num, den []Expr) {
	for _, f := range m.factors {
		switch v := f.(type) {
		case *Num:
			negative = v.IsNegative()
			abs := numAbs(v)
			if !abs.Exact() {
				num = append(num, abs)
				continue
			}
			r := abs.rat
			if r.Num().Cmp(big.NewInt(1)) != 0 {
				num = append(num, Rat(new(big.Rat).SetInt(r.Num())))
			}
			if !r.IsInt() {
				den = append(den, Rat(new(big.Rat).SetInt(r.Denom())))
			}
		case *Pow:
			if e, ok := v.exp.(*Num); ok && e.IsNegative() {
				den = append(den, PowOf(v.base, numNeg(e)))
				continue
			}
			num = append(num, f)
		default:
			num = append(num, f)
		}
	}
	return negative, num, den
}

func (m *Mul) String() string {
	negative, num, den := m.fraction()
	sign := ""
	if negative {
		sign = "-"
	}
	numStr := "1"
	if len(num) > 0 {
		numStr = joinFactors(num, "*", func(e Expr) string { return wrapText(e, precMul) })
	}
	if len(den) == 0 {
		return sign + numStr
	}
	denStr := joinFactors(den, "*", func(e Expr) string { return wrapText(e, precMul) })
	if len(den) > 1 || precedence(den[0]) < precPow {
		denStr = "(" + denStr + ")"
	}
	return sign + numStr + "/" + denStr
}

func (m *Mul) LaTeX() string {
	negative, num, den := m.fraction()
	sign := ""
	if negative {
		sign = "- "
	}
	numStr := "1"
	if len(num) > 0 {
		numStr = latexProduct(num)
	}
	if len(den) == 0 {
		return sign + numStr
	}
	return sign + `\frac{` + numStr + "}{" + latexProduct(den) + "}"
}

func joinFactors(fs []Expr, sep string, render func(Expr) string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = render(f)
	}
	return strings.Join(parts, sep)
}

// latexProduct juxtaposes factors, switching to \cdot where two numbers
// would otherwise run together.
func latexProduct(fs []Expr) string {
	var b strings.Builder
	for i, f := range fs {
		s := wrapLaTeX(f, precMul)
		if i > 0 {
			if s != "" && s[0] >= '0' && s[0] <= '9' {
				b.WriteString(` \cdot `)
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(s)
	}
	return b.String()
}

func wrapText(e Expr, min int) string {
	if precedence(e) < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func wrapLaTeX(e Expr, min int) string {
	if precedence(e) < min {
		return `\left(` + e.LaTeX() + `\right)`
	}
	return e.LaTeX()
}
