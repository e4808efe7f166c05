package symbolic

import (
	"sort"
	"strings"
)

// Add is an n-ary sum.
type Add struct {
	terms     []Expr
	canonical bool
}

// AddOf returns the canonical sum of terms.
func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Sum builds a sum node that keeps every term as given, including zeros and
// like terms. It is canonicalised only when Simplify is called.
func Sum(terms ...Expr) Expr {
	switch len(terms) {
	case 0:
		return N(0)
	case 1:
		return terms[0]
	}
	return &Add{terms: terms}
}

// Sub returns a - b.
func Sub(a, b Expr) Expr { return AddOf(a, MulOf(N(-1), b)) }

func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

func (a *Add) Simplify() Expr {
	if a.canonical {
		return a
	}
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range simplifyAll(a.terms) {
		if inner, ok := t.(*Add); ok {
			flat = append(flat, inner.terms...)
			continue
		}
		flat = append(flat, t)
	}

	type group struct {
		coeff *Num
		rest  Expr
	}
	constant := N(0)
	groups := map[string]*group{}
	var order []string
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constant = numAdd(constant, n)
			continue
		}
		coeff, rest := splitCoeff(t)
		key := rest.String()
		if g, seen := groups[key]; seen {
			g.coeff = numAdd(g.coeff, coeff)
			continue
		}
		groups[key] = &group{coeff: coeff, rest: rest}
		order = append(order, key)
	}

	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		if g.coeff.IsZero() {
			continue
		}
		result = append(result, scale(g.coeff, g.rest))
	}
	sortTerms(result)
	if !constant.IsZero() {
		result = append(result, constant)
	}

	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result, canonical: true}
}

func (a *Add) Diff(name string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(name)
	}
	return AddOf(out...)
}

func (a *Add) Subs(values map[string]Expr) Expr {
	return AddOf(substituteAll(a.terms, values)...)
}

func (a *Add) Eval(env map[string]float64) (float64, bool) {
	var acc float64
	for _, t := range a.terms {
		v, ok := t.Eval(env)
		if !ok {
			return 0, false
		}
		acc += v
	}
	return acc, true
}

func (a *Add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return joinSigned(parts)
}

func (a *Add) LaTeX() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.LaTeX()
	}
	return joinSigned(parts)
}

// joinSigned joins terms with " + ", folding a leading minus of any term after
// the first into the operator.
func joinSigned(parts []string) string {
	var b strings.Builder
	for i, p := range parts {
		if i == 0 {
			b.WriteString(p)
			continue
		}
		if strings.HasPrefix(p, "-") {
			b.WriteString(" - ")
			b.WriteString(strings.TrimLeft(p[1:], " "))
			continue
		}
		b.WriteString(" + ")
		b.WriteString(p)
	}
	return b.String()
}

// splitCoeff separates the numeric coefficient of a canonical term.
func splitCoeff(t Expr) (*Num, Expr) {
	m, ok := t.(*Mul)
	if !ok {
		return N(1), t
	}
	c, ok := m.factors[0].(*Num)
	if !ok {
		return N(1), t
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return c, rest[0]
	}
	return c, &Mul{factors: rest, canonical: true}
}

func scale(c *Num, e Expr) Expr {
	if c.IsOne() {
		return e
	}
	return MulOf(c, e)
}

// sortTerms orders terms by their leading symbol, then by descending degree in
// that symbol, so that polynomials print highest power first.
func sortTerms(terms []Expr) {
	type keyed struct {
		e      Expr
		lead   string
		degree float64
		text   string
	}
	ks := make([]keyed, len(terms))
	for i, t := range terms {
		_, rest := splitCoeff(t)
		lead := "~"
		if syms := FreeSymbols(rest); len(syms) > 0 {
			lead = syms[0]
		}
		ks[i] = keyed{e: t, lead: lead, degree: degreeIn(rest, lead), text: rest.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].lead != ks[j].lead {
			return ks[i].lead < ks[j].lead
		}
		if ks[i].degree != ks[j].degree {
			return ks[i].degree > ks[j].degree
		}
		return ks[i].text < ks[j].text
	})
	for i := range ks {
		terms[i] = ks[i].e
	}
}

// degreeIn returns the numeric power of name in a monomial, or 0 when the
// term is not a simple power of it.
func degreeIn(e Expr, name string) float64 {
	switch v := e.(type) {
	case *Sym:
		if v.name == name {
			return 1
		}
	case *Pow:
		if s, ok := v.base.(*Sym); ok && s.name == name {
			if n, ok := v.exp.(*Num); ok {
				return n.Float64()
			}
		}
	case *Mul:
		var d float64
		for _, f := range v.factors {
			d += degreeIn(f, name)
		}
		return d
	}
	return 0
}
