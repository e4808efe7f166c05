package symbolic

import (
	"math"
	"math/big"
	"strconv"
)

// Pow is base**exp.
type Pow struct {
	base, exp Expr
	canonical bool
}

// PowOf returns the canonical power base**exp.
func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// SqrtOf returns the canonical square root of e.
func SqrtOf(e Expr) Expr { return PowOf(e, F(1, 2)) }

// Square builds e**2 without canonicalising, so a product base is kept intact.
func Square(e Expr) Expr { return &Pow{base: e, exp: N(2)} }

// Sqrt builds e**(1/2) without canonicalising.
func Sqrt(e Expr) Expr { return &Pow{base: e, exp: F(1, 2)} }

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

func (p *Pow) Simplify() Expr {
	if p.canonical {
		return p
	}
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	en, expIsNum := exp.(*Num)
	if expIsNum {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsOne() {
			return N(1)
		}
		if expIsNum {
			if folded, ok := foldNumPow(bn, en); ok {
				return folded
			}
		}
	}
	if c, ok := base.(*Const); ok && c == E {
		return ExpOf(exp)
	}
	if expIsNum && en.IsInteger() {
		switch b := base.(type) {
		case *Func:
			if b.name == "exp" {
				return ExpOf(MulOf(b.arg, en))
			}
		case *Pow:
			return PowOf(b.base, MulOf(b.exp, en))
		case *Mul:
			fs := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				fs[i] = PowOf(f, en)
			}
			return MulOf(fs...)
		}
	}
	return &Pow{base: base, exp: exp, canonical: true}
}

// foldNumPow evaluates a numeric power when the result is representable:
// exact integer powers, exact square roots of perfect squares, and any power
// involving an inexact operand with a finite real result.
func foldNumPow(b, e *Num) (Expr, bool) {
	if b.IsZero() {
		if e.Sign() > 0 {
			return N(0), true
		}
		return nil, false
	}
	if b.Exact() && e.Exact() {
		if n, ok := e.Int64(); ok && n >= -1024 && n <= 1024 {
			return exactPow(b, n)
		}
		if e.rat.Denom().Cmp(big.NewInt(2)) == 0 && e.rat.Num().IsInt64() {
			root, ok := numSqrt(b)
			if !ok {
				return nil, false
			}
			return exactPow(root, e.rat.Num().Int64())
		}
		return nil, false
	}
	v := math.Pow(b.Float64(), e.Float64())
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return Float(v), true
}

func exactPow(b *Num, n int64) (Expr, bool) {
	r, ok := numPowInt(b, n)
	if !ok {
		return nil, false
	}
	return r, true
}

func (p *Pow) Diff(name string) Expr {
	baseDep := DependsOn(p.base, name)
	expDep := DependsOn(p.exp, name)
	switch {
	case !baseDep && !expDep:
		return N(0)
	case !expDep:
		return MulOf(p.exp, PowOf(p.base, Sub(p.exp, N(1))), p.base.Diff(name))
	case !baseDep:
		return MulOf(PowOf(p.base, p.exp), LogOf(p.base), p.exp.Diff(name))
	}
	logTerm := MulOf(p.exp.Diff(name), LogOf(p.base))
	divTerm := MulOf(p.exp, p.base.Diff(name), PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Subs(values map[string]Expr) Expr {
	return PowOf(p.base.Subs(values), p.exp.Subs(values))
}

func (p *Pow) Eval(env map[string]float64) (float64, bool) {
	b, ok := p.base.Eval(env)
	if !ok {
		return 0, false
	}
	e, ok := p.exp.Eval(env)
	if !ok {
		return 0, false
	}
	return math.Pow(b, e), true
}

func (p *Pow) String() string {
	if n, ok := p.exp.(*Num); ok {
		if n.IsNegative() {
			return "1/" + wrapText(PowOf(p.base, numNeg(n)), precPow)
		}
		if n.IsHalf() {
			return "sqrt(" + p.base.String() + ")"
		}
	}
	return wrapText(p.base, precAtom) + "**" + wrapText(p.exp, precAtom)
}

func (p *Pow) LaTeX() string {
	if n, ok := p.exp.(*Num); ok {
		if n.IsNegative() {
			return `\frac{1}{` + PowOf(p.base, numNeg(n)).LaTeX() + "}"
		}
		if n.IsHalf() {
			return `\sqrt{` + p.base.LaTeX() + "}"
		}
		if n.Exact() && n.rat.Num().IsInt64() && n.rat.Num().Int64() == 1 && n.rat.Denom().IsInt64() {
			return `\sqrt[` + strconv.FormatInt(n.rat.Denom().Int64(), 10) + "]{" + p.base.LaTeX() + "}"
		}
	}
	if f, ok := p.base.(*Func); ok {
		if f.name == "exp" {
			return `\left(` + f.LaTeX() + `\right)^{` + p.exp.LaTeX() + "}"
		}
		if n, ok := p.exp.(*Num); ok && n.IsInteger() {
			if s, ok := f.latexPower(n.LaTeX()); ok {
				return s
			}
		}
	}
	return wrapLaTeX(p.base, precAtom) + "^{" + p.exp.LaTeX() + "}"
}
