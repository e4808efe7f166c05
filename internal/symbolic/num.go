package symbolic

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Num is a numeric literal. Exact numbers are rationals; inexact numbers come
// from decimal literals or float evaluation and behave like IEEE doubles.
// Any arithmetic touching an inexact number yields an inexact number.
type Num struct {
	rat *big.Rat // nil when inexact
	f   float64
}

// N returns the exact integer n.
func N(n int64) *Num { return &Num{rat: new(big.Rat).SetInt64(n)} }

// F returns the exact fraction p/q.
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return &Num{rat: big.NewRat(p, q)}
}

// Float returns an inexact number.
func Float(f float64) *Num { return &Num{f: f} }

// Rat returns an exact number holding a copy of r.
func Rat(r *big.Rat) *Num { return &Num{rat: new(big.Rat).Set(r)} }

func (n *Num) Exact() bool { return n.rat != nil }

func (n *Num) Float64() float64 {
	if n.rat != nil {
		f, _ := n.rat.Float64()
		return f
	}
	return n.f
}

func (n *Num) Sign() int {
	if n.rat != nil {
		return n.rat.Sign()
	}
	switch {
	case n.f > 0:
		return 1
	case n.f < 0:
		return -1
	}
	return 0
}

func (n *Num) IsZero() bool     { return n.Sign() == 0 && !math.IsNaN(n.f) }
func (n *Num) IsNegative() bool { return n.Sign() < 0 }
func (n *Num) IsOne() bool      { return n.rat != nil && n.rat.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsInteger() bool  { return n.rat != nil && n.rat.IsInt() }

// IsHalf reports whether n is exactly 1/2.
func (n *Num) IsHalf() bool { return n.rat != nil && n.rat.Cmp(big.NewRat(1, 2)) == 0 }

// Int64 returns the value when n is an exact integer that fits in an int64.
func (n *Num) Int64() (int64, bool) {
	if !n.IsInteger() || !n.rat.Num().IsInt64() {
		return 0, false
	}
	return n.rat.Num().Int64(), true
}

func (n *Num) Simplify() Expr                         { return n }
func (n *Num) Diff(string) Expr                       { return N(0) }
func (n *Num) Subs(map[string]Expr) Expr              { return n }
func (n *Num) Eval(map[string]float64) (float64, bool) { return n.Float64(), true }

func (n *Num) String() string {
	if n.rat == nil {
		return formatFloat(n.f)
	}
	if n.rat.IsInt() {
		return n.rat.Num().String()
	}
	return n.rat.Num().String() + "/" + n.rat.Denom().String()
}

func (n *Num) LaTeX() string {
	if n.rat == nil {
		return floatLaTeX(n.f)
	}
	if n.rat.IsInt() {
		return n.rat.Num().String()
	}
	num := new(big.Int).Abs(n.rat.Num())
	frac := `\frac{` + num.String() + "}{" + n.rat.Denom().String() + "}"
	if n.rat.Sign() < 0 {
		return "- " + frac
	}
	return frac
}

func numAdd(a, b *Num) *Num {
	if a.rat != nil && b.rat != nil {
		return &Num{rat: new(big.Rat).Add(a.rat, b.rat)}
	}
	return Float(a.Float64() + b.Float64())
}

func numMul(a, b *Num) *Num {
	if a.rat != nil && b.rat != nil {
		return &Num{rat: new(big.Rat).Mul(a.rat, b.rat)}
	}
	return Float(a.Float64() * b.Float64())
}

func numNeg(a *Num) *Num {
	if a.rat != nil {
		return &Num{rat: new(big.Rat).Neg(a.rat)}
	}
	return Float(-a.f)
}

func numAbs(a *Num) *Num {
	if a.Sign() < 0 {
		return numNeg(a)
	}
	return a
}

// numPowInt raises a to an integer power. The second result is false when the
// power is undefined (exact zero to a negative power).
func numPowInt(a *Num, e int64) (*Num, bool) {
	if a.rat == nil {
		return Float(math.Pow(a.f, float64(e))), true
	}
	if a.rat.Sign() == 0 && e < 0 {
		return nil, false
	}
	neg := e < 0
	if neg {
		e = -e
	}
	num := new(big.Int).Exp(a.rat.Num(), big.NewInt(e), nil)
	den := new(big.Int).Exp(a.rat.Denom(), big.NewInt(e), nil)
	if neg {
		num, den = den, num
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return &Num{rat: new(big.Rat).SetFrac(num, den)}, true
}

// numSqrt returns the exact square root of a when a is a non-negative rational
// whose numerator and denominator are both perfect squares.
func numSqrt(a *Num) (*Num, bool) {
	if a.rat == nil || a.rat.Sign() < 0 {
		return nil, false
	}
	num, ok := perfectSquareRoot(a.rat.Num())
	if !ok {
		return nil, false
	}
	den, ok := perfectSquareRoot(a.rat.Denom())
	if !ok {
		return nil, false
	}
	return &Num{rat: new(big.Rat).SetFrac(num, den)}, true
}

func perfectSquareRoot(v *big.Int) (*big.Int, bool) {
	r := new(big.Int).Sqrt(v)
	if new(big.Int).Mul(r, r).Cmp(v) != 0 {
		return nil, false
	}
	return r, true
}

// parseNumber converts a numeric literal. Literals without a decimal point or
// exponent are exact integers; everything else is inexact.
func parseNumber(lit string) (*Num, bool) {
	if !strings.ContainsAny(lit, ".eE") {
		i, ok := new(big.Int).SetString(lit, 10)
		if !ok {
			return nil, false
		}
		return &Num{rat: new(big.Rat).SetInt(i)}, true
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, false
	}
	return Float(f), true
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

func floatLaTeX(f float64) string {
	s := formatFloat(f)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		if strings.HasPrefix(s, "-") {
			return "- " + s[1:]
		}
		return s
	}
	if e, err := strconv.Atoi(exp); err == nil {
		exp = strconv.Itoa(e)
	}
	sign := ""
	if strings.HasPrefix(mantissa, "-") {
		sign = "- "
		mantissa = mantissa[1:]
	}
	return sign + mantissa + ` \cdot 10^{` + exp + "}"
}
