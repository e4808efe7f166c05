package symbolic

import (
	"fmt"
	"math"
	"sort"
)

// Func is the application of a named elementary function to one argument.
type Func struct {
	name      string
	arg       Expr
	canonical bool
}

type funcSpec struct {
	eval  func(float64) float64
	deriv func(u Expr) Expr
	latex string
	// power reports whether powers print on the function name, as in \sin^{2}.
	power bool
}

var funcTable map[string]funcSpec

func init() {
	funcTable = map[string]funcSpec{
		"sin": {math.Sin, func(u Expr) Expr { return CosOf(u) }, `\sin`, true},
		"cos": {math.Cos, func(u Expr) Expr { return Neg(SinOf(u)) }, `\cos`, true},
		"tan": {math.Tan, func(u Expr) Expr { return AddOf(PowOf(FuncOf("tan", u), N(2)), N(1)) }, `\tan`, true},
		"asin": {math.Asin, func(u Expr) Expr {
			return PowOf(Sub(N(1), PowOf(u, N(2))), F(-1, 2))
		}, `\operatorname{asin}`, true},
		"acos": {math.Acos, func(u Expr) Expr {
			return Neg(PowOf(Sub(N(1), PowOf(u, N(2))), F(-1, 2)))
		}, `\operatorname{acos}`, true},
		"atan": {math.Atan, func(u Expr) Expr {
			return PowOf(AddOf(PowOf(u, N(2)), N(1)), N(-1))
		}, `\operatorname{atan}`, true},
		"sinh": {math.Sinh, func(u Expr) Expr { return FuncOf("cosh", u) }, `\sinh`, true},
		"cosh": {math.Cosh, func(u Expr) Expr { return FuncOf("sinh", u) }, `\cosh`, true},
		"tanh": {math.Tanh, func(u Expr) Expr { return Sub(N(1), PowOf(FuncOf("tanh", u), N(2))) }, `\tanh`, true},
		"exp":  {math.Exp, func(u Expr) Expr { return ExpOf(u) }, "e", false},
		"log":  {math.Log, func(u Expr) Expr { return PowOf(u, N(-1)) }, `\log`, false},
		"abs":  {math.Abs, func(u Expr) Expr { return FuncOf("sign", u) }, "", false},
		"sign": {signum, func(Expr) Expr { return N(0) }, `\operatorname{sign}`, false},
	}
}

func signum(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return v
}

// Functions returns the names of the supported elementary functions.
func Functions() []string {
	names := make([]string, 0, len(funcTable))
	for name := range funcTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsFunction reports whether name is a supported function.
func IsFunction(name string) bool {
	_, ok := funcTable[name]
	return ok
}

// FuncOf applies the named function to arg. It panics on an unknown name;
// callers accepting user input check IsFunction first.
func FuncOf(name string, arg Expr) Expr {
	if !IsFunction(name) {
		panic(fmt.Sprintf("symbolic: unknown function %q", name))
	}
	return (&Func{name: name, arg: arg}).Simplify()
}

func SinOf(u Expr) Expr { return FuncOf("sin", u) }
func CosOf(u Expr) Expr { return FuncOf("cos", u) }
func ExpOf(u Expr) Expr { return FuncOf("exp", u) }
func LogOf(u Expr) Expr { return FuncOf("log", u) }

func (f *Func) Name() string { return f.name }
func (f *Func) Arg() Expr    { return f.arg }

func (f *Func) Simplify() Expr {
	if f.canonical {
		return f
	}
	entry := funcTable[f.name]
	arg := f.arg.Simplify()

	if n, ok := arg.(*Num); ok {
		if !n.Exact() {
			if v := entry.eval(n.f); !math.IsNaN(v) && !math.IsInf(v, 0) {
				return Float(v)
			}
		} else if v, ok := exactValue(f.name, n); ok {
			return v
		}
	}
	switch f.name {
	case "exp":
		if inner, ok := arg.(*Func); ok && inner.name == "log" {
			return inner.arg
		}
	case "log":
		if c, ok := arg.(*Const); ok && c == E {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "sin", "tan":
		if c, ok := arg.(*Const); ok && c == Pi {
			return N(0)
		}
	case "cos":
		if c, ok := arg.(*Const); ok && c == Pi {
			return N(-1)
		}
	case "abs", "sign":
		if inner, ok := arg.(*Func); ok && inner.name == f.name {
			return inner
		}
	}
	return &Func{name: f.name, arg: arg, canonical: true}
}

// exactValue folds a function of an exact number when the result is exact.
func exactValue(name string, n *Num) (Expr, bool) {
	switch name {
	case "abs":
		return numAbs(n), true
	case "sign":
		return N(int64(n.Sign())), true
	}
	switch {
	case n.IsZero():
		switch name {
		case "sin", "tan", "asin", "atan", "sinh", "tanh":
			return N(0), true
		case "cos", "cosh", "exp":
			return N(1), true
		}
	case n.IsOne():
		switch name {
		case "log", "acos":
			return N(0), true
		}
	}
	return nil, false
}

func (f *Func) Diff(name string) Expr {
	if !DependsOn(f.arg, name) {
		return N(0)
	}
	return MulOf(funcTable[f.name].deriv(f.arg), f.arg.Diff(name))
}

func (f *Func) Subs(values map[string]Expr) Expr {
	return FuncOf(f.name, f.arg.Subs(values))
}

func (f *Func) Eval(env map[string]float64) (float64, bool) {
	v, ok := f.arg.Eval(env)
	if !ok {
		return 0, false
	}
	return funcTable[f.name].eval(v), true
}

func (f *Func) String() string {
	if f.name == "abs" {
		return "Abs(" + f.arg.String() + ")"
	}
	return f.name + "(" + f.arg.String() + ")"
}

func (f *Func) LaTeX() string {
	switch f.name {
	case "exp":
		return "e^{" + f.arg.LaTeX() + "}"
	case "abs":
		return `\left|{` + f.arg.LaTeX() + `}\right|`
	}
	return funcTable[f.name].latex + `{\left(` + f.arg.LaTeX() + ` \right)}`
}

// latexPower renders f**exp with the exponent on the function name when the
// function prints that way.
func (f *Func) latexPower(exp string) (string, bool) {
	entry := funcTable[f.name]
	if !entry.power {
		return "", false
	}
	return entry.latex + "^{" + exp + `}{\left(` + f.arg.LaTeX() + ` \right)}`, true
}
