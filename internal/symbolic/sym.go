package symbolic

import "math"

// Sym is a named variable.
type Sym struct{ name string }

// S returns the symbol with the given name. Symbols are compared by name.
func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Name() string   { return s.name }
func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string  { return symbolLaTeX(s.name) }

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

func (s *Sym) Subs(values map[string]Expr) Expr {
	if v, ok := values[s.name]; ok {
		return v
	}
	return s
}

func (s *Sym) Eval(env map[string]float64) (float64, bool) {
	v, ok := env[s.name]
	return v, ok
}

// Const is a named mathematical constant. Constants are not free symbols.
type Const struct{ name string }

var (
	Pi = &Const{name: "pi"}
	E  = &Const{name: "E"}
)

func (c *Const) Name() string              { return c.name }
func (c *Const) Simplify() Expr            { return c }
func (c *Const) String() string            { return c.name }
func (c *Const) Diff(string) Expr          { return N(0) }
func (c *Const) Subs(map[string]Expr) Expr { return c }

func (c *Const) Eval(map[string]float64) (float64, bool) { return c.value(), true }

func (c *Const) LaTeX() string {
	if c == Pi {
		return `\pi`
	}
	return "e"
}

func (c *Const) value() float64 {
	if c == Pi {
		return math.Pi
	}
	return math.E
}
