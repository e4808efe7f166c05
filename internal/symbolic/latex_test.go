package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaTeX(t *testing.T) {
	tests := []struct {
		formula string
		want    string
	}{
		{"3 * x ** 2 + 4 * y ** 3 + 1 / z", `3 x^{2} + 4 y^{3} + \frac{1}{z}`},
		{"-1/z**2", `- \frac{1}{z^{2}}`},
		{"x/y", `\frac{x}{y}`},
		{"x/(2*y)", `\frac{x}{2 y}`},
		{"0.5*x", `0.5 x`},
		{"pi*r**2", `\pi r^{2}`},
		{"(x+1)**2", `\left(x + 1\right)^{2}`},
		{"2**x", `2^{x}`},
		{"x**(1/3)", `\sqrt[3]{x}`},
		{"sqrt(x + 1)", `\sqrt{x + 1}`},
		{"1/sqrt(x)", `\frac{1}{\sqrt{x}}`},
		{"sin(x)", `\sin{\left(x \right)}`},
		{"sin(x)**2", `\sin^{2}{\left(x \right)}`},
		{"asin(x)", `\operatorname{asin}{\left(x \right)}`},
		{"log(x)", `\log{\left(x \right)}`},
		{"exp(x)", `e^{x}`},
		{"abs(x)", `\left|{x}\right|`},
		{"alpha*beta", `\alpha \beta`},
		{"x_1**2", `x_{1}^{2}`},
		{"x1", `x_{1}`},
		{"sigma_max", `\sigma_{max}`},
		{"Delta_t", `\Delta_{t}`},
		{"dx", `dx`},
		{"x - 2*y", `x - 2 y`},
		{"-x", `- x`},
		{"1/2", `\frac{1}{2}`},
		{"2.5e-8*x", `2.5 \cdot 10^{-8} x`},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.formula).LaTeX())
		})
	}
}

func TestDerivativeLaTeX(t *testing.T) {
	tests := []struct {
		formula string
		wrt     string
		want    string
	}{
		{"3*x**2 + 4*y**3 + 1/z", "x", `6 x`},
		{"3*x**2 + 4*y**3 + 1/z", "y", `12 y^{2}`},
		{"3*x**2 + 4*y**3 + 1/z", "z", `- \frac{1}{z^{2}}`},
		{"sqrt(x)", "x", `\frac{1}{2 \sqrt{x}}`},
		{"x*exp(x)", "x", `x e^{x} + e^{x}`},
	}

	for _, tt := range tests {
		t.Run(tt.formula+"/d"+tt.wrt, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(MustParse(tt.formula), tt.wrt).LaTeX())
		})
	}
}
