/*
Package symbolic implements the small computer-algebra kernel behind the
uncertainty engine.

# Overview

Formulas are parsed into immutable expression trees built from numbers,
symbols, the constants pi and E, n-ary sums and products, powers and unary
elementary functions. Exported constructors return canonical trees: nested
sums and products are flattened, numbers folded, like terms and like bases
collected. The raw builders Sum, Square and Sqrt keep their structure so a
caller can assemble an expression whose shape must be preserved.

# Features

  - Recursive-descent parser with Python operator precedence
  - Exact rational arithmetic with float contagion
  - Symbolic differentiation with the chain rule through every function
  - Simultaneous substitution
  - Plain-text and LaTeX printers

# Usage

	f, err := symbolic.Parse("3*x**2 + 1/z")
	if err != nil {
		return err
	}
	dfdx := symbolic.Diff(f, "x")        // 6*x
	fmt.Println(dfdx.LaTeX())            // 6 x
	v, err := symbolic.Evaluate(f, env)  // float64
*/
package symbolic
