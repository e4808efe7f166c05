/*
Package uncertainty exposes measurement-uncertainty propagation as a service
provider.

# Overview

Calculator runs the request pipeline shared by every entry point: normalise
formula and params, resolve the value payload (strict JSON first, relaxed
key: value text second), derive the error expression, evaluate it and render
both LaTeX strings. Provider wraps the calculator as registry tools.

# Tools

  - uncertainty.propagate: full calculation
  - uncertainty.latex: LaTeX of a formula and optionally its error expression
  - uncertainty.parse_values: value payload resolution only
  - uncertainty.check_gradient: symbolic partials against finite differences
  - uncertainty.measure: mean and standard error of repeated readings

# Errors

Input failures come back as unsuccessful results carrying a kind
(missing_symbols, parse_error, invalid_key, ...). Kind maps any engine error
to the same labels for the HTTP API.
*/
package uncertainty
