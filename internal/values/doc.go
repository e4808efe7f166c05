// Package values reads the numeric bindings that accompany a formula.
//
// Payloads arrive either as a JSON object ({"x": 1.2, "dx": 0.05}) or in a
// relaxed unquoted form (x: 1.2, dx: 0.05). Resolve tries strict JSON first
// and falls back to ParseRelaxed.
package values
