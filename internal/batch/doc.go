// Package batch evaluates files of uncertainty jobs.
//
// Job files are YAML, TOML or JSON with a top-level "jobs" list. Each job
// names a formula, its measured parameters and their values:
//
//	jobs:
//	  - name: kinetic
//	    formula: m * v**2 / 2
//	    params: [m, v]
//	    vals: "m: 2, dm: 0.01, v: 3, dv: 0.1"
//
// Results render as text, JSON or CSV.
package batch
