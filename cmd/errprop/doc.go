// Command errprop evaluates a file of uncertainty propagation jobs.
//
// Usage:
//
//	errprop -file jobs.yaml
//	errprop -file jobs.toml -output json
//	errprop -file jobs.json -output csv -v
//
// Engine limits come from ENGINE_MAX_FORMULA_LEN and ENGINE_MAX_PARAMS, as
// for the server. The exit status is 1 when any job fails.
package main
