// Package server wires configuration, logging, tracing, metrics, middleware
// and the calculation handlers into one HTTP server.
package server
