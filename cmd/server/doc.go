// Package main is the entry point for the uncertainty propagation server.
//
// The server exposes POST /calculate, which derives the propagated error
// expression of a formula, evaluates it at the supplied values and renders
// both the formula and the error expression as LaTeX.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 5002
//
//	# Development mode (colored logs, debug level)
//	./server -dev -log-level debug
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
