// Package middleware provides gin middleware for cross-origin access and
// per-client rate limiting of the calculation API.
package middleware
