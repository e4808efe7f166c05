// Package http serves the uncertainty calculation API over gin.
//
// Endpoints:
//   - POST /calculate: propagate uncertainty through a formula
//   - GET /, GET /health: status
//   - GET /services, POST /services/discover, POST /services/execute: provider registry
//   - GET /metrics/json: metrics summary
//
// Rejected calculations answer 400 with {"error", "kind"}; kind names the
// failure class (parse_error, missing_symbols, invalid_pair and so on).
package http
