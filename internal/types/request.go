package types

import "encoding/json"

// CalculateRequest is the body of POST /calculate.
//
// Params and Vals stay raw so the handler can reject a non-list params with
// a shape error and accept vals either as text or as a JSON object.
type CalculateRequest struct {
	Formula string          `json:"formula"`
	Params  json.RawMessage `json:"params"`
	Vals    json.RawMessage `json:"vals"`
}

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params" binding:"required"`
}

// DiscoverRequest asks the registry for services matching free text
type DiscoverRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit,omitempty"`
}

// ErrorResponse is returned for every rejected request
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
