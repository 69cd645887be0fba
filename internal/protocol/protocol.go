// Package protocol defines the JSON-RPC 2.0 envelope and the tool
// call types exchanged with MCP clients.
package protocol

import (
	json "github.com/goccy/go-json"
)

// Version is the JSON-RPC protocol version.
const Version = "2.0"

// Request is an inbound JSON-RPC request or notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is an outbound JSON-RPC response.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is a protocol-level failure attached to a Response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Tool describes a callable tool exposed through tools/list.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"input_schema"`
}

// ToolCall is the params payload of a tools/call request.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolResult is the payload returned by a tool invocation. A result
// with IsError set is a well-formed response carrying a reported
// failure, distinct from a protocol-level error.
type ToolResult struct {
	Content []ToolContent `json:"content"`
	IsError bool          `json:"is_error,omitempty"`
}

// ToolContent is a single content block inside a ToolResult.
type ToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewResponse builds a success response.
func NewResponse(id any, result any) *Response {
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Result:  result,
	}
}

// NewErrorResponse builds a protocol-level error response.
func NewErrorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
}

// TextResult builds a successful tool result with a single text block.
func TextResult(text string) *ToolResult {
	return &ToolResult{
		Content: []ToolContent{{Type: "text", Text: text}},
	}
}

// ErrorResult builds a reported tool failure.
func ErrorResult(text string) *ToolResult {
	return &ToolResult{
		Content: []ToolContent{{Type: "text", Text: text}},
		IsError: true,
	}
}
