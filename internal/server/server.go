// Package server dispatches JSON-RPC requests to the tool registry
// and wraps results into response envelopes. Each request is handled
// synchronously; the server keeps no state beyond the tool catalog.
package server

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/jacoelho/jx/internal/protocol"
	"github.com/jacoelho/jx/internal/ratelimit"
	"github.com/jacoelho/jx/internal/tools"
)

// Server identity reported during initialization.
const (
	Name            = "jx"
	Version         = "0.1.0"
	ProtocolVersion = "2024-11-05"
)

// JSON-RPC error codes.
const (
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Server routes requests by method name.
type Server struct {
	catalog  map[string]protocol.Tool
	registry *tools.Registry
	limiter  *ratelimit.Limiter
}

// New builds a server around a tool registry. The limiter throttles
// request handling; a zero-rate limiter never blocks.
func New(registry *tools.Registry, limiter *ratelimit.Limiter) *Server {
	catalog := make(map[string]protocol.Tool)
	for _, tool := range registry.Tools() {
		catalog[tool.Name] = tool
	}

	return &Server{
		catalog:  catalog,
		registry: registry,
		limiter:  limiter,
	}
}

// HandleRequest processes one raw request line and returns the
// serialized response. An error return means the request could not be
// handled at the protocol level; the caller is expected to emit an
// internal error response.
func (s *Server) HandleRequest(ctx context.Context, input []byte) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var req protocol.Request
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	var resp *protocol.Response
	switch req.Method {
	case "initialize":
		resp = protocol.NewResponse(req.ID, initializeResult())
	case "initialized":
		resp = protocol.NewResponse(req.ID, map[string]any{})
	case "tools/list":
		resp = protocol.NewResponse(req.ID, map[string]any{"tools": s.toolList()})
	case "tools/call":
		resp = s.handleToolCall(req)
	default:
		resp = protocol.NewErrorResponse(req.ID, CodeMethodNotFound, "Method not found")
	}

	return json.Marshal(resp)
}

// InternalErrorResponse serializes a protocol-level internal error for
// requests that could not be handled at all.
func InternalErrorResponse(err error) []byte {
	resp := protocol.NewErrorResponse(nil, CodeInternalError, fmt.Sprintf("Internal error: %v", err))
	data, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return []byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"Internal error"}}`)
	}
	return data
}

func (s *Server) handleToolCall(req protocol.Request) *protocol.Response {
	if len(req.Params) == 0 {
		return protocol.NewErrorResponse(req.ID, CodeInvalidParams, "Missing params for tool call")
	}

	var call protocol.ToolCall
	if err := json.Unmarshal(req.Params, &call); err != nil {
		return protocol.NewErrorResponse(req.ID, CodeInvalidParams, fmt.Sprintf("Invalid tool call params: %v", err))
	}

	if _, known := s.catalog[call.Name]; !known {
		return protocol.NewResponse(req.ID, protocol.ErrorResult(fmt.Sprintf("Unknown tool: %s", call.Name)))
	}

	result, err := s.registry.Call(call)
	if err != nil {
		return protocol.NewErrorResponse(req.ID, CodeInternalError, fmt.Sprintf("Tool call failed: %v", err))
	}

	return protocol.NewResponse(req.ID, result)
}

func (s *Server) toolList() []protocol.Tool {
	return s.registry.Tools()
}

func initializeResult() map[string]any {
	return map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]any{
			"tools":     map[string]any{},
			"logging":   map[string]any{},
			"prompts":   map[string]any{},
			"resources": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    Name,
			"version": Version,
		},
	}
}
