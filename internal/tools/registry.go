// Package tools implements the tool catalog and the handlers that
// bridge tool calls to the write, query and stream engines.
//
// Handlers distinguish three failure classes: reported failures come
// back as error-flagged tool results, fatal failures propagate as
// errors for the dispatcher to turn into protocol errors, and
// per-record failures during streaming are silently skipped by the
// engines themselves.
package tools

import (
	"fmt"

	"github.com/jacoelho/jx/internal/pathexpr"
	"github.com/jacoelho/jx/internal/protocol"
)

// Tool names.
const (
	ToolWrite    = "json-write"
	ToolValidate = "json-validate"
	ToolQuery    = "json-query"
	ToolRead     = "json-read"
	ToolHelp     = "json-help"
)

// Registry owns the tool catalog and routes calls by tool name.
type Registry struct {
	evaluator pathexpr.Evaluator
}

// NewRegistry builds a registry using the given path-expression
// evaluator for query and read calls.
func NewRegistry(ev pathexpr.Evaluator) *Registry {
	return &Registry{evaluator: ev}
}

// Tools returns the full tool catalog.
func (r *Registry) Tools() []protocol.Tool {
	return []protocol.Tool{
		writeTool(),
		validateTool(),
		queryTool(),
		readTool(),
		helpTool(),
	}
}

// Call dispatches a tool call to its handler. An unknown tool name is
// a reported failure, not a protocol error.
func (r *Registry) Call(call protocol.ToolCall) (*protocol.ToolResult, error) {
	switch call.Name {
	case ToolWrite:
		return r.handleWrite(call.Arguments)
	case ToolValidate:
		return r.handleValidate(call.Arguments)
	case ToolQuery:
		return r.handleQuery(call.Arguments)
	case ToolRead:
		return r.handleRead(call.Arguments)
	case ToolHelp:
		return r.handleHelp(call.Arguments)
	default:
		return protocol.ErrorResult(fmt.Sprintf("Unknown tool: %s", call.Name)), nil
	}
}
