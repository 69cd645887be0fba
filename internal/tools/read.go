package tools

import (
	"fmt"

	"github.com/jacoelho/jx/internal/document"
	"github.com/jacoelho/jx/internal/protocol"
	"github.com/jacoelho/jx/internal/stream"
)

const readUsageFilePath = "file_path is required. Usage example:\n{\n  \"file_path\": \"./data.json\"\n}\nOptional parameters: query, limit, offset"

const (
	defaultReadLimit  = 1000
	defaultReadOffset = 0
)

type readArgs struct {
	FilePath string `json:"file_path"`
	Query    string `json:"query"`
	// JSONPath is accepted as an alias of query.
	JSONPath string `json:"json_path"`
	Limit    *int   `json:"limit"`
	Offset   *int   `json:"offset"`
}

func readTool() protocol.Tool {
	return protocol.Tool{
		Name:        ToolRead,
		Description: "Read and query JSON files efficiently. Supports files of any size through automatic streaming, with optional JSONPath filtering for data extraction.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path": map[string]any{
					"type":        "string",
					"description": "Path to the large JSON file to stream",
				},
				"query": map[string]any{
					"type":        "string",
					"description": "Optional JSONPath expression to filter data during streaming",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 1000)",
					"default":     defaultReadLimit,
					"minimum":     1,
					"maximum":     10000,
				},
				"offset": map[string]any{
					"type":        "integer",
					"description": "Number of results to skip (default: 0)",
					"default":     defaultReadOffset,
					"minimum":     0,
				},
			},
			"required": []string{"file_path"},
		},
	}
}

func (r *Registry) handleRead(args map[string]any) (*protocol.ToolResult, error) {
	var ra readArgs
	if err := decodeArgs(args, &ra); err != nil {
		return nil, err
	}

	if ra.FilePath == "" {
		return protocol.ErrorResult(readUsageFilePath), nil
	}

	req := stream.Request{
		Path:   ra.FilePath,
		Query:  stringOrDefault(ra.Query, ra.JSONPath),
		Limit:  intOrDefault(ra.Limit, defaultReadLimit),
		Offset: intOrDefault(ra.Offset, defaultReadOffset),
	}

	results, err := stream.Read(r.evaluator, req)
	if err != nil {
		return nil, err
	}

	output, err := document.Encode(results, true)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize results: %w", err)
	}

	return protocol.TextResult(fmt.Sprintf(
		"Streamed %d results from '%s' (offset: %d, limit: %d):\n\n%s",
		len(results), req.Path, req.Offset, req.Limit, output,
	)), nil
}
