package tools

import (
	"errors"

	"github.com/jacoelho/jx/internal/protocol"
	"github.com/jacoelho/jx/internal/query"
)

const (
	queryUsageFilePath = "file_path is required. Usage example:\n{\n  \"file_path\": \"./data.json\",\n  \"query\": \"$.users[0].name\"\n}"
	queryUsageQuery    = "query is required. Usage example:\n{\n  \"file_path\": \"./data.json\",\n  \"query\": \"$.users[0].name\"\n}\nUse JSONPath syntax: $ (root), .property, [index], [?(@.condition)]"
)

type queryArgs struct {
	FilePath string `json:"file_path"`
	Query    string `json:"query"`
	Format   string `json:"format"`
}

func queryTool() protocol.Tool {
	return protocol.Tool{
		Name:        ToolQuery,
		Description: "Execute JSONPath queries on JSON files. Supports complex queries with filtering, projection, and various output formats.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path": map[string]any{
					"type":        "string",
					"description": "Path to the JSON file to query",
				},
				"query": map[string]any{
					"type":        "string",
					"description": "JSONPath expression to execute (e.g., '$.users[?(@.age > 25)].name')",
				},
				"format": map[string]any{
					"type":        "string",
					"enum":        []string{query.FormatJSON, query.FormatText, query.FormatTable},
					"default":     query.FormatJSON,
					"description": "Output format: 'json' (default), 'text', or 'table'",
				},
			},
			"required": []string{"file_path", "query"},
		},
	}
}

func (r *Registry) handleQuery(args map[string]any) (*protocol.ToolResult, error) {
	var qa queryArgs
	if err := decodeArgs(args, &qa); err != nil {
		return nil, err
	}

	if qa.FilePath == "" {
		return protocol.ErrorResult(queryUsageFilePath), nil
	}
	if qa.Query == "" {
		return protocol.ErrorResult(queryUsageQuery), nil
	}

	output, err := query.Run(r.evaluator, qa.FilePath, qa.Query, stringOrDefault(qa.Format, query.FormatJSON))
	if err != nil {
		if errors.Is(err, query.ErrEvaluation) || errors.Is(err, query.ErrUnknownFormat) {
			return protocol.ErrorResult(err.Error()), nil
		}
		return nil, err
	}

	return protocol.TextResult(output), nil
}
