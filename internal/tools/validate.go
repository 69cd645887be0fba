package tools

import (
	"fmt"
	"os"

	"github.com/jacoelho/jx/internal/document"
	"github.com/jacoelho/jx/internal/protocol"
)

const validateUsageFilePath = "file_path is required. Usage example:\n{\n  \"file_path\": \"./data.json\"\n}"

type validateArgs struct {
	FilePath string `json:"file_path"`
	// Schema is accepted for forward compatibility but not evaluated.
	Schema any `json:"schema"`
}

func validateTool() protocol.Tool {
	return protocol.Tool{
		Name:        ToolValidate,
		Description: "Validate JSON file syntax and structure",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path": map[string]any{
					"type":        "string",
					"description": "Path to the JSON file to validate",
				},
				"schema": map[string]any{
					"description": "Optional JSON schema to validate against",
				},
			},
			"required": []string{"file_path"},
		},
	}
}

func (r *Registry) handleValidate(args map[string]any) (*protocol.ToolResult, error) {
	var va validateArgs
	if err := decodeArgs(args, &va); err != nil {
		return nil, err
	}

	if va.FilePath == "" {
		return protocol.ErrorResult(validateUsageFilePath), nil
	}

	if _, err := os.Stat(va.FilePath); err != nil {
		return protocol.ErrorResult(fmt.Sprintf("File '%s' does not exist", va.FilePath)), nil
	}

	data, err := os.ReadFile(va.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", va.FilePath, err)
	}

	value, err := document.Decode(data)
	if err != nil {
		return protocol.ErrorResult(fmt.Sprintf("JSON validation failed for '%s': %v", va.FilePath, err)), nil
	}

	return protocol.TextResult(fmt.Sprintf(
		"JSON file '%s' is valid:\n- Type: %s\n- Size: %d bytes\n- Structure: %s",
		va.FilePath,
		document.TypeName(value),
		len(data),
		structureSummary(value),
	)), nil
}

func structureSummary(value any) string {
	if obj, ok := document.AsObject(value); ok {
		return fmt.Sprintf("%d properties", len(obj))
	}
	if arr, ok := document.AsArray(value); ok {
		return fmt.Sprintf("%d elements", len(arr))
	}
	return "primitive value"
}
