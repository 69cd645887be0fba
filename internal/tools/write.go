package tools

import (
	"errors"
	"fmt"

	"github.com/jacoelho/jx/internal/protocol"
	"github.com/jacoelho/jx/internal/writer"
)

const (
	writeUsageFilePath = "file_path is required. Usage example:\n{\n  \"file_path\": \"./output.json\",\n  \"data\": {\"key\": \"value\"}\n}"
	writeUsageData     = "data is required. Usage example:\n{\n  \"file_path\": \"./output.json\",\n  \"data\": {\"key\": \"value\"}\n}"
)

type writeArgs struct {
	FilePath   string `json:"file_path"`
	Data       any    `json:"data"`
	Mode       string `json:"mode"`
	CreateDirs *bool  `json:"create_dirs"`
	CreatePath *bool  `json:"create_path"`
	Pretty     *bool  `json:"pretty"`
}

func writeTool() protocol.Tool {
	return protocol.Tool{
		Name:        ToolWrite,
		Description: "Write or update a JSON file with support for different write modes",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file_path": map[string]any{
					"type":        "string",
					"description": "Path to the JSON file to write",
				},
				"data": map[string]any{
					"description": "JSON data to write. Can be any valid JSON value",
				},
				"mode": map[string]any{
					"type":        "string",
					"enum":        []string{writer.ModeReplace, writer.ModeMerge, writer.ModeAppend},
					"default":     writer.ModeReplace,
					"description": "Write mode: 'replace' overwrites file, 'merge' merges with existing JSON (objects only), 'append' appends to arrays",
				},
				"create_dirs": map[string]any{
					"type":        "boolean",
					"default":     true,
					"description": "Create parent directories if they don't exist",
				},
				"pretty": map[string]any{
					"type":        "boolean",
					"default":     true,
					"description": "Format JSON with indentation",
				},
			},
			"required": []string{"file_path", "data"},
		},
	}
}

func (r *Registry) handleWrite(args map[string]any) (*protocol.ToolResult, error) {
	var wa writeArgs
	if err := decodeArgs(args, &wa); err != nil {
		return nil, err
	}

	if wa.FilePath == "" {
		return protocol.ErrorResult(writeUsageFilePath), nil
	}
	if _, present := args["data"]; !present {
		return protocol.ErrorResult(writeUsageData), nil
	}

	// create_path is accepted as an alias of create_dirs.
	createDirs := true
	switch {
	case wa.CreateDirs != nil:
		createDirs = *wa.CreateDirs
	case wa.CreatePath != nil:
		createDirs = *wa.CreatePath
	}

	req := writer.Request{
		Path:       wa.FilePath,
		Data:       wa.Data,
		Mode:       stringOrDefault(wa.Mode, writer.ModeReplace),
		CreateDirs: createDirs,
		Pretty:     boolOrDefault(wa.Pretty, true),
	}

	if err := writer.Write(req); err != nil {
		if errors.Is(err, writer.ErrMergeTarget) ||
			errors.Is(err, writer.ErrAppendTarget) ||
			errors.Is(err, writer.ErrUnknownMode) {
			return protocol.ErrorResult(err.Error()), nil
		}
		return nil, err
	}

	return protocol.TextResult(fmt.Sprintf("Successfully wrote JSON to '%s' using %s mode", req.Path, req.Mode)), nil
}
