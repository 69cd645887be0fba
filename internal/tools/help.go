package tools

import (
	"github.com/jacoelho/jx/internal/protocol"
)

type helpArgs struct {
	Topic string `json:"topic"`
}

func helpTool() protocol.Tool {
	return protocol.Tool{
		Name:        ToolHelp,
		Description: "Get comprehensive help about all available JSON tools and their usage patterns.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type":        "string",
					"description": "Specific topic to get help about. Options: 'overview', 'reading', 'writing', 'querying', 'streaming', 'examples', 'tools'",
					"enum":        []string{"overview", "reading", "writing", "querying", "streaming", "examples", "tools"},
				},
			},
			"required": []string{},
		},
	}
}

func (r *Registry) handleHelp(args map[string]any) (*protocol.ToolResult, error) {
	var ha helpArgs
	if err := decodeArgs(args, &ha); err != nil {
		return nil, err
	}

	text, ok := helpTopics[stringOrDefault(ha.Topic, "overview")]
	if !ok {
		text = "Unknown help topic. Available topics: overview, reading, writing, querying, streaming, examples, tools"
	}

	return protocol.TextResult(text), nil
}

var helpTopics = map[string]string{
	"overview": `# JSON Tool Server Help

Available tools:

## Core Tools:
- **json-read**: Read and parse JSON files of any size with automatic streaming for large files
- **json-write**: Write or update JSON files with various merge strategies
- **json-query**: Query JSON files using JSONPath expressions
- **json-validate**: Validate JSON structure and content
- **json-help**: Get help about tools (this tool)

## Required Parameters by Tool:
- **json-read**: file_path (required)
- **json-write**: file_path, data (both required)
- **json-query**: file_path, query (both required)
- **json-validate**: file_path (required)
- **json-help**: none (all parameters optional)

## Quick Start Examples:
{"name": "json-read", "arguments": {"file_path": "./data.json"}}
{"name": "json-write", "arguments": {"file_path": "./output.json", "data": {"key": "value"}}}
{"name": "json-query", "arguments": {"file_path": "./data.json", "query": "$.users[0].name"}}
{"name": "json-validate", "arguments": {"file_path": "./data.json"}}
{"name": "json-help", "arguments": {"topic": "reading"}}

Use 'json-help' with specific topics for detailed guidance:
- topic: 'reading' - Reading JSON files
- topic: 'writing' - Writing/updating JSON files
- topic: 'querying' - JSONPath queries
- topic: 'streaming' - Handling large files
- topic: 'examples' - Practical usage examples
- topic: 'tools' - Detailed help for individual tools`,

	"reading": `# Reading JSON Files

## json-read Tool
Reads and parses JSON files with automatic streaming for large files.

**Parameters:**
- file_path (required): Path to JSON file
- query (optional): JSONPath to filter data during streaming
- limit (optional): Maximum number of items to return (default: 1000)
- offset (optional): Number of candidate records to skip (default: 0)

**Example:**
{"name": "json-read", "arguments": {"file_path": "./users.json", "query": "$.name", "limit": 100}}

**Use Cases:**
- Load entire JSON files (automatically streams if line-delimited)
- Extract specific fields or records
- Page through large datasets with offset/limit`,

	"writing": `# Writing JSON Files

## json-write Tool
Creates or updates JSON files with flexible merge strategies.

**Parameters:**
- file_path (required): Path to JSON file
- data (required): JSON data to write
- mode (optional): "replace", "merge", "append" (default: "replace")
- create_dirs (optional): Create parent directories if needed (default: true)
- pretty (optional): Format JSON with indentation (default: true)

**Write Modes:**
- **replace**: Completely replace file content
- **merge**: Merge with existing JSON (objects only)
- **append**: Append to arrays or create new array

**Example:**
{"name": "json-write", "arguments": {"file_path": "./config.json", "data": {"setting": "value"}, "mode": "merge"}}`,

	"querying": `# Querying JSON with JSONPath

## json-query Tool
Execute JSONPath queries on JSON files.

**Parameters:**
- file_path (required): Path to JSON file
- query (required): JSONPath expression
- format (optional): "json", "text", "table" (default: "json")

**JSONPath Syntax:**
- $ - Root element
- . - Child element
- [] - Array index or filter
- * - Wildcard
- .. - Recursive descent
- [?()] - Filter expression

**Example:**
{"name": "json-query", "arguments": {"file_path": "./data.json", "query": "$.users[?(@.age > 25)].name", "format": "table"}}`,

	"streaming": `# Streaming Large JSON Files

## json-read Tool (Automatic Streaming)
Files whose first lines are standalone JSON objects are treated as
line-delimited and visited one record at a time; anything else is
loaded as a single document and paged element by element.

**Parameters for Large Files:**
- file_path (required): Path to large JSON file
- query (optional): JSONPath to filter records during streaming
- limit (optional): Maximum number of matching records (default: 1000)
- offset (optional): Number of candidate records to skip (default: 0)

**Best Practices:**
- Use specific JSONPath queries to filter early
- Set reasonable limits for large datasets
- Use offset for pagination`,

	"examples": `# Practical JSON Tool Examples

## Configuration Management
{"name": "json-read", "arguments": {"file_path": "./config.json"}}
{"name": "json-write", "arguments": {"file_path": "./config.json", "data": {"database": {"host": "localhost"}}, "mode": "merge"}}

## Data Analysis
{"name": "json-query", "arguments": {"file_path": "./users.json", "query": "$.users[?(@.active == true)]", "format": "table"}}

## Large File Processing
{"name": "json-read", "arguments": {"file_path": "./logs.json", "query": "$[?(@.level == 'ERROR')]", "limit": 50}}

## Batch Updates
{"name": "json-write", "arguments": {"file_path": "./items.json", "data": [{"id": 123, "name": "New Item"}], "mode": "append"}}`,

	"tools": `# Individual Tool Help

## json-read
**Purpose**: Read and parse JSON files with automatic streaming
**Required**: file_path
**Optional**: query, limit, offset

## json-write
**Purpose**: Write or update JSON files with various merge strategies
**Required**: file_path, data
**Optional**: mode, create_dirs, pretty

## json-query
**Purpose**: Execute JSONPath queries on JSON files
**Required**: file_path, query
**Optional**: format

## json-validate
**Purpose**: Validate JSON file syntax and structure
**Required**: file_path
**Optional**: schema

## json-help
**Purpose**: Get help about tools and usage patterns
**Required**: none
**Optional**: topic

## Common Error Fixes:
- "file_path is required" -> Add: "file_path": "./your-file.json"
- "data is required" -> Add: "data": {"your": "json data"}
- "query is required" -> Add: "query": "$.your.jsonpath"`,
}
