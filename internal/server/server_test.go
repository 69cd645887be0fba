package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/jacoelho/jx/internal/pathexpr"
	"github.com/jacoelho/jx/internal/ratelimit"
	"github.com/jacoelho/jx/internal/tools"
)

func newTestServer() *Server {
	return New(tools.NewRegistry(pathexpr.New()), ratelimit.New(0))
}

func handle(t *testing.T, s *Server, request string) map[string]any {
	t.Helper()

	raw, err := s.HandleRequest(context.Background(), []byte(request))
	if err != nil {
		t.Fatalf("HandleRequest: %v", err)
	}

	var response map[string]any
	if err := json.Unmarshal(raw, &response); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, raw)
	}
	return response
}

func errorCode(t *testing.T, response map[string]any) int {
	t.Helper()
	errObj, ok := response["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error in response: %v", response)
	}
	code, ok := errObj["code"].(float64)
	if !ok {
		t.Fatalf("error has no numeric code: %v", errObj)
	}
	return int(code)
}

func TestInitialize(t *testing.T) {
	response := handle(t, newTestServer(), `{"jsonrpc": "2.0", "id": 1, "method": "initialize"}`)

	if response["id"] != float64(1) {
		t.Errorf("id = %v, want 1", response["id"])
	}

	result, ok := response["result"].(map[string]any)
	if !ok {
		t.Fatalf("no result: %v", response)
	}
	if result["protocolVersion"] != ProtocolVersion {
		t.Errorf("protocolVersion = %v", result["protocolVersion"])
	}

	info, ok := result["serverInfo"].(map[string]any)
	if !ok || info["name"] != Name {
		t.Errorf("serverInfo = %v", result["serverInfo"])
	}
}

func TestInitialized(t *testing.T) {
	response := handle(t, newTestServer(), `{"jsonrpc": "2.0", "id": 2, "method": "initialized"}`)
	if _, ok := response["result"]; !ok {
		t.Errorf("expected empty result: %v", response)
	}
}

func TestToolsList(t *testing.T) {
	response := handle(t, newTestServer(), `{"jsonrpc": "2.0", "id": 3, "method": "tools/list"}`)

	result, ok := response["result"].(map[string]any)
	if !ok {
		t.Fatalf("no result: %v", response)
	}
	list, ok := result["tools"].([]any)
	if !ok {
		t.Fatalf("no tools list: %v", result)
	}
	if len(list) != 5 {
		t.Errorf("expected 5 tools, got %d", len(list))
	}
}

func TestToolsCall(t *testing.T) {
	response := handle(t, newTestServer(),
		`{"jsonrpc": "2.0", "id": 4, "method": "tools/call", "params": {"name": "json-help", "arguments": {}}}`)

	result, ok := response["result"].(map[string]any)
	if !ok {
		t.Fatalf("no result: %v", response)
	}
	content, ok := result["content"].([]any)
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %v", result)
	}
	if _, flagged := result["is_error"]; flagged {
		t.Errorf("help call flagged as error: %v", result)
	}
}

func TestToolsCallReportedFailure(t *testing.T) {
	response := handle(t, newTestServer(),
		`{"jsonrpc": "2.0", "id": 5, "method": "tools/call", "params": {"name": "json-write", "arguments": {}}}`)

	result, ok := response["result"].(map[string]any)
	if !ok {
		t.Fatalf("reported failure must be a result, not an error: %v", response)
	}
	if result["is_error"] != true {
		t.Errorf("is_error = %v", result["is_error"])
	}
}

func TestToolsCallUnknownTool(t *testing.T) {
	response := handle(t, newTestServer(),
		`{"jsonrpc": "2.0", "id": 6, "method": "tools/call", "params": {"name": "nope", "arguments": {}}}`)

	result, ok := response["result"].(map[string]any)
	if !ok {
		t.Fatalf("no result: %v", response)
	}
	if result["is_error"] != true {
		t.Errorf("unknown tool not flagged: %v", result)
	}
}

func TestToolsCallFatalFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	request := fmt.Sprintf(
		`{"jsonrpc": "2.0", "id": 7, "method": "tools/call", "params": {"name": "json-query", "arguments": {"file_path": %q, "query": "$"}}}`,
		missing)

	response := handle(t, newTestServer(), request)
	if code := errorCode(t, response); code != CodeInternalError {
		t.Errorf("code = %d, want %d", code, CodeInternalError)
	}
}

func TestToolsCallMissingParams(t *testing.T) {
	response := handle(t, newTestServer(), `{"jsonrpc": "2.0", "id": 8, "method": "tools/call"}`)
	if code := errorCode(t, response); code != CodeInvalidParams {
		t.Errorf("code = %d, want %d", code, CodeInvalidParams)
	}
}

func TestUnknownMethod(t *testing.T) {
	response := handle(t, newTestServer(), `{"jsonrpc": "2.0", "id": 9, "method": "resources/list"}`)
	if code := errorCode(t, response); code != CodeMethodNotFound {
		t.Errorf("code = %d, want %d", code, CodeMethodNotFound)
	}
}

func TestMalformedRequestIsFatal(t *testing.T) {
	_, err := newTestServer().HandleRequest(context.Background(), []byte("{not json"))
	if err == nil {
		t.Fatal("expected error for malformed request")
	}

	raw := InternalErrorResponse(err)
	var response map[string]any
	if jsonErr := json.Unmarshal(raw, &response); jsonErr != nil {
		t.Fatalf("internal error response is not valid JSON: %v", jsonErr)
	}
	if code := errorCode(t, response); code != CodeInternalError {
		t.Errorf("code = %d, want %d", code, CodeInternalError)
	}
}

func TestEndToEndWriteReadCycle(t *testing.T) {
	s := newTestServer()
	path := filepath.Join(t.TempDir(), "cycle.json")

	writeReq := fmt.Sprintf(
		`{"jsonrpc": "2.0", "id": 1, "method": "tools/call", "params": {"name": "json-write", "arguments": {"file_path": %q, "data": {"status": "ok"}}}}`,
		path)
	response := handle(t, s, writeReq)
	if _, ok := response["result"]; !ok {
		t.Fatalf("write failed: %v", response)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	queryReq := fmt.Sprintf(
		`{"jsonrpc": "2.0", "id": 2, "method": "tools/call", "params": {"name": "json-query", "arguments": {"file_path": %q, "query": "$.status", "format": "text"}}}`,
		path)
	response = handle(t, s, queryReq)
	result, ok := response["result"].(map[string]any)
	if !ok {
		t.Fatalf("query failed: %v", response)
	}

	content := result["content"].([]any)[0].(map[string]any)
	if text, _ := content["text"].(string); !strings.HasSuffix(text, "ok") {
		t.Errorf("query text = %q", text)
	}
}
