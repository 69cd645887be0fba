package query

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// stubEvaluator returns canned results so tests focus on rendering
// and error surfacing rather than expression-language behavior.
type stubEvaluator struct {
	results []any
	err     error
}

func (s stubEvaluator) Select(doc any, expr string) ([]any, error) {
	return s.results, s.err
}

func TestRenderJSON(t *testing.T) {
	out, err := Render([]any{"a", 1.0}, FormatJSON)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `"a"`) || !strings.Contains(out, "1") {
		t.Errorf("unexpected JSON output: %q", out)
	}
	if !strings.Contains(out, "\n") {
		t.Errorf("JSON output is not pretty-printed: %q", out)
	}
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name    string
		matches []any
		expect  string
	}{
		{
			name:    "strings_bare",
			matches: []any{"alice", "bob"},
			expect:  "alice\nbob",
		},
		{
			name:    "mixed_scalars",
			matches: []any{42.0, true, nil},
			expect:  "42\ntrue\nnull",
		},
		{
			name:    "objects_canonical",
			matches: []any{map[string]any{"name": "A", "age": 1.0}},
			expect:  `{"age":1,"name":"A"}`,
		},
		{
			name:    "empty",
			matches: []any{},
			expect:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.matches, FormatText)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if out != tt.expect {
				t.Errorf("Render = %q, want %q", out, tt.expect)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	matches := []any{
		map[string]any{"name": "A", "age": 1.0},
		map[string]any{"name": "B", "age": 2.0},
	}

	out, err := Render(matches, FormatTable)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 table lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "age | name" {
		t.Errorf("header = %q, want %q", lines[0], "age | name")
	}
	if lines[1] != "--- | ---" {
		t.Errorf("separator = %q, want %q", lines[1], "--- | ---")
	}
	if lines[2] != "1 | A" || lines[3] != "2 | B" {
		t.Errorf("rows = %q, %q", lines[2], lines[3])
	}
}

func TestRenderTableMissingKey(t *testing.T) {
	matches := []any{
		map[string]any{"name": "A", "age": 1.0},
		map[string]any{"name": "B"},
	}

	out, err := Render(matches, FormatTable)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	lines := strings.Split(out, "\n")
	if lines[3] != " | B" {
		t.Errorf("missing key row = %q, want %q", lines[3], " | B")
	}
}

func TestRenderTableFallbacks(t *testing.T) {
	t.Run("empty_results", func(t *testing.T) {
		out, err := Render([]any{}, FormatTable)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if out != "No results found" {
			t.Errorf("Render = %q", out)
		}
	})

	t.Run("non_object_list", func(t *testing.T) {
		out, err := Render([]any{"x", 2.0}, FormatTable)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if out != "1: x\n2: 2" {
			t.Errorf("Render = %q, want %q", out, "1: x\n2: 2")
		}
	})
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render([]any{}, "xml")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Render error = %v, want ErrUnknownFormat", err)
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("error does not name the format: %v", err)
	}
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"users": ["A", "B"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := Run(stubEvaluator{results: []any{"A", "B"}}, path, "$.users[*]", FormatText)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !strings.HasPrefix(out, "Query results from '"+path+"' using JSONPath '$.users[*]':\n\n") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.HasSuffix(out, "A\nB") {
		t.Errorf("missing rendered body: %q", out)
	}
}

func TestRunEvaluationErrorIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Run(stubEvaluator{err: errors.New("bad expression")}, path, "???", FormatJSON)
	if !errors.Is(err, ErrEvaluation) {
		t.Fatalf("Run error = %v, want ErrEvaluation", err)
	}
}

func TestRunMissingFileIsFatal(t *testing.T) {
	_, err := Run(stubEvaluator{}, filepath.Join(t.TempDir(), "missing.json"), "$", FormatJSON)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrEvaluation) || errors.Is(err, ErrUnknownFormat) {
		t.Errorf("I/O failure misreported as soft failure: %v", err)
	}
}
