// Package query evaluates a path expression against a document and
// renders the normalized match list in one of several output formats.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jacoelho/jx/internal/document"
	"github.com/jacoelho/jx/internal/pathexpr"
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatText  = "text"
	FormatTable = "table"
)

// Reported failures. Document load and parse failures are fatal.
var (
	ErrEvaluation    = errors.New("JSONPath query error")
	ErrUnknownFormat = errors.New("unknown format")
)

// Run loads the document at path, selects the matches for expr and
// renders them in the requested format, wrapped with a header naming
// the source and the expression.
func Run(ev pathexpr.Evaluator, path, expr, format string) (string, error) {
	doc, err := document.Load(path)
	if err != nil {
		return "", err
	}

	matches, err := ev.Select(doc, expr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEvaluation, err)
	}
	if matches == nil {
		matches = []any{}
	}

	rendered, err := Render(matches, format)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Query results from '%s' using JSONPath '%s':\n\n%s", path, expr, rendered), nil
}

// Render renders a normalized match list.
func Render(matches []any, format string) (string, error) {
	switch format {
	case FormatJSON:
		data, err := document.Encode(matches, true)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatText:
		return renderText(matches), nil
	case FormatTable:
		return renderTable(matches), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func renderText(matches []any) string {
	lines := make([]string, len(matches))
	for i, v := range matches {
		lines[i] = document.Text(v)
	}
	return strings.Join(lines, "\n")
}

// renderTable lays out object matches as a header row, a dash
// separator, and one row per element. The header set comes from the
// first element; missing keys render as empty cells. Non-object
// matches fall back to a one-indexed list.
func renderTable(matches []any) string {
	if len(matches) == 0 {
		return "No results found"
	}

	first, ok := document.AsObject(matches[0])
	if !ok {
		return renderList(matches)
	}

	headers := make([]string, 0, len(first))
	for key := range first {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	separator := make([]string, len(headers))
	for i := range separator {
		separator[i] = "---"
	}

	rows := []string{
		strings.Join(headers, " | "),
		strings.Join(separator, " | "),
	}

	for _, item := range matches {
		obj, ok := document.AsObject(item)
		if !ok {
			continue
		}

		cells := make([]string, len(headers))
		for i, header := range headers {
			if value, present := obj[header]; present {
				cells[i] = document.Text(value)
			}
		}
		rows = append(rows, strings.Join(cells, " | "))
	}

	return strings.Join(rows, "\n")
}

func renderList(matches []any) string {
	lines := make([]string, len(matches))
	for i, v := range matches {
		lines[i] = fmt.Sprintf("%d: %s", i+1, document.Text(v))
	}
	return strings.Join(lines, "\n")
}
