// Package pathexpr isolates the JSONPath evaluation capability behind
// a small interface, so pagination and formatting logic can be tested
// with a stub evaluator.
package pathexpr

import (
	"fmt"

	"github.com/theory/jsonpath"
)

// Evaluator selects the values matched by a path expression in a
// decoded JSON document. Implementations must not mutate the document.
type Evaluator interface {
	Select(doc any, expr string) ([]any, error)
}

type evaluator struct{}

// New returns the default Evaluator backed by RFC 9535 JSONPath.
func New() Evaluator {
	return evaluator{}
}

func (evaluator) Select(doc any, expr string) ([]any, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", expr, err)
	}

	return path.Select(doc), nil
}

// Matches reports whether expr selects anything meaningful in doc.
// A failed evaluation, an empty match list, or a single null match all
// count as no match.
func Matches(ev Evaluator, doc any, expr string) bool {
	results, err := ev.Select(doc, expr)
	if err != nil || len(results) == 0 {
		return false
	}

	if len(results) == 1 && results[0] == nil {
		return false
	}

	return true
}
