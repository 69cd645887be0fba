// Package stream pages through JSON documents without accumulating
// more than a bounded window of matches. A document is either a series
// of line-delimited records or a single JSON value; the classification
// samples the first few lines and is performed once per call.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/jacoelho/jx/internal/document"
	"github.com/jacoelho/jx/internal/pathexpr"
)

const (
	// detectionLines is the number of leading lines sampled when
	// classifying a file as line-delimited. A file whose records do
	// not look like objects is classified as whole-document even when
	// it is one record per line; callers with scalar-per-line inputs
	// hit the whole-document parser instead.
	detectionLines = 5

	maxLineBytes = 16 << 20
)

// Request describes a single paged read.
//
// Offset counts every candidate record scanned, matching or not.
// Limit counts only records that pass the optional filter.
type Request struct {
	Path   string
	Query  string
	Limit  int
	Offset int
}

// Read returns at most Limit matching values from the document at
// req.Path, in document order, after skipping Offset candidates.
func Read(ev pathexpr.Evaluator, req Request) ([]any, error) {
	lineDelimited, err := detectLineDelimited(req.Path)
	if err != nil {
		return nil, err
	}

	if lineDelimited {
		return readLines(ev, req)
	}
	return readWhole(ev, req)
}

// detectLineDelimited samples the first few lines and classifies the
// file as line-delimited on the first line that both looks like an
// object and parses as standalone JSON.
func detectLineDelimited(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer f.Close()

	scanner := newScanner(f)
	for i := 0; i < detectionLines && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			continue
		}
		if _, err := document.Decode([]byte(line)); err == nil {
			return true, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	return false, nil
}

// readLines visits one record per line. Blank lines are skipped
// without counting; unparseable lines count as candidates but are
// silently excluded from results.
func readLines(ev pathexpr.Evaluator, req Request) ([]any, error) {
	f, err := os.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", req.Path, err)
	}
	defer f.Close()

	results := make([]any, 0)
	candidates := 0

	scanner := newScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if candidates < req.Offset {
			candidates++
			continue
		}

		if len(results) >= req.Limit {
			break
		}

		var value any
		if err := json.Unmarshal([]byte(line), &value); err == nil {
			if req.Query == "" || pathexpr.Matches(ev, value, req.Query) {
				results = append(results, value)
			}
		}
		candidates++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", req.Path, err)
	}

	return results, nil
}

// readWhole parses the entire file as one value. Arrays are paged
// element by element with the same offset/limit discipline as line
// mode; any other value is a single candidate included only when the
// window starts at zero.
func readWhole(ev pathexpr.Evaluator, req Request) ([]any, error) {
	doc, err := document.Load(req.Path)
	if err != nil {
		return nil, err
	}

	arr, ok := document.AsArray(doc)
	if !ok {
		if req.Query != "" && !pathexpr.Matches(ev, doc, req.Query) {
			return []any{}, nil
		}
		if req.Offset > 0 || req.Limit <= 0 {
			return []any{}, nil
		}
		return []any{doc}, nil
	}

	results := make([]any, 0)
	candidates := 0

	for _, item := range arr {
		if candidates < req.Offset {
			candidates++
			continue
		}

		if len(results) >= req.Limit {
			break
		}

		if req.Query == "" || pathexpr.Matches(ev, item, req.Query) {
			results = append(results, item)
		}
		candidates++
	}

	return results, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return scanner
}
