// Package writer resolves a write request against the document that
// may already exist at the target path and rewrites the file with the
// final value.
package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacoelho/jx/internal/document"
)

// Write modes.
const (
	ModeReplace = "replace"
	ModeMerge   = "merge"
	ModeAppend  = "append"
)

// Reported failures. Everything else returned by Write is fatal
// (I/O failure, or a parse failure of the existing document).
var (
	ErrMergeTarget  = errors.New("merge mode requires both existing and new data to be objects")
	ErrAppendTarget = errors.New("append mode requires existing data to be an array")
	ErrUnknownMode  = errors.New("unknown write mode")
)

// Request describes a single write operation.
type Request struct {
	Path       string
	Data       any
	Mode       string
	CreateDirs bool
	Pretty     bool
}

// Write resolves the request into a final document value and rewrites
// the full contents of the target file. The target is left untouched
// when resolution fails.
func Write(req Request) error {
	if req.CreateDirs {
		if dir := filepath.Dir(req.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
		}
	}

	final, err := resolve(req)
	if err != nil {
		return err
	}

	data, err := document.Encode(final, req.Pretty)
	if err != nil {
		return fmt.Errorf("failed to serialize JSON: %w", err)
	}

	if err := os.WriteFile(req.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", req.Path, err)
	}

	return nil
}

func resolve(req Request) (any, error) {
	switch req.Mode {
	case ModeReplace:
		return req.Data, nil
	case ModeMerge:
		return resolveMerge(req)
	case ModeAppend:
		return resolveAppend(req)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, req.Mode)
	}
}

// resolveMerge overlays the new object's top-level keys onto the
// existing object. Keys only present in the existing object survive.
func resolveMerge(req Request) (any, error) {
	existing, found, err := loadExisting(req.Path)
	if err != nil {
		return nil, err
	}
	if !found {
		return req.Data, nil
	}

	dst, dstOK := document.AsObject(existing)
	src, srcOK := document.AsObject(req.Data)
	if !dstOK || !srcOK {
		return nil, ErrMergeTarget
	}

	for key, value := range src {
		dst[key] = value
	}

	return dst, nil
}

// resolveAppend extends the existing array with the new value's
// elements, or pushes the new value as a single element when it is not
// an array itself. Without an existing file the new value is coerced
// to a one-element array unless it already is one.
func resolveAppend(req Request) (any, error) {
	existing, found, err := loadExisting(req.Path)
	if err != nil {
		return nil, err
	}
	if !found {
		if arr, isArray := document.AsArray(req.Data); isArray {
			return arr, nil
		}
		return []any{req.Data}, nil
	}

	dst, ok := document.AsArray(existing)
	if !ok {
		return nil, ErrAppendTarget
	}

	if src, isArray := document.AsArray(req.Data); isArray {
		return append(dst, src...), nil
	}

	return append(dst, req.Data), nil
}

func loadExisting(path string) (any, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read existing file %q: %w", path, err)
	}

	v, err := document.Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse existing JSON in %q: %w", path, err)
	}

	return v, true, nil
}
