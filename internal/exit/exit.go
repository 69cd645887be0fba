// Package exit carries the message and status code a command should
// terminate with, so main stays a thin shell around run functions.
package exit

import (
	"fmt"
	"io"
	"os"
)

// Result holds the output destination and exit code for termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to its output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a zero-code result that writes to stdout.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: 0,
		Message:  message,
	}
}

// Error creates a code-1 result that writes to stderr.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
