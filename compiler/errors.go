package compiler

import (
	"fmt"
	"strings"
	"time"
)

// InternalError indicates the compiler hit a defect inside itself rather than
// in the compiled source. It is always fatal and carries no position data.
type InternalError struct {
	// Message is the compiler-provided description of the internal defect.
	Message string
}

// Error returns the error message for an InternalError.
func (e *InternalError) Error() string {
	return fmt.Sprintf("compiler internal error: %s", e.Message)
}

// SyntaxError indicates one or more lexical/grammar errors were diagnosed in
// the compiled source. Entries carry single-point positions only, since a file
// that fails to parse has no meaningful ranges.
type SyntaxError struct {
	// Entries describes each diagnosed syntax error, in order of appearance.
	Entries []SyntaxErrorEntry
}

// Error returns the joined raw diagnostic blocks of all entries.
func (e *SyntaxError) Error() string {
	blocks := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		blocks[i] = entry.RawMessage
	}
	return strings.Join(blocks, "\n")
}

// SemanticError indicates one or more type/binding errors were diagnosed in
// the compiled source. Entries carry full source ranges.
type SemanticError struct {
	// Entries describes each diagnosed semantic error, in order of appearance.
	Entries []SemanticErrorEntry
}

// Error returns the joined raw diagnostic blocks of all entries.
func (e *SemanticError) Error() string {
	blocks := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		blocks[i] = entry.RawMessage
	}
	return strings.Join(blocks, "\n")
}

// GenericError indicates the compiler reported a failure whose shape matched
// none of the known diagnostic patterns. The full raw output is preserved so
// no information is lost.
type GenericError struct {
	// RawOutput is the complete, unrecognized compiler output.
	RawOutput string
}

// Error returns the raw compiler output for a GenericError.
func (e *GenericError) Error() string {
	return e.RawOutput
}

// LoadError indicates an artifact the compiler was expected to produce could
// not be loaded or decoded. This is a tooling/integration fault, distinct from
// a diagnosed compile error, and is always fatal.
type LoadError struct {
	// Path is the path of the artifact that failed to load.
	Path string

	// Err is the underlying load or decode error.
	Err error
}

// Error returns the error message for a LoadError.
func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load compiler artifact '%s': %v", e.Path, e.Err)
}

// Unwrap returns the underlying error of a LoadError.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// TimeoutError indicates the compiler process did not complete within the
// configured duration. No partial result is produced alongside it.
type TimeoutError struct {
	// Duration is the timeout that was exceeded.
	Duration time.Duration
}

// Error returns the error message for a TimeoutError.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("compiler invocation exceeded its timeout of %s", e.Duration)
}
