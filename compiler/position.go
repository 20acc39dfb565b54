package compiler

import "fmt"

// SourcePosition describes a single point in a source file as reported by the
// compiler. Line and column numbering starts at one.
type SourcePosition struct {
	// Line is the 1-based line number of the position.
	Line uint `json:"line"`

	// Column is the 1-based column number of the position.
	Column uint `json:"column"`
}

// String returns the position in the compiler's own line:column notation.
func (p SourcePosition) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SourceRange describes a span of source text between two positions. End is
// expected to be greater than or equal to Start, but the values are taken
// verbatim from compiler output and are not validated here.
type SourceRange struct {
	// Start is the first position covered by the range.
	Start SourcePosition `json:"start"`

	// End is the last position covered by the range.
	End SourcePosition `json:"end"`
}

// String returns the range in the compiler's line:column:line1:column1 notation.
func (r SourceRange) String() string {
	return fmt.Sprintf("%s:%s", r.Start, r.End)
}
