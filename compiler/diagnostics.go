package compiler

import (
	"regexp"
	"strconv"
	"strings"
)

// errorMarker prefixes all diagnosed compiler failures in raw output.
const errorMarker = "Error:"

// Diagnostic patterns matched against raw compiler output. The compiler
// reports syntax errors as a file position followed by three lines of source
// context and either an unexpected/expecting token pair or a free-form message
// line. Semantic errors and warnings share one shape: a marker, a five-number
// position (start line/column, end line/column) and a message line. All
// patterns are anchored on LF line boundaries, so output must pass through
// normalizeLineEndings first.
var (
	internalErrorPattern = regexp.MustCompile(`Internal error:(?P<message>.+)`)
	syntaxErrorPattern   = regexp.MustCompile(`(?P<filePath>\S+):(?P<line>\d+):(?P<column>\d+):\n(?:[^\n]*\n){3}(?:unexpected (?P<unexpected>[^\n]+)\nexpecting (?P<expecting>[^\n]+)|(?P<message>[^\n]+))`)
	semanticErrorPattern = regexp.MustCompile(`Error:(?:\s|\n)*(?P<filePath>\S+):(?P<line>\d+):(?P<column>\d+):(?P<line1>\d+):(?P<column1>\d+):*\n(?P<message>[^\n]+)\n`)
	warningPattern       = regexp.MustCompile(`Warning:(?:\s|\n)*(?P<filePath>\S+):(?P<line>\d+):(?P<column>\d+):(?P<line1>\d+):(?P<column1>\d+):*\n(?P<message>[^\n]+)\n`)
)

// Cross-reference fragments embedded in diagnostic messages repeat a full
// file position. They are rewritten to the compact line:column:line1:column1
// form, dropping the file reference. An already-rewritten fragment no longer
// matches, which keeps the rewrite idempotent.
var (
	alreadyDefinedPattern = regexp.MustCompile("Symbol `(?P<varName>\\w+)` already defined at (?P<fileIndex>\\S+):(?P<line>\\d+):(?P<column>\\d+):(?P<line1>\\d+):(?P<column1>\\d+)")
	shadowsBindingPattern = regexp.MustCompile("Variable `(?P<varName>\\w+)` shadows existing binding at (?P<fileIndex>\\S+):(?P<line>\\d+):(?P<column>\\d+):(?P<line1>\\d+):(?P<column1>\\d+)")
	alreadyDefinedRewrite = "Symbol `${varName}` already defined at ${line}:${column}:${line1}:${column1}"
	shadowsBindingRewrite = "Variable `${varName}` shadows existing binding at ${line}:${column}:${line1}:${column1}"
)

// SyntaxErrorEntry describes a single diagnosed syntax error.
type SyntaxErrorEntry struct {
	// Message is the diagnostic message. For unexpected/expecting diagnostics
	// it is composed from the Got/Expected pair, otherwise it is the compiler's
	// free-form message line.
	Message string `json:"message"`

	// RawMessage is the full raw diagnostic block as matched in the output.
	RawMessage string `json:"rawMessage"`

	// Got is the unexpected token the compiler stopped on. Empty for free-form
	// syntax diagnostics.
	Got string `json:"got,omitempty"`

	// Expected is the token set the compiler expected instead. Empty for
	// free-form syntax diagnostics.
	Expected string `json:"expected,omitempty"`

	// Position is the point at which the error was diagnosed.
	Position SourcePosition `json:"position"`

	// FilePath is the source file path as reported by the compiler.
	FilePath string `json:"filePath"`
}

// SemanticErrorEntry describes a single diagnosed type or binding error.
type SemanticErrorEntry struct {
	// Message is the diagnostic message, with embedded cross-reference
	// fragments rewritten to their compact form.
	Message string `json:"message"`

	// RawMessage is the full raw diagnostic block as matched in the output.
	RawMessage string `json:"rawMessage"`

	// Range is the source span the error covers.
	Range SourceRange `json:"range"`

	// FilePath is the source file path as reported by the compiler.
	FilePath string `json:"filePath"`
}

// WarningEntry describes a single compiler warning. Warnings never affect the
// success or failure of an invocation.
type WarningEntry struct {
	// FilePath is the source file path as reported by the compiler.
	FilePath string `json:"filePath"`

	// Range is the source span the warning covers.
	Range SourceRange `json:"range"`

	// Message is the warning message, with embedded cross-reference fragments
	// rewritten to their compact form.
	Message string `json:"message"`
}

// normalizeLineEndings rewrites CRLF sequences to LF. Compiler output on
// Windows is CRLF separated, which would break the line-anchored diagnostic
// patterns above.
func normalizeLineEndings(output string) string {
	return strings.ReplaceAll(output, "\r\n", "\n")
}

// classifyOutput inspects raw compiler output and returns a typed error for
// any diagnosed failure, or nil if the output does not carry the error marker.
// Classification is attempted in fixed priority: internal error, then syntax
// errors, then semantic errors, then a generic fallback preserving the whole
// output. The first non-empty match wins and lower-priority patterns are never
// evaluated.
func classifyOutput(output string) error {
	if !strings.HasPrefix(output, errorMarker) {
		return nil
	}

	// An internal compiler error short-circuits all other classification.
	if match := internalErrorPattern.FindStringSubmatch(output); match != nil {
		return &InternalError{Message: namedGroup(internalErrorPattern, match, "message")}
	}

	// A file that fails to parse cannot be meaningfully type-checked, so any
	// syntax diagnostics suppress semantic ones.
	if entries := parseSyntaxErrors(output); len(entries) > 0 {
		return &SyntaxError{Entries: entries}
	}

	if entries := parseSemanticErrors(output); len(entries) > 0 {
		return &SemanticError{Entries: entries}
	}

	// The output carries the error marker but matches no known shape. Surface
	// it whole rather than silently dropping an unrecognized error.
	return &GenericError{RawOutput: output}
}

// parseSyntaxErrors extracts every syntax-shaped diagnostic from raw compiler
// output, in order of appearance.
func parseSyntaxErrors(output string) []SyntaxErrorEntry {
	var entries []SyntaxErrorEntry
	for _, match := range syntaxErrorPattern.FindAllStringSubmatch(output, -1) {
		got := namedGroup(syntaxErrorPattern, match, "unexpected")
		expected := namedGroup(syntaxErrorPattern, match, "expecting")
		message := namedGroup(syntaxErrorPattern, match, "message")
		if message == "" && got != "" {
			message = "unexpected " + got + ", expecting " + expected
		}
		entries = append(entries, SyntaxErrorEntry{
			Message:    message,
			RawMessage: match[0],
			Got:        got,
			Expected:   expected,
			Position: SourcePosition{
				Line:   parsePositionNumber(namedGroup(syntaxErrorPattern, match, "line")),
				Column: parsePositionNumber(namedGroup(syntaxErrorPattern, match, "column")),
			},
			FilePath: namedGroup(syntaxErrorPattern, match, "filePath"),
		})
	}
	return entries
}

// parseSemanticErrors extracts every semantic-shaped diagnostic from raw
// compiler output, in order of appearance. Messages pass through the
// cross-reference rewrite.
func parseSemanticErrors(output string) []SemanticErrorEntry {
	var entries []SemanticErrorEntry
	for _, match := range semanticErrorPattern.FindAllStringSubmatch(output, -1) {
		message := alreadyDefinedPattern.ReplaceAllString(namedGroup(semanticErrorPattern, match, "message"), alreadyDefinedRewrite)
		entries = append(entries, SemanticErrorEntry{
			Message:    message,
			RawMessage: match[0],
			Range:      parseMatchedRange(semanticErrorPattern, match),
			FilePath:   namedGroup(semanticErrorPattern, match, "filePath"),
		})
	}
	return entries
}

// collectWarnings extracts every warning-shaped diagnostic from raw compiler
// output, in order of appearance. Warnings are collected regardless of whether
// the invocation failed.
func collectWarnings(output string) []WarningEntry {
	var warnings []WarningEntry
	for _, match := range warningPattern.FindAllStringSubmatch(output, -1) {
		message := shadowsBindingPattern.ReplaceAllString(namedGroup(warningPattern, match, "message"), shadowsBindingRewrite)
		warnings = append(warnings, WarningEntry{
			FilePath: namedGroup(warningPattern, match, "filePath"),
			Range:    parseMatchedRange(warningPattern, match),
			Message:  message,
		})
	}
	return warnings
}

// parseMatchedRange reads the five-number position groups shared by the
// semantic error and warning patterns into a SourceRange.
func parseMatchedRange(pattern *regexp.Regexp, match []string) SourceRange {
	return SourceRange{
		Start: SourcePosition{
			Line:   parsePositionNumber(namedGroup(pattern, match, "line")),
			Column: parsePositionNumber(namedGroup(pattern, match, "column")),
		},
		End: SourcePosition{
			Line:   parsePositionNumber(namedGroup(pattern, match, "line1")),
			Column: parsePositionNumber(namedGroup(pattern, match, "column1")),
		},
	}
}

// namedGroup returns the text captured by a named group of a pattern match, or
// an empty string if the group did not participate in the match.
func namedGroup(pattern *regexp.Regexp, match []string, name string) string {
	index := pattern.SubexpIndex(name)
	if index < 0 || index >= len(match) {
		return ""
	}
	return match[index]
}

// parsePositionNumber converts a matched digit group to a position value. The
// groups are guaranteed to be digits by the patterns, so conversion failures
// cannot occur on matched input.
func parsePositionNumber(text string) uint {
	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}
