package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syntaxErrorOutput is a compiler output with two syntax diagnostics: one
// unexpected/expecting pair at 3:1 and one free-form message at 7:4.
const syntaxErrorOutput = "Error:\n" +
	"contract.scrypt:3:1:\n" +
	"  contract Demo {\n" +
	"    require(\n" +
	"    ^\n" +
	"unexpected end of input\n" +
	"expecting \")\"\n" +
	"contract.scrypt:7:4:\n" +
	"  public function unlock(int z) {\n" +
	"    require(z == 1)\n" +
	"    ^\n" +
	"missing semicolon\n"

// semanticErrorOutput is a compiler output with one semantic diagnostic
// carrying an embedded cross-reference fragment.
const semanticErrorOutput = "Error:\n" +
	"contract.scrypt:14:5:14:10:\n" +
	"Symbol `x` already defined at file0:3:9:3:10\n"

// warningOutput is an otherwise clean compiler output with one embedded
// warning diagnostic.
const warningOutput = "OK, compiled successfully\n" +
	"Warning:\n" +
	"contract.scrypt:5:5:5:6:\n" +
	"Variable `y` shadows existing binding at file0:2:3:2:4\n"

func TestClassifyCleanOutput(t *testing.T) {
	// Output without the error marker classifies as no error, even if it
	// contains warning-shaped fragments.
	err := classifyOutput(warningOutput)
	assert.Nil(t, err)

	// Warning extraction still runs over the same text.
	warnings := collectWarnings(warningOutput)
	assert.Len(t, warnings, 1)
	assert.EqualValues(t, "contract.scrypt", warnings[0].FilePath)
	assert.EqualValues(t, SourceRange{Start: SourcePosition{Line: 5, Column: 5}, End: SourcePosition{Line: 5, Column: 6}}, warnings[0].Range)
	assert.EqualValues(t, "Variable `y` shadows existing binding at 2:3:2:4", warnings[0].Message)
}

func TestClassifyInternalError(t *testing.T) {
	// An internal error short-circuits classification even when the text also
	// contains a semantic-shaped fragment further down.
	output := "Error:\nscryptc: Internal error:Maximum call stack size exceeded\n" + semanticErrorOutput
	err := classifyOutput(output)

	var internalErr *InternalError
	assert.ErrorAs(t, err, &internalErr)
	assert.EqualValues(t, "Maximum call stack size exceeded", internalErr.Message)
}

func TestClassifySyntaxErrors(t *testing.T) {
	err := classifyOutput(syntaxErrorOutput)

	// Two entries in input order, with positions and got/expected pairs intact.
	var syntaxErr *SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
	assert.Len(t, syntaxErr.Entries, 2)

	first := syntaxErr.Entries[0]
	assert.EqualValues(t, SourcePosition{Line: 3, Column: 1}, first.Position)
	assert.EqualValues(t, "contract.scrypt", first.FilePath)
	assert.EqualValues(t, "end of input", first.Got)
	assert.EqualValues(t, "\")\"", first.Expected)

	second := syntaxErr.Entries[1]
	assert.EqualValues(t, SourcePosition{Line: 7, Column: 4}, second.Position)
	assert.EqualValues(t, "missing semicolon", second.Message)
	assert.Empty(t, second.Got)
	assert.Empty(t, second.Expected)
}

func TestSyntaxErrorsSuppressSemanticErrors(t *testing.T) {
	// When both shapes appear, only the syntax failure is reported.
	err := classifyOutput(syntaxErrorOutput + semanticErrorOutput)

	var syntaxErr *SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestClassifySemanticErrors(t *testing.T) {
	err := classifyOutput(semanticErrorOutput)

	var semanticErr *SemanticError
	assert.ErrorAs(t, err, &semanticErr)
	assert.Len(t, semanticErr.Entries, 1)

	entry := semanticErr.Entries[0]
	assert.EqualValues(t, "contract.scrypt", entry.FilePath)
	assert.EqualValues(t, SourceRange{Start: SourcePosition{Line: 14, Column: 5}, End: SourcePosition{Line: 14, Column: 10}}, entry.Range)

	// The embedded cross-reference is rewritten to its compact form.
	assert.EqualValues(t, "Symbol `x` already defined at 3:9:3:10", entry.Message)
}

func TestClassifyGenericFallback(t *testing.T) {
	// The error marker is present but no known pattern matches, so the whole
	// output is preserved.
	output := "Error: something entirely unrecognized happened"
	err := classifyOutput(output)

	var genericErr *GenericError
	assert.ErrorAs(t, err, &genericErr)
	assert.EqualValues(t, output, genericErr.RawOutput)
}

func TestMessageRewriteIsIdempotent(t *testing.T) {
	message := "Symbol `x` already defined at file0:3:9:3:10"
	once := alreadyDefinedPattern.ReplaceAllString(message, alreadyDefinedRewrite)
	twice := alreadyDefinedPattern.ReplaceAllString(once, alreadyDefinedRewrite)
	assert.EqualValues(t, "Symbol `x` already defined at 3:9:3:10", once)
	assert.EqualValues(t, once, twice)

	warning := "Variable `y` shadows existing binding at file0:2:3:2:4"
	once = shadowsBindingPattern.ReplaceAllString(warning, shadowsBindingRewrite)
	twice = shadowsBindingPattern.ReplaceAllString(once, shadowsBindingRewrite)
	assert.EqualValues(t, "Variable `y` shadows existing binding at 2:3:2:4", once)
	assert.EqualValues(t, once, twice)
}

func TestMessageRewriteLeavesOtherMessagesUntouched(t *testing.T) {
	message := "Couldn't match expected type `int` with actual type `bool`"
	assert.EqualValues(t, message, alreadyDefinedPattern.ReplaceAllString(message, alreadyDefinedRewrite))
}

func TestNormalizeLineEndings(t *testing.T) {
	// CRLF-separated output classifies identically to LF-separated output.
	crlf := strings.ReplaceAll(syntaxErrorOutput, "\n", "\r\n")
	err := classifyOutput(normalizeLineEndings(crlf))

	var syntaxErr *SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
	assert.Len(t, syntaxErr.Entries, 2)
}
