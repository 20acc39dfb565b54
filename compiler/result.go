package compiler

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/Masterminds/semver"
)

// CompilerResult is the typed outcome of one successful compiler invocation.
// A result and a raised failure are mutually exclusive; no partial result is
// ever produced alongside an error.
type CompilerResult struct {
	// Ast is the normalized AST of the primary module. Nil unless AST output
	// was requested.
	Ast *ModuleAst `json:"ast,omitempty"`

	// DepAst maps canonical source identities to the ASTs of dependency
	// modules. It never contains the primary module's own identity.
	DepAst map[string]*ModuleAst `json:"depAst,omitempty"`

	// Abi is the synthesized interface descriptor of the primary contract.
	// Nil unless AST output was requested.
	Abi *AbiDescriptor `json:"abi,omitempty"`

	// Aliases is the global type alias table flattened across all modules.
	Aliases []AliasEntry `json:"alias,omitempty"`

	// Warnings holds every warning the compiler emitted, in order of
	// appearance.
	Warnings []WarningEntry `json:"warnings"`

	// SourceFile is the canonical identity of the compiled source: its
	// absolute file URI, or the standard-input marker.
	SourceFile string `json:"sourceFile"`

	// CompilerVersion is the version of the compiler binary that produced the
	// result, when it could be determined.
	CompilerVersion *semver.Version `json:"compilerVersion,omitempty"`

	// SourceMD5 is the hex-encoded MD5 checksum of the compiled source text,
	// when the text was available to this layer.
	SourceMD5 string `json:"md5,omitempty"`
}

// sourceChecksum returns the hex-encoded MD5 checksum of source bytes.
func sourceChecksum(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
