// Package compiler wraps the external scryptc compiler: it invokes the
// binary as a subprocess and converts its textual diagnostics and JSON AST
// dumps into a typed CompilerResult with exact source positions, a URI-keyed
// module graph and a synthesized contract interface descriptor. It performs
// no compilation, type-checking or code generation itself.
package compiler

import (
	"context"
	"os"
	"path/filepath"

	"github.com/scrypt-inc/go-scryptc/logging"
	"github.com/scrypt-inc/go-scryptc/utils"
)

// Compiler drives compiler invocations for one configuration. It holds no
// state across invocations, so a single Compiler may serve concurrent
// compilations as long as each uses a distinct output directory.
type Compiler struct {
	// config describes the invocation options.
	config *Config

	// run produces raw compiler stdout for a source. Defaults to spawning the
	// configured binary; replaceable for testing.
	run RunFunc

	// loadFile loads a named compiler artifact from disk. Defaults to
	// os.ReadFile; replaceable for testing.
	loadFile LoadFileFunc

	// logger describes the Compiler's log object
	logger *logging.Logger
}

// NewCompiler returns a Compiler for a validated configuration.
func NewCompiler(config *Config) (*Compiler, error) {
	// Validate the configuration eagerly so a defective one fails here with a
	// descriptive error instead of mid-invocation.
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Compiler{
		config:   config,
		run:      runCompiler,
		loadFile: os.ReadFile,
		logger:   logging.GlobalLogger.NewSubLogger("module", "compiler"),
	}, nil
}

// SetRunFunc replaces the invocation collaborator of the Compiler.
func (c *Compiler) SetRunFunc(run RunFunc) {
	c.run = run
}

// SetLoadFileFunc replaces the artifact loading collaborator of the Compiler.
func (c *Compiler) SetLoadFileFunc(loadFile LoadFileFunc) {
	c.loadFile = loadFile
}

// Config returns the configuration the Compiler was created with.
func (c *Compiler) Config() *Config {
	return c.config
}

// Compile compiles literal source text, fed to the compiler over standard
// input, and returns the typed result or a typed failure.
func (c *Compiler) Compile(text string) (*CompilerResult, error) {
	return c.compile(NewTextSource(text))
}

// CompileFile compiles a source file on disk and returns the typed result or
// a typed failure.
func (c *Compiler) CompileFile(path string) (*CompilerResult, error) {
	return c.compile(NewFileSource(path))
}

// compile runs the full pipeline for one source: invoke, normalize line
// endings, classify diagnostics, collect warnings, then load and normalize
// the AST dump, build the derived tables and synthesize the ABI descriptor
// when AST output was requested.
func (c *Compiler) compile(source *Source) (*CompilerResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()

	// Invoke the compiler through the invocation collaborator.
	raw, err := c.run(ctx, c.config, source)
	if err != nil {
		return nil, err
	}

	// A zero or already-elapsed timeout must fail the invocation even if the
	// collaborator returned output without observing the context.
	if utils.CheckContextDone(ctx) {
		return nil, &TimeoutError{Duration: c.config.Timeout}
	}

	// Normalize CRLF line endings before any pattern matching, as all
	// diagnostic patterns are anchored on single-LF line boundaries.
	output := normalizeLineEndings(string(raw))

	// Classify the output into a typed failure, if it diagnosed one.
	if err := classifyOutput(output); err != nil {
		c.logger.Debug("compiler invocation failed", err)
		return nil, err
	}

	identity, err := source.Identity()
	if err != nil {
		return nil, err
	}

	// Warnings are collected from the entire output and never escalate.
	result := &CompilerResult{
		Warnings:   collectWarnings(output),
		SourceFile: identity,
		DepAst:     make(map[string]*ModuleAst),
	}

	if c.config.Ast || c.config.Desc {
		if err := c.assembleAstOutputs(source, identity, result); err != nil {
			return nil, err
		}
	}

	c.stampProvenance(source, result)
	return result, nil
}

// assembleAstOutputs loads the AST artifact for a source, normalizes its
// module identities, extracts the primary module and fills in the derived
// tables and the synthesized ABI descriptor.
func (c *Compiler) assembleAstOutputs(source *Source, identity string, result *CompilerResult) error {
	artifactPath := filepath.Join(c.config.OutputDirectory, source.ArtifactPrefix()+"_ast.json")

	// A missing or malformed artifact is a tooling fault, reported distinctly
	// from diagnosed compile errors.
	data, err := c.loadFile(artifactPath)
	if err != nil {
		return &LoadError{Path: artifactPath, Err: err}
	}
	dump, err := decodeAstDump(data)
	if err != nil {
		return &LoadError{Path: artifactPath, Err: err}
	}
	if err = dump.normalizeSourceIdentities(); err != nil {
		return &LoadError{Path: artifactPath, Err: err}
	}

	// The derived tables span the full module graph, primary included, and
	// are built before the primary module is split off.
	identities := dump.identities(identity)
	aliases := buildAliasTable(dump, identities)
	statics, err := buildStaticConstTable(dump, identities)
	if err != nil {
		return &LoadError{Path: artifactPath, Err: err}
	}

	root, err := dump.extractPrimary(identity)
	if err != nil {
		return &LoadError{Path: artifactPath, Err: err}
	}

	abi, err := synthesizeAbi(root, aliases, statics)
	if err != nil {
		return err
	}

	result.Ast = root
	result.DepAst = dump
	result.Aliases = aliases
	result.Abi = abi
	return nil
}

// stampProvenance records best-effort provenance on a result: the compiler
// version and the source checksum. Neither affects the outcome of the
// invocation.
func (c *Compiler) stampProvenance(source *Source, result *CompilerResult) {
	if version, err := CompilerVersion(c.config.CompilerBin); err == nil {
		result.CompilerVersion = version
	} else {
		c.logger.Debug("could not determine compiler version", err)
	}

	if source.FromFile() {
		if data, err := c.loadFile(source.Path); err == nil {
			result.SourceMD5 = sourceChecksum(data)
		}
	} else {
		result.SourceMD5 = sourceChecksum([]byte(source.Text))
	}
}
