package compiler

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// RunFunc produces the raw stdout of a compiler invocation for a source and
// flag set. Implementations must honor context cancellation.
type RunFunc func(ctx context.Context, config *Config, source *Source) ([]byte, error)

// LoadFileFunc loads a named artifact the compiler produced on disk.
type LoadFileFunc func(name string) ([]byte, error)

// Source is one compilation input: either literal program text fed to the
// compiler over standard input, or a path to a source file on disk.
type Source struct {
	// Text is the literal source text. Used when Path is empty.
	Text string

	// Path is the source file path. When set, the compiler reads the file
	// itself and Text is ignored.
	Path string
}

// NewTextSource returns a Source that feeds literal text over standard input.
func NewTextSource(text string) *Source {
	return &Source{Text: text}
}

// NewFileSource returns a Source that compiles a file on disk.
func NewFileSource(path string) *Source {
	return &Source{Path: path}
}

// FromFile reports whether the source is a file on disk.
func (s *Source) FromFile() bool {
	return s.Path != ""
}

// Identity returns the canonical identity of the source: its absolute file
// URI, or the standard-input marker for text sources. This is the key the
// primary module carries in a normalized AST dump.
func (s *Source) Identity() (string, error) {
	if !s.FromFile() {
		return StdinIdentity, nil
	}
	return canonicalFileURI(s.Path)
}

// ArtifactPrefix returns the prefix the compiler uses when naming output
// artifacts for this source: the file stem, or the standard-input marker.
func (s *Source) ArtifactPrefix() string {
	if !s.FromFile() {
		return StdinIdentity
	}
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// assembleArguments builds the compiler command line for a configuration and
// source. Each flag maps to exactly one compiler option; a description request
// implies an AST dump since the description is assembled from it.
func assembleArguments(config *Config, source *Source) ([]string, error) {
	outputDirectory, err := filepath.Abs(config.OutputDirectory)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	args := []string{"compile"}
	if config.Asm {
		args = append(args, "--asm")
	}
	if config.Ast || config.Desc {
		args = append(args, "--ast")
	}
	if config.Debug {
		args = append(args, "--debug")
	}
	if config.Optimize {
		args = append(args, "--opt")
	}
	args = append(args, "-r", "-o", outputDirectory)
	args = append(args, config.ExtraArgs...)
	if source.FromFile() {
		args = append(args, source.Path)
	}
	return args, nil
}

// runCompiler is the default RunFunc: it spawns the configured compiler
// binary and captures its stdout. The compiler reports diagnosed source
// errors on stdout with a non-zero exit status, so an exit error alone is not
// a failure here; classification of the output decides the outcome.
func runCompiler(ctx context.Context, config *Config, source *Source) ([]byte, error) {
	args, err := assembleArguments(config, source)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, config.CompilerBin, args...)
	cmd.Dir = config.WorkingDirectory
	if !source.FromFile() {
		cmd.Stdin = strings.NewReader(source.Text)
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, &TimeoutError{Duration: config.Timeout}
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// The process could not be started at all, which is an
			// integration fault rather than a diagnosed compile error.
			return nil, errors.WithStack(runErr)
		}
	}
	return stdout.Bytes(), nil
}
