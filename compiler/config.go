package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the maximum duration a compiler invocation may take before
// it is aborted, unless a configuration overrides it.
const DefaultTimeout = 1200 * time.Second

// Config describes one compiler invocation. Every recognized option is an
// explicit field with an explicit default; there is no pass-through option
// map. Each output flag controls exactly its own compiler behavior.
type Config struct {
	// CompilerBin is the path of the compiler binary to invoke. Required.
	CompilerBin string `json:"compilerBin"`

	// OutputDirectory is the directory the compiler writes its artifacts to.
	// Required. Concurrent invocations must use distinct directories.
	OutputDirectory string `json:"outputDirectory"`

	// Asm requests script assembly output from the compiler.
	Asm bool `json:"asm"`

	// Debug requests debug symbol output from the compiler.
	Debug bool `json:"debug"`

	// Optimize enables the compiler's optimizer.
	Optimize bool `json:"optimize"`

	// Ast requests an AST dump, which this package then loads and normalizes.
	Ast bool `json:"ast"`

	// Desc requests assembly of a contract description; it implies an AST dump.
	Desc bool `json:"desc"`

	// Timeout is the maximum duration the compiler process may run. A zero or
	// already-elapsed timeout fails the invocation immediately.
	Timeout time.Duration `json:"timeout"`

	// WorkingDirectory is the working directory of the spawned process.
	WorkingDirectory string `json:"workingDirectory"`

	// ExtraArgs are additional arguments passed through to the compiler
	// unchanged.
	ExtraArgs []string `json:"extraArgs,omitempty"`
}

// NewConfig returns a Config for the given compiler binary and output
// directory with default values for all other options. The ExtraArgs slice is
// freshly allocated per call and never shared between configurations.
func NewConfig(compilerBin string, outputDirectory string) *Config {
	return &Config{
		CompilerBin:      compilerBin,
		OutputDirectory:  outputDirectory,
		Asm:              true,
		Debug:            true,
		Optimize:         false,
		Ast:              false,
		Desc:             false,
		Timeout:          DefaultTimeout,
		WorkingDirectory: ".",
		ExtraArgs:        []string{},
	}
}

// Validate ensures the configuration can drive an invocation, failing
// eagerly with a descriptive error rather than at a later stage.
func (c *Config) Validate() error {
	if c.CompilerBin == "" {
		return fmt.Errorf("invalid compiler configuration: no compiler binary path specified")
	}
	if c.OutputDirectory == "" {
		return fmt.Errorf("invalid compiler configuration: no output directory specified")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid compiler configuration: timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// EphemeralOutputDirectory returns a fresh, uniquely named directory path
// under the system temporary directory. Using it per invocation guarantees
// concurrent compilations never share output artifacts.
func EphemeralOutputDirectory() string {
	return filepath.Join(os.TempDir(), "scryptc-"+uuid.New().String())
}
