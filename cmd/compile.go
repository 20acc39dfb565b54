package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/scrypt-inc/go-scryptc/cmd/exitcodes"
	"github.com/scrypt-inc/go-scryptc/compiler"
	"github.com/scrypt-inc/go-scryptc/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// compileCmd represents the command provider for compilation.
var compileCmd = &cobra.Command{
	Use:               "compile [source file]",
	Short:             "Compiles a source file and reports typed diagnostics",
	Long:              `Compiles a source file (or standard input when no file is given) and reports typed diagnostics, warnings and the synthesized contract interface`,
	Args:              cmdValidateCompileArgs,
	ValidArgsFunction: cmdValidCompileArgs,
	RunE:              cmdRunCompile,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// cmdValidCompileArgs will return which flags are valid for dynamic completion for the compile command.
func cmdValidCompileArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags, cobra.ShellCompDirectiveDefault
}

func init() {
	// Add all the flags allowed for the compile command
	addCompileFlags()

	// Add the compile command and its associated flags to the root command
	rootCmd.AddCommand(compileCmd)
}

// cmdValidateCompileArgs makes sure that at most one positional source file argument is provided
// to the compile command.
func cmdValidateCompileArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		err = fmt.Errorf("compile accepts at most one source file argument; without one, source text is read from standard input")
		cmdLogger.Error("Failed to validate args to the compile command", err)
		return err
	}
	return nil
}

// cmdRunCompile executes the CLI compile command: it assembles a compiler configuration from the
// provided flags, runs the compilation and writes the assembled result into the output directory.
// Diagnosed compile errors, missing artifacts and timeouts each map to their own exit code.
func cmdRunCompile(cmd *cobra.Command, args []string) error {
	config, err := buildCompileConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to configure the compile command", err)
		return err
	}

	// Make sure the compiler has somewhere to write its artifacts.
	if err = utils.MakeDirectory(config.OutputDirectory); err != nil {
		cmdLogger.Error("Failed to create the output directory", err)
		return err
	}

	scryptc, err := compiler.NewCompiler(config)
	if err != nil {
		cmdLogger.Error("Failed to create the compiler", err)
		return err
	}

	result, err := runCompilation(scryptc, args)
	if err != nil {
		cmdLogger.Error("Compilation failed", err)
		return exitcodes.NewErrorWithExitCode(err, compileExitCode(err))
	}

	// Surface every warning; warnings never fail the invocation.
	for _, warning := range result.Warnings {
		cmdLogger.Warn("Compiler warning at "+warning.FilePath+":"+warning.Range.String(), warning.Message)
	}

	if err = writeResultFile(config.OutputDirectory, result); err != nil {
		cmdLogger.Error("Failed to write the compilation result", err)
		return err
	}

	cmdLogger.Info("Compilation succeeded for source: ", result.SourceFile)
	return nil
}

// runCompilation compiles the provided source file argument, or standard input when no argument
// was given.
func runCompilation(scryptc *compiler.Compiler, args []string) (*compiler.CompilerResult, error) {
	if len(args) == 1 {
		if !utils.FileExists(args[0]) {
			return nil, fmt.Errorf("source file '%s' does not exist", args[0])
		}
		return scryptc.CompileFile(args[0])
	}

	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return scryptc.Compile(string(text))
}

// writeResultFile serializes a compilation result as JSON into the output directory.
func writeResultFile(outputDirectory string, result *compiler.CompilerResult) error {
	file, err := utils.CreateFile(outputDirectory, DefaultResultFilename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return errors.WithStack(encoder.Encode(result))
}

// compileExitCode maps a typed compilation failure onto the exit code the process should
// terminate with.
func compileExitCode(err error) int {
	var (
		internalErr *compiler.InternalError
		syntaxErr   *compiler.SyntaxError
		semanticErr *compiler.SemanticError
		genericErr  *compiler.GenericError
		loadErr     *compiler.LoadError
		timeoutErr  *compiler.TimeoutError
	)
	switch {
	case errors.As(err, &internalErr), errors.As(err, &syntaxErr), errors.As(err, &semanticErr), errors.As(err, &genericErr):
		return exitcodes.ExitCodeCompileFailed
	case errors.As(err, &loadErr):
		return exitcodes.ExitCodeArtifactError
	case errors.As(err, &timeoutErr):
		return exitcodes.ExitCodeTimeout
	default:
		return exitcodes.ExitCodeGeneralError
	}
}
