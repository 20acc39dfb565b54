package cmd

import (
	"github.com/scrypt-inc/go-scryptc/compiler"
	"github.com/spf13/cobra"
)

// addCompileFlags adds the various flags for the compile command.
func addCompileFlags() {
	// Compiler invocation options
	compileCmd.Flags().String("compiler", DefaultCompilerBinary, "path of the compiler binary to invoke")
	compileCmd.Flags().String("out", "", "directory the compiler writes artifacts to (default: a fresh temporary directory)")
	compileCmd.Flags().String("cwd", ".", "working directory for the spawned compiler process")
	compileCmd.Flags().Duration("timeout", compiler.DefaultTimeout, "maximum duration the compiler process may run")
	compileCmd.Flags().StringArray("arg", []string{}, "extra argument passed through to the compiler unchanged (repeatable)")

	// Output options; each flag controls exactly one compiler behavior
	compileCmd.Flags().Bool("asm", true, "request script assembly output")
	compileCmd.Flags().Bool("debug", true, "request debug symbol output")
	compileCmd.Flags().Bool("opt", false, "enable the compiler's optimizer")
	compileCmd.Flags().Bool("ast", false, "request and parse an AST dump")
	compileCmd.Flags().Bool("desc", false, "assemble a contract description (implies --ast)")
}

// buildCompileConfig reads the compile command's flags into a compiler configuration.
func buildCompileConfig(cmd *cobra.Command) (*compiler.Config, error) {
	compilerBin, err := cmd.Flags().GetString("compiler")
	if err != nil {
		return nil, err
	}
	outputDirectory, err := cmd.Flags().GetString("out")
	if err != nil {
		return nil, err
	}

	// Without an explicit output directory, allocate a unique one so parallel
	// runs never collide.
	if outputDirectory == "" {
		outputDirectory = compiler.EphemeralOutputDirectory()
	}

	config := compiler.NewConfig(compilerBin, outputDirectory)
	if config.WorkingDirectory, err = cmd.Flags().GetString("cwd"); err != nil {
		return nil, err
	}
	if config.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	}
	if config.ExtraArgs, err = cmd.Flags().GetStringArray("arg"); err != nil {
		return nil, err
	}
	if config.Asm, err = cmd.Flags().GetBool("asm"); err != nil {
		return nil, err
	}
	if config.Debug, err = cmd.Flags().GetBool("debug"); err != nil {
		return nil, err
	}
	if config.Optimize, err = cmd.Flags().GetBool("opt"); err != nil {
		return nil, err
	}
	if config.Ast, err = cmd.Flags().GetBool("ast"); err != nil {
		return nil, err
	}
	if config.Desc, err = cmd.Flags().GetBool("desc"); err != nil {
		return nil, err
	}
	return config, nil
}
