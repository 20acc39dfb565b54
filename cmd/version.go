package cmd

import (
	"fmt"

	"github.com/scrypt-inc/go-scryptc/compiler"
	"github.com/scrypt-inc/go-scryptc/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command that displays build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Long: `Print detailed version and build information for scryptc-go.

This includes the semantic version, git commit hash, build timestamp,
the Go version used to compile the binary and, when resolvable, the
version of the wrapped compiler binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetInfo()
		fmt.Print(info.String())

		// Report the wrapped compiler's version too, when the binary can be found.
		compilerBin, err := cmd.Flags().GetString("compiler")
		if err != nil {
			return
		}
		if compilerVersion, err := compiler.CompilerVersion(compilerBin); err == nil {
			fmt.Printf("  Compiler:   %s %s\n", compilerBin, compilerVersion.String())
		}
	},
}

func init() {
	versionCmd.Flags().String("compiler", DefaultCompilerBinary, "path of the compiler binary to query")
	rootCmd.AddCommand(versionCmd)
}
