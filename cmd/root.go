package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/scrypt-inc/go-scryptc/logging"
	"github.com/spf13/cobra"
)

// rootCmd represents the root CLI command object which all other commands stem from.
var rootCmd = &cobra.Command{
	Use:   "scryptc-go",
	Short: "A typed wrapper around the sCrypt compiler",
	Long:  "scryptc-go invokes the sCrypt compiler and turns its output into typed diagnostics, a normalized AST graph and a contract interface descriptor",
}

// cmdLogger is the logger that will be used for all CLI commands.
var cmdLogger = logging.NewLogger(zerolog.InfoLevel, os.Stdout)

// Execute provides an exportable function to invoke the CLI.
func Execute() error {
	return rootCmd.Execute()
}
