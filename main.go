package main

import (
	"fmt"
	"os"

	"github.com/scrypt-inc/go-scryptc/cmd"
	"github.com/scrypt-inc/go-scryptc/cmd/exitcodes"
)

func main() {
	// Run our root CLI command, which contains all underlying command logic and will handle parsing/invocation.
	err := cmd.Execute()

	// Determine the exit code from any potential error and exit out.
	err, exitCode := exitcodes.GetInnerErrorAndExitCode(err)
	if err != nil && exitCode != exitcodes.ExitCodeSuccess {
		fmt.Println(err)
	}
	os.Exit(exitCode)
}
