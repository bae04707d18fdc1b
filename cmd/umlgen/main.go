// Package main provides the umlgen command.
package main

import (
	"os"

	"github.com/syssam/umlgen/internal/cli"
	"github.com/syssam/umlgen/internal/cli/commands"
)

func main() {
	os.Exit(exitCode(cli.Execute()))
}

// exitCode maps a command error to the process status: 2 for usage
// errors, 1 for every other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case commands.IsUsageError(err):
		return 2
	default:
		return 1
	}
}
