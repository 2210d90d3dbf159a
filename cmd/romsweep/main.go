// Command romsweep is the CLI entrypoint for the ROM collection cleaner.
//
// It parses flags and an optional rule profile, validates configuration and
// paths, and either runs the diagnostics ("romsweep check") or the cleaning
// rules in their fixed order.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/romsweep/internal/rules"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and maps the outcome to an exit code:
// 0 on success, 2 for invalid input or a missing prerequisite, 1 otherwise.
func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "romsweep: %v\n", err)
	return exitCode(err)
}

// usageError marks errors caused by the command line itself.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return rules.StatusOf(err).ExitCode()
}
