package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/daybook/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands report their own errors through the output formatter and
		// return an ExitError carrying the code. Anything else (flag or
		// setup failures) has not been printed yet.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
