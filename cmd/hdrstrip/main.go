package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/hdrstrip/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Status lines are printed by the command itself; anything else
		// (bad flags, subcommand failures) is reported here.
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
