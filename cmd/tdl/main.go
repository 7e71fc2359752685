// Command tdl parses, catalogs and exports type definitions.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tdl/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
