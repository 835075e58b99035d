// Command ormctl inspects entity metadata documents: the columns and
// identity strategies they map to, the generators they declare, and the
// SQL of simple criteria queries over them.
package main

import (
	"fmt"
	"os"

	"github.com/syssam/orm/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ormctl:", err)
		os.Exit(cli.ExitCode(err))
	}
}
