// Command nfacc is the CLI entrypoint: build, check and repl all
// dispatch through cliexec, the way nex.go's main dispatches straight
// into exec.Execute.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"nfacc/cliexec"
)

func main() {
	name := filepath.Base(os.Args[0])
	if err := cliexec.Execute(name, os.Args[1:]...); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		if errors.Is(err, cliexec.ErrInputOpenFailure) {
			fmt.Fprintf(os.Stderr, "usage: %s build|check|repl ...\n", name)
		}
		os.Exit(1)
	}
}
