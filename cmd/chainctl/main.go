// Command chainctl provides CLI control over the chaind daemon.
// It sends actions into a hosted responder chain, inspects the chain and its
// journal, and can run a chain definition locally without a daemon.
package main

import (
	"os"

	"github.com/mfulz/actionchain/cmd/chainctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
