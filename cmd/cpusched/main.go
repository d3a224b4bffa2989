// cmd/cpusched/main.go
//
// Minimal entry point that delegates CLI handling to the cobra root command in internal/cli

package main

import (
	"os"

	"schedsim/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
