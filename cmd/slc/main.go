// Package main implements the slc command, the Slate front end.
package main

import (
	"os"

	"github.com/you-not-fish/slate/cmd/slc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
