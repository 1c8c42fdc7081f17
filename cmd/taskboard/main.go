package main

import (
	"fmt"
	"os"

	"taskboard/internal/cli"
)

func main() {
	// Nil factory: talk to the configured store over HTTP
	root := cli.NewRootCommand(nil)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cli.NewErrorHandler().HandleSimple(err))
		os.Exit(1)
	}
}
