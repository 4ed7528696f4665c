// Command tether orders, builds and inspects dependency manifests.
package main

import (
	"fmt"
	"os"
)

var (
	// Version information (set by ldflags during build).
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", boldRed("✗"), err)
		os.Exit(1)
	}
}
