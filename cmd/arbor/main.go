// Command arbor lays out, renders and views arbor scene files.
package main

import (
	"os"

	"github.com/phanxgames/arbor/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
