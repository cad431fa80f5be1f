// Package main provides the polycodec CLI.
package main

import (
	"os"

	"github.com/gork-labs/polycodec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
