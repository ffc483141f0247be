// Package main provides the vibe CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/vibedocs/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
