// Package main is the entry point for the cougar CLI.
// It hosts the Cougardb notebook interpreter on the command line.
package main

import (
	"cougardb/cli/cmd"
)

func main() {
	cmd.Execute()
}
