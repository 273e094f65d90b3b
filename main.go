// Package main is the entry point for the scpi CLI application.
// It provides an interactive client for SCPI instruments over TCP.
package main

import (
	"scpi/cli/cmd"
)

// main is the entry point for the scpi CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
