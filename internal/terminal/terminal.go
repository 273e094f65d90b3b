// Package terminal provides utilities for terminal state handling.
package terminal

import (
	"os"

	"atomicgo.dev/cursor"
	"golang.org/x/term"
)

// StdinIsPiped reports whether standard input is redirected or piped
// rather than connected to a terminal. Piped input selects batch mode.
func StdinIsPiped() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// Restore undoes cursor state changes (a hidden cursor from a spinner)
// before the process exits on a fatal condition.
func Restore() {
	cursor.Show()
}
