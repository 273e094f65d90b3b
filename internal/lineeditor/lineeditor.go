// Copyright (c) 2025 scpi
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package lineeditor provides the interactive command source: a readline
// editor with Emacs keybindings and persistent history when stdin is a
// terminal, with a plain scanner fallback when readline cannot start.
package lineeditor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"

	"scpi/cli/internal/xdg"
)

// historyFileName is the history file inside the XDG state dir.
const historyFileName = "history"

// Editor reads command lines from the user. Non-empty lines are added to
// history as they are read; lines starting with a space are kept out of
// history, matching shell ignore-space behavior.
type Editor struct {
	rl      *readline.Instance
	scanner *bufio.Scanner
}

// New creates an editor with history capped at historyLimit entries.
// If readline cannot initialize, it degrades to basic line reading.
func New(historyLimit int) *Editor {
	historyPath := ""
	if dir, err := xdg.StateDir(); err == nil {
		historyPath = filepath.Join(dir, historyFileName)
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:  historyPath,
		HistoryLimit: historyLimit,

		// History entries are curated in GetLine, not auto-saved per line.
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return &Editor{scanner: bufio.NewScanner(os.Stdin)}
	}
	return &Editor{rl: rl}
}

// GetLine solicits one command with the given prompt. It returns io.EOF
// when the user ends input with Ctrl-D or interrupts with Ctrl-C.
func (e *Editor) GetLine(prompt string) (string, error) {
	if e.rl == nil {
		fmt.Print(prompt)
		if !e.scanner.Scan() {
			if err := e.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return e.scanner.Text(), nil
	}

	e.rl.SetPrompt(prompt)
	line, err := e.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}

	if historyWorthy(line) {
		e.rl.SaveToHistory(strings.TrimSpace(line))
	}
	return line, nil
}

// Close persists history and releases the terminal. Safe to call more
// than once.
func (e *Editor) Close() {
	if e.rl != nil {
		e.rl.Close()
		e.rl = nil
	}
}

// historyWorthy reports whether a line belongs in history: non-blank and
// not opted out with a leading space.
func historyWorthy(line string) bool {
	return strings.TrimSpace(line) != "" && !strings.HasPrefix(line, " ")
}
