// Copyright (c) 2025 scpi
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session runs the command/response loop against one connection.
// A session is either batch (a finite command sequence, no monitor) or
// interactive (commands solicited one at a time from a line editor, with
// the liveness monitor supervised by the caller).
package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"scpi/cli/internal/logging"
	"scpi/cli/internal/scpi"
	"scpi/cli/internal/transport"
)

// InputSource yields one command line at a time. It reports io.EOF when
// the user ends input; that is a normal termination, not an error.
type InputSource interface {
	GetLine(prompt string) (string, error)
}

// Session orchestrates exchanges over one connection. Exchange severity
// is decided below this layer: the loop only reacts to the Result shape,
// printing responses to Out and per-command diagnostics to Diag.
type Session struct {
	Conn    *transport.Conn
	Timeout time.Duration
	Prompt  string
	Out     io.Writer
	Diag    io.Writer
}

// RunBatch exchanges each line in order, printing present responses.
// It returns the first fatal error, or nil once the sequence is drained.
func (s *Session) RunBatch(lines []string) error {
	for _, line := range lines {
		if err := s.step(line); err != nil {
			return err
		}
	}
	return nil
}

// RunInteractive solicits commands until the source reports end of input,
// which terminates the session normally with an exit notice. Fatal
// exchange errors are returned; recoverable ones never leave the loop.
func (s *Session) RunInteractive(src InputSource) error {
	for {
		line, err := src.GetLine(s.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.Out, "Exiting.")
				return nil
			}
			return err
		}
		if err := s.step(line); err != nil {
			return err
		}
	}
}

func (s *Session) step(command string) error {
	res, err := scpi.Exchange(s.Conn, command, s.Timeout)
	if err != nil {
		return err
	}
	if res.ReadErr != nil {
		fmt.Fprintln(s.Diag, logging.PresentError("query failed", res.ReadErr))
	}
	if res.HasResponse && res.Response != "" {
		fmt.Fprintln(s.Out, res.Response)
	}
	return nil
}
