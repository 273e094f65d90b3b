// Copyright (c) 2025 scpi
// Licensed under the MIT License. See LICENSE file in the project root for details.

package scpi

import (
	"errors"
	"io"
	"net"
	"strings"
	"time"

	apperrors "scpi/cli/internal/errors"
	"scpi/cli/internal/transport"
)

// ErrTimeout indicates a query received no response within its deadline.
var ErrTimeout = errors.New("timed out waiting for query response")

// Result carries the outcome of one exchange. Severity is decided here:
// a recoverable read problem lands in ReadErr and is never returned as
// the exchange error, so callers react to the shape without
// re-interpreting it.
type Result struct {
	// Response is the trimmed reply line, valid only when HasResponse.
	Response    string
	HasResponse bool
	// ReadErr records a per-command failure (timeout or transient read
	// error) that leaves the session usable.
	ReadErr error
}

// Exchange sends command over conn and, for queries, waits up to timeout
// for one newline-terminated reply. The write and the reply read happen
// under a single hold of the connection lock. A non-nil error is fatal
// for the session (the command could not be written); everything short
// of that is reported through the Result.
func Exchange(conn *transport.Conn, command string, timeout time.Duration) (Result, error) {
	var res Result
	query := IsQuery(command)

	err := conn.Do(func(s *transport.Stream) error {
		if _, err := io.WriteString(s, normalize(command)); err != nil {
			return apperrors.Wrap(apperrors.WriteFailed, "failed to send command", err)
		}
		if !query {
			return nil
		}

		line, err := s.ReadLine(timeout)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				res.ReadErr = ErrTimeout
			} else {
				res.ReadErr = err
			}
			return nil
		}
		res.Response = strings.TrimSpace(line)
		res.HasResponse = true
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// normalize appends the line terminator unless command already carries
// exactly one.
func normalize(command string) string {
	if strings.HasSuffix(command, "\n") {
		return command
	}
	return command + "\n"
}
