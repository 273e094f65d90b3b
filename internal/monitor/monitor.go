// Copyright (c) 2025 scpi
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package monitor detects a silently closed connection while the
// interactive loop is blocked waiting on user keystrokes. Without it, a
// server-side disconnect would only be discovered on the next command,
// possibly much later. Batch sessions never start the monitor.
package monitor

import (
	"context"
	"time"

	apperrors "scpi/cli/internal/errors"
	"scpi/cli/internal/transport"
)

const (
	// DefaultInterval is how often the connection is probed.
	DefaultInterval = 5 * time.Second

	// probePoll bounds how long a single probe may hold the connection
	// lock, so the exchange path is never starved.
	probePoll = 100 * time.Millisecond
)

// Monitor periodically probes the shared connection without consuming
// data. It holds the connection lock only for one probe per interval and
// releases it before sleeping.
type Monitor struct {
	conn     *transport.Conn
	interval time.Duration
}

// New creates a monitor for conn. A non-positive interval selects
// DefaultInterval.
func New(conn *transport.Conn, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{conn: conn, interval: interval}
}

// Start launches the probe loop in a goroutine. The returned channel
// delivers exactly one error when the peer closes the connection, then
// the loop stops; the supervisor decides how to shut the session down.
// Cancel ctx to stop the loop on the success path.
func (m *Monitor) Start(ctx context.Context) <-chan error {
	dead := make(chan error, 1)
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.conn.Probe(probePoll); err != nil {
					dead <- apperrors.Wrap(apperrors.PeerDisconnected, "connection lost", err)
					return
				}
			}
		}
	}()
	return dead
}
