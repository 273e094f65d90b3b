// Copyright (c) 2025 scpi
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package transport owns the single TCP connection shared by the exchange
// path and the liveness monitor. All stream access goes through one
// exclusive lock: whichever side needs the socket acquires it, performs
// its I/O, and releases it before any sleep or wait. The lock keeps a
// query's response bytes and the monitor's probe from ever interleaving
// on the same stream position.
package transport

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"
	"time"
)

// Keepalive settings so dead peers are detected at the socket level,
// independent of the application-level monitor.
const (
	keepaliveIdle     = 4 * time.Second
	keepaliveInterval = 1 * time.Second
	keepaliveCount    = 4
)

// ErrPeerClosed indicates the remote end closed the connection.
var ErrPeerClosed = errors.New("connection closed by peer")

// Conn wraps the session's connection with a line-buffered reader and the
// exclusive lock shared by the exchange path and the liveness monitor.
// There is exactly one Conn per session.
type Conn struct {
	mu sync.Mutex
	nc net.Conn
	r  *bufio.Reader
}

// Dial connects to addr over TCP with keepalive enabled.
func Dial(addr string) (*Conn, error) {
	d := net.Dialer{
		KeepAliveConfig: net.KeepAliveConfig{
			Enable:   true,
			Idle:     keepaliveIdle,
			Interval: keepaliveInterval,
			Count:    keepaliveCount,
		},
	}
	nc, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return New(nc), nil
}

// New wraps an established connection. Used by Dial and by tests that
// supply pipes or loopback connections.
func New(nc net.Conn) *Conn {
	return &Conn{nc: nc, r: bufio.NewReader(nc)}
}

// Stream is the view of the connection handed out while the lock is held.
// It pairs the raw write side with the shared buffered reader.
type Stream struct {
	c *Conn
}

// Write sends raw bytes to the peer.
func (s *Stream) Write(p []byte) (int, error) {
	return s.c.nc.Write(p)
}

// ReadLine reads one newline-terminated line, waiting at most timeout.
// The returned line includes the terminator. Deadline expiry surfaces as
// a net.Error with Timeout() == true.
func (s *Stream) ReadLine(timeout time.Duration) (string, error) {
	if err := s.c.nc.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return "", err
	}
	defer s.c.nc.SetReadDeadline(time.Time{})
	return s.c.r.ReadString('\n')
}

// Do runs fn with exclusive access to the stream. A write and its
// follow-up read stay under one hold, so no other stream operation can
// slip in between them.
func (c *Conn) Do(fn func(s *Stream) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&Stream{c: c})
}

// Probe checks whether the peer has closed the connection without
// consuming any data. It blocks for at most poll; no data arriving in
// that window means the connection is still open and counts as alive.
// Returns ErrPeerClosed on end-of-stream. A byte seen by the probe stays
// in the shared reader buffer for the next exchange to consume.
func (c *Conn) Probe(poll time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.nc.SetReadDeadline(time.Now().Add(poll)); err != nil {
		return err
	}
	defer c.nc.SetReadDeadline(time.Time{})
	_, err := c.r.Peek(1)
	if err == nil {
		return nil
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return ErrPeerClosed
	}
	return err
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.nc.RemoteAddr()
}

// Close tears the connection down. The interactive path normally exits
// the process instead; Close exists for batch cleanup and tests.
func (c *Conn) Close() error {
	return c.nc.Close()
}
