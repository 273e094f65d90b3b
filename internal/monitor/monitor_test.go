// Copyright (c) 2025 scpi
// Licensed under the MIT License. See LICENSE file in the project root for details.

package monitor

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	apperrors "scpi/cli/internal/errors"
	"scpi/cli/internal/transport"
)

// dialPeer starts a loopback listener served by handler and dials it.
func dialPeer(t *testing.T, handler func(c net.Conn)) *transport.Conn {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		handler(c)
	}()

	conn, err := transport.Dial(ln.Addr().String())
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestMonitorDetectsPeerClose(t *testing.T) {
	conn := dialPeer(t, func(c net.Conn) {
		time.Sleep(30 * time.Millisecond)
		c.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	interval := 50 * time.Millisecond
	dead := New(conn, interval).Start(ctx)

	select {
	case err := <-dead:
		var e *apperrors.E
		if !errors.As(err, &e) || e.Kind != apperrors.PeerDisconnected {
			t.Errorf("error = %v, want kind %q", err, apperrors.PeerDisconnected)
		}
		if !errors.Is(err, transport.ErrPeerClosed) {
			t.Errorf("error = %v, want wrapped ErrPeerClosed", err)
		}
	case <-time.After(10 * interval):
		t.Fatal("monitor never reported the disconnect")
	}
}

func TestMonitorQuietWhileAlive(t *testing.T) {
	hold := make(chan struct{})
	defer close(hold)
	conn := dialPeer(t, func(c net.Conn) {
		<-hold
		c.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	dead := New(conn, 20*time.Millisecond).Start(ctx)

	select {
	case err := <-dead:
		t.Fatalf("unexpected monitor report: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	// Cancelling must stop the loop without a report.
	cancel()
	select {
	case err := <-dead:
		t.Fatalf("report after cancel: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMonitorDefaultInterval(t *testing.T) {
	hold := make(chan struct{})
	defer close(hold)
	conn := dialPeer(t, func(c net.Conn) { <-hold })

	m := New(conn, 0)
	if m.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", m.interval, DefaultInterval)
	}
}
