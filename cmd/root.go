// Copyright (c) 2025 scpi
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the scpi client.
// It parses arguments with Cobra, assembles the batch command sequence
// from the -c flag or piped standard input, and supervises the
// interactive session together with the connection liveness monitor.
package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"scpi/cli/internal/config"
	apperrors "scpi/cli/internal/errors"
	"scpi/cli/internal/lineeditor"
	"scpi/cli/internal/logging"
	"scpi/cli/internal/monitor"
	"scpi/cli/internal/session"
	"scpi/cli/internal/terminal"
	"scpi/cli/internal/transport"
)

var (
	timeoutSeconds int
	commandText    string
)

// rootCmd represents the scpi command itself; connecting to an
// instrument is the root action, there are no subcommands.
var rootCmd = &cobra.Command{
	Use:   "scpi <host> [port]",
	Short: "Interactive client for SCPI instruments over TCP",
	Long: `scpi is a lightweight interactive client for SCPI command/query protocols.
It connects to an instrument over TCP, sends commands, and waits for a
single-line reply for commands recognized as queries (first token ending
in '?'). It also accepts piped input or input redirected from a file,
one command per line.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSession,
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.Flags().IntVarP(&timeoutSeconds, "timeout", "t", 0, "Seconds to wait for a query response")
	rootCmd.Flags().StringVarP(&commandText, "command", "c", "", "A command/query to run and immediately exit")
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	host := args[0]
	port := cfg.Port
	if len(args) == 2 {
		port, err = strconv.Atoi(args[1])
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port %q", args[1])
		}
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}

	// Piped or redirected stdin becomes the batch command sequence and
	// takes precedence over -c.
	var batch string
	interactive := true
	if terminal.StdinIsPiped() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		batch = strings.TrimRight(string(data), "\n")
		interactive = false
	} else if cmd.Flags().Changed("command") {
		batch = commandText
		interactive = false
	}

	var spinner *pterm.SpinnerPrinter
	if interactive {
		spinner, _ = pterm.DefaultSpinner.WithWriter(os.Stderr).Start("Connecting to " + addr)
	}
	conn, err := transport.Dial(addr)
	if err != nil {
		if spinner != nil {
			spinner.Fail("Connection failed")
		}
		return apperrors.Wrap(apperrors.ConnectFailed, "could not connect to "+addr, err)
	}
	if spinner != nil {
		spinner.Success("Connected to " + addr)
	}

	sess := &session.Session{
		Conn:    conn,
		Timeout: timeout,
		Out:     os.Stdout,
		Diag:    os.Stderr,
	}

	// One-shot batch mode: exchange the sequence and exit. No monitor is
	// started since the process ends as soon as the sequence drains.
	if !interactive {
		defer conn.Close()
		var lines []string
		if batch != "" {
			lines = strings.Split(batch, "\n")
		}
		return sess.RunBatch(lines)
	}

	editor := lineeditor.New(cfg.HistoryLimit)
	defer editor.Close()

	// The prompt blocks on user keystrokes, so a background monitor
	// probes the connection; a detected disconnect ends the whole
	// session after the terminal state is put back.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	dead := monitor.New(conn, monitor.DefaultInterval).Start(ctx)
	go func() {
		err := <-dead
		fmt.Fprintln(os.Stderr)
		pterm.Error.WithWriter(os.Stderr).Println(logging.PresentError("session ended", err))
		editor.Close()
		terminal.Restore()
		os.Exit(1)
	}()

	sess.Prompt = pterm.FgGreen.Sprint(host) + "> "
	return sess.RunInteractive(editor)
}
