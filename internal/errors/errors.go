// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error
// kinds and human-friendly messages. Fatal session failures are categorized here
// at the point where their severity is decided, so callers react to the category
// instead of re-interpreting raw I/O errors.
//
// The package supports wrapping underlying errors while maintaining error kind
// information, making it easier to handle different types of failures appropriately.
package errors

import "fmt"

// Kind is a machine-readable error category.
type Kind string

const (
	// ConnectFailed indicates the initial TCP connect failed.
	ConnectFailed Kind = "connect_failed"
	// WriteFailed indicates a command could not be written to the instrument.
	WriteFailed Kind = "write_failed"
	// PeerDisconnected indicates the instrument closed the connection.
	PeerDisconnected Kind = "peer_disconnected"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }
