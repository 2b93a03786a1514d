package session

import (
	"errors"
	"fmt"
)

// ErrNeverConnected is returned by Reconnect when Connect has never
// succeeded, so there is no transport/address pair to reuse (§4.6).
var ErrNeverConnected = errors.New("session: reconnect requires a prior successful connect")

// ScanNotRunningError is returned by StopScanning when no scan is active.
type ScanNotRunningError struct{}

func (e *ScanNotRunningError) Error() string { return "session: no scan is currently running" }

// UnexpectedMessageError is returned when a handshake step's response was
// not the message type it expected.
type UnexpectedMessageError struct {
	Expected string
	Got      string
}

func (e *UnexpectedMessageError) Error() string {
	return fmt.Sprintf("session: expected %s, got %s", e.Expected, e.Got)
}

// ErrDisconnected resolves every pending request still outstanding when
// Disconnect runs (§5 cancellation, §9 design notes: the source's TODO).
var ErrDisconnected = errors.New("session: disconnected while request was pending")
