// Package transport abstracts the byte-level connection between a Session
// and a Buttplug server, so the session logic never depends on gorilla's
// websocket package directly.
package transport

import (
	"context"
	"errors"
	"fmt"
)

// Transport moves raw JSON frames to and from a Buttplug server. A Session
// owns exactly one Transport at a time and is the only caller of its
// methods; the callback registered through Receive is invoked from the
// transport's own read goroutine.
type Transport interface {
	// Connect establishes the underlying connection to addr.
	Connect(ctx context.Context, addr string) error
	// Send writes one already-encoded JSON frame (a full array, per the
	// wire's batching convention) to the server.
	Send(ctx context.Context, frame []byte) error
	// Receive registers the callback invoked with each JSON frame the
	// server sends. It must be called before Connect.
	Receive(func(frame []byte))
	// Disconnect closes the connection. It is safe to call more than
	// once.
	Disconnect() error
	// Connected reports whether the underlying connection is currently
	// open.
	Connected() bool
}

// ConnectorErrorKind classifies why Connect failed, mirroring the
// connector-level error taxonomy distinct from in-protocol ServerError.
type ConnectorErrorKind int

const (
	// ErrKindUnknown covers failures that don't fit another category.
	ErrKindUnknown ConnectorErrorKind = iota
	// ErrKindInvalidAddress means addr could not be parsed as a server
	// address.
	ErrKindInvalidAddress
	// ErrKindServerNotFound means the network connection could not be
	// established (DNS failure, connection refused, unreachable host).
	ErrKindServerNotFound
	// ErrKindInvalidHandshake means the server accepted the transport
	// connection but the Buttplug handshake did not complete.
	ErrKindInvalidHandshake
	// ErrKindTimeout means Connect did not complete within its context
	// deadline.
	ErrKindTimeout
	// ErrKindDisconnected means the connection was lost after having
	// been established.
	ErrKindDisconnected
)

func (k ConnectorErrorKind) String() string {
	switch k {
	case ErrKindInvalidAddress:
		return "invalid address"
	case ErrKindServerNotFound:
		return "server not found"
	case ErrKindInvalidHandshake:
		return "invalid handshake"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// ConnectorError wraps a transport-level failure with its Kind, so callers
// can branch on category without string matching.
type ConnectorError struct {
	Kind ConnectorErrorKind
	Addr string
	Err  error
}

func (e *ConnectorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport: %s connecting to %s: %v", e.Kind, e.Addr, e.Err)
	}
	return fmt.Sprintf("transport: %s connecting to %s", e.Kind, e.Addr)
}

func (e *ConnectorError) Unwrap() error { return e.Err }

// NewConnectorError builds a ConnectorError for kind.
func NewConnectorError(kind ConnectorErrorKind, addr string, err error) *ConnectorError {
	return &ConnectorError{Kind: kind, Addr: addr, Err: err}
}

// ErrNotConnected is returned by Send when no connection is established.
var ErrNotConnected = errors.New("transport: not connected")
