package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

const (
	readLimit    = 1 << 20
	writeTimeout = 10 * time.Second
)

// Lifecycle event names emitted on a WebSocketTransport's EventBus. Emit is
// non-strict for all of these: a transport with no subscriber behaves
// exactly as before, since the events are opt-in hooks, not a required
// delivery path.
const (
	EventConnected    = "transport.connected"
	EventDisconnected = "transport.disconnected"
	EventSent         = "transport.sent"
	EventReceived     = "transport.received"
)

// WebSocketTransport is the canonical Transport, backed by gorilla's
// websocket client.
type WebSocketTransport struct {
	mu       sync.Mutex
	conn     *ws.Conn
	onFrame  func(frame []byte)
	closed   bool
	doneOnce sync.Once
	events   *EventBus
}

// NewWebSocketTransport returns a Transport ready to Connect. Its EventBus
// is created empty; callers use Events().On to subscribe to connect/
// disconnect/send/receive hooks before calling Connect.
func NewWebSocketTransport() *WebSocketTransport {
	return &WebSocketTransport{events: NewEventBus()}
}

// Events returns the bus the transport's lifecycle is reported through
// (§4.4: EventBus is used by the Transport adapter for connect/disconnect/
// send/receive hooks).
func (t *WebSocketTransport) Events() *EventBus {
	return t.events
}

func (t *WebSocketTransport) Receive(cb func(frame []byte)) {
	t.mu.Lock()
	t.onFrame = cb
	t.mu.Unlock()
}

// Connect dials addr, classifying any failure into the ConnectorError
// taxonomy (§ connector errors) and, on success, starts the read loop that
// delivers frames to the Receive callback.
func (t *WebSocketTransport) Connect(ctx context.Context, addr string) error {
	if _, err := url.Parse(addr); err != nil {
		return NewConnectorError(ErrKindInvalidAddress, addr, err)
	}

	dialer := ws.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, addr, nil)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return NewConnectorError(ErrKindTimeout, addr, err)
		case resp != nil:
			return NewConnectorError(ErrKindInvalidHandshake, addr, err)
		default:
			return NewConnectorError(ErrKindServerNotFound, addr, err)
		}
	}

	conn.SetReadLimit(readLimit)

	t.mu.Lock()
	t.conn = conn
	t.closed = false
	cb := t.onFrame
	t.mu.Unlock()

	slog.Info("transport.connected",
		"component", "transport",
		"event", "connect",
		"addr", addr,
	)
	if err := t.events.Emit(EventConnected, addr, false); err != nil {
		slog.Warn("transport.event.handler_error",
			"component", "transport", "event", "connect.handler_error", "error", err,
		)
	}

	go t.readLoop(conn, cb)
	return nil
}

func (t *WebSocketTransport) readLoop(conn *ws.Conn, cb func(frame []byte)) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ws.IsUnexpectedCloseError(err, ws.CloseGoingAway, ws.CloseAbnormalClosure, ws.CloseNormalClosure) {
				slog.Warn("transport.read_error",
					"component", "transport",
					"event", "read_error",
					"error", err,
				)
			}
			t.mu.Lock()
			t.closed = true
			t.mu.Unlock()
			return
		}
		if cb != nil {
			cb(data)
		}
		if err := t.events.Emit(EventReceived, data, false); err != nil {
			slog.Warn("transport.event.handler_error",
				"component", "transport", "event", "receive.handler_error", "error", err,
			)
		}
	}
}

func (t *WebSocketTransport) Send(ctx context.Context, frame []byte) error {
	t.mu.Lock()
	conn := t.conn
	closed := t.closed
	t.mu.Unlock()

	if conn == nil || closed {
		return ErrNotConnected
	}

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return NewConnectorError(ErrKindDisconnected, "", err)
	}
	if err := conn.WriteMessage(ws.TextMessage, frame); err != nil {
		return NewConnectorError(ErrKindDisconnected, "", err)
	}
	if err := t.events.Emit(EventSent, frame, false); err != nil {
		slog.Warn("transport.event.handler_error",
			"component", "transport", "event", "send.handler_error", "error", err,
		)
	}
	return nil
}

// Connected reports whether the dial succeeded and the read loop has not
// yet observed a close.
func (t *WebSocketTransport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn != nil && !t.closed
}

func (t *WebSocketTransport) Disconnect() error {
	t.mu.Lock()
	conn := t.conn
	t.closed = true
	t.mu.Unlock()

	if conn == nil {
		return nil
	}

	var err error
	t.doneOnce.Do(func() {
		deadline := time.Now().Add(writeTimeout)
		_ = conn.WriteControl(ws.CloseMessage, ws.FormatCloseMessage(ws.CloseNormalClosure, ""), deadline)
		err = conn.Close()
	})
	if emitErr := t.events.Emit(EventDisconnected, nil, false); emitErr != nil {
		slog.Warn("transport.event.handler_error",
			"component", "transport", "event", "disconnect.handler_error", "error", emitErr,
		)
	}
	return err
}
