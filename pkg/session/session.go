// Package session implements the Buttplug client's dispatcher: it holds the
// transport, drives the handshake, keeps the pending-request table keyed by
// id, runs the ping loop, processes server-initiated messages, and owns the
// device registry and the scan future.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m0rjc/buttplug-go/pkg/device"
	"github.com/m0rjc/buttplug-go/pkg/id"
	"github.com/m0rjc/buttplug-go/pkg/message"
	"github.com/m0rjc/buttplug-go/pkg/protocolspec"
	"github.com/m0rjc/buttplug-go/pkg/transport"
	"golang.org/x/sync/singleflight"
)

// sendResult is what a pending request is ultimately resolved with: either
// the correlated Incoming response, or an error (a context cancellation or,
// at Disconnect, ErrDisconnected).
type sendResult struct {
	msg message.Incoming
	err error
}

// Session is the single point of contact between the caller and one
// connected Buttplug server. It is safe for concurrent use: the pending
// table, device registry and scan future are all guarded, matching the
// way the teacher's Hub guards its connection map with a mutex shared
// between per-connection goroutines and its own run loop.
type Session struct {
	clientName string
	version    protocolspec.ProtocolSpec
	ids        *id.Allocator

	mu         sync.Mutex
	transport  transport.Transport
	addr       string
	connected  bool
	everDialed bool
	pending    map[uint32]chan sendResult
	devices    map[int]*device.Device

	pingMu     sync.Mutex
	pingCancel context.CancelFunc
	pingDone   chan struct{}

	scanGroup singleflight.Group
	scanMu    sync.Mutex
	scanActive bool
	scanResult chan map[int]*device.Device
}

// New returns an idle Session that will negotiate version on Connect.
func New(clientName string, version protocolspec.ProtocolSpec) *Session {
	return &Session{
		clientName: clientName,
		version:    version,
		ids:        id.NewAllocator(),
		pending:    make(map[uint32]chan sendResult),
		devices:    make(map[int]*device.Device),
	}
}

// Version reports the protocol revision this session negotiated to use.
func (s *Session) Version() protocolspec.ProtocolSpec { return s.version }

// Connected reports whether the handshake has completed and disconnect has
// not since been called.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Devices returns a snapshot of the currently registered devices, keyed by
// index. Mutating the returned map does not affect the session's registry.
func (s *Session) Devices() map[int]*device.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]*device.Device, len(s.devices))
	for k, v := range s.devices {
		out[k] = v
	}
	return out
}

// Connect installs the frame callback, opens the transport, and drives the
// handshake: RequestServerInfo, then (if the server advertises pings)
// starts the ping loop, then RequestDeviceList to seed the device registry
// (§4.6).
func (s *Session) Connect(ctx context.Context, t transport.Transport, addr string) error {
	t.Receive(s.handleFrame)

	s.mu.Lock()
	s.transport = t
	s.addr = addr
	s.mu.Unlock()

	if err := t.Connect(ctx, addr); err != nil {
		return err
	}

	s.mu.Lock()
	s.everDialed = true
	s.mu.Unlock()

	return s.handshake(ctx)
}

// Reconnect redials the existing transport at the address given to the
// most recent Connect and re-runs the handshake. It fails if Connect has
// never succeeded (§4.6: "fails if no transport has ever been set").
func (s *Session) Reconnect(ctx context.Context) error {
	s.mu.Lock()
	t := s.transport
	addr := s.addr
	everDialed := s.everDialed
	s.mu.Unlock()

	if t == nil || !everDialed {
		return ErrNeverConnected
	}

	if err := t.Connect(ctx, addr); err != nil {
		return err
	}
	return s.handshake(ctx)
}

// handshake runs RequestServerInfo, starts the ping loop if advertised, and
// seeds the device registry from RequestDeviceList. It stops any ping loop
// left running from a prior handshake first, so a Reconnect (or a second
// Connect) never leaks the previous loop's goroutine.
func (s *Session) handshake(ctx context.Context) error {
	s.stopPingLoop()

	req := &message.RequestServerInfo{ClientName: s.clientName}
	if s.version != protocolspec.V0 {
		v := s.version
		req.MessageVersion = &v
	}

	resp, err := s.Send(ctx, req)
	if err != nil {
		return err
	}

	maxPingTime, err := serverMaxPingTime(resp)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()

	slog.Info("session.connected",
		"component", "session", "event", "connect",
		"protocol_version", s.version.String(),
		"max_ping_time_ms", maxPingTime,
	)

	if maxPingTime > 0 {
		s.startPingLoop(time.Duration(maxPingTime) * time.Millisecond / 2)
	}

	listResp, err := s.Send(ctx, &message.RequestDeviceList{})
	if err != nil {
		return err
	}
	return s.applyDeviceList(listResp)
}

func serverMaxPingTime(resp message.Incoming) (int, error) {
	switch info := resp.(type) {
	case *message.ServerInfoV0:
		return info.MaxPingTime, nil
	case *message.ServerInfo:
		return info.MaxPingTime, nil
	case *message.Error:
		return 0, message.NewServerError(info.ErrorCode, info.ErrorMessage)
	default:
		return 0, &UnexpectedMessageError{Expected: "ServerInfo", Got: resp.WireName()}
	}
}

// Send implements device.Sender: it assigns the message's id, registers a
// pending entry, encodes and transmits it, and suspends until the
// correlated response (or disconnect, or ctx) resolves the entry. Response
// routing is one-shot: the pending entry is removed whether Send returns
// normally or via ctx cancellation (§3 invariants).
func (s *Session) Send(ctx context.Context, msg message.Outgoing) (message.Incoming, error) {
	msg.SetID(s.ids.Next())
	reqID := msg.ID()

	ch := make(chan sendResult, 1)
	s.mu.Lock()
	s.pending[reqID] = ch
	pendingCount := len(s.pending)
	s.mu.Unlock()
	pendingRequests.Set(float64(pendingCount))

	defer func() {
		s.mu.Lock()
		delete(s.pending, reqID)
		pendingCount := len(s.pending)
		s.mu.Unlock()
		pendingRequests.Set(float64(pendingCount))
		s.ids.Release(reqID)
	}()

	raw, err := message.EncodeBatch(msg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	t := s.transport
	s.mu.Unlock()
	if err := t.Send(ctx, raw); err != nil {
		return nil, err
	}

	select {
	case res := <-ch:
		return res.msg, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Disconnect stops the ping loop (awaiting its termination), resolves every
// still-outstanding pending request with ErrDisconnected, and closes the
// transport (§4.6, §5).
func (s *Session) Disconnect() error {
	s.stopPingLoop()

	s.mu.Lock()
	waiters := make([]chan sendResult, 0, len(s.pending))
	for reqID, ch := range s.pending {
		waiters = append(waiters, ch)
		delete(s.pending, reqID)
	}
	t := s.transport
	s.connected = false
	s.mu.Unlock()
	pendingRequests.Set(0)

	for _, ch := range waiters {
		select {
		case ch <- sendResult{err: ErrDisconnected}:
		default:
		}
	}

	if t == nil {
		return nil
	}
	return t.Disconnect()
}
