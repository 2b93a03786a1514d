package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/m0rjc/buttplug-go/pkg/message"
)

// startPingLoop spawns the keep-alive loop, sending Ping every interval
// until stopPingLoop cancels it. Cancellation is prompt and idempotent
// (§4.6, §5).
func (s *Session) startPingLoop(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.pingMu.Lock()
	s.pingCancel = cancel
	s.pingDone = done
	s.pingMu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sendPing(ctx, interval)
			}
		}
	}()
}

func (s *Session) sendPing(ctx context.Context, interval time.Duration) {
	sendCtx, cancel := context.WithTimeout(ctx, interval)
	defer cancel()

	if _, err := s.Send(sendCtx, &message.Ping{}); err != nil {
		slog.Warn("session.ping.failed",
			"component", "session", "event", "ping.error", "error", err,
		)
		return
	}
	pingsTotal.Inc()
}

// stopPingLoop cancels the ping loop and awaits its termination, a no-op if
// no loop is running.
func (s *Session) stopPingLoop() {
	s.pingMu.Lock()
	cancel := s.pingCancel
	done := s.pingDone
	s.pingCancel = nil
	s.pingDone = nil
	s.pingMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
