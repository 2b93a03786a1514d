// Package device projects the server-advertised per-device capability map,
// at the negotiated protocol version, into a uniform set of actuator and
// sensor handles whose operations map down to the correct version-specific
// wire commands.
package device

import (
	"context"

	"github.com/m0rjc/buttplug-go/pkg/message"
)

// Sender is the capability a Device and its parts use to issue a command
// and await its correlated response. pkg/session.Session implements this.
type Sender interface {
	Send(ctx context.Context, msg message.Outgoing) (message.Incoming, error)
}
