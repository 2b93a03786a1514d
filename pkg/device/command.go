package device

import (
	"context"
	"fmt"

	"github.com/m0rjc/buttplug-go/pkg/message"
)

// sendCommand issues msg and interprets the one-shot Ok/Error response
// convention shared by every actuator and subscription command (§4.7):
// Ok returns nil, a server Error raises its typed ServerError, and any
// other response is an UnexpectedMessageError.
func sendCommand(ctx context.Context, sender Sender, msg message.Outgoing) error {
	resp, err := sender.Send(ctx, msg)
	if err != nil {
		return err
	}
	switch m := resp.(type) {
	case *message.Ok:
		return nil
	case *message.Error:
		return message.NewServerError(m.ErrorCode, m.ErrorMessage)
	default:
		return &UnexpectedMessageError{Expected: "Ok", Got: resp.WireName()}
	}
}

// validateUnit rejects a normalized command value outside [0,1].
func validateUnit(field string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("device: %s %v out of range [0,1]", field, v)
	}
	return nil
}
