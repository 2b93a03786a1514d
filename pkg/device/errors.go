package device

import (
	"errors"
	"fmt"
)

// ErrRemoved is returned by any operation attempted on a Device after it
// has received DeviceRemoved. The source does not enforce this internally;
// the core does (§3 invariants).
var ErrRemoved = errors.New("device: operation on a removed device")

// UnexpectedMessageError is returned when a command's response was neither
// Ok nor Error.
type UnexpectedMessageError struct {
	Expected string
	Got      string
}

func (e *UnexpectedMessageError) Error() string {
	return fmt.Sprintf("device: expected %s response, got %s", e.Expected, e.Got)
}

// UnsupportedCommandError is returned when a device's capability map never
// claimed the message the caller is trying to send, e.g. Stop on a v0
// device with no StopDeviceCmd entry.
type UnsupportedCommandError struct {
	DeviceIndex int
	Command     string
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("device: device %d does not support %s", e.DeviceIndex, e.Command)
}
