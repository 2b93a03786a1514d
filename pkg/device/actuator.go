package device

import (
	"context"

	"github.com/m0rjc/buttplug-go/pkg/message"
)

// VibrateActuator drives one vibration motor via VibrateCmd (v1/v2,
// superseded by ScalarActuator in v3).
type VibrateActuator struct {
	sender      Sender
	deviceIndex int
	index       int

	// StepCount is the number of discrete speed levels the hardware
	// supports, when the server advertised one (v2).
	StepCount *int
}

func (a *VibrateActuator) LocalIndex() int { return a.index }

// Command sets this motor's speed, in [0,1].
func (a *VibrateActuator) Command(ctx context.Context, speed float64) error {
	if err := validateUnit("speed", speed); err != nil {
		return err
	}
	msg := &message.VibrateCmd{
		DeviceIndex: a.deviceIndex,
		Speeds:      []message.Speed{{Index: a.index, Speed: speed}},
	}
	return sendCommand(ctx, a.sender, msg)
}

// ScalarActuator drives one generic actuator via ScalarCmd (v3), the
// unified replacement for VibrateCmd and the v0 device-specific commands.
type ScalarActuator struct {
	sender      Sender
	deviceIndex int
	index       int

	// ActuatorType is the server-asserted kind this scalar drives
	// (Vibrate, Rotate, Oscillate, Constrict, Inflate, Position), carried
	// on every ScalarCmd entry sent for this actuator.
	ActuatorType string
	StepCount    *int

	// FeatureDescriptor is the server's human-readable label for this
	// actuator, when advertised.
	FeatureDescriptor *string
}

func (a *ScalarActuator) LocalIndex() int { return a.index }

// Command sets this actuator's normalized value, in [0,1].
func (a *ScalarActuator) Command(ctx context.Context, scalar float64) error {
	if err := validateUnit("scalar", scalar); err != nil {
		return err
	}
	msg := &message.ScalarCmd{
		DeviceIndex: a.deviceIndex,
		Scalars:     []message.Scalar{{Index: a.index, Scalar: scalar, ActuatorType: a.ActuatorType}},
	}
	return sendCommand(ctx, a.sender, msg)
}

// LinearActuator drives one linear (stroker) actuator via LinearCmd.
// Defined in v1, unchanged since.
type LinearActuator struct {
	sender      Sender
	deviceIndex int
	index       int

	StepCount *int
}

func (a *LinearActuator) LocalIndex() int { return a.index }

// Command moves the actuator to position (0-1) over duration milliseconds.
func (a *LinearActuator) Command(ctx context.Context, durationMs int, position float64) error {
	if err := validateUnit("position", position); err != nil {
		return err
	}
	msg := &message.LinearCmd{
		DeviceIndex: a.deviceIndex,
		Vectors:     []message.Vector{{Index: a.index, Duration: durationMs, Position: position}},
	}
	return sendCommand(ctx, a.sender, msg)
}

// RotatoryActuator drives one rotating actuator via RotateCmd. Defined in
// v1, unchanged since.
type RotatoryActuator struct {
	sender      Sender
	deviceIndex int
	index       int

	StepCount *int
}

func (a *RotatoryActuator) LocalIndex() int { return a.index }

// Command sets the rotation speed (0-1) and direction.
func (a *RotatoryActuator) Command(ctx context.Context, speed float64, clockwise bool) error {
	if err := validateUnit("speed", speed); err != nil {
		return err
	}
	msg := &message.RotateCmd{
		DeviceIndex: a.deviceIndex,
		Rotations:   []message.Rotation{{Index: a.index, Speed: speed, Clockwise: clockwise}},
	}
	return sendCommand(ctx, a.sender, msg)
}
