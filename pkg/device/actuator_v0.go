package device

import (
	"context"

	"github.com/m0rjc/buttplug-go/pkg/message"
)

// SingleMotorVibrateActuator drives a v0 device's single vibration motor via
// SingleMotorVibrateCmd. There is exactly one per device, so LocalIndex is
// always 0.
type SingleMotorVibrateActuator struct {
	sender      Sender
	deviceIndex int
}

func (a *SingleMotorVibrateActuator) LocalIndex() int { return 0 }

// Command sets the motor speed, in [0,1].
func (a *SingleMotorVibrateActuator) Command(ctx context.Context, speed float64) error {
	if err := validateUnit("speed", speed); err != nil {
		return err
	}
	return sendCommand(ctx, a.sender, &message.SingleMotorVibrateCmd{DeviceIndex: a.deviceIndex, Speed: speed})
}

// KiirooActuator drives a v0 Kiiroo-protocol device via KiirooCmd.
type KiirooActuator struct {
	sender      Sender
	deviceIndex int
}

func (a *KiirooActuator) LocalIndex() int { return 0 }

// Command sends the device-specific Kiiroo command string.
func (a *KiirooActuator) Command(ctx context.Context, cmd string) error {
	return sendCommand(ctx, a.sender, &message.KiirooCmd{DeviceIndex: a.deviceIndex, Command: cmd})
}

// FleshlightLaunchFW12Actuator drives a v0 Fleshlight Launch (firmware 1.2)
// device via FleshlightLaunchFW12Cmd.
type FleshlightLaunchFW12Actuator struct {
	sender      Sender
	deviceIndex int
}

func (a *FleshlightLaunchFW12Actuator) LocalIndex() int { return 0 }

// Command moves to position at speed, both in the device's native 0-99
// range (the wire encodes them as plain ints, not normalized scalars).
func (a *FleshlightLaunchFW12Actuator) Command(ctx context.Context, position, speed int) error {
	return sendCommand(ctx, a.sender, &message.FleshlightLaunchFW12Cmd{
		DeviceIndex: a.deviceIndex,
		Position:    position,
		Speed:       speed,
	})
}

// LovenseActuator drives a v0 Lovense-protocol device via LovenseCmd.
type LovenseActuator struct {
	sender      Sender
	deviceIndex int
}

func (a *LovenseActuator) LocalIndex() int { return 0 }

// Command sends the device-specific Lovense command string.
func (a *LovenseActuator) Command(ctx context.Context, cmd string) error {
	return sendCommand(ctx, a.sender, &message.LovenseCmd{DeviceIndex: a.deviceIndex, Command: cmd})
}

// VorzeA10CycloneActuator drives a v0 Vorze A10 Cyclone via
// VorzeA10CycloneCmd.
type VorzeA10CycloneActuator struct {
	sender      Sender
	deviceIndex int
}

func (a *VorzeA10CycloneActuator) LocalIndex() int { return 0 }

// Command sets the rotation speed (device-native int range) and direction.
func (a *VorzeA10CycloneActuator) Command(ctx context.Context, speed int, clockwise bool) error {
	return sendCommand(ctx, a.sender, &message.VorzeA10CycloneCmd{
		DeviceIndex: a.deviceIndex,
		Speed:       speed,
		Clockwise:   clockwise,
	})
}
