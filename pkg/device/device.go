package device

import (
	"context"
	"sync"
	"time"

	"github.com/m0rjc/buttplug-go/pkg/message"
)

// Actuator is implemented by every actuator variant a Device can hold. It
// exists only to let Device keep a uniform, orderable Actuators list;
// concrete command signatures differ per variant (§4.7), so callers type
// assert to the concrete type (or the v1+ VibrateActuator/ScalarActuator
// uniform Command method) to drive it.
type Actuator interface {
	LocalIndex() int
}

// SensorSlot is implemented by both GenericSensor and SubscribableSensor, so
// Device.Sensors can hold either without the caller needing to know which
// until it matters (§9 design notes: promotion is a state transition on the
// slot, not a subtype replacement).
type SensorSlot interface {
	DeviceIndex() int
	SensorIndex() int
	SensorType() string
	Read(ctx context.Context) ([]int, error)
}

// Device is the client-side projection of one server-advertised device,
// owned by the session's device registry and keyed by Index.
type Device struct {
	Name              string
	Index             int
	DisplayName       *string
	TimingGap         time.Duration
	Actuators         []Actuator
	LinearActuators   []*LinearActuator
	RotatoryActuators []*RotatoryActuator
	BatterySensor     *BatteryLevelSensor
	RSSISensor        *RSSILevelSensor
	Sensors           []SensorSlot

	rawSender     Sender
	stopSupported bool

	mu         sync.Mutex
	removed    bool
	lastSendAt time.Time
}

// newDevice allocates an empty Device; build.go's BuildV0-V3 populate it.
func newDevice(sender Sender, name string, index int) *Device {
	return &Device{Name: name, Index: index, rawSender: sender}
}

// sender returns the Sender every part of this Device should use: it gates
// each send on the device's minimum timing gap and refuses once removed.
func (d *Device) sender() Sender {
	return &gatedSender{d: d}
}

// Removed reports whether DeviceRemoved has been received for this device.
func (d *Device) Removed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.removed
}

// MarkRemoved flags the device as gone; subsequent operations fail with
// ErrRemoved. Called by the session's message handler on DeviceRemoved.
func (d *Device) MarkRemoved() {
	d.mu.Lock()
	d.removed = true
	d.mu.Unlock()
}

// SensorByIndex returns the sensor slot at local index idx, or nil if none
// is registered there. Used by the session to route an unsolicited
// SensorReading to its SubscribableSensor.
func (d *Device) SensorByIndex(idx int) SensorSlot {
	for _, s := range d.Sensors {
		if s.SensorIndex() == idx {
			return s
		}
	}
	return nil
}

// Stop halts all actuation on the device via StopDeviceCmd, if the device's
// capability map claimed it; otherwise an UnsupportedCommandError.
func (d *Device) Stop(ctx context.Context) error {
	if !d.stopSupported {
		return &UnsupportedCommandError{DeviceIndex: d.Index, Command: "StopDeviceCmd"}
	}
	return sendCommand(ctx, d.sender(), &message.StopDeviceCmd{DeviceIndex: d.Index})
}

// waitForGap blocks until at least TimingGap has elapsed since the last
// send to this device (v3 message_timing_gap_ms, §5). The send slot is
// reserved under the device mutex before waiting, so concurrent callers are
// spaced TimingGap apart from each other as well. A zero TimingGap is a
// no-op.
func (d *Device) waitForGap(ctx context.Context) {
	if d.TimingGap <= 0 {
		return
	}

	d.mu.Lock()
	slot := d.lastSendAt.Add(d.TimingGap)
	if now := time.Now(); slot.Before(now) {
		slot = now
	}
	d.lastSendAt = slot
	d.mu.Unlock()

	if wait := time.Until(slot); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
	}
}

// gatedSender wraps a Device's raw Sender so every part (actuator, sensor)
// built for it automatically honors the removed flag and the per-device
// timing gap without each command type repeating that logic.
type gatedSender struct {
	d *Device
}

func (g *gatedSender) Send(ctx context.Context, msg message.Outgoing) (message.Incoming, error) {
	if g.d.Removed() {
		return nil, ErrRemoved
	}
	g.d.waitForGap(ctx)
	return g.d.rawSender.Send(ctx, msg)
}
