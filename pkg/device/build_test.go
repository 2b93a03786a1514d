package device

import (
	"context"
	"testing"
	"time"

	"github.com/m0rjc/buttplug-go/pkg/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender is a test double for Sender that records every message it was
// asked to send and returns a pre-programmed response.
type fakeSender struct {
	sent []message.Outgoing
	next message.Incoming
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg message.Outgoing) (message.Incoming, error) {
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return nil, f.err
	}
	return f.next, nil
}

func ptr[T any](v T) *T { return &v }

func TestBuildV0ClaimsStopAndSingleMotorVibrate(t *testing.T) {
	sender := &fakeSender{next: &message.Ok{}}
	d := BuildV0(sender, "Vibratissimo", 0, []string{"StopDeviceCmd", "SingleMotorVibrateCmd", "UnknownCmd"})

	require.True(t, d.stopSupported)
	require.Len(t, d.Actuators, 1)
	_, ok := d.Actuators[0].(*SingleMotorVibrateActuator)
	assert.True(t, ok)

	require.NoError(t, d.Stop(context.Background()))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "StopDeviceCmd", sender.sent[0].WireName())
}

func TestBuildV1ExpandsFeatureCountIntoVibrateActuators(t *testing.T) {
	sender := &fakeSender{}
	messages := map[string]message.DeviceMessageAttributesV1{
		"VibrateCmd": {FeatureCount: ptr(2)},
	}
	d := BuildV1(sender, "Hush", 1, messages)

	require.Len(t, d.Actuators, 2)
	va0, ok := d.Actuators[0].(*VibrateActuator)
	require.True(t, ok)
	assert.Equal(t, 0, va0.LocalIndex())
	va1, ok := d.Actuators[1].(*VibrateActuator)
	require.True(t, ok)
	assert.Equal(t, 1, va1.LocalIndex())
}

func TestBuildV2ClaimsBatteryAndRSSISensors(t *testing.T) {
	sender := &fakeSender{}
	messages := map[string]message.DeviceMessageAttributesV2{
		"BatteryLevelCmd": {},
		"RSSILevelCmd":    {},
	}
	d := BuildV2(sender, "Max", 2, messages)

	require.NotNil(t, d.BatterySensor)
	require.NotNil(t, d.RSSISensor)
	assert.Equal(t, 0, d.BatterySensor.SensorIndex())
	assert.Equal(t, 1, d.RSSISensor.SensorIndex())
}

func TestBuildV3PromotesMatchingSensorToSubscribable(t *testing.T) {
	sender := &fakeSender{}
	messages := map[string][]message.DeviceMessageAttributesV3{
		"SensorReadCmd": {
			{SensorType: ptr("Pressure")},
		},
		"SensorSubscribeCmd": {
			{SensorType: ptr("Pressure")},
		},
	}
	d := BuildV3(sender, "Lovense Edge", 3, messages, nil, nil)

	require.Len(t, d.Sensors, 1)
	sub, ok := d.Sensors[0].(*SubscribableSensor)
	require.True(t, ok, "expected sensor 0 to be promoted to SubscribableSensor")
	assert.Equal(t, "Pressure", sub.SensorType())
}

func TestBuildV3UnmatchedSubscribeDoesNotPanic(t *testing.T) {
	sender := &fakeSender{}
	messages := map[string][]message.DeviceMessageAttributesV3{
		"SensorSubscribeCmd": {
			{SensorType: ptr("Pressure")},
		},
	}
	assert.NotPanics(t, func() {
		BuildV3(sender, "Weird", 4, messages, nil, nil)
	})
}

func TestBuildV3AppliesTimingGap(t *testing.T) {
	sender := &fakeSender{next: &message.Ok{}}
	messages := map[string][]message.DeviceMessageAttributesV3{
		"ScalarCmd": {{ActuatorType: ptr("Vibrate")}},
	}
	d := BuildV3(sender, "Gapped", 5, messages, ptr(100), ptr("Display Name"))

	assert.Equal(t, "Display Name", *d.DisplayName)
	assert.Equal(t, 100*time.Millisecond, d.TimingGap)
	require.Len(t, d.Actuators, 1)

	scalar := d.Actuators[0].(*ScalarActuator)
	require.NoError(t, scalar.Command(context.Background(), 0.5))
	require.Len(t, sender.sent, 1)
	cmd := sender.sent[0].(*message.ScalarCmd)
	assert.Equal(t, "Vibrate", cmd.Scalars[0].ActuatorType)
}
