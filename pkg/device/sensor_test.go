package device

import (
	"context"
	"testing"

	"github.com/m0rjc/buttplug-go/pkg/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribableSensorDeliverInvokesCallbackExactlyOnce(t *testing.T) {
	gs := &GenericSensor{sender: &fakeSender{}, deviceIndex: 0, index: 0, Type: "Pressure"}
	sub := &SubscribableSensor{GenericSensor: gs}

	var calls int
	var received []int
	sub.callback = func(data []int) {
		calls++
		received = data
	}

	sub.Deliver([]int{591})

	assert.Equal(t, 1, calls)
	assert.Equal(t, []int{591}, received)
}

func TestSubscribableSensorUnsubscribeSendsUnsubscribeCmd(t *testing.T) {
	sender := &fakeSender{next: &message.Ok{}}
	gs := &GenericSensor{sender: sender, deviceIndex: 0, index: 0, Type: "Pressure"}
	sub := &SubscribableSensor{GenericSensor: gs}
	sub.callback = func([]int) {}

	require.NoError(t, sub.Unsubscribe(context.Background()))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "SensorUnsubscribeCmd", sender.sent[0].WireName())
	assert.Nil(t, sub.callback)
}

func TestGenericSensorReadReturnsDataEvenOnMetadataMismatch(t *testing.T) {
	sender := &fakeSender{next: &message.SensorReading{
		DeviceIndex: 99,
		SensorIndex: 7,
		SensorType:  "Temperature",
		Data:        []int{42},
	}}
	gs := &GenericSensor{sender: sender, deviceIndex: 0, index: 0, Type: "Pressure"}

	data, err := gs.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{42}, data)
}

func TestBatteryLevelSensorReadScalesToPercentage(t *testing.T) {
	sender := &fakeSender{next: &message.BatteryLevelReading{DeviceIndex: 0, BatteryLevel: 0.75}}
	s := &BatteryLevelSensor{sender: sender, deviceIndex: 0, index: 0}

	data, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{75}, data)
}

func TestActuatorCommandRejectsOutOfRangeScalar(t *testing.T) {
	a := &ScalarActuator{sender: &fakeSender{}, deviceIndex: 0, index: 0, ActuatorType: "Vibrate"}
	err := a.Command(context.Background(), 1.5)
	assert.Error(t, err)
}

func TestActuatorCommandSurfacesServerError(t *testing.T) {
	sender := &fakeSender{next: &message.Error{ErrorMessage: "device in use", ErrorCode: message.ErrorDevice}}
	a := &VibrateActuator{sender: sender, deviceIndex: 0, index: 0}

	err := a.Command(context.Background(), 0.5)
	require.Error(t, err)
	var serverErr *message.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, message.ErrorDevice, serverErr.Code)
}
