package device

import (
	"context"
	"testing"
	"time"

	"github.com/m0rjc/buttplug-go/pkg/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatedSenderRejectsAfterRemoval(t *testing.T) {
	sender := &fakeSender{next: &message.Ok{}}
	d := newDevice(sender, "Test", 0)
	d.stopSupported = true

	d.MarkRemoved()

	err := d.Stop(context.Background())
	assert.ErrorIs(t, err, ErrRemoved)
	assert.Empty(t, sender.sent)
}

func TestGatedSenderEnforcesTimingGap(t *testing.T) {
	sender := &fakeSender{next: &message.Ok{}}
	d := newDevice(sender, "Test", 0)
	d.TimingGap = 30 * time.Millisecond
	d.stopSupported = true

	start := time.Now()
	require.NoError(t, d.Stop(context.Background()))
	require.NoError(t, d.Stop(context.Background()))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
	assert.Len(t, sender.sent, 2)
}

func TestSensorByIndexFindsRegisteredSlot(t *testing.T) {
	gs := &GenericSensor{sender: &fakeSender{}, deviceIndex: 0, index: 3, Type: "Pressure"}
	d := newDevice(&fakeSender{}, "Test", 0)
	d.Sensors = []SensorSlot{gs}

	assert.Equal(t, gs, d.SensorByIndex(3))
	assert.Nil(t, d.SensorByIndex(99))
}
