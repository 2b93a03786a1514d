package catalog

import (
	"testing"

	"github.com/m0rjc/buttplug-go/pkg/message"
	"github.com/m0rjc/buttplug-go/pkg/protocolspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeV0OkAndError(t *testing.T) {
	msgs, err := Decode([]byte(`[{"Ok":{"Id":1}},{"Error":{"Id":2,"ErrorMessage":"boom","ErrorCode":3}}]`), protocolspec.V0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	ok, isOk := msgs[0].(*message.Ok)
	require.True(t, isOk)
	assert.Equal(t, uint32(1), ok.ID())

	srvErr, isErr := msgs[1].(*message.Error)
	require.True(t, isErr)
	assert.Equal(t, "boom", srvErr.ErrorMessage)
	assert.Equal(t, message.ErrorCode(3), srvErr.ErrorCode)
}

func TestDecodeServerInfoFallsBackByVersion(t *testing.T) {
	raw := []byte(`[{"ServerInfo":{"Id":1,"ServerName":"test","MessageVersion":1,"MaxPingTime":100}}]`)

	msgs, err := Decode(raw, protocolspec.V1)
	require.NoError(t, err)
	_, isV0Shape := msgs[0].(*message.ServerInfoV0)
	assert.True(t, isV0Shape, "v1 has no redefinition of ServerInfo, should fall back to the v0 shape")

	msgs, err = Decode(raw, protocolspec.V2)
	require.NoError(t, err)
	_, isSlimShape := msgs[0].(*message.ServerInfo)
	assert.True(t, isSlimShape, "v2 introduces the slim ServerInfo shape")
}

func TestResolveRejectsMessageRemovedInNewerVersion(t *testing.T) {
	// BatteryLevelReading existed from v2 but was removed in v3 in favor of
	// SensorReading. Even though its v2 factory still lives in the
	// registry, v3 must reject it rather than silently decode the stale
	// shape.
	_, err := Resolve("BatteryLevelReading", protocolspec.V3)
	require.Error(t, err)
	var unsupported *ErrUnsupported
	assert.ErrorAs(t, err, &unsupported)

	msg, err := Resolve("BatteryLevelReading", protocolspec.V2)
	require.NoError(t, err)
	assert.Equal(t, "BatteryLevelReading", msg.WireName())
}

func TestDecodeUnknownMessageNameIsRejected(t *testing.T) {
	_, err := Decode([]byte(`[{"NotARealMessage":{"Id":1}}]`), protocolspec.V3)
	assert.Error(t, err)
}

func TestValidAtReflectsAddRemoveDeltas(t *testing.T) {
	assert.True(t, ValidAt("SingleMotorVibrateCmd", protocolspec.V0))
	assert.False(t, ValidAt("SingleMotorVibrateCmd", protocolspec.V1))

	assert.True(t, ValidAt("ScalarCmd", protocolspec.V3))
	assert.False(t, ValidAt("ScalarCmd", protocolspec.V2))

	assert.True(t, ValidAt("RawWriteCmd", protocolspec.V2))
	assert.True(t, ValidAt("RawWriteCmd", protocolspec.V3), "raw endpoint messages survive into v3 unlike battery/RSSI")
}
