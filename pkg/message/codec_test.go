package message

import (
	"encoding/json"
	"testing"

	"github.com/m0rjc/buttplug-go/pkg/protocolspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBatchProducesPascalCaseFrame(t *testing.T) {
	v := protocolspec.V3
	req := &RequestServerInfo{ClientName: "test-client", MessageVersion: &v}
	req.SetID(7)

	raw, err := EncodeBatch(req)
	require.NoError(t, err)

	var decoded []map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)

	body, ok := decoded[0]["RequestServerInfo"]
	require.True(t, ok, "expected RequestServerInfo key, got %v", decoded[0])
	assert.Equal(t, "test-client", body["ClientName"])
	assert.EqualValues(t, 7, body["Id"])
	assert.EqualValues(t, 3, body["MessageVersion"])
}

func TestEncodeBatchConvertsNestedFieldKeys(t *testing.T) {
	cmd := &ScalarCmd{
		DeviceIndex: 2,
		Scalars: []Scalar{
			{Index: 0, Scalar: 0.5, ActuatorType: "Vibrate"},
		},
	}
	cmd.SetID(1)

	raw, err := EncodeBatch(cmd)
	require.NoError(t, err)

	var decoded []map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	scalars := decoded[0]["ScalarCmd"]["Scalars"].([]interface{})
	require.Len(t, scalars, 1)
	entry := scalars[0].(map[string]interface{})
	assert.EqualValues(t, 0, entry["Index"])
	assert.EqualValues(t, 0.5, entry["Scalar"])
	assert.Equal(t, "Vibrate", entry["ActuatorType"])
}

func TestSplitFramesRejectsMultiKeyFrame(t *testing.T) {
	_, err := SplitFrames([]byte(`[{"Ok":{"Id":1},"Error":{"Id":2}}]`))
	assert.Error(t, err)
}

func TestFrameUnmarshalConvertsPayloadKeysToSnakeCase(t *testing.T) {
	frames, err := SplitFrames([]byte(`[{"Ok":{"Id":42}}]`))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, "Ok", frames[0].Name)

	var ok Ok
	require.NoError(t, frames[0].Unmarshal(&ok))
	assert.Equal(t, uint32(42), ok.ID())
}
