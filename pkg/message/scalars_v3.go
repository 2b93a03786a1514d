package message

// Scalar is one entry of a ScalarCmd, addressing a single actuator by its
// local index with a normalized 0-1 value and the actuator type it is
// asserted to drive (Vibrate, Rotate, Oscillate, Constrict, Inflate, Position).
type Scalar struct {
	Index        int     `json:"index"`
	Scalar       float64 `json:"scalar"`
	ActuatorType string  `json:"actuator_type"`
}

// ScalarCmd drives one or more generic actuators. Introduced in v3,
// superseding VibrateCmd and the v0 device-specific single-purpose commands.
type ScalarCmd struct {
	OutgoingBase
	DeviceIndex int      `json:"device_index"`
	Scalars     []Scalar `json:"scalars"`
}

func (ScalarCmd) WireName() string { return "ScalarCmd" }

// SensorReadCmd requests a one-shot sensor reading. Introduced in v3,
// superseding BatteryLevelCmd and RSSILevelCmd.
type SensorReadCmd struct {
	OutgoingBase
	DeviceIndex int    `json:"device_index"`
	SensorIndex int    `json:"sensor_index"`
	SensorType  string `json:"sensor_type"`
}

func (SensorReadCmd) WireName() string { return "SensorReadCmd" }

// SensorReading answers a SensorReadCmd, or arrives unsolicited for a
// device whose sensor is under an active SensorSubscribeCmd.
type SensorReading struct {
	IncomingBase
	DeviceIndex int    `json:"device_index"`
	SensorIndex int    `json:"sensor_index"`
	SensorType  string `json:"sensor_type"`
	Data        []int  `json:"data"`
}

func (SensorReading) WireName() string { return "SensorReading" }

// SensorSubscribeCmd subscribes to unsolicited SensorReading messages from a
// sensor. Introduced in v3.
type SensorSubscribeCmd struct {
	OutgoingBase
	DeviceIndex int    `json:"device_index"`
	SensorIndex int    `json:"sensor_index"`
	SensorType  string `json:"sensor_type"`
}

func (SensorSubscribeCmd) WireName() string { return "SensorSubscribeCmd" }

// SensorUnsubscribeCmd cancels a SensorSubscribeCmd.
//
// The reference client historically sent a second SensorSubscribeCmd here
// instead of the unsubscribe variant; that bug is not reproduced (§9).
type SensorUnsubscribeCmd struct {
	OutgoingBase
	DeviceIndex int    `json:"device_index"`
	SensorIndex int    `json:"sensor_index"`
	SensorType  string `json:"sensor_type"`
}

func (SensorUnsubscribeCmd) WireName() string { return "SensorUnsubscribeCmd" }
