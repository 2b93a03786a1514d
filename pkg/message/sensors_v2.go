package message

// BatteryLevelCmd requests a device's battery level. Defined in v2, removed
// in v3 (superseded by SensorReadCmd).
type BatteryLevelCmd struct {
	OutgoingBase
	DeviceIndex int `json:"device_index"`
}

func (BatteryLevelCmd) WireName() string { return "BatteryLevelCmd" }

// BatteryLevelReading answers a BatteryLevelCmd with a value in [0,1].
type BatteryLevelReading struct {
	IncomingBase
	DeviceIndex  int     `json:"device_index"`
	BatteryLevel float64 `json:"battery_level"`
}

func (BatteryLevelReading) WireName() string { return "BatteryLevelReading" }

// RSSILevelCmd requests a device's radio signal strength. Defined in v2,
// removed in v3 (superseded by SensorReadCmd).
type RSSILevelCmd struct {
	OutgoingBase
	DeviceIndex int `json:"device_index"`
}

func (RSSILevelCmd) WireName() string { return "RSSILevelCmd" }

// RSSILevelReading answers an RSSILevelCmd.
type RSSILevelReading struct {
	IncomingBase
	DeviceIndex int `json:"device_index"`
	RSSILevel   int `json:"rssi_level"`
}

func (RSSILevelReading) WireName() string { return "RSSILevelReading" }

// RawWriteCmd writes raw bytes to a device endpoint. Defined in v2,
// unchanged since. The core device model acknowledges these wire shapes
// (they decode/encode) but does not project a raw device part (§2 OUT OF
// SCOPE).
type RawWriteCmd struct {
	OutgoingBase
	DeviceIndex        int    `json:"device_index"`
	Endpoint           string `json:"endpoint"`
	Data               []int  `json:"data"`
	WriteWithResponse  bool   `json:"write_with_response,omitempty"`
}

func (RawWriteCmd) WireName() string { return "RawWriteCmd" }

// RawReadCmd reads raw bytes from a device endpoint.
type RawReadCmd struct {
	OutgoingBase
	DeviceIndex    int    `json:"device_index"`
	Endpoint       string `json:"endpoint"`
	ExpectedLength int    `json:"expected_length,omitempty"`
	WaitForData    bool   `json:"wait_for_data,omitempty"`
}

func (RawReadCmd) WireName() string { return "RawReadCmd" }

// RawReading answers a RawReadCmd or an active RawSubscribeCmd.
type RawReading struct {
	IncomingBase
	DeviceIndex int    `json:"device_index"`
	Endpoint    string `json:"endpoint"`
	Data        []int  `json:"data"`
}

func (RawReading) WireName() string { return "RawReading" }

// RawSubscribeCmd subscribes to unsolicited RawReading messages from an
// endpoint.
type RawSubscribeCmd struct {
	OutgoingBase
	DeviceIndex int    `json:"device_index"`
	Endpoint    string `json:"endpoint"`
}

func (RawSubscribeCmd) WireName() string { return "RawSubscribeCmd" }

// RawUnsubscribeCmd cancels a RawSubscribeCmd.
type RawUnsubscribeCmd struct {
	OutgoingBase
	DeviceIndex int    `json:"device_index"`
	Endpoint    string `json:"endpoint"`
}

func (RawUnsubscribeCmd) WireName() string { return "RawUnsubscribeCmd" }
