package message

// StartScanning asks the server to begin scanning for devices. Defined in
// v0, unchanged since.
type StartScanning struct{ OutgoingBase }

func (StartScanning) WireName() string { return "StartScanning" }

// StopScanning asks the server to stop an in-progress scan. Defined in v0,
// unchanged since.
type StopScanning struct{ OutgoingBase }

func (StopScanning) WireName() string { return "StopScanning" }

// ScanningFinished reports that a scan initiated by StartScanning has
// completed. Defined in v0, unchanged since.
type ScanningFinished struct{ IncomingBase }

func (ScanningFinished) WireName() string { return "ScanningFinished" }

// RequestDeviceList asks the server for the current device list. Defined in
// v0, unchanged since.
type RequestDeviceList struct{ OutgoingBase }

func (RequestDeviceList) WireName() string { return "RequestDeviceList" }

// DeviceRemoved announces that a previously known device has disconnected.
// Defined in v0, unchanged since.
type DeviceRemoved struct {
	IncomingBase
	DeviceIndex int `json:"device_index"`
}

func (DeviceRemoved) WireName() string { return "DeviceRemoved" }

// --- v0 device descriptors -------------------------------------------------

// DeviceDescriptorV0 names the capability set as a flat list of message
// names the device accepts.
type DeviceDescriptorV0 struct {
	DeviceName     string   `json:"device_name"`
	DeviceIndex    int      `json:"device_index"`
	DeviceMessages []string `json:"device_messages"`
}

type DeviceListV0 struct {
	IncomingBase
	Devices []DeviceDescriptorV0 `json:"devices"`
}

func (DeviceListV0) WireName() string { return "DeviceList" }

type DeviceAddedV0 struct {
	IncomingBase
	DeviceName     string   `json:"device_name"`
	DeviceIndex    int      `json:"device_index"`
	DeviceMessages []string `json:"device_messages"`
}

func (DeviceAddedV0) WireName() string { return "DeviceAdded" }

// --- v1 device descriptors -------------------------------------------------

// DeviceMessageAttributesV1 is the per-message capability payload
// introduced in v1: just an optional feature count.
type DeviceMessageAttributesV1 struct {
	FeatureCount *int `json:"feature_count,omitempty"`
}

type DeviceDescriptorV1 struct {
	DeviceName     string                               `json:"device_name"`
	DeviceIndex    int                                  `json:"device_index"`
	DeviceMessages map[string]DeviceMessageAttributesV1 `json:"device_messages"`
}

type DeviceListV1 struct {
	IncomingBase
	Devices []DeviceDescriptorV1 `json:"devices"`
}

func (DeviceListV1) WireName() string { return "DeviceList" }

type DeviceAddedV1 struct {
	IncomingBase
	DeviceName     string                               `json:"device_name"`
	DeviceIndex    int                                  `json:"device_index"`
	DeviceMessages map[string]DeviceMessageAttributesV1 `json:"device_messages"`
}

func (DeviceAddedV1) WireName() string { return "DeviceAdded" }

// --- v2 device descriptors -------------------------------------------------

// DeviceMessageAttributesV2 adds the per-step speed table to v1's shape.
type DeviceMessageAttributesV2 struct {
	FeatureCount *int  `json:"feature_count,omitempty"`
	StepCount    []int `json:"step_count,omitempty"`
}

type DeviceDescriptorV2 struct {
	DeviceName     string                               `json:"device_name"`
	DeviceIndex    int                                  `json:"device_index"`
	DeviceMessages map[string]DeviceMessageAttributesV2 `json:"device_messages"`
}

type DeviceListV2 struct {
	IncomingBase
	Devices []DeviceDescriptorV2 `json:"devices"`
}

func (DeviceListV2) WireName() string { return "DeviceList" }

type DeviceAddedV2 struct {
	IncomingBase
	DeviceName     string                               `json:"device_name"`
	DeviceIndex    int                                  `json:"device_index"`
	DeviceMessages map[string]DeviceMessageAttributesV2 `json:"device_messages"`
}

func (DeviceAddedV2) WireName() string { return "DeviceAdded" }

// --- v3 device descriptors -------------------------------------------------

// SensorRange is an inclusive (min, max) pair describing a sensor reading's
// possible range.
type SensorRange [2]int

// DeviceMessageAttributesV3 is one entry in the v3 attribute list for a
// given message name; the fields populated depend on which capability the
// entry describes (actuator, linear/rotatory, or sensor).
type DeviceMessageAttributesV3 struct {
	FeatureDescriptor *string       `json:"feature_descriptor,omitempty"`
	StepCount         *int          `json:"step_count,omitempty"`
	ActuatorType      *string       `json:"actuator_type,omitempty"`
	SensorType        *string       `json:"sensor_type,omitempty"`
	SensorRange       []SensorRange `json:"sensor_range,omitempty"`
	Endpoint          []string      `json:"endpoint,omitempty"`
}

type DeviceDescriptorV3 struct {
	DeviceName              string                                 `json:"device_name"`
	DeviceIndex             int                                    `json:"device_index"`
	DeviceMessages          map[string][]DeviceMessageAttributesV3 `json:"device_messages"`
	DeviceMessageTimingGap *int                                    `json:"device_message_timing_gap,omitempty"`
	DeviceDisplayName      *string                                 `json:"device_display_name,omitempty"`
}

type DeviceListV3 struct {
	IncomingBase
	Devices []DeviceDescriptorV3 `json:"devices"`
}

func (DeviceListV3) WireName() string { return "DeviceList" }

type DeviceAddedV3 struct {
	IncomingBase
	DeviceName              string                                 `json:"device_name"`
	DeviceIndex             int                                    `json:"device_index"`
	DeviceMessages          map[string][]DeviceMessageAttributesV3 `json:"device_messages"`
	DeviceMessageTimingGap *int                                    `json:"device_message_timing_gap,omitempty"`
	DeviceDisplayName      *string                                 `json:"device_display_name,omitempty"`
}

func (DeviceAddedV3) WireName() string { return "DeviceAdded" }
