package message

// StopDeviceCmd stops all actuation on one device. Defined in v0, unchanged
// since.
type StopDeviceCmd struct {
	OutgoingBase
	DeviceIndex int `json:"device_index"`
}

func (StopDeviceCmd) WireName() string { return "StopDeviceCmd" }

// StopAllDevices stops all actuation on every known device. Defined in v0,
// unchanged since (fallback seed test #6).
type StopAllDevices struct{ OutgoingBase }

func (StopAllDevices) WireName() string { return "StopAllDevices" }

// --- v0-only device-specific actuator commands ------------------------------

// SingleMotorVibrateCmd is the v0 single-speed vibration command.
type SingleMotorVibrateCmd struct {
	OutgoingBase
	DeviceIndex int     `json:"device_index"`
	Speed       float64 `json:"speed"`
}

func (SingleMotorVibrateCmd) WireName() string { return "SingleMotorVibrateCmd" }

// KiirooCmd is the v0 Kiiroo-protocol command.
type KiirooCmd struct {
	OutgoingBase
	DeviceIndex int    `json:"device_index"`
	Command     string `json:"command"`
}

func (KiirooCmd) WireName() string { return "KiirooCmd" }

// FleshlightLaunchFW12Cmd is the v0 Fleshlight Launch firmware-1.2 command.
type FleshlightLaunchFW12Cmd struct {
	OutgoingBase
	DeviceIndex int `json:"device_index"`
	Position    int `json:"position"`
	Speed       int `json:"speed"`
}

func (FleshlightLaunchFW12Cmd) WireName() string { return "FleshlightLaunchFW12Cmd" }

// LovenseCmd is the v0 Lovense-protocol command.
type LovenseCmd struct {
	OutgoingBase
	DeviceIndex int    `json:"device_index"`
	Command     string `json:"command"`
}

func (LovenseCmd) WireName() string { return "LovenseCmd" }

// VorzeA10CycloneCmd is the v0 Vorze A10 Cyclone rotation command.
type VorzeA10CycloneCmd struct {
	OutgoingBase
	DeviceIndex int  `json:"device_index"`
	Speed       int  `json:"speed"`
	Clockwise   bool `json:"clockwise"`
}

func (VorzeA10CycloneCmd) WireName() string { return "VorzeA10CycloneCmd" }
