// Package catalog resolves wire message names to concrete Go types for a
// negotiated protocol version. It is the only place that knows which
// message shapes exist at which protocol revision.
package catalog

import (
	"fmt"

	"github.com/m0rjc/buttplug-go/pkg/message"
	"github.com/m0rjc/buttplug-go/pkg/protocolspec"
)

// factory builds a fresh, unpopulated Incoming instance ready to be passed
// to Frame.Unmarshal.
type factory func() message.Incoming

// registry maps each protocol version to the Incoming factories first
// introduced (or redefined) at that version. Resolution walks downward from
// the negotiated version to v0, returning the first match, which is how a
// message left unchanged since an earlier version is still found.
var registry = map[protocolspec.ProtocolSpec]map[string]factory{
	protocolspec.V0: {
		"Ok":               func() message.Incoming { return &message.Ok{} },
		"Error":            func() message.Incoming { return &message.Error{} },
		"ScanningFinished": func() message.Incoming { return &message.ScanningFinished{} },
		"DeviceRemoved":    func() message.Incoming { return &message.DeviceRemoved{} },
		"ServerInfo":       func() message.Incoming { return &message.ServerInfoV0{} },
		"DeviceList":       func() message.Incoming { return &message.DeviceListV0{} },
		"DeviceAdded":      func() message.Incoming { return &message.DeviceAddedV0{} },
	},
	protocolspec.V1: {
		"DeviceList":  func() message.Incoming { return &message.DeviceListV1{} },
		"DeviceAdded": func() message.Incoming { return &message.DeviceAddedV1{} },
	},
	protocolspec.V2: {
		"ServerInfo":          func() message.Incoming { return &message.ServerInfo{} },
		"DeviceList":          func() message.Incoming { return &message.DeviceListV2{} },
		"DeviceAdded":         func() message.Incoming { return &message.DeviceAddedV2{} },
		"BatteryLevelReading": func() message.Incoming { return &message.BatteryLevelReading{} },
		"RSSILevelReading":    func() message.Incoming { return &message.RSSILevelReading{} },
		"RawReading":          func() message.Incoming { return &message.RawReading{} },
	},
	protocolspec.V3: {
		"DeviceList":    func() message.Incoming { return &message.DeviceListV3{} },
		"DeviceAdded":   func() message.Incoming { return &message.DeviceAddedV3{} },
		"SensorReading": func() message.Incoming { return &message.SensorReading{} },
	},
}

// added lists the message names introduced at each version, relative to the
// version immediately before it.
var added = map[protocolspec.ProtocolSpec][]string{
	protocolspec.V0: {
		"Ok", "Error", "Ping",
		"RequestServerInfo", "ServerInfo",
		"StartScanning", "StopScanning", "ScanningFinished",
		"RequestDeviceList", "DeviceList", "DeviceAdded", "DeviceRemoved",
		"StopDeviceCmd", "StopAllDevices",
		"SingleMotorVibrateCmd", "KiirooCmd", "FleshlightLaunchFW12Cmd", "LovenseCmd", "VorzeA10CycloneCmd",
	},
	protocolspec.V1: {
		"VibrateCmd", "LinearCmd", "RotateCmd",
	},
	protocolspec.V2: {
		"BatteryLevelCmd", "BatteryLevelReading",
		"RSSILevelCmd", "RSSILevelReading",
		"RawWriteCmd", "RawReadCmd", "RawReading", "RawSubscribeCmd", "RawUnsubscribeCmd",
	},
	protocolspec.V3: {
		"ScalarCmd", "SensorReadCmd", "SensorReading", "SensorSubscribeCmd", "SensorUnsubscribeCmd",
	},
}

// removed lists the message names dropped at each version, relative to the
// version immediately before it.
var removed = map[protocolspec.ProtocolSpec][]string{
	protocolspec.V1: {
		"SingleMotorVibrateCmd", "KiirooCmd", "FleshlightLaunchFW12Cmd", "LovenseCmd", "VorzeA10CycloneCmd",
	},
	protocolspec.V3: {
		"VibrateCmd",
		"BatteryLevelCmd", "BatteryLevelReading",
		"RSSILevelCmd", "RSSILevelReading",
	},
}

var validNames = buildValidNames()

func buildValidNames() map[protocolspec.ProtocolSpec]map[string]struct{} {
	out := make(map[protocolspec.ProtocolSpec]map[string]struct{}, 4)
	current := map[string]struct{}{}
	for v := protocolspec.First; v <= protocolspec.Last; v++ {
		for _, name := range added[v] {
			current[name] = struct{}{}
		}
		for _, name := range removed[v] {
			delete(current, name)
		}
		snapshot := make(map[string]struct{}, len(current))
		for name := range current {
			snapshot[name] = struct{}{}
		}
		out[v] = snapshot
	}
	return out
}

// ValidAt reports whether name is a message defined at protocol version v,
// regardless of whether its shape changed since it was introduced.
func ValidAt(name string, v protocolspec.ProtocolSpec) bool {
	_, ok := validNames[v][name]
	return ok
}

// ErrUnsupported is returned by Resolve when name is not a message defined
// at the requested protocol version. A message removed in a later version
// (e.g. BatteryLevelReading at v3) is rejected even though an older shape for it
// still exists in the registry; without this gate such a message would be
// silently decoded using its stale pre-removal shape.
type ErrUnsupported struct {
	Name    string
	Version protocolspec.ProtocolSpec
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("catalog: %q is not a valid message at protocol %s", e.Name, e.Version)
}

// Resolve returns a fresh Incoming instance for name as shaped at protocol
// version v. It first checks name is valid at v, then walks downward from v
// to v0 looking for the factory registered for the version at which name's
// current shape was introduced.
func Resolve(name string, v protocolspec.ProtocolSpec) (message.Incoming, error) {
	if !ValidAt(name, v) {
		return nil, &ErrUnsupported{Name: name, Version: v}
	}
	for candidate := v; candidate >= protocolspec.First; candidate-- {
		if f, ok := registry[candidate][name]; ok {
			return f(), nil
		}
	}
	return nil, &ErrUnsupported{Name: name, Version: v}
}

// Decode parses a received frame array and resolves each frame to its
// concrete, populated Incoming value for protocol version v.
func Decode(data []byte, v protocolspec.ProtocolSpec) ([]message.Incoming, error) {
	frames, err := message.SplitFrames(data)
	if err != nil {
		return nil, err
	}

	out := make([]message.Incoming, 0, len(frames))
	for _, frame := range frames {
		msg, err := Resolve(frame.Name, v)
		if err != nil {
			return nil, err
		}
		if err := frame.Unmarshal(msg); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}
