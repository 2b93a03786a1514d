package device

import (
	"log/slog"
	"time"

	"github.com/m0rjc/buttplug-go/pkg/message"
)

// BuildV0 projects a v0 capability list — a flat set of supported message
// names — into a Device. Each claimed name pops it from the working set;
// whatever remains unclaimed is logged and accepted (§4.7).
func BuildV0(sender Sender, name string, index int, messages []string) *Device {
	d := newDevice(sender, name, index)
	set := make(map[string]bool, len(messages))
	for _, m := range messages {
		set[m] = true
	}
	claim := func(n string) bool {
		if set[n] {
			delete(set, n)
			return true
		}
		return false
	}

	if claim("StopDeviceCmd") {
		d.stopSupported = true
	}
	if claim("SingleMotorVibrateCmd") {
		d.Actuators = append(d.Actuators, &SingleMotorVibrateActuator{sender: d.sender(), deviceIndex: index})
	}
	if claim("KiirooCmd") {
		d.Actuators = append(d.Actuators, &KiirooActuator{sender: d.sender(), deviceIndex: index})
	}
	if claim("FleshlightLaunchFW12Cmd") {
		d.Actuators = append(d.Actuators, &FleshlightLaunchFW12Actuator{sender: d.sender(), deviceIndex: index})
	}
	if claim("LovenseCmd") {
		d.Actuators = append(d.Actuators, &LovenseActuator{sender: d.sender(), deviceIndex: index})
	}
	if claim("VorzeA10CycloneCmd") {
		d.Actuators = append(d.Actuators, &VorzeA10CycloneActuator{sender: d.sender(), deviceIndex: index})
	}
	logUnclaimed(index, set)
	return d
}

// BuildV1 projects a v1 capability map into a Device: VibrateCmd becomes one
// VibrateActuator per feature, LinearCmd/RotateCmd become Linear/Rotatory
// actuators.
func BuildV1(sender Sender, name string, index int, messages map[string]message.DeviceMessageAttributesV1) *Device {
	d := newDevice(sender, name, index)
	set := copyV1Map(messages)

	if attrs, ok := set["VibrateCmd"]; ok {
		delete(set, "VibrateCmd")
		for i := 0; i < featureCountV1(attrs); i++ {
			d.Actuators = append(d.Actuators, &VibrateActuator{sender: d.sender(), deviceIndex: index, index: i})
		}
	}
	if attrs, ok := set["LinearCmd"]; ok {
		delete(set, "LinearCmd")
		for i := 0; i < featureCountV1(attrs); i++ {
			d.LinearActuators = append(d.LinearActuators, &LinearActuator{sender: d.sender(), deviceIndex: index, index: i})
		}
	}
	if attrs, ok := set["RotateCmd"]; ok {
		delete(set, "RotateCmd")
		for i := 0; i < featureCountV1(attrs); i++ {
			d.RotatoryActuators = append(d.RotatoryActuators, &RotatoryActuator{sender: d.sender(), deviceIndex: index, index: i})
		}
	}
	logUnclaimedV1(index, set)
	return d
}

// BuildV2 projects a v2 capability map into a Device: as BuildV1, plus
// per-actuator step counts and the BatteryLevel/RSSILevel sensors.
func BuildV2(sender Sender, name string, index int, messages map[string]message.DeviceMessageAttributesV2) *Device {
	d := newDevice(sender, name, index)
	set := copyV2Map(messages)

	if attrs, ok := set["VibrateCmd"]; ok {
		delete(set, "VibrateCmd")
		for i := 0; i < featureCountV2(attrs); i++ {
			d.Actuators = append(d.Actuators, &VibrateActuator{
				sender: d.sender(), deviceIndex: index, index: i,
				StepCount: stepCountAt(attrs.StepCount, i),
			})
		}
	}
	if attrs, ok := set["LinearCmd"]; ok {
		delete(set, "LinearCmd")
		for i := 0; i < featureCountV2(attrs); i++ {
			d.LinearActuators = append(d.LinearActuators, &LinearActuator{
				sender: d.sender(), deviceIndex: index, index: i,
				StepCount: stepCountAt(attrs.StepCount, i),
			})
		}
	}
	if attrs, ok := set["RotateCmd"]; ok {
		delete(set, "RotateCmd")
		for i := 0; i < featureCountV2(attrs); i++ {
			d.RotatoryActuators = append(d.RotatoryActuators, &RotatoryActuator{
				sender: d.sender(), deviceIndex: index, index: i,
				StepCount: stepCountAt(attrs.StepCount, i),
			})
		}
	}
	if _, ok := set["BatteryLevelCmd"]; ok {
		delete(set, "BatteryLevelCmd")
		d.BatterySensor = &BatteryLevelSensor{sender: d.sender(), deviceIndex: index, index: 0}
	}
	if _, ok := set["RSSILevelCmd"]; ok {
		delete(set, "RSSILevelCmd")
		d.RSSISensor = &RSSILevelSensor{sender: d.sender(), deviceIndex: index, index: 1}
	}
	logUnclaimedV2(index, set)
	return d
}

// BuildV3 projects a v3 capability map (name -> list of per-feature
// attributes) into a Device: ScalarCmd becomes one ScalarActuator per
// entry, SensorReadCmd becomes GenericSensors, and SensorSubscribeCmd
// entries promote the matching GenericSensor in place to a
// SubscribableSensor (§4.7, §9).
func BuildV3(
	sender Sender,
	name string,
	index int,
	messages map[string][]message.DeviceMessageAttributesV3,
	timingGapMs *int,
	displayName *string,
) *Device {
	d := newDevice(sender, name, index)
	d.DisplayName = displayName
	if timingGapMs != nil {
		d.TimingGap = time.Duration(*timingGapMs) * time.Millisecond
	}
	set := copyV3Map(messages)

	if attrs, ok := set["ScalarCmd"]; ok {
		delete(set, "ScalarCmd")
		for i, a := range attrs {
			actuatorType := ""
			if a.ActuatorType != nil {
				actuatorType = *a.ActuatorType
			}
			d.Actuators = append(d.Actuators, &ScalarActuator{
				sender: d.sender(), deviceIndex: index, index: i,
				ActuatorType:      actuatorType,
				StepCount:         a.StepCount,
				FeatureDescriptor: a.FeatureDescriptor,
			})
		}
	}
	if attrs, ok := set["LinearCmd"]; ok {
		delete(set, "LinearCmd")
		for i, a := range attrs {
			d.LinearActuators = append(d.LinearActuators, &LinearActuator{
				sender: d.sender(), deviceIndex: index, index: i, StepCount: a.StepCount,
			})
		}
	}
	if attrs, ok := set["RotateCmd"]; ok {
		delete(set, "RotateCmd")
		for i, a := range attrs {
			d.RotatoryActuators = append(d.RotatoryActuators, &RotatoryActuator{
				sender: d.sender(), deviceIndex: index, index: i, StepCount: a.StepCount,
			})
		}
	}
	if attrs, ok := set["SensorReadCmd"]; ok {
		delete(set, "SensorReadCmd")
		for i, a := range attrs {
			sensorType := ""
			if a.SensorType != nil {
				sensorType = *a.SensorType
			}
			d.Sensors = append(d.Sensors, &GenericSensor{
				sender: d.sender(), deviceIndex: index, index: i,
				Type:              sensorType,
				FeatureDescriptor: a.FeatureDescriptor,
				Ranges:            a.SensorRange,
			})
		}
	}
	if attrs, ok := set["SensorSubscribeCmd"]; ok {
		delete(set, "SensorSubscribeCmd")
		promoteSubscribable(d, index, attrs)
	}

	logUnclaimedV3(index, set)
	return d
}

// promoteSubscribable replaces, in place, each GenericSensor slot matched by
// a SensorSubscribeCmd attribute entry with a SubscribableSensor wrapping
// it. An entry matching no existing sensor is a logged error (§4.7).
func promoteSubscribable(d *Device, index int, attrs []message.DeviceMessageAttributesV3) {
	for _, a := range attrs {
		matched := false
		for i, slot := range d.Sensors {
			gs, ok := slot.(*GenericSensor)
			if !ok {
				continue
			}
			if !sensorMatches(gs, a) {
				continue
			}
			d.Sensors[i] = &SubscribableSensor{GenericSensor: gs}
			matched = true
			break
		}
		if !matched {
			sensorType := ""
			if a.SensorType != nil {
				sensorType = *a.SensorType
			}
			slog.Error("device.capability.unmatched_subscribe",
				"component", "device",
				"event", "build.unmatched_subscribe",
				"device_index", index,
				"sensor_type", sensorType,
			)
		}
	}
}

func sensorMatches(gs *GenericSensor, a message.DeviceMessageAttributesV3) bool {
	if a.SensorType == nil || gs.Type != *a.SensorType {
		return false
	}
	if a.FeatureDescriptor != nil && gs.FeatureDescriptor != nil && *a.FeatureDescriptor != *gs.FeatureDescriptor {
		return false
	}
	return true
}

func featureCountV1(a message.DeviceMessageAttributesV1) int {
	if a.FeatureCount != nil {
		return *a.FeatureCount
	}
	return 1
}

func featureCountV2(a message.DeviceMessageAttributesV2) int {
	if a.FeatureCount != nil {
		return *a.FeatureCount
	}
	return 1
}

func stepCountAt(steps []int, i int) *int {
	if i < 0 || i >= len(steps) {
		return nil
	}
	v := steps[i]
	return &v
}

func copyV1Map(m map[string]message.DeviceMessageAttributesV1) map[string]message.DeviceMessageAttributesV1 {
	out := make(map[string]message.DeviceMessageAttributesV1, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyV2Map(m map[string]message.DeviceMessageAttributesV2) map[string]message.DeviceMessageAttributesV2 {
	out := make(map[string]message.DeviceMessageAttributesV2, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyV3Map(m map[string][]message.DeviceMessageAttributesV3) map[string][]message.DeviceMessageAttributesV3 {
	out := make(map[string][]message.DeviceMessageAttributesV3, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func logUnclaimed(index int, set map[string]bool) {
	for name := range set {
		slog.Warn("device.capability.unclaimed",
			"component", "device", "event", "build.unclaimed",
			"device_index", index, "message", name,
		)
	}
}

func logUnclaimedV1(index int, set map[string]message.DeviceMessageAttributesV1) {
	for name := range set {
		slog.Warn("device.capability.unclaimed",
			"component", "device", "event", "build.unclaimed",
			"device_index", index, "message", name,
		)
	}
}

func logUnclaimedV2(index int, set map[string]message.DeviceMessageAttributesV2) {
	for name := range set {
		slog.Warn("device.capability.unclaimed",
			"component", "device", "event", "build.unclaimed",
			"device_index", index, "message", name,
		)
	}
}

func logUnclaimedV3(index int, set map[string][]message.DeviceMessageAttributesV3) {
	for name := range set {
		slog.Warn("device.capability.unclaimed",
			"component", "device", "event", "build.unclaimed",
			"device_index", index, "message", name,
		)
	}
}
