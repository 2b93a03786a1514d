package device

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/m0rjc/buttplug-go/pkg/message"
)

// BatteryLevelSensor reads a device's battery level via BatteryLevelCmd.
// Defined in v2, superseded by SensorReadCmd in v3. By source convention it
// is always created at local sensor index 0.
type BatteryLevelSensor struct {
	sender      Sender
	deviceIndex int
	index       int
}

func (s *BatteryLevelSensor) DeviceIndex() int  { return s.deviceIndex }
func (s *BatteryLevelSensor) SensorIndex() int  { return s.index }
func (s *BatteryLevelSensor) SensorType() string { return "Battery" }

// Level reads the current battery level, in [0,1].
func (s *BatteryLevelSensor) Level(ctx context.Context) (float64, error) {
	resp, err := s.sender.Send(ctx, &message.BatteryLevelCmd{DeviceIndex: s.deviceIndex})
	if err != nil {
		return 0, err
	}
	reading, ok := resp.(*message.BatteryLevelReading)
	if !ok {
		if errResp, ok := resp.(*message.Error); ok {
			return 0, message.NewServerError(errResp.ErrorCode, errResp.ErrorMessage)
		}
		return 0, &UnexpectedMessageError{Expected: "BatteryLevelReading", Got: resp.WireName()}
	}
	// The reading's DeviceIndex is the device's index, not this sensor's
	// local index; the two happen to collide in numbering schemes where a
	// device has only ever had one battery sensor, but nothing guarantees
	// it. Treat a mismatch as a warning, not a failure (§9).
	if reading.DeviceIndex != s.deviceIndex {
		slog.Warn("device.sensor.index_mismatch",
			"component", "device",
			"event", "battery.index_mismatch",
			"device_index", s.deviceIndex,
			"reading_device_index", reading.DeviceIndex,
		)
	}
	return reading.BatteryLevel, nil
}

// Read implements SensorSlot, returning the battery level rounded to a
// single-element percentage reading for callers treating sensors
// uniformly.
func (s *BatteryLevelSensor) Read(ctx context.Context) ([]int, error) {
	level, err := s.Level(ctx)
	if err != nil {
		return nil, err
	}
	return []int{int(math.Round(level * 100))}, nil
}

// RSSILevelSensor reads a device's radio signal strength via RSSILevelCmd.
// Defined in v2, superseded by SensorReadCmd in v3. By source convention it
// is always created at local sensor index 1.
type RSSILevelSensor struct {
	sender      Sender
	deviceIndex int
	index       int
}

func (s *RSSILevelSensor) DeviceIndex() int  { return s.deviceIndex }
func (s *RSSILevelSensor) SensorIndex() int  { return s.index }
func (s *RSSILevelSensor) SensorType() string { return "RSSI" }

// Level reads the current RSSI value.
func (s *RSSILevelSensor) Level(ctx context.Context) (int, error) {
	resp, err := s.sender.Send(ctx, &message.RSSILevelCmd{DeviceIndex: s.deviceIndex})
	if err != nil {
		return 0, err
	}
	reading, ok := resp.(*message.RSSILevelReading)
	if !ok {
		if errResp, ok := resp.(*message.Error); ok {
			return 0, message.NewServerError(errResp.ErrorCode, errResp.ErrorMessage)
		}
		return 0, &UnexpectedMessageError{Expected: "RSSILevelReading", Got: resp.WireName()}
	}
	if reading.DeviceIndex != s.deviceIndex {
		slog.Warn("device.sensor.index_mismatch",
			"component", "device",
			"event", "rssi.index_mismatch",
			"device_index", s.deviceIndex,
			"reading_device_index", reading.DeviceIndex,
		)
	}
	return reading.RSSILevel, nil
}

// Read implements SensorSlot.
func (s *RSSILevelSensor) Read(ctx context.Context) ([]int, error) {
	level, err := s.Level(ctx)
	if err != nil {
		return nil, err
	}
	return []int{level}, nil
}

// GenericSensor reads an arbitrary v3 sensor via SensorReadCmd.
type GenericSensor struct {
	sender      Sender
	deviceIndex int
	index       int

	Type              string
	FeatureDescriptor *string
	Ranges            []message.SensorRange
}

func (s *GenericSensor) DeviceIndex() int   { return s.deviceIndex }
func (s *GenericSensor) SensorIndex() int   { return s.index }
func (s *GenericSensor) SensorType() string { return s.Type }

// Read issues a one-shot SensorReadCmd and returns the reported data.
// Mismatches between the request and the response's device/sensor/type are
// logged as warnings, but the data is returned regardless (§4.7).
func (s *GenericSensor) Read(ctx context.Context) ([]int, error) {
	resp, err := s.sender.Send(ctx, &message.SensorReadCmd{
		DeviceIndex: s.deviceIndex,
		SensorIndex: s.index,
		SensorType:  s.Type,
	})
	if err != nil {
		return nil, err
	}
	reading, ok := resp.(*message.SensorReading)
	if !ok {
		if errResp, ok := resp.(*message.Error); ok {
			return nil, message.NewServerError(errResp.ErrorCode, errResp.ErrorMessage)
		}
		return nil, &UnexpectedMessageError{Expected: "SensorReading", Got: resp.WireName()}
	}
	if reading.DeviceIndex != s.deviceIndex || reading.SensorIndex != s.index || reading.SensorType != s.Type {
		slog.Warn("device.sensor.read_mismatch",
			"component", "device",
			"event", "sensor.read_mismatch",
			"device_index", s.deviceIndex,
			"sensor_index", s.index,
			"sensor_type", s.Type,
			"reading_device_index", reading.DeviceIndex,
			"reading_sensor_index", reading.SensorIndex,
			"reading_sensor_type", reading.SensorType,
		)
	}
	return reading.Data, nil
}

// SubscribableSensor wraps a GenericSensor whose descriptor+type appeared
// under SensorSubscribeCmd in the device's capability map (§3 invariants).
// Promotion from GenericSensor to SubscribableSensor is a slot-level state
// transition (§9 design notes), done once by build.go at construction.
type SubscribableSensor struct {
	*GenericSensor

	mu       sync.Mutex
	callback func(data []int)
}

// Subscribe installs cb to receive every unsolicited SensorReading for this
// sensor and sends SensorSubscribeCmd to start the stream.
func (s *SubscribableSensor) Subscribe(ctx context.Context, cb func(data []int)) error {
	if err := sendCommand(ctx, s.sender, &message.SensorSubscribeCmd{
		DeviceIndex: s.deviceIndex,
		SensorIndex: s.index,
		SensorType:  s.Type,
	}); err != nil {
		return err
	}
	s.mu.Lock()
	s.callback = cb
	s.mu.Unlock()
	return nil
}

// Unsubscribe stops the stream started by Subscribe and clears the
// callback. It sends SensorUnsubscribeCmd, not a second SensorSubscribeCmd
// (the reference client's bug, not reproduced here, §9).
func (s *SubscribableSensor) Unsubscribe(ctx context.Context) error {
	if err := sendCommand(ctx, s.sender, &message.SensorUnsubscribeCmd{
		DeviceIndex: s.deviceIndex,
		SensorIndex: s.index,
		SensorType:  s.Type,
	}); err != nil {
		return err
	}
	s.mu.Lock()
	s.callback = nil
	s.mu.Unlock()
	return nil
}

// Deliver routes one unsolicited SensorReading's data to the installed
// callback, if any. Called by the session's message handler.
func (s *SubscribableSensor) Deliver(data []int) {
	s.mu.Lock()
	cb := s.callback
	s.mu.Unlock()

	if cb == nil {
		slog.Warn("device.sensor.unsolicited_without_callback",
			"component", "device",
			"event", "sensor.no_callback",
			"device_index", s.deviceIndex,
			"sensor_index", s.index,
		)
		return
	}
	cb(data)
}
