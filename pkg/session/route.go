package session

import (
	"log/slog"

	"github.com/m0rjc/buttplug-go/internal/catalog"
	"github.com/m0rjc/buttplug-go/pkg/device"
	"github.com/m0rjc/buttplug-go/pkg/message"
)

// handleFrame is installed as the transport's Receive callback. It decodes
// one wire frame against the negotiated version and routes every message
// it contains (§4.6).
func (s *Session) handleFrame(raw []byte) {
	incoming, err := catalog.Decode(raw, s.version)
	if err != nil {
		slog.Warn("session.frame.decode_error",
			"component", "session", "event", "frame.decode_error", "error", err,
		)
		return
	}
	for _, msg := range incoming {
		s.route(msg)
	}
}

// route delivers one decoded Incoming message: to its waiting pending
// request if its id is non-zero, otherwise dispatched by variant as a
// server-initiated event (§4.6).
func (s *Session) route(msg message.Incoming) {
	if msg.ID() != 0 {
		s.routeResponse(msg)
		return
	}

	switch m := msg.(type) {
	case *message.ScanningFinished:
		s.resolveScan()
	case *message.DeviceAddedV0:
		s.registerDevice(device.BuildV0(s, m.DeviceName, m.DeviceIndex, m.DeviceMessages))
	case *message.DeviceAddedV1:
		s.registerDevice(device.BuildV1(s, m.DeviceName, m.DeviceIndex, m.DeviceMessages))
	case *message.DeviceAddedV2:
		s.registerDevice(device.BuildV2(s, m.DeviceName, m.DeviceIndex, m.DeviceMessages))
	case *message.DeviceAddedV3:
		s.registerDevice(device.BuildV3(s, m.DeviceName, m.DeviceIndex, m.DeviceMessages, m.DeviceMessageTimingGap, m.DeviceDisplayName))
	case *message.DeviceRemoved:
		s.removeDevice(m.DeviceIndex)
	case *message.SensorReading:
		s.dispatchSensorReading(m)
	case *message.Error:
		// A server-initiated Error (id 0) should not occur; log and drop
		// it rather than surface it to any caller (§4.6, §7).
		slog.Warn("session.event.server_error",
			"component", "session", "event", "server_error",
			"code", m.ErrorCode.String(), "message", m.ErrorMessage,
		)
	default:
		slog.Warn("session.event.unhandled",
			"component", "session", "event", "message.unhandled", "name", msg.WireName(),
		)
	}
}

func (s *Session) routeResponse(msg message.Incoming) {
	s.mu.Lock()
	ch, ok := s.pending[msg.ID()]
	s.mu.Unlock()

	if !ok {
		slog.Warn("session.message.unexpected_id",
			"component", "session", "event", "message.unexpected_id", "id", msg.ID(),
		)
		return
	}

	select {
	case ch <- sendResult{msg: msg}:
	default:
		// The pending entry already received a result (or Disconnect
		// cleared it concurrently); routing is one-shot, so a second
		// delivery attempt is simply dropped.
	}
}

// applyDeviceList registers every device in a RequestDeviceList response,
// whichever version shape the catalog resolved it to.
func (s *Session) applyDeviceList(resp message.Incoming) error {
	switch list := resp.(type) {
	case *message.DeviceListV0:
		for _, d := range list.Devices {
			s.registerDevice(device.BuildV0(s, d.DeviceName, d.DeviceIndex, d.DeviceMessages))
		}
	case *message.DeviceListV1:
		for _, d := range list.Devices {
			s.registerDevice(device.BuildV1(s, d.DeviceName, d.DeviceIndex, d.DeviceMessages))
		}
	case *message.DeviceListV2:
		for _, d := range list.Devices {
			s.registerDevice(device.BuildV2(s, d.DeviceName, d.DeviceIndex, d.DeviceMessages))
		}
	case *message.DeviceListV3:
		for _, d := range list.Devices {
			s.registerDevice(device.BuildV3(s, d.DeviceName, d.DeviceIndex, d.DeviceMessages, d.DeviceMessageTimingGap, d.DeviceDisplayName))
		}
	case *message.Error:
		return message.NewServerError(list.ErrorCode, list.ErrorMessage)
	default:
		return &UnexpectedMessageError{Expected: "DeviceList", Got: resp.WireName()}
	}
	return nil
}

func (s *Session) registerDevice(d *device.Device) {
	s.mu.Lock()
	s.devices[d.Index] = d
	count := len(s.devices)
	s.mu.Unlock()

	connectedDevices.Set(float64(count))
	slog.Info("session.device.added",
		"component", "session", "event", "device.added",
		"device_index", d.Index, "name", d.Name,
	)
}

func (s *Session) removeDevice(index int) {
	s.mu.Lock()
	d, ok := s.devices[index]
	if ok {
		delete(s.devices, index)
	}
	count := len(s.devices)
	s.mu.Unlock()

	if !ok {
		slog.Warn("session.device.remove_unknown",
			"component", "session", "event", "device.remove_unknown", "device_index", index,
		)
		return
	}

	d.MarkRemoved()
	connectedDevices.Set(float64(count))
	slog.Info("session.device.removed",
		"component", "session", "event", "device.removed", "device_index", index,
	)
}

func (s *Session) dispatchSensorReading(m *message.SensorReading) {
	s.mu.Lock()
	d, ok := s.devices[m.DeviceIndex]
	s.mu.Unlock()

	if !ok {
		slog.Warn("session.sensor.unknown_device",
			"component", "session", "event", "sensor.unknown_device", "device_index", m.DeviceIndex,
		)
		return
	}

	slot := d.SensorByIndex(m.SensorIndex)
	if slot == nil {
		slog.Warn("session.sensor.unknown_index",
			"component", "session", "event", "sensor.unknown_index",
			"device_index", m.DeviceIndex, "sensor_index", m.SensorIndex,
		)
		return
	}

	sub, ok := slot.(*device.SubscribableSensor)
	if !ok {
		slog.Warn("session.sensor.not_subscribable",
			"component", "session", "event", "sensor.not_subscribable",
			"device_index", m.DeviceIndex, "sensor_index", m.SensorIndex,
		)
		return
	}
	sub.Deliver(m.Data)
}
