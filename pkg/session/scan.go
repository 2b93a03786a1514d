package session

import (
	"context"

	"github.com/m0rjc/buttplug-go/pkg/device"
	"github.com/m0rjc/buttplug-go/pkg/message"
)

// StartScanning asks the server to begin scanning for devices. If a scan is
// already pending, the existing handle is returned and no additional
// StartScanning is sent (§4.6 scan idempotence, §8). Concurrent callers
// racing to start the very first scan are collapsed onto one in-flight
// StartScanning send via singleflight; callers arriving after that send
// has completed but before ScanningFinished still observe the same handle
// through the scanActive/scanResult pair.
func (s *Session) StartScanning(ctx context.Context) (<-chan map[int]*device.Device, error) {
	v, err, _ := s.scanGroup.Do("scan", func() (interface{}, error) {
		s.scanMu.Lock()
		if s.scanActive {
			ch := s.scanResult
			s.scanMu.Unlock()
			return ch, nil
		}
		ch := make(chan map[int]*device.Device, 1)
		s.scanActive = true
		s.scanResult = ch
		s.scanMu.Unlock()

		if _, err := s.Send(ctx, &message.StartScanning{}); err != nil {
			s.scanMu.Lock()
			s.scanActive = false
			s.scanResult = nil
			s.scanMu.Unlock()
			return nil, err
		}
		return ch, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(chan map[int]*device.Device), nil
}

// StopScanning asks the server to stop an in-progress scan. It fails if no
// scan is active. Activity is checked before the request is sent so that a
// ScanningFinished arriving immediately after does not race a concurrent
// StartScanning for a new scan (§4.6).
func (s *Session) StopScanning(ctx context.Context) error {
	s.scanMu.Lock()
	active := s.scanActive
	s.scanMu.Unlock()

	if !active {
		return &ScanNotRunningError{}
	}

	_, err := s.Send(ctx, &message.StopScanning{})
	return err
}

// StopAll stops actuation on every known device.
func (s *Session) StopAll(ctx context.Context) error {
	_, err := s.Send(ctx, &message.StopAllDevices{})
	return err
}

// resolveScan fulfills the pending scan future (if any) with a snapshot of
// the current device registry and clears it, run when ScanningFinished
// arrives.
func (s *Session) resolveScan() {
	s.scanMu.Lock()
	ch := s.scanResult
	active := s.scanActive
	s.scanActive = false
	s.scanResult = nil
	s.scanMu.Unlock()

	if !active || ch == nil {
		return
	}

	select {
	case ch <- s.Devices():
	default:
	}
}
