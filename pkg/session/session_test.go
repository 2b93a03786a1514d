package session

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/m0rjc/buttplug-go/pkg/device"
	"github.com/m0rjc/buttplug-go/pkg/message"
	"github.com/m0rjc/buttplug-go/pkg/protocolspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport is an in-memory transport.Transport double: Send appends to
// Sent, and test code drives the session by calling Deliver to simulate a
// received frame.
type fakeTransport struct {
	mu        sync.Mutex
	connected bool
	Sent      [][]byte
	onFrame   func(frame []byte)
}

func (f *fakeTransport) Connect(_ context.Context, _ string) error {
	f.mu.Lock()
	f.connected = true
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) Send(_ context.Context, frame []byte) error {
	f.mu.Lock()
	f.Sent = append(f.Sent, append([]byte(nil), frame...))
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) Receive(cb func(frame []byte)) {
	f.mu.Lock()
	f.onFrame = cb
	f.mu.Unlock()
}

func (f *fakeTransport) Disconnect() error {
	f.mu.Lock()
	f.connected = false
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

// Deliver simulates the server sending frame to the client.
func (f *fakeTransport) Deliver(frame []byte) {
	f.mu.Lock()
	cb := f.onFrame
	f.mu.Unlock()
	if cb != nil {
		cb(frame)
	}
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Sent)
}

// lastSentID extracts the Id field of the single message in the most
// recently sent frame, to correlate a request with a canned response.
func lastSentID(t *testing.T, ft *fakeTransport) uint32 {
	t.Helper()
	ft.mu.Lock()
	raw := ft.Sent[len(ft.Sent)-1]
	ft.mu.Unlock()

	var decoded []map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, body := range decoded {
		for _, fields := range body {
			return uint32(fields["Id"].(float64))
		}
	}
	t.Fatal("no message found in last sent frame")
	return 0
}

func connectNoPing(t *testing.T) (*Session, *fakeTransport) {
	t.Helper()
	s := New("Test Client", protocolspec.V3)
	ft := &fakeTransport{}

	done := make(chan error, 1)
	go func() {
		done <- s.Connect(context.Background(), ft, "ws://127.0.0.1:0")
	}()

	// RequestServerInfo
	require.Eventually(t, func() bool { return ft.sentCount() >= 1 }, time.Second, time.Millisecond)
	id := lastSentID(t, ft)
	ft.Deliver([]byte(`[{"ServerInfo":{"Id":` + strconv.Itoa(int(id)) + `,"ServerName":"Intiface","MessageVersion":3,"MaxPingTime":0}}]`))

	// RequestDeviceList
	require.Eventually(t, func() bool { return ft.sentCount() >= 2 }, time.Second, time.Millisecond)
	id = lastSentID(t, ft)
	ft.Deliver([]byte(`[{"DeviceList":{"Id":` + strconv.Itoa(int(id)) + `,"Devices":[]}}]`))

	require.NoError(t, <-done)
	return s, ft
}

func TestConnectDrivesHandshakeAndDeviceList(t *testing.T) {
	s, _ := connectNoPing(t)
	assert.True(t, s.Connected())
	assert.Empty(t, s.Devices())
}

func TestSendCorrelatesResponseByID(t *testing.T) {
	s, ft := connectNoPing(t)

	type result struct{ err error }
	resCh := make(chan result, 1)
	go func() {
		_, err := s.Send(context.Background(), &message.Ping{})
		resCh <- result{err: err}
	}()

	require.Eventually(t, func() bool { return ft.sentCount() >= 3 }, time.Second, time.Millisecond)
	id := lastSentID(t, ft)
	ft.Deliver([]byte(`[{"Ok":{"Id":` + strconv.Itoa(int(id)) + `}}]`))

	res := <-resCh
	assert.NoError(t, res.err)
}

func TestSendInterleavingResumesEachCallerWithItsOwnResponse(t *testing.T) {
	s, ft := connectNoPing(t)

	const n = 5
	resCh := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := s.Send(context.Background(), &message.Ping{})
			resCh <- err
		}()
	}

	require.Eventually(t, func() bool { return ft.sentCount() >= 2+n }, time.Second, time.Millisecond)

	// Resolve every pending ping, in reverse order, to rule out
	// first-in-first-out coincidence masking a routing bug.
	s.mu.Lock()
	ids := make([]uint32, 0, len(s.pending))
	for reqID := range s.pending {
		ids = append(ids, reqID)
	}
	s.mu.Unlock()
	require.Len(t, ids, n)

	for i := len(ids) - 1; i >= 0; i-- {
		ft.Deliver([]byte(`[{"Ok":{"Id":` + strconv.Itoa(int(ids[i])) + `}}]`))
	}

	for i := 0; i < n; i++ {
		assert.NoError(t, <-resCh)
	}
}

func TestDisconnectResolvesPendingRequestsWithError(t *testing.T) {
	s, _ := connectNoPing(t)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), &message.Ping{})
		errCh <- err
	}()

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.pending) == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, s.Disconnect())
	assert.ErrorIs(t, <-errCh, ErrDisconnected)
}

func TestScanningStartIsIdempotentAndStopRequiresActiveScan(t *testing.T) {
	s, ft := connectNoPing(t)

	err := s.StopScanning(context.Background())
	require.Error(t, err)
	var notRunning *ScanNotRunningError
	assert.ErrorAs(t, err, &notRunning)

	type startResult struct {
		ch  <-chan map[int]*device.Device
		err error
	}
	start1 := make(chan startResult, 1)
	go func() {
		ch, err := s.StartScanning(context.Background())
		start1 <- startResult{ch: ch, err: err}
	}()

	before := ft.sentCount()
	require.Eventually(t, func() bool { return ft.sentCount() > before }, time.Second, time.Millisecond)
	startID := lastSentID(t, ft)
	ft.Deliver([]byte(`[{"Ok":{"Id":` + strconv.Itoa(int(startID)) + `}}]`))

	res1 := <-start1
	require.NoError(t, res1.err)
	sentAfterFirst := ft.sentCount()

	ch2, err := s.StartScanning(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sentAfterFirst, ft.sentCount(), "second StartScanning must not send again")

	stopErr := make(chan error, 1)
	go func() { stopErr <- s.StopScanning(context.Background()) }()
	require.Eventually(t, func() bool { return ft.sentCount() > sentAfterFirst }, time.Second, time.Millisecond)
	stopID := lastSentID(t, ft)
	ft.Deliver([]byte(`[{"Ok":{"Id":` + strconv.Itoa(int(stopID)) + `}}]`))
	require.NoError(t, <-stopErr)

	ft.Deliver([]byte(`[{"ScanningFinished":{"Id":0}}]`))

	snapshot1 := <-res1.ch
	snapshot2 := <-ch2
	assert.Equal(t, snapshot1, snapshot2)
}

func TestDeviceRemovedMarksDeviceAndClearsRegistry(t *testing.T) {
	s := New("Test Client", protocolspec.V3)
	ft := &fakeTransport{}
	ft.Receive(s.handleFrame)

	ft.Deliver([]byte(`[{"DeviceAdded":{"Id":0,"DeviceName":"Max","DeviceIndex":0,"DeviceMessages":{"ScalarCmd":[{"ActuatorType":"Vibrate"}]}}}]`))
	devices := s.Devices()
	require.Contains(t, devices, 0)
	d := devices[0]

	ft.Deliver([]byte(`[{"DeviceRemoved":{"Id":0,"DeviceIndex":0}}]`))
	assert.NotContains(t, s.Devices(), 0)
	assert.True(t, d.Removed())
}

func TestSensorReadingRoutesToSubscribedCallback(t *testing.T) {
	s, ft := connectNoPing(t)

	addFrame := `[{"DeviceAdded":{"Id":0,"DeviceName":"Lovense Edge","DeviceIndex":0,"DeviceMessages":{` +
		`"SensorReadCmd":[{"SensorType":"Pressure","FeatureDescriptor":"Pressure Sensor"}],` +
		`"SensorSubscribeCmd":[{"SensorType":"Pressure","FeatureDescriptor":"Pressure Sensor"}]}}}]`
	ft.Deliver([]byte(addFrame))

	devices := s.Devices()
	require.Contains(t, devices, 0)
	slot := devices[0].SensorByIndex(0)
	require.NotNil(t, slot)
	sub, ok := slot.(*device.SubscribableSensor)
	require.True(t, ok)

	var calls int
	var received []int
	subDone := make(chan error, 1)
	before := ft.sentCount()
	go func() {
		subDone <- sub.Subscribe(context.Background(), func(data []int) {
			calls++
			received = data
		})
	}()
	require.Eventually(t, func() bool { return ft.sentCount() > before }, time.Second, time.Millisecond)
	subID := lastSentID(t, ft)
	ft.Deliver([]byte(`[{"Ok":{"Id":` + strconv.Itoa(int(subID)) + `}}]`))
	require.NoError(t, <-subDone)

	readingFrame := `[{"SensorReading":{"Id":0,"DeviceIndex":0,"SensorIndex":0,"SensorType":"Pressure","Data":[591]}}]`
	ft.Deliver([]byte(readingFrame))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []int{591}, received)
}
