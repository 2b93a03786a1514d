// Command buttplugctl is a minimal client for a Buttplug server: it connects,
// lists devices, can start a scan (-scan) and issue a single vibrate command
// (-vibrate), then
// waits for an interrupt to disconnect cleanly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m0rjc/buttplug-go/internal/config"
	"github.com/m0rjc/buttplug-go/internal/logging"
	"github.com/m0rjc/buttplug-go/pkg/device"
	"github.com/m0rjc/buttplug-go/pkg/protocolspec"
	"github.com/m0rjc/buttplug-go/pkg/session"
	"github.com/m0rjc/buttplug-go/pkg/transport"
)

func main() {
	logging.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	scan := flag.Bool("scan", false, "start scanning for devices and print what is found")
	vibrate := flag.Float64("vibrate", -1, "if >= 0, vibrate the first found actuator at this speed (0-1)")
	flag.Parse()

	version := protocolspec.ProtocolSpec(cfg.Connection.ProtocolMax)
	if !version.Valid() {
		log.Fatalf("unsupported BUTTPLUG_PROTOCOL_VERSION %d", cfg.Connection.ProtocolMax)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess := session.New(cfg.Connection.ClientName, version)
	ws := transport.NewWebSocketTransport()

	slog.Info("buttplugctl.connecting",
		"component", "buttplugctl", "event", "connect", "address", cfg.Connection.ServerAddress,
	)
	if err := sess.Connect(ctx, ws, cfg.Connection.ServerAddress); err != nil {
		log.Fatalf("connect failed: %v", err)
	}
	defer sess.Disconnect()

	printDevices(sess.Devices())

	if *scan {
		runScan(ctx, sess)
	}

	if *vibrate >= 0 {
		runVibrate(ctx, sess, *vibrate)
	}

	<-ctx.Done()
	slog.Info("buttplugctl.shutdown", "component", "buttplugctl", "event", "shutdown")
}

func printDevices(devices map[int]*device.Device) {
	if len(devices) == 0 {
		fmt.Println("no devices known yet")
		return
	}
	for idx, d := range devices {
		fmt.Printf("device %d: %s (actuators=%d sensors=%d)\n", idx, d.Name, len(d.Actuators), len(d.Sensors))
	}
}

func runScan(ctx context.Context, sess *session.Session) {
	scanCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ch, err := sess.StartScanning(scanCtx)
	if err != nil {
		slog.Warn("buttplugctl.scan.start_failed", "component", "buttplugctl", "event", "scan.start_failed", "error", err)
		return
	}

	select {
	case devices := <-ch:
		printDevices(devices)
	case <-scanCtx.Done():
		_ = sess.StopScanning(ctx)
		slog.Warn("buttplugctl.scan.timeout", "component", "buttplugctl", "event", "scan.timeout")
	}
}

func runVibrate(ctx context.Context, sess *session.Session, speed float64) {
	for _, d := range sess.Devices() {
		if len(d.Actuators) == 0 {
			continue
		}
		act, ok := d.Actuators[0].(interface {
			Command(context.Context, float64) error
		})
		if !ok {
			continue
		}
		if err := act.Command(ctx, speed); err != nil {
			slog.Warn("buttplugctl.vibrate.failed", "component", "buttplugctl", "event", "vibrate.failed", "device", d.Name, "error", err)
			continue
		}
		slog.Info("buttplugctl.vibrate.sent", "component", "buttplugctl", "event", "vibrate.sent", "device", d.Name, "speed", speed)
		return
	}
	fmt.Fprintln(os.Stderr, "no vibratable device found")
}
