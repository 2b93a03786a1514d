// Package config loads the buttplugctl command's configuration from
// environment variables using goconfig, the same way the teacher loads its
// server configuration.
package config

import (
	"context"
	"fmt"

	"github.com/m0rjc/goconfig"
)

// ConnectionConfig holds the parameters needed to dial a Buttplug server.
type ConnectionConfig struct {
	ServerAddress string `key:"BUTTPLUG_SERVER_ADDRESS" default:"ws://127.0.0.1:12345"`
	ClientName    string `key:"BUTTPLUG_CLIENT_NAME" default:"buttplugctl"`
	ProtocolMax   int    `key:"BUTTPLUG_PROTOCOL_VERSION" default:"3" min:"0" max:"3"`
}

// LoggingConfig controls the internal/logging handler.
type LoggingConfig struct {
	Level  string `key:"LOG_LEVEL" default:"info"`
	Format string `key:"LOG_FORMAT" default:"text"`
}

// Config is the complete buttplugctl configuration.
type Config struct {
	Connection ConnectionConfig
	Logging    LoggingConfig
}

// Load reads Config from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := goconfig.Load(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
