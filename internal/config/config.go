// Package config loads powerpod's YAML configuration file, applying
// environment variable overrides the way the teacher project's
// server config does.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is powerpod's top-level configuration.
type Config struct {
	Serial   SerialConfig   `yaml:"serial"`
	Device   DeviceConfig   `yaml:"device"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Rides    RidesConfig    `yaml:"rides"`
	LogLevel string         `yaml:"log_level"`

	path string
}

// SerialConfig names the physical link to the device.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// DeviceConfig identifies a simulated device.
type DeviceConfig struct {
	FirmwareVersion float64 `yaml:"firmware_version"`
	SerialNumber    string  `yaml:"serial_number"`
}

// MonitorConfig configures the live device-state websocket feed.
type MonitorConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// RidesConfig configures ride persistence.
type RidesConfig struct {
	Directory string `yaml:"directory"`
}

// DefaultConfig returns powerpod's out-of-the-box configuration.
func DefaultConfig() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "/dev/ttyUSB0",
			Baud: 115200,
		},
		Device: DeviceConfig{
			FirmwareVersion: 6.12,
			SerialNumber:    "0000000000000000",
		},
		Monitor: MonitorConfig{
			Enabled:    false,
			ListenAddr: ":8980",
		},
		Rides: RidesConfig{
			Directory: "./rides",
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file at path, falling back to defaults for
// anything unset, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.path = path
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets deployment environments override the config
// file without editing it, matching the teacher's POWERPOD_* naming.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("POWERPOD_SERIAL_PORT"); v != "" {
		c.Serial.Port = v
	}
	if v := os.Getenv("POWERPOD_SERIAL_BAUD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Serial.Baud = n
		}
	}
	if v := os.Getenv("POWERPOD_MONITOR_LISTEN_ADDR"); v != "" {
		c.Monitor.ListenAddr = v
	}
	if v := os.Getenv("POWERPOD_RIDES_DIR"); v != "" {
		c.Rides.Directory = v
	}
	if v := os.Getenv("POWERPOD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Save writes c back to the file it was loaded from (or to path, if
// given).
func (c *Config) Save(path string) error {
	if path == "" {
		path = c.path
	}
	if path == "" {
		return fmt.Errorf("config: no path to save to")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
