package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/bucko909/powerpod/internal/config"
)

const version = "0.1.0"

var (
	configPath string
	portFlag   string
	baudFlag   int
	logger     = log.New(os.Stderr, "", log.LstdFlags)
)

var rootCmd = &cobra.Command{
	Use:   "powerpod",
	Short: "Drive or simulate a PowerPod serial cycling power computer",
	Long: `powerpod talks to a PowerPod device's proprietary serial protocol.

It can act as a host (reading rides, profiles, and firmware version
from a real device) or simulate the device role for testing without
hardware.`,
	Version: version,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "serial port path (overrides config)")
	rootCmd.PersistentFlags().IntVar(&baudFlag, "baud", 0, "serial baud rate (overrides config)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(ridesCmd)
	rootCmd.AddCommand(timeCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(odometerCmd)
	rootCmd.AddCommand(eraseAllCmd)
}

// loadConfig reads the config file and applies --port/--baud flag
// overrides on top of its environment-aware defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if portFlag != "" {
		cfg.Serial.Port = portFlag
	}
	if baudFlag != 0 {
		cfg.Serial.Baud = baudFlag
	}
	return cfg, nil
}
