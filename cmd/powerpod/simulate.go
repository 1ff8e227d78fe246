package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bucko909/powerpod/internal/device"
	"github.com/bucko909/powerpod/internal/link"
	"github.com/bucko909/powerpod/internal/monitor"
)

var (
	simulateDemoRide   bool
	simulateRideLength int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the device role: answer a host's requests over the serial port",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&simulateDemoRide, "demo-ride", true, "seed a synthetic ride at startup")
	simulateCmd.Flags().IntVar(&simulateRideLength, "demo-ride-seconds", 1000, "length of the seeded demo ride, in records")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ch, err := connectSerialWithRetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer ch.Close()

	var serial [16]byte
	copy(serial[:], []byte(cfg.Device.SerialNumber))
	state := device.New(cfg.Device.FirmwareVersion, serial)
	if simulateDemoRide {
		state.Rides = append(state.Rides, device.SeedDemoRide(simulateRideLength))
	}

	protocol := link.New(ch, link.RoleDevice, logger)
	sim := device.NewSimulator(protocol, state, logger)

	if cfg.Monitor.Enabled {
		mon := monitor.New(state, time.Second, logger)
		srv := &http.Server{Addr: cfg.Monitor.ListenAddr, Handler: mon.Handler()}
		stopBroadcast := make(chan struct{})
		go mon.Run(stopBroadcast)
		go func() {
			logger.Printf("[powerpod] monitor listening on %s", cfg.Monitor.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Printf("[powerpod] monitor server: %v", err)
			}
		}()
		defer func() {
			close(stopBroadcast)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	logger.Printf("[powerpod] simulating device on %s", cfg.Serial.Port)
	if err := sim.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("simulate: %w", err)
	}
	return nil
}
