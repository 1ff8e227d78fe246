package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bucko909/powerpod/internal/hostdriver"
	"github.com/bucko909/powerpod/internal/ridestore"
)

var ridesDir string

var ridesCmd = &cobra.Command{
	Use:   "rides",
	Short: "List or fetch rides, from the device or from local storage",
}

var ridesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rides known to the device",
	RunE:  runRidesList,
}

var ridesGetCmd = &cobra.Command{
	Use:   "get <index>",
	Short: "Fetch one ride from the device and store it locally",
	Args:  cobra.ExactArgs(1),
	RunE:  runRidesGet,
}

var ridesLocalListCmd = &cobra.Command{
	Use:   "local",
	Short: "List rides already saved to the local ride store",
	RunE:  runRidesLocalList,
}

func init() {
	ridesCmd.PersistentFlags().StringVar(&ridesDir, "dir", "", "ride storage directory (overrides config)")
	ridesCmd.AddCommand(ridesListCmd, ridesGetCmd, ridesLocalListCmd)
}

func runRidesList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	p, ch, err := dialHost(ctx, cfg)
	if err != nil {
		return err
	}
	defer ch.Close()

	headers, err := hostdriver.GetFileList(p)
	if err != nil {
		return fmt.Errorf("rides list: %w", err)
	}
	for i, h := range headers {
		fmt.Printf("%d\t%s\t%.2f km\n", i, h.StartTime, h.DistanceMetres/1000.0)
	}
	return nil
}

func runRidesGet(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("rides get: invalid index %q: %w", args[0], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ridesDir != "" {
		cfg.Rides.Directory = ridesDir
	}

	ctx := cmd.Context()
	p, ch, err := dialHost(ctx, cfg)
	if err != nil {
		return err
	}
	defer ch.Close()

	ride, err := hostdriver.GetFile(p, int16(index))
	if err != nil {
		return fmt.Errorf("rides get: %w", err)
	}

	store, err := ridestore.Open(cfg.Rides.Directory)
	if err != nil {
		return err
	}
	path, err := store.Save(ride, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("saved %s (%d records)\n", path, len(ride.Records))
	return nil
}

func runRidesLocalList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ridesDir != "" {
		cfg.Rides.Directory = ridesDir
	}
	store, err := ridestore.Open(cfg.Rides.Directory)
	if err != nil {
		return err
	}
	names, err := store.List()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
