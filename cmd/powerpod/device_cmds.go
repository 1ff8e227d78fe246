package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bucko909/powerpod/internal/hostdriver"
	"github.com/bucko909/powerpod/internal/newton"
)

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Set the device's wall-clock time",
}

var timeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the device's wall-clock time to the host's current time",
	RunE:  runTimeSet,
}

func init() {
	timeCmd.AddCommand(timeSetCmd)
}

func runTimeSet(cmd *cobra.Command, args []string) error {
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

	now := time.Now()
	t := newton.Time{
		Secs:        int8(now.Second()),
		Mins:        int8(now.Minute()),
		Hours:       int8(now.Hour()),
		Day:         int8(now.Day()),
		Month:       int8(now.Month()),
		MonthLength: int8(daysInMonth(now)),
		Year:        int16(now.Year()),
	}
	if err := hostdriver.SetTime(p, t); err != nil {
		return fmt.Errorf("time set: %w", err)
	}
	fmt.Printf("set device time to %s\n", t)
	return nil
}

func daysInMonth(t time.Time) int {
	firstOfNextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	return firstOfNextMonth.AddDate(0, 0, -1).Day()
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect the device's stored rider profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current profile number and its four stored profiles",
	RunE:  runProfileShow,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
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

	current, err := hostdriver.GetProfileNumber(p)
	if err != nil {
		return fmt.Errorf("profile show: %w", err)
	}
	resp, err := hostdriver.GetProfileData(p)
	if err != nil {
		return fmt.Errorf("profile show: %w", err)
	}
	fmt.Printf("current profile: %d\n", current)
	for i, prof := range resp.Profiles {
		marker := " "
		if int16(i) == current {
			marker = "*"
		}
		fmt.Printf("%s %d: rider %d lb, wheel %d mm, aero %.3f, fric %.3f\n",
			marker, i, prof.RiderMassLb, prof.WheelCircumferenceMm, prof.Aero, prof.Fric)
	}
	return nil
}

var odometerCmd = &cobra.Command{
	Use:   "odometer",
	Short: "Read or set the device's odometer",
}

var odometerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the device's total distance",
	RunE:  runOdometerShow,
}

var odometerSetKm float64

var odometerSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the device's total distance, in kilometres",
	RunE:  runOdometerSet,
}

func init() {
	odometerSetCmd.Flags().Float64Var(&odometerSetKm, "km", 0, "total distance in kilometres")
	odometerCmd.AddCommand(odometerShowCmd, odometerSetCmd)
}

func runOdometerShow(cmd *cobra.Command, args []string) error {
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

	resp, err := hostdriver.GetOdometer(p)
	if err != nil {
		return fmt.Errorf("odometer show: %w", err)
	}
	fmt.Printf("%.1f km\n", float64(resp.OdometerTenthsKm)/10.0)
	return nil
}

func runOdometerSet(cmd *cobra.Command, args []string) error {
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

	if err := hostdriver.SetOdometer(p, int32(odometerSetKm*10)); err != nil {
		return fmt.Errorf("odometer set: %w", err)
	}
	fmt.Printf("set odometer to %.1f km\n", odometerSetKm)
	return nil
}

var eraseAllCmd = &cobra.Command{
	Use:   "erase-all",
	Short: "Delete every ride stored on the device",
	RunE:  runEraseAll,
}

func runEraseAll(cmd *cobra.Command, args []string) error {
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

	if err := hostdriver.EraseAll(p); err != nil {
		return fmt.Errorf("erase-all: %w", err)
	}
	fmt.Println("erased all rides")
	return nil
}
