// Command powerpod drives or simulates a PowerPod serial cycling
// power computer: a host tool to read rides and configure a real
// device, and a device-role simulator for testing without hardware.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
