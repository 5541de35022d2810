package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strata",
		Short: "Strata - storage view and installer client launcher",
		Long: `Strata renders a machine's storage configuration the way an installer
UI presents it: disks with their partitions and free space, labels,
usage descriptions and boot capability.

It reads a DeviceGraph YAML document describing the devices and can
launch the installer client against a running server.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newViewCmd())
	cmd.AddCommand(newDescribeCmd())
	cmd.AddCommand(newClientCmd())
	return cmd
}
