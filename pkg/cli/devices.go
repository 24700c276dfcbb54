package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/simtap/pkg/device"
	"github.com/devicelab-dev/simtap/pkg/device/idb"
	"github.com/devicelab-dev/simtap/pkg/simulator"
)

// Indirection points for tests; production wiring goes through simulator
// and idb.
var (
	findBootedUDID = func() (string, error) {
		dev, err := simulator.FindBooted()
		if err != nil {
			return "", err
		}
		return dev.UDID, nil
	}
	newDevice = func(udid, idbPath string) device.Device {
		return idb.NewClient(udid, idbPath)
	}
)

var listDevicesCommand = &cli.Command{
	Name:  "list-devices",
	Usage: "List available iOS simulators",
	Description: `List all available iOS simulators known to simctl.

Examples:
  simtap list-devices
  simtap list-devices --booted`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "booted",
			Usage: "Only show booted simulators",
		},
	},
	Action: runListDevices,
}

var bootCommand = &cli.Command{
	Name:      "boot",
	Usage:     "Boot a simulator and wait for it to be ready",
	ArgsUsage: "<udid>",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "How long to wait for the boot to complete",
			Value: 60 * time.Second,
		},
	},
	Action: runBoot,
}

var shutdownCommand = &cli.Command{
	Name:      "shutdown",
	Usage:     "Shut down a simulator",
	ArgsUsage: "<udid>",
	Action:    runShutdown,
}

func runListDevices(c *cli.Context) error {
	_, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	devices, err := simulator.List()
	if err != nil {
		return err
	}

	bootedOnly := c.Bool("booted")
	w := tabwriter.NewWriter(c.App.Writer, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUDID\tOS\tSTATE")
	for _, dev := range devices {
		if bootedOnly && !dev.Booted() {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dev.Name, dev.UDID, dev.OSVersion, dev.State)
	}
	return w.Flush()
}

func runBoot(c *cli.Context) error {
	_, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	udid := c.Args().First()
	if udid == "" {
		return fmt.Errorf("usage: simtap boot <udid>")
	}

	if err := simulator.Boot(udid, c.Duration("timeout")); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Simulator booted: %s\n", udid)
	return nil
}

func runShutdown(c *cli.Context) error {
	_, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	udid := c.Args().First()
	if udid == "" {
		return fmt.Errorf("usage: simtap shutdown <udid>")
	}

	if err := simulator.Shutdown(udid); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Simulator shutdown: %s\n", udid)
	return nil
}
