package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var screenshotCommand = &cli.Command{
	Name:  "screenshot",
	Usage: "Capture the simulator screen as PNG",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: screenshot.png)",
			Value:   "screenshot.png",
		},
	},
	Action: runScreenshot,
}

func runScreenshot(c *cli.Context) error {
	cfg, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	dev, err := resolveDevice(c, cfg)
	if err != nil {
		return err
	}

	data, err := dev.Screenshot(c.Context)
	if err != nil {
		return err
	}

	path := c.String("output")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Saved screenshot: %s\n", path)
	return nil
}
