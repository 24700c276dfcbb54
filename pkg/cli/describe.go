package cli

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/simtap/pkg/ax"
)

var describeUICommand = &cli.Command{
	Name:  "describe-ui",
	Usage: "Print the accessibility tree of the target simulator",
	Description: `Fetch a fresh accessibility snapshot, decode it, and print the forest
as JSON.

Examples:
  simtap describe-ui
  simtap describe-ui --compact | jq '.[].AXLabel'`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "Single-line JSON output",
		},
	},
	Action: runDescribeUI,
}

func runDescribeUI(c *cli.Context) error {
	cfg, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	dev, err := resolveDevice(c, cfg)
	if err != nil {
		return err
	}

	raw, err := dev.AccessibilityTree(c.Context)
	if err != nil {
		return err
	}

	// Round-trip through the decoder so a malformed payload is reported
	// here, not on a later tap.
	forest, err := ax.DecodeForest(raw)
	if err != nil {
		return err
	}

	var out []byte
	if c.Bool("compact") {
		out, err = json.Marshal(forest)
	} else {
		out, err = json.MarshalIndent(forest, "", "  ")
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}
