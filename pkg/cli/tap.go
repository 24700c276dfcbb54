package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/simtap/pkg/ax"
	"github.com/devicelab-dev/simtap/pkg/config"
	"github.com/devicelab-dev/simtap/pkg/device"
	"github.com/devicelab-dev/simtap/pkg/gesture"
	"github.com/devicelab-dev/simtap/pkg/logger"
)

var tapCommand = &cli.Command{
	Name:  "tap",
	Usage: "Tap a UI element or an explicit coordinate",
	Description: `Tap a point on the simulator screen. The target is either an explicit
coordinate pair or exactly one of --id / --label, which is resolved
against a fresh accessibility snapshot. Matching is exact and
case-sensitive; an ambiguous match is an error, not a guess.

Examples:
  simtap tap --label "Sign In"
  simtap tap --id login-button
  simtap tap -x 100 -y 200 --post-delay 0.5`,
	Flags: []cli.Flag{
		&cli.Float64Flag{
			Name:  "x",
			Usage: "X coordinate in points (requires --y)",
		},
		&cli.Float64Flag{
			Name:  "y",
			Usage: "Y coordinate in points (requires --x)",
		},
		&cli.StringFlag{
			Name:  "id",
			Usage: "Accessibility identifier of the element to tap",
		},
		&cli.StringFlag{
			Name:  "label",
			Usage: "Accessibility label of the element to tap",
		},
		&cli.Float64Flag{
			Name:  "pre-delay",
			Usage: "Seconds to wait before the tap (0-10)",
		},
		&cli.Float64Flag{
			Name:  "post-delay",
			Usage: "Seconds to wait after the tap (0-10)",
		},
	},
	Action: runTap,
}

// target is the validated tap target: exactly one of an explicit point or
// an element query. Constructed once at the boundary so no invalid
// combination ever reaches the matcher.
type target struct {
	point *gesture.Point
	query *ax.Query
}

// parseTarget validates the mutually exclusive target flags.
func parseTarget(c *cli.Context) (target, error) {
	hasX, hasY := c.IsSet("x"), c.IsSet("y")
	hasCoords := hasX || hasY
	id, label := c.String("id"), c.String("label")

	modes := 0
	if hasCoords {
		modes++
	}
	if c.IsSet("id") {
		modes++
	}
	if c.IsSet("label") {
		modes++
	}
	if modes == 0 {
		return target{}, fmt.Errorf("specify a target: -x/-y, --id, or --label")
	}
	if modes > 1 {
		return target{}, fmt.Errorf("-x/-y, --id, and --label are mutually exclusive")
	}

	switch {
	case hasCoords:
		if !hasX || !hasY {
			return target{}, fmt.Errorf("both -x and -y are required for a coordinate tap")
		}
		x, y := c.Float64("x"), c.Float64("y")
		if x < 0 || y < 0 {
			return target{}, fmt.Errorf("coordinates must be non-negative, got (%g, %g)", x, y)
		}
		p := gesture.At(x, y)
		return target{point: &p}, nil
	case c.IsSet("id"):
		if strings.TrimSpace(id) == "" {
			return target{}, fmt.Errorf("--id must not be blank")
		}
		return target{query: &ax.Query{Kind: ax.ByIdentifier, Value: id}}, nil
	default:
		if strings.TrimSpace(label) == "" {
			return target{}, fmt.Errorf("--label must not be blank")
		}
		return target{query: &ax.Query{Kind: ax.ByLabel, Value: label}}, nil
	}
}

// parseDelay validates one delay flag against the config default.
func parseDelay(c *cli.Context, name string, fallback *float64) (*float64, error) {
	if !c.IsSet(name) {
		if fallback != nil && (*fallback < 0 || *fallback > 10) {
			return nil, fmt.Errorf("configured %s must be between 0 and 10 seconds, got %g", name, *fallback)
		}
		return fallback, nil
	}
	v := c.Float64(name)
	if v < 0 || v > 10 {
		return nil, fmt.Errorf("--%s must be between 0 and 10 seconds, got %g", name, v)
	}
	return &v, nil
}

func runTap(c *cli.Context) error {
	cfg, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	tgt, err := parseTarget(c)
	if err != nil {
		return err
	}
	preDelay, err := parseDelay(c, "pre-delay", cfg.PreDelay)
	if err != nil {
		return err
	}
	postDelay, err := parseDelay(c, "post-delay", cfg.PostDelay)
	if err != nil {
		return err
	}

	dev, err := resolveDevice(c, cfg)
	if err != nil {
		return err
	}

	seq, err := executeTap(c.Context, dev, tgt, preDelay, postDelay)
	if err != nil {
		return err
	}

	p := seq.Steps[0].Point
	for _, s := range seq.Steps {
		if s.Kind == gesture.StepPointer {
			p = s.Point
		}
	}
	fmt.Fprintf(c.App.Writer, "Tapped (%g, %g) on %s\n", p.X, p.Y, dev.UDID())
	return nil
}

// executeTap runs one full targeting operation: fetch a fresh snapshot
// when an element query is involved, resolve the point, build the gesture,
// and dispatch it. Nothing touches the device until the final dispatch, so
// a failure anywhere leaves no partial side effects.
func executeTap(ctx context.Context, dev device.Device, tgt target, preDelay, postDelay *float64) (gesture.Sequence, error) {
	var point gesture.Point

	if tgt.point != nil {
		point = *tgt.point
	} else {
		raw, err := dev.AccessibilityTree(ctx)
		if err != nil {
			return gesture.Sequence{}, err
		}
		forest, err := ax.DecodeForest(raw)
		if err != nil {
			return gesture.Sequence{}, err
		}
		el, err := ax.Match(ax.Flatten(forest), *tgt.query)
		if err != nil {
			return gesture.Sequence{}, err
		}
		logger.Debug("Matched element %s", el.Describe())
		point, err = gesture.Center(el)
		if err != nil {
			return gesture.Sequence{}, err
		}
	}

	seq := gesture.Build(point, preDelay, postDelay, gesture.ActionTap)
	if err := dev.PerformGesture(ctx, seq); err != nil {
		return gesture.Sequence{}, err
	}
	return seq, nil
}

// resolveDevice picks the simulator UDID (flag, then config, then the
// single booted simulator) and returns an idb-backed device for it.
func resolveDevice(c *cli.Context, cfg *config.Config) (device.Device, error) {
	udid := c.String("udid")
	if udid == "" {
		udid = cfg.UDID
	}
	if udid == "" {
		booted, err := findBootedUDID()
		if err != nil {
			return nil, err
		}
		udid = booted
		logger.Info("Using booted simulator: %s", udid)
	}
	return newDevice(udid, cfg.IDBPath), nil
}
