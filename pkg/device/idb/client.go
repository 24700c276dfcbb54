// Package idb drives a simulator through the idb companion CLI. It is the
// exec transport behind the device.Device contract: snapshots come from
// `idb ui describe-all`, pointer actions go out as `idb ui tap`.
package idb

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/devicelab-dev/simtap/pkg/core"
	"github.com/devicelab-dev/simtap/pkg/gesture"
	"github.com/devicelab-dev/simtap/pkg/logger"
)

// runnerFunc executes one idb invocation and returns its stdout. Injected
// so tests can fake the binary.
type runnerFunc func(ctx context.Context, args ...string) ([]byte, error)

// sleepFunc implements delay steps. Injected for tests.
type sleepFunc func(ctx context.Context, d time.Duration) error

// Client talks to one simulator via the idb binary.
type Client struct {
	udid    string
	binPath string
	run     runnerFunc
	sleep   sleepFunc
}

// FindIDBBinary verifies that idb is installed.
func FindIDBBinary() (string, error) {
	path, err := exec.LookPath("idb")
	if err != nil {
		return "", fmt.Errorf("idb not found; install it with: pip install fb-idb")
	}
	return path, nil
}

// NewClient creates a client for the given simulator UDID. binPath may be
// empty, in which case "idb" is resolved from PATH at call time.
func NewClient(udid, binPath string) *Client {
	if binPath == "" {
		binPath = "idb"
	}
	c := &Client{udid: udid, binPath: binPath}
	c.run = c.execRun
	c.sleep = contextSleep
	return c
}

// UDID returns the simulator identifier.
func (c *Client) UDID() string {
	return c.udid
}

func (c *Client) execRun(ctx context.Context, args ...string) ([]byte, error) {
	bin := c.binPath
	if bin == "idb" {
		resolved, err := FindIDBBinary()
		if err != nil {
			return nil, err
		}
		bin = resolved
	}
	cmd := exec.CommandContext(ctx, bin, args...) //#nosec G204 -- args are built internally
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("idb %s: %s", args[0], strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("idb %s: %w", args[0], err)
	}
	return out, nil
}

func contextSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// AccessibilityTree fetches the full accessibility snapshot as raw JSON.
// The payload shape (single root object or array of roots) is left to the
// decoder; this layer treats it as opaque bytes.
func (c *Client) AccessibilityTree(ctx context.Context) ([]byte, error) {
	logger.Debug("Fetching accessibility snapshot for %s", c.udid)
	out, err := c.run(ctx, "ui", "describe-all", "--udid", c.udid, "--json")
	if err != nil {
		return nil, core.ErrSnapshotFailed.WithCause(err).WithDetails(map[string]interface{}{
			"udid": c.udid,
		})
	}
	return out, nil
}

// PerformGesture executes the sequence step by step in strict order. An
// atomic sequence is one tap invocation; a composite sequence interleaves
// in-process delays with tap invocations.
func (c *Client) PerformGesture(ctx context.Context, seq gesture.Sequence) error {
	if len(seq.Steps) == 0 {
		return core.ErrInvalidInput.WithMessage("empty gesture sequence")
	}

	if seq.Atomic() {
		step := seq.Steps[0]
		logger.Info("Dispatching atomic %s at (%g, %g) on %s", step.Action, step.Point.X, step.Point.Y, c.udid)
		return c.pointerStep(ctx, step)
	}

	logger.Info("Dispatching composite gesture (%d steps) on %s", len(seq.Steps), c.udid)
	for _, step := range seq.Steps {
		switch step.Kind {
		case gesture.StepDelay:
			logger.Debug("Delay %gs", step.Seconds)
			if err := c.sleep(ctx, time.Duration(step.Seconds*float64(time.Second))); err != nil {
				return core.ErrTransportFailed.WithCause(err).WithMessage("gesture interrupted during delay")
			}
		case gesture.StepPointer:
			if err := c.pointerStep(ctx, step); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Client) pointerStep(ctx context.Context, step gesture.Step) error {
	x := strconv.FormatFloat(step.Point.X, 'f', -1, 64)
	y := strconv.FormatFloat(step.Point.Y, 'f', -1, 64)
	if _, err := c.run(ctx, "ui", string(step.Action), "--udid", c.udid, x, y); err != nil {
		return core.ErrTransportFailed.WithCause(err).WithDetails(map[string]interface{}{
			"udid":   c.udid,
			"action": string(step.Action),
			"x":      step.Point.X,
			"y":      step.Point.Y,
		})
	}
	return nil
}

// Screenshot captures the current screen as PNG bytes.
func (c *Client) Screenshot(ctx context.Context) ([]byte, error) {
	out, err := c.run(ctx, "screenshot", "--udid", c.udid, "-")
	if err != nil {
		return nil, core.ErrTransportFailed.WithCause(err).WithMessage("screenshot failed")
	}
	return out, nil
}
