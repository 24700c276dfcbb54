// Package device defines the contract between the targeting pipeline and
// whatever executes input on a simulator. The pipeline only needs two
// things from a device: the raw accessibility snapshot, and the ability to
// run a gesture sequence in order.
package device

import (
	"context"

	"github.com/devicelab-dev/simtap/pkg/gesture"
)

// Device is a handle to one target simulator.
// Implementations: idb exec transport, fake for tests.
type Device interface {
	// UDID returns the simulator identifier commands run against.
	UDID() string

	// AccessibilityTree fetches the current accessibility snapshot as a
	// raw JSON payload. Every targeting operation fetches a fresh
	// snapshot; nothing is cached between calls.
	AccessibilityTree(ctx context.Context) ([]byte, error)

	// PerformGesture executes the sequence against the device. Steps
	// must run in order with their delays honored; an atomic sequence
	// may be submitted as a single primitive.
	PerformGesture(ctx context.Context, seq gesture.Sequence) error

	// Screenshot captures the current screen as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
}
