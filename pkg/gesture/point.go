// Package gesture turns a targeting decision into the pointer input a
// device will execute: a single screen point, wrapped in an ordered
// sequence of timed steps.
package gesture

import (
	"fmt"

	"github.com/devicelab-dev/simtap/pkg/ax"
)

// Point is a screen coordinate in points. Full float64 precision is kept;
// rounding, if any, is the executing device's business.
type Point struct {
	X float64
	Y float64
}

// MissingFrameError indicates a matched element reported no frame at all.
type MissingFrameError struct {
	Element string
}

func (e *MissingFrameError) Error() string {
	return fmt.Sprintf("element %s has no frame", e.Element)
}

// InvalidFrameError indicates a frame too degenerate to derive a tap point
// from.
type InvalidFrameError struct {
	Width  float64
	Height float64
}

func (e *InvalidFrameError) Error() string {
	return fmt.Sprintf("element frame has no area (width=%g, height=%g)", e.Width, e.Height)
}

// At wraps explicit coordinates. The CLI boundary has already rejected
// negative values, so this is a plain passthrough.
func At(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Center derives the tap point from a matched element's frame. Geometry is
// validated here so the caller can report "no frame" or "degenerate frame"
// instead of an opaque device failure.
func Center(el *ax.Element) (Point, error) {
	if el.Frame == nil {
		return Point{}, &MissingFrameError{Element: el.Describe()}
	}
	f := el.Frame
	if f.Width <= 0 || f.Height <= 0 {
		return Point{}, &InvalidFrameError{Width: f.Width, Height: f.Height}
	}
	return Point{X: f.X + f.Width/2, Y: f.Y + f.Height/2}, nil
}
