// Package ax models the accessibility snapshot of an iOS simulator screen:
// a forest of immutable elements decoded from raw JSON, flattened and
// queried to pick the one element a command should act on.
package ax

import "strings"

// Rect is an element's frame in screen points.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Element is a single node of the accessibility tree as reported by the
// snapshot source. Fields are kept exactly as received; absent fields stay
// nil. Elements are never mutated after decode.
type Element struct {
	Type       *string    `json:"type,omitempty"`
	Frame      *Rect      `json:"frame,omitempty"`
	Label      *string    `json:"AXLabel,omitempty"`
	Identifier *string    `json:"AXIdentifier,omitempty"`
	Children   []*Element `json:"children,omitempty"`
}

// NormalizedLabel returns the label with surrounding whitespace stripped.
// The second return is false when the element has no label at all.
func (e *Element) NormalizedLabel() (string, bool) {
	if e.Label == nil {
		return "", false
	}
	return strings.TrimSpace(*e.Label), true
}

// NormalizedIdentifier returns the identifier with surrounding whitespace
// stripped, or false when the element has no identifier.
func (e *Element) NormalizedIdentifier() (string, bool) {
	if e.Identifier == nil {
		return "", false
	}
	return strings.TrimSpace(*e.Identifier), true
}

// Describe returns a short human-readable tag for diagnostics.
func (e *Element) Describe() string {
	switch {
	case e.Identifier != nil && strings.TrimSpace(*e.Identifier) != "":
		return "#" + strings.TrimSpace(*e.Identifier)
	case e.Label != nil && strings.TrimSpace(*e.Label) != "":
		return strings.TrimSpace(*e.Label)
	case e.Type != nil:
		return *e.Type
	default:
		return "<element>"
	}
}
