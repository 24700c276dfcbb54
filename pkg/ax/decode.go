package ax

import (
	"encoding/json"
	"fmt"
)

// MalformedTreeError indicates the snapshot payload decoded as neither a
// single element object nor an array of element objects.
type MalformedTreeError struct {
	Cause error
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("malformed accessibility tree: %v", e.Cause)
}

func (e *MalformedTreeError) Unwrap() error {
	return e.Cause
}

// DecodeForest parses a raw accessibility snapshot into a forest of root
// elements. The source reports either a JSON array of roots or a single
// root object; the array shape is tried first and a lone object is wrapped
// into a one-element forest.
func DecodeForest(data []byte) ([]*Element, error) {
	var forest []*Element
	if err := json.Unmarshal(data, &forest); err == nil {
		return forest, nil
	}

	var root Element
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &MalformedTreeError{Cause: err}
	}
	return []*Element{&root}, nil
}
