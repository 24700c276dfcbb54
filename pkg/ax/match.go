package ax

import (
	"fmt"
	"strings"
)

// QueryKind selects which normalized field a query compares against.
type QueryKind int

// Query kinds. Exactly one applies per lookup; the CLI boundary enforces
// that the user supplied only one of identifier/label.
const (
	ByIdentifier QueryKind = iota
	ByLabel
)

// String returns the flag-style name of the kind.
func (k QueryKind) String() string {
	switch k {
	case ByIdentifier:
		return "identifier"
	case ByLabel:
		return "label"
	default:
		return "unknown"
	}
}

// Query is an element lookup: one kind plus the value to match. Matching is
// exact and case-sensitive against the normalized field; there is no
// substring, prefix, or fuzzy matching.
type Query struct {
	Kind  QueryKind
	Value string
}

// NoMatchError indicates no element satisfied the query.
type NoMatchError struct {
	Kind  QueryKind
	Value string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no element matches %s %q", e.Kind, e.Value)
}

// AmbiguousMatchError indicates more than one element satisfied the query.
// Picking one silently would make automation non-deterministic, so the
// caller is told to disambiguate instead.
type AmbiguousMatchError struct {
	Kind  QueryKind
	Value string
	Count int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%d elements match %s %q; disambiguate the query", e.Count, e.Kind, e.Value)
}

// Match resolves a query against a flattened forest to exactly one element.
// The query value is normalized the same way element fields are; elements
// without the queried field never match. Zero matches and multiple matches
// are both errors.
func Match(flat []*Element, q Query) (*Element, error) {
	want := strings.TrimSpace(q.Value)

	var matches []*Element
	for _, el := range flat {
		var got string
		var ok bool
		switch q.Kind {
		case ByIdentifier:
			got, ok = el.NormalizedIdentifier()
		case ByLabel:
			got, ok = el.NormalizedLabel()
		}
		if ok && got == want {
			matches = append(matches, el)
		}
	}

	switch len(matches) {
	case 0:
		return nil, &NoMatchError{Kind: q.Kind, Value: want}
	case 1:
		return matches[0], nil
	default:
		return nil, &AmbiguousMatchError{Kind: q.Kind, Value: want, Count: len(matches)}
	}
}
