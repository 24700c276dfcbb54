package ax

// Flatten walks every root in order and returns all nodes of the forest in
// pre-order. Each node appears exactly once; children follow their parent,
// roots keep the order the source reported them in.
func Flatten(forest []*Element) []*Element {
	var flat []*Element
	for _, root := range forest {
		flat = appendSubtree(flat, root)
	}
	return flat
}

func appendSubtree(flat []*Element, el *Element) []*Element {
	if el == nil {
		return flat
	}
	flat = append(flat, el)
	for _, child := range el.Children {
		flat = appendSubtree(flat, child)
	}
	return flat
}
