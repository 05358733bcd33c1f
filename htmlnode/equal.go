package htmlnode

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *LeafNode:
		b, ok := b.(*LeafNode)
		if !ok || a == nil || b == nil {
			return ok && a == b
		}
		if a.Tag != b.Tag || !equalAttrs(a.Attrs, b.Attrs) {
			return false
		}
		if a.Value == nil || b.Value == nil {
			return a.Value == b.Value
		}
		return *a.Value == *b.Value
	case *ParentNode:
		b, ok := b.(*ParentNode)
		if !ok || a == nil || b == nil {
			return ok && a == b
		}
		if a.Tag != b.Tag || !equalAttrs(a.Attrs, b.Attrs) {
			return false
		}
		if (a.Children == nil) != (b.Children == nil) || len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !Equal(a.Children[i], b.Children[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}

func equalAttrs(a, b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
