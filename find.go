package circed

// findOwner walks the tree to the operation whose Children slice contains the
// path's target, treating the circuit root as an unnamed composite. At each
// intermediate index the walk descends into that operation's children when it
// has any; otherwise it stays at the current level, so a malformed or stale
// path degrades to a lookup in the nearest surviving array instead of a panic.
func findOwner(root *Operation, p Path) *Operation {
	indices := p.Indices()
	if len(indices) == 0 {
		return nil
	}
	owner := root
	for _, idx := range indices[:len(indices)-1] {
		if idx >= 0 && idx < len(owner.Children) && owner.Children[idx].Children != nil {
			owner = owner.Children[idx]
		}
	}
	return owner
}

// FindParentArray resolves the sibling array that contains the operation at p,
// or nil if the path is empty or malformed.
func (c *Circuit) FindParentArray(p Path) []*Operation {
	owner := findOwner(&Operation{Children: c.Operations}, p)
	if owner == nil {
		return nil
	}
	return owner.Children
}

// FindOperation resolves the operation at p against the current tree, or nil
// if the path does not resolve. The result is only meaningful until the next
// mutation.
func (c *Circuit) FindOperation(p Path) *Operation {
	arr := c.FindParentArray(p)
	idx, ok := p.LastIndex()
	if arr == nil || !ok || idx < 0 || idx >= len(arr) {
		return nil
	}
	return arr[idx]
}

// FindParentOperation resolves the composite operation that owns the sibling
// array containing p's target. Paths with fewer than two indices have no
// parent operation (their parent is the circuit root) and resolve to nil.
func (c *Circuit) FindParentOperation(p Path) *Operation {
	indices := p.Indices()
	if len(indices) < 2 {
		return nil
	}
	parentIdx := indices[len(indices)-2]
	owner := &Operation{Children: c.Operations}
	for _, idx := range indices[:len(indices)-2] {
		if idx >= 0 && idx < len(owner.Children) && owner.Children[idx].Children != nil {
			owner = owner.Children[idx]
		}
	}
	if parentIdx < 0 || parentIdx >= len(owner.Children) {
		return nil
	}
	return owner.Children[parentIdx]
}
