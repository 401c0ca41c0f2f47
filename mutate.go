package circed

// The mutators below are the only writers of the operation tree. They all
// take freshly computed Paths, resolve every precondition before touching
// anything, and return nil with the tree unchanged when resolution fails.
// Deletion uses the mark-then-splice idiom: the doomed operation is tagged
// with a transient attribute and located by that tag after insertion, because
// an insertion into the same sibling array may have shifted its index.

// AddOperation deep-copies source and splices the copy into the tree at
// target, shifting later siblings right. It returns the inserted copy, or nil
// if target does not resolve.
func (c *Circuit) AddOperation(source *Operation, target Path) *Operation {
	root := &Operation{Children: c.Operations}
	defer func() { c.Operations = root.Children }()

	owner := findOwner(root, target)
	idx, ok := target.LastIndex()
	if source == nil || owner == nil || !ok {
		return nil
	}
	clone := source.Clone()
	owner.Children = insertAt(owner.Children, idx, clone)
	return clone
}

// MoveOperation relocates the operation at source to the target slot. Moving
// a path onto itself is a no-op that returns the existing operation. On
// success the returned operation is a deep copy at the target position and
// the original is gone; on any resolution failure the tree is untouched and
// nil is returned.
func (c *Circuit) MoveOperation(source, target Path) *Operation {
	if source == target {
		return c.FindOperation(source)
	}

	root := &Operation{Children: c.Operations}
	defer func() { c.Operations = root.Children }()

	srcOwner := findOwner(root, source)
	dstOwner := findOwner(root, target)
	srcIdx, srcOK := source.LastIndex()
	dstIdx, dstOK := target.LastIndex()
	if srcOwner == nil || dstOwner == nil || !srcOK || !dstOK {
		return nil
	}
	if srcIdx < 0 || srcIdx >= len(srcOwner.Children) {
		return nil
	}
	srcOp := srcOwner.Children[srcIdx]

	clone := srcOp.Clone()
	dstOwner.Children = insertAt(dstOwner.Children, dstIdx, clone)

	srcOp.mark()
	if i := indexMarked(srcOwner.Children); i >= 0 {
		srcOwner.Children = removeAt(srcOwner.Children, i)
	} else {
		srcOp.unmark()
	}
	return clone
}

// CopyOperation splices a deep copy of the operation at source into the
// target slot, leaving the original in place. It returns the copy, or nil if
// either path fails to resolve.
func (c *Circuit) CopyOperation(source, target Path) *Operation {
	root := &Operation{Children: c.Operations}
	defer func() { c.Operations = root.Children }()

	srcOp := findOperationIn(root, source)
	dstOwner := findOwner(root, target)
	dstIdx, ok := target.LastIndex()
	if srcOp == nil || dstOwner == nil || !ok {
		return nil
	}
	clone := srcOp.Clone()
	dstOwner.Children = insertAt(dstOwner.Children, dstIdx, clone)
	return clone
}

// RemoveOperation deletes the operation at source. A stale path that no
// longer resolves is a no-op, not an error; the return value reports whether
// anything was removed.
func (c *Circuit) RemoveOperation(source Path) bool {
	root := &Operation{Children: c.Operations}
	defer func() { c.Operations = root.Children }()

	owner := findOwner(root, source)
	idx, ok := source.LastIndex()
	if owner == nil || !ok || idx < 0 || idx >= len(owner.Children) {
		return false
	}
	owner.Children[idx].mark()
	if i := indexMarked(owner.Children); i >= 0 {
		owner.Children = removeAt(owner.Children, i)
	}
	return true
}

func findOperationIn(root *Operation, p Path) *Operation {
	owner := findOwner(root, p)
	idx, ok := p.LastIndex()
	if owner == nil || !ok || idx < 0 || idx >= len(owner.Children) {
		return nil
	}
	return owner.Children[idx]
}

// insertAt splices op into ops before index idx, clamping idx into range the
// way a JS splice would.
func insertAt(ops []*Operation, idx int, op *Operation) []*Operation {
	if idx < 0 {
		idx = 0
	}
	if idx > len(ops) {
		idx = len(ops)
	}
	ops = append(ops, nil)
	copy(ops[idx+1:], ops[idx:])
	ops[idx] = op
	return ops
}

func removeAt(ops []*Operation, idx int) []*Operation {
	return append(ops[:idx], ops[idx+1:]...)
}
