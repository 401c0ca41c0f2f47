package circed

// GateTargets recomputes the wire set a composite operation touches: the
// targets of every child, plus, for children that carry controls, their
// controls and (recursively) their own subtree. Children without controls do
// not contribute their descendants. Duplicate wires keep their first-seen
// position; classical pairings are dropped. A leaf yields an empty set and
// keeps whatever explicit targets it has.
func GateTargets(op *Operation) []Register {
	regs := []Register{}
	if op == nil || op.Children == nil {
		return regs
	}
	var collect func(ops []*Operation)
	collect = func(ops []*Operation) {
		for _, child := range ops {
			regs = append(regs, child.Targets...)
			if len(child.Controls) > 0 {
				regs = append(regs, child.Controls...)
				if child.Children != nil {
					collect(child.Children)
				}
			}
		}
	}
	collect(op.Children)

	seen := make(map[int]bool, len(regs))
	out := []Register{}
	for _, r := range regs {
		if !seen[r.Wire] {
			seen[r.Wire] = true
			out = append(out, Register{Wire: r.Wire})
		}
	}
	return out
}
