package circed

// ShiftWires offsets every wire reference in op and its descendants by offset,
// wrapped into [0, wireCount). Measurement operations keep the wire binding
// they were created with, so a measure gate moved or added as the gesture's
// own target is left untouched; a measure gate nested inside a moved composite
// is shifted along with the rest of the subtree.
func ShiftWires(op *Operation, offset, wireCount int) {
	if op == nil || op.Gate == GateMeasure {
		return
	}
	shiftWires(op, offset, wireCount)
}

func shiftWires(op *Operation, offset, wireCount int) {
	shiftRegisters(op.Targets, offset, wireCount)
	shiftRegisters(op.Controls, offset, wireCount)
	for _, child := range op.Children {
		shiftWires(child, offset, wireCount)
	}
}

func shiftRegisters(regs []Register, offset, wireCount int) {
	for i := range regs {
		regs[i].Wire = wrapWire(regs[i].Wire+offset, wireCount)
		if regs[i].Cbit != nil {
			*regs[i].Cbit = wrapWire(*regs[i].Cbit+offset, wireCount)
		}
	}
}

// wrapWire reduces w into [0, wireCount) with a true modulo, so negative
// offsets wrap upward (-1 mod 4 = 3).
func wrapWire(w, wireCount int) int {
	if wireCount <= 0 {
		return w
	}
	w %= wireCount
	if w < 0 {
		w += wireCount
	}
	return w
}
