package circed

// Gate names the core gives special meaning to. Everything else is an opaque
// label the renderer draws verbatim.
const (
	// GateMeasure marks a measurement. Its wire binding is fixed at creation,
	// so it is exempt from wire remapping when moved or added directly.
	GateMeasure = "measure"
)

// attrRemoved flags an operation for deletion during a mutation. The flag is
// transient: every mutation that sets it also splices the flagged operation
// out before returning.
const attrRemoved = "removed"

// Register references a wire touched by an operation. Cbit, when set, is the
// paired classical result wire of a measurement.
type Register struct {
	Wire int  `json:"wire"`
	Cbit *int `json:"cbit,omitempty"`
}

// Operation is one node of the circuit tree: a gate acting on Targets,
// optionally conditioned on Controls. Composite operations carry Children;
// their Targets are derived from the subtree (see GateTargets).
type Operation struct {
	Gate     string            `json:"gate"`
	Args     string            `json:"args,omitempty"`
	Targets  []Register        `json:"targets"`
	Controls []Register        `json:"controls,omitempty"`
	Children []*Operation      `json:"children,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
}

// Clone returns a deep copy of op and its entire subtree.
func (op *Operation) Clone() *Operation {
	if op == nil {
		return nil
	}
	clone := &Operation{
		Gate:     op.Gate,
		Args:     op.Args,
		Targets:  cloneRegisters(op.Targets),
		Controls: cloneRegisters(op.Controls),
	}
	if op.Children != nil {
		clone.Children = make([]*Operation, len(op.Children))
		for i, child := range op.Children {
			clone.Children[i] = child.Clone()
		}
	}
	if op.Attrs != nil {
		clone.Attrs = make(map[string]string, len(op.Attrs))
		for k, v := range op.Attrs {
			clone.Attrs[k] = v
		}
	}
	return clone
}

func cloneRegisters(regs []Register) []Register {
	if regs == nil {
		return nil
	}
	out := make([]Register, len(regs))
	for i, r := range regs {
		out[i] = Register{Wire: r.Wire}
		if r.Cbit != nil {
			cbit := *r.Cbit
			out[i].Cbit = &cbit
		}
	}
	return out
}

// IsComposite reports whether op groups child operations.
func (op *Operation) IsComposite() bool {
	return op != nil && op.Children != nil
}

func (op *Operation) mark() {
	if op.Attrs == nil {
		op.Attrs = make(map[string]string)
	}
	op.Attrs[attrRemoved] = "true"
}

func (op *Operation) unmark() {
	delete(op.Attrs, attrRemoved)
	if len(op.Attrs) == 0 {
		op.Attrs = nil
	}
}

func (op *Operation) marked() bool {
	return op.Attrs[attrRemoved] == "true"
}

// indexMarked returns the index of the operation flagged for deletion, or -1.
func indexMarked(ops []*Operation) int {
	for i, op := range ops {
		if op.marked() {
			return i
		}
	}
	return -1
}
