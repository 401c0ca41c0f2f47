package circed

import "bytes"

// Session is the gesture state machine of one editing session. The host
// translates its pointer and keyboard events into Grab/Drop/Delete calls; the
// session drives the tree mutators and decides when the redraw callback
// fires. All state is transient: whatever a gesture leaves armed is cleared
// unconditionally when the gesture resolves or aborts.
//
// A session is single-threaded by contract. Every call runs to completion
// inside the host's event handler; there is no locking because there is no
// concurrent access.
type Session struct {
	circ     *Circuit
	wires    WireTable
	renderFn func()

	pending     *Operation
	pendingPath Path
	pendingWire int
	snapshot    []byte
	closed      bool
}

// NewSession binds a session to a circuit. renderFn is invoked, at most once
// per gesture, whenever a committed gesture actually changed the tree; the
// host should redraw and then call SetWireTable with refreshed geometry.
func NewSession(circ *Circuit, wires WireTable, renderFn func()) *Session {
	return &Session{
		circ:        circ,
		wires:       wires,
		renderFn:    renderFn,
		pendingWire: -1,
	}
}

// Circuit exposes the live tree for the host's rendering pass. The host must
// not mutate it directly.
func (s *Session) Circuit() *Circuit {
	return s.circ
}

// SetWireTable installs refreshed wire geometry after a redraw.
func (s *Session) SetWireTable(wires WireTable) {
	s.wires = wires
}

// Armed reports whether a gesture is in progress.
func (s *Session) Armed() bool {
	return s.pending != nil
}

// PendingPath returns the path armed by GrabOperation, or "" when nothing is
// armed or the pending operation came from the palette.
func (s *Session) PendingPath() Path {
	return s.pendingPath
}

// GrabOperation arms a gesture from an existing operation: p must be a path
// computed against the current tree, y the pointer position within the
// diagram. An unresolvable path leaves the session idle.
func (s *Session) GrabOperation(p Path, y float64) {
	if s.closed {
		return
	}
	op := s.circ.FindOperation(p)
	if op == nil {
		s.clear()
		return
	}
	s.pending = op
	s.pendingPath = p
	s.pendingWire = s.wires.WireForY(y)
	s.snapshot = s.circ.Snapshot()
}

// GrabTemplate arms a gesture from a palette template. The template is cloned
// immediately, so the palette entry is never aliased into the tree.
func (s *Session) GrabTemplate(op *Operation) {
	if s.closed || op == nil {
		s.clear()
		return
	}
	s.pending = op.Clone()
	s.pendingPath = ""
	s.pendingWire = -1
	s.snapshot = s.circ.Snapshot()
}

// Drop resolves the armed gesture at the target slot. Gestures armed from the
// palette insert; gestures armed from an existing operation move, or copy
// when copyMode is set. The dropped operation's wires are then shifted to the
// wire nearest y (absolute for palette drops, relative to the grab wire
// otherwise), the enclosing composite's targets are recomputed, and the
// redraw callback fires if the tree ended up structurally different from the
// pre-gesture snapshot. Any resolution failure aborts the gesture with the
// tree unchanged. The armed state is cleared either way.
func (s *Session) Drop(target Path, y float64, copyMode bool) {
	defer s.clear()
	if s.closed || s.pending == nil {
		return
	}

	targetWire := s.wires.WireForY(y)
	wireCount := s.wires.Count()

	// target is positional against the pre-mutation tree; a move that splices
	// an earlier sibling out shifts the enclosing composite's index, so its
	// node must be resolved before anything mutates.
	parent := s.circ.FindParentOperation(target)

	var dropped *Operation
	switch {
	case s.pendingPath == "":
		dropped = s.circ.AddOperation(s.pending, target)
		if dropped != nil && targetWire >= 0 {
			ShiftWires(dropped, targetWire, wireCount)
		}
	case copyMode:
		dropped = s.circ.CopyOperation(s.pendingPath, target)
		if dropped != nil && targetWire >= 0 && s.pendingWire >= 0 {
			ShiftWires(dropped, targetWire-s.pendingWire, wireCount)
		}
	default:
		dropped = s.circ.MoveOperation(s.pendingPath, target)
		if dropped != nil && targetWire >= 0 && s.pendingWire >= 0 {
			ShiftWires(dropped, targetWire-s.pendingWire, wireCount)
		}
	}

	if dropped != nil && parent.IsComposite() {
		parent.Targets = GateTargets(parent)
	}
	s.fireIfChanged()
}

// DeletePending removes the armed operation from the tree. Gestures armed
// from the palette have nothing in the tree to delete and simply disarm.
func (s *Session) DeletePending() {
	defer s.clear()
	if s.closed || s.pending == nil || s.pendingPath == "" {
		return
	}
	s.circ.RemoveOperation(s.pendingPath)
	s.fireIfChanged()
}

// Cancel aborts the gesture in progress, if any.
func (s *Session) Cancel() {
	s.clear()
}

// Close tears the session down. Every gesture after Close is a no-op, so
// hosts can detach their event handlers without racing a stray callback.
func (s *Session) Close() {
	s.closed = true
	s.clear()
}

func (s *Session) fireIfChanged() {
	if s.snapshot == nil {
		return
	}
	if !bytes.Equal(s.circ.Snapshot(), s.snapshot) && s.renderFn != nil {
		s.renderFn()
	}
}

func (s *Session) clear() {
	s.pending = nil
	s.pendingPath = ""
	s.pendingWire = -1
	s.snapshot = nil
}
