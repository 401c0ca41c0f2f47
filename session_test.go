package circed

import (
	"bytes"
	"testing"
)

// sessionFixture builds a 3-wire circuit [H@0, X@1] with wires drawn at rows
// 10/20/30 and a session whose redraw callback counts its invocations.
func sessionFixture() (*Session, *Circuit, *int) {
	c := NewCircuit(3)
	c.Operations = []*Operation{gate("H", 0), gate("X", 1)}
	redraws := 0
	s := NewSession(c, WireTable{10, 20, 30}, func() { redraws++ })
	return s, c, &redraws
}

// TestSessionMoveEndToEnd walks a full move gesture: grab H on wire 0, drop
// after X on wire 1, and expect [X@1, H@1] with the count unchanged
func TestSessionMoveEndToEnd(t *testing.T) {
	s, c, redraws := sessionFixture()

	s.GrabOperation("0", 10)
	if !s.Armed() {
		t.Fatal("grab did not arm the session")
	}
	s.Drop("2", 20, false)

	if got := c.NumOperations(); got != 2 {
		t.Fatalf("operation count = %d, want 2", got)
	}
	if c.Operations[0].Gate != "X" || c.Operations[1].Gate != "H" {
		t.Errorf("order after move = [%s, %s], want [X, H]", c.Operations[0].Gate, c.Operations[1].Gate)
	}
	if got := c.Operations[1].Targets[0].Wire; got != 1 {
		t.Errorf("H wire after move = %d, want 1", got)
	}
	if c.Operations[0].Targets[0].Wire != 1 {
		t.Errorf("X wire changed to %d", c.Operations[0].Targets[0].Wire)
	}
	if *redraws != 1 {
		t.Errorf("redraw fired %d times, want 1", *redraws)
	}
	if s.Armed() {
		t.Error("selection not cleared after the gesture")
	}
}

// TestSessionNoOpDropSkipsRedraw verifies dropping a node onto its own slot
// and wire leaves the tree untouched and silent
func TestSessionNoOpDropSkipsRedraw(t *testing.T) {
	s, c, redraws := sessionFixture()
	snap := c.Snapshot()

	s.GrabOperation("0", 10)
	s.Drop("0", 10, false)

	if !bytes.Equal(c.Snapshot(), snap) {
		t.Error("no-op drop mutated the tree")
	}
	if *redraws != 0 {
		t.Errorf("redraw fired %d times for a no-op drop", *redraws)
	}
	if s.Armed() {
		t.Error("selection not cleared after a no-op drop")
	}
}

// TestSessionVerticalMove verifies dropping on the same slot but another wire
// remaps the gate and triggers a redraw
func TestSessionVerticalMove(t *testing.T) {
	s, c, redraws := sessionFixture()

	s.GrabOperation("0", 10)
	s.Drop("0", 30, false)

	if got := c.Operations[0].Targets[0].Wire; got != 2 {
		t.Errorf("H wire after vertical move = %d, want 2", got)
	}
	if *redraws != 1 {
		t.Errorf("redraw fired %d times, want 1", *redraws)
	}
}

// TestSessionCopyGesture verifies the copy modifier duplicates instead of moving
func TestSessionCopyGesture(t *testing.T) {
	s, c, redraws := sessionFixture()

	s.GrabOperation("0", 10)
	s.Drop("2", 30, true)

	if got := c.NumOperations(); got != 3 {
		t.Fatalf("operation count = %d, want 3", got)
	}
	if c.Operations[0].Gate != "H" || c.Operations[0].Targets[0].Wire != 0 {
		t.Error("copy displaced or remapped the original")
	}
	if c.Operations[2].Gate != "H" || c.Operations[2].Targets[0].Wire != 2 {
		t.Errorf("copy landed as %s@%d, want H@2", c.Operations[2].Gate, c.Operations[2].Targets[0].Wire)
	}
	if *redraws != 1 {
		t.Errorf("redraw fired %d times, want 1", *redraws)
	}
}

// TestSessionPaletteAdd verifies a template drop inserts at the slot and
// shifts by the absolute drop wire
func TestSessionPaletteAdd(t *testing.T) {
	s, c, redraws := sessionFixture()

	tpl := gate("Z", 0)
	s.GrabTemplate(tpl)
	s.Drop("1", 30, false)

	if got := c.NumOperations(); got != 3 {
		t.Fatalf("operation count = %d, want 3", got)
	}
	if c.Operations[1].Gate != "Z" || c.Operations[1].Targets[0].Wire != 2 {
		t.Errorf("palette drop landed as %s@%d, want Z@2", c.Operations[1].Gate, c.Operations[1].Targets[0].Wire)
	}
	if tpl.Targets[0].Wire != 0 {
		t.Error("palette template was mutated by the drop")
	}
	if *redraws != 1 {
		t.Errorf("redraw fired %d times, want 1", *redraws)
	}
}

// TestSessionMeasureExemptMove verifies a measure gate keeps its binding
// through a move gesture while a plain gate is remapped
func TestSessionMeasureExemptMove(t *testing.T) {
	s, c, redraws := sessionFixture()
	cbit := 0
	c.Operations[0] = &Operation{Gate: GateMeasure, Targets: []Register{{Wire: 0, Cbit: &cbit}}}

	s.GrabOperation("0", 10)
	s.Drop("2", 30, false)

	meas := c.Operations[1]
	if meas.Gate != GateMeasure || meas.Targets[0].Wire != 0 {
		t.Errorf("measure was remapped to wire %d", meas.Targets[0].Wire)
	}
	if *redraws != 1 {
		t.Errorf("redraw fired %d times, want 1", *redraws)
	}
}

// TestSessionDeletePending verifies the delete key removes the armed node
func TestSessionDeletePending(t *testing.T) {
	s, c, redraws := sessionFixture()

	s.GrabOperation("1", 20)
	s.DeletePending()

	if got := c.NumOperations(); got != 1 {
		t.Errorf("operation count = %d, want 1", got)
	}
	if c.Operations[0].Gate != "H" {
		t.Errorf("wrong operation deleted, remaining %s", c.Operations[0].Gate)
	}
	if *redraws != 1 {
		t.Errorf("redraw fired %d times, want 1", *redraws)
	}
	if s.Armed() {
		t.Error("selection not cleared after delete")
	}
}

// TestSessionAbortedDrop verifies a failed resolution aborts silently with
// the tree unchanged
func TestSessionAbortedDrop(t *testing.T) {
	s, c, redraws := sessionFixture()
	snap := c.Snapshot()

	s.GrabOperation("0", 10)
	s.Drop("bogus", 20, false)

	if !bytes.Equal(c.Snapshot(), snap) {
		t.Error("aborted drop mutated the tree")
	}
	if *redraws != 0 {
		t.Errorf("redraw fired %d times for an aborted drop", *redraws)
	}
	if s.Armed() {
		t.Error("selection not cleared after an aborted drop")
	}
}

// TestSessionDropWithoutGrab verifies a drop with nothing armed is a no-op
func TestSessionDropWithoutGrab(t *testing.T) {
	s, c, redraws := sessionFixture()
	snap := c.Snapshot()

	s.Drop("0", 10, false)

	if !bytes.Equal(c.Snapshot(), snap) || *redraws != 0 {
		t.Error("unarmed drop had side effects")
	}
}

// TestSessionCompositeRecompute verifies a drop inside a composite refreshes
// the composite's derived targets
func TestSessionCompositeRecompute(t *testing.T) {
	c := NewCircuit(3)
	c.Operations = []*Operation{group("grp", gate("X", 1))}
	s := NewSession(c, WireTable{10, 20, 30}, nil)

	s.GrabTemplate(controlled("Z", 2, 0))
	s.Drop("0-1", 10, false)

	grp := c.Operations[0]
	if len(grp.Children) != 2 {
		t.Fatalf("composite has %d children, want 2", len(grp.Children))
	}
	want := map[int]bool{0: true, 1: true, 2: true}
	if len(grp.Targets) != 3 {
		t.Fatalf("composite targets = %v, want wires 0,1,2", grp.Targets)
	}
	for _, r := range grp.Targets {
		if !want[r.Wire] {
			t.Errorf("unexpected wire %d in recomputed targets", r.Wire)
		}
	}
}

// TestSessionMoveIntoCompositeRecompute verifies a move whose splice shifts
// the enclosing composite's own index still refreshes that composite's
// derived targets
func TestSessionMoveIntoCompositeRecompute(t *testing.T) {
	c := NewCircuit(3)
	c.Operations = []*Operation{gate("H", 0), group("grp", gate("X", 1))}
	s := NewSession(c, WireTable{10, 20, 30}, nil)

	// Splicing H out moves the composite from index 1 to 0 mid-gesture.
	s.GrabOperation("0", 10)
	s.Drop("1-0", 10, false)

	if len(c.Operations) != 1 {
		t.Fatalf("top level has %d operations, want 1", len(c.Operations))
	}
	grp := c.Operations[0]
	if grp.Gate != "grp" || len(grp.Children) != 2 || grp.Children[0].Gate != "H" {
		t.Fatalf("composite children after move = %v", grp.Children)
	}
	want := map[int]bool{0: true, 1: true}
	if len(grp.Targets) != 2 {
		t.Fatalf("composite targets = %v, want wires 0,1", grp.Targets)
	}
	for _, r := range grp.Targets {
		if !want[r.Wire] {
			t.Errorf("unexpected wire %d in recomputed targets", r.Wire)
		}
	}
}

// TestSessionCancel verifies cancel disarms without touching the tree
func TestSessionCancel(t *testing.T) {
	s, c, redraws := sessionFixture()
	snap := c.Snapshot()

	s.GrabOperation("0", 10)
	s.Cancel()

	if s.Armed() {
		t.Error("cancel left the session armed")
	}
	if !bytes.Equal(c.Snapshot(), snap) || *redraws != 0 {
		t.Error("cancel had side effects")
	}
}

// TestSessionClosed verifies gestures after Close are no-ops
func TestSessionClosed(t *testing.T) {
	s, c, redraws := sessionFixture()
	snap := c.Snapshot()

	s.Close()
	s.GrabOperation("0", 10)
	if s.Armed() {
		t.Error("closed session armed a gesture")
	}
	s.Drop("2", 20, false)
	s.DeletePending()

	if !bytes.Equal(c.Snapshot(), snap) || *redraws != 0 {
		t.Error("closed session mutated the tree")
	}
}
