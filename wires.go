package circed

import "math"

// WireTable is the renderer's mapping from logical wire index to the vertical
// position it drew that wire at. The core only reads it; the host must hand
// the session a refreshed table after every redraw, since a redraw can change
// geometry.
type WireTable []float64

// Count returns the number of wires in the table.
func (w WireTable) Count() int {
	return len(w)
}

// WireForY returns the index of the wire drawn nearest to y, or -1 when the
// table is empty.
func (w WireTable) WireForY(y float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, wy := range w {
		if d := math.Abs(wy - y); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
