package main

import "circed"

// paletteGate returns a fresh template for a palette key, or nil for keys
// that are not bound. Templates are built on wire 0; the session shifts the
// dropped copy to the wire it lands on.
func paletteGate(key string) *circed.Operation {
	switch key {
	case "h":
		return simpleGate("H")
	case "x":
		return simpleGate("X")
	case "y":
		return simpleGate("Y")
	case "z":
		return simpleGate("Z")
	case "s":
		return simpleGate("S")
	case "t":
		return simpleGate("T")
	case "c":
		// Controlled X: control on wire 0, target on wire 1.
		op := &circed.Operation{
			Gate:     "X",
			Targets:  []circed.Register{{Wire: 1}},
			Controls: []circed.Register{{Wire: 0}},
		}
		return op
	case "m":
		cbit := 0
		return &circed.Operation{
			Gate:    circed.GateMeasure,
			Targets: []circed.Register{{Wire: 0, Cbit: &cbit}},
		}
	case "g":
		// An empty group; gates dragged into it extend its target set.
		return &circed.Operation{
			Gate:     "grp",
			Targets:  []circed.Register{},
			Children: []*circed.Operation{},
		}
	}
	return nil
}

func simpleGate(name string) *circed.Operation {
	return &circed.Operation{
		Gate:    name,
		Targets: []circed.Register{{Wire: 0}},
	}
}
