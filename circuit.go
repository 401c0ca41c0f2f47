package circed

import (
	"encoding/json"
	"fmt"
	"os"
)

// Qubit is one horizontal wire of the diagram. Results is the number of
// classical result wires drawn beneath it.
type Qubit struct {
	ID      int `json:"id"`
	Results int `json:"results,omitempty"`
}

// Circuit is the root of the operation tree plus the wires it runs on. The
// tree is owned by one editing session and mutated in place; re-deriving it
// from a file starts a fresh session.
type Circuit struct {
	Qubits     []Qubit      `json:"qubits"`
	Operations []*Operation `json:"operations"`
}

// NewCircuit returns an empty circuit with the given number of wires.
func NewCircuit(wires int) *Circuit {
	qubits := make([]Qubit, wires)
	for i := range qubits {
		qubits[i] = Qubit{ID: i}
	}
	return &Circuit{Qubits: qubits, Operations: []*Operation{}}
}

// WireCount returns the number of quantum wires in the circuit.
func (c *Circuit) WireCount() int {
	return len(c.Qubits)
}

// NumOperations counts every operation in the tree, composites included.
func (c *Circuit) NumOperations() int {
	return countOps(c.Operations)
}

func countOps(ops []*Operation) int {
	n := 0
	for _, op := range ops {
		n += 1 + countOps(op.Children)
	}
	return n
}

// Snapshot serializes the circuit for structural comparison. Two snapshots
// are equal exactly when the circuits are structurally equal.
func (c *Circuit) Snapshot() []byte {
	data, err := json.Marshal(c)
	if err != nil {
		return nil
	}
	return data
}

// LoadCircuit reads a circuit from a JSON file.
func LoadCircuit(filename string) (*Circuit, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var c Circuit
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %v", filename, err)
	}
	if c.Operations == nil {
		c.Operations = []*Operation{}
	}
	return &c, nil
}

// Save writes the circuit to a JSON file.
func (c *Circuit) Save(filename string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, append(data, '\n'), 0644)
}
