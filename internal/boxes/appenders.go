package boxes

import (
	"qirc/internal/circuit"
	"qirc/internal/pauli"
	"qirc/internal/qerrors"
	"qirc/internal/synth"
)

// resolve maps device qubits to circuit wire indices.
func resolve(placement map[pauli.Node]int, nodes []pauli.Node) ([]int, error) {
	out := make([]int, len(nodes))
	for i, nd := range nodes {
		wire, ok := placement[nd]
		if !ok {
			return nil, qerrors.New(qerrors.InvalidPauliExp, "qubit %s has no circuit placement", nd)
		}
		out[i] = wire
	}
	return out, nil
}

// AppendSingleGadgetAsBox schedules one sparse Pauli exponential on the
// circuit as a PauliExpBox over its support.
func AppendSingleGadgetAsBox(c *circuit.Circuit, t pauli.SparseTensor, placement map[pauli.Node]int, cfg synth.CXConfig) error {
	nodes := t.Nodes()
	mapping, err := resolve(placement, nodes)
	if err != nil {
		return err
	}
	box := NewPauliExpBox(t.Dense(nodes), cfg)
	return c.AddBox(box, mapping)
}

// AppendGadgetPairAsBox schedules two sparse Pauli exponentials as one
// PauliExpPairBox over the union of their supports. Qubit order is the
// first tensor's support, then the second's remainder.
func AppendGadgetPairAsBox(c *circuit.Circuit, t0, t1 pauli.SparseTensor, placement map[pauli.Node]int, cfg synth.CXConfig) error {
	nodes := t0.Nodes()
	inFirst := make(map[pauli.Node]bool, len(nodes))
	for _, nd := range nodes {
		inFirst[nd] = true
	}
	for _, nd := range t1.Nodes() {
		if !inFirst[nd] {
			nodes = append(nodes, nd)
		}
	}
	mapping, err := resolve(placement, nodes)
	if err != nil {
		return err
	}
	box, err := NewPauliExpPairBox(t0.Dense(nodes), t1.Dense(nodes), cfg)
	if err != nil {
		return err
	}
	return c.AddBox(box, mapping)
}

// AppendCommutingSetAsBox schedules a list of mutually-commuting sparse
// exponentials as one PauliExpCommutingSetBox over the sorted union of
// their supports.
func AppendCommutingSetAsBox(c *circuit.Circuit, gadgets []pauli.SparseTensor, placement map[pauli.Node]int, cfg synth.CXConfig) error {
	support := make(map[pauli.Node]bool)
	var nodes []pauli.Node
	for _, g := range gadgets {
		for _, nd := range g.Nodes() {
			if !support[nd] {
				support[nd] = true
				nodes = append(nodes, nd)
			}
		}
	}
	pauli.SortNodes(nodes)
	mapping, err := resolve(placement, nodes)
	if err != nil {
		return err
	}
	dense := make([]pauli.Tensor, len(gadgets))
	for i, g := range gadgets {
		dense[i] = g.Dense(nodes)
	}
	box, err := NewPauliExpCommutingSetBox(dense, cfg)
	if err != nil {
		return err
	}
	return c.AddBox(box, mapping)
}
