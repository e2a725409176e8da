package synth

import (
	"fmt"

	"qirc/internal/circuit"
	"qirc/internal/pauli"
	"qirc/internal/symexpr"
)

// PauliGadget synthesises exp(-i*pi*t/2 * P) for the dense tensor
// (P, t) as a circuit of the tensor's full width. Only qubits carrying
// a non-identity letter are touched: basis changes bring every active
// letter to Z, the configured CNOT ladder collects the parity, a single
// Rz applies the angle, and the ladder and basis changes are undone.
func PauliGadget(t pauli.Tensor, cfg CXConfig) (*circuit.Circuit, error) {
	if !cfg.Valid() {
		return nil, fmt.Errorf("synth: invalid CX configuration %q", string(cfg))
	}
	c := circuit.New(t.Size())
	active := t.Support()
	if len(active) == 0 {
		// exp(-i*pi*t/2 * I) is the global phase -t/2 half-turns.
		c.AddPhase(t.Coeff.ScaleRat(ratHalf()).Neg())
		return c, nil
	}

	if err := basisChange(c, t, active, false); err != nil {
		return nil, err
	}
	target, undo, err := entangle(c, active, cfg)
	if err != nil {
		return nil, err
	}
	if err := c.AddParamGate(circuit.OpRz, t.Coeff, target); err != nil {
		return nil, err
	}
	if err := undo(); err != nil {
		return nil, err
	}
	if err := basisChange(c, t, active, true); err != nil {
		return nil, err
	}
	return c, nil
}

// PairGadget synthesises the product U1*U0 of two exponentials over the
// same width: the circuit applies the first gadget, then the second.
func PairGadget(t0, t1 pauli.Tensor, cfg CXConfig) (*circuit.Circuit, error) {
	if t0.Size() != t1.Size() {
		return nil, fmt.Errorf("synth: pair gadget tensors differ in length (%d vs %d)",
			t0.Size(), t1.Size())
	}
	c := circuit.New(t0.Size())
	g0, err := PauliGadget(t0, cfg)
	if err != nil {
		return nil, err
	}
	g1, err := PauliGadget(t1, cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Append(g0); err != nil {
		return nil, err
	}
	if err := c.Append(g1); err != nil {
		return nil, err
	}
	return c, nil
}

// basisChange conjugates each active qubit so its letter becomes Z:
// H for X, V for Y (V maps Y to Z). Inverse order is irrelevant since
// the changes act on disjoint qubits.
func basisChange(c *circuit.Circuit, t pauli.Tensor, active []int, uncompute bool) error {
	for _, q := range active {
		switch t.String[q] {
		case pauli.X:
			if err := c.AddGate(circuit.OpH, q); err != nil {
				return err
			}
		case pauli.Y:
			op := circuit.OpV
			if uncompute {
				op = circuit.OpVdg
			}
			if err := c.AddGate(op, q); err != nil {
				return err
			}
		}
	}
	return nil
}

// entangle emits the configured ladder collecting the joint parity of
// the active qubits onto a single target, returning the target and a
// closure that undoes the ladder.
func entangle(c *circuit.Circuit, active []int, cfg CXConfig) (int, func() error, error) {
	type cx struct{ ctrl, tgt int }
	var ladder []cx
	target := active[len(active)-1]

	switch cfg {
	case Snake:
		for i := 0; i+1 < len(active); i++ {
			ladder = append(ladder, cx{active[i], active[i+1]})
		}
	case Star:
		for i := 0; i+1 < len(active); i++ {
			ladder = append(ladder, cx{active[i], target})
		}
	case Tree:
		current := active
		for len(current) > 1 {
			var next []int
			for i := 0; i+1 < len(current); i += 2 {
				ladder = append(ladder, cx{current[i], current[i+1]})
				next = append(next, current[i+1])
			}
			if len(current)%2 == 1 {
				next = append(next, current[len(current)-1])
			}
			current = next
		}
		target = current[0]
	case MultiQGate:
		return entangleMultiQ(c, active)
	}

	for _, g := range ladder {
		if err := c.AddGate(circuit.OpCX, g.ctrl, g.tgt); err != nil {
			return 0, nil, err
		}
	}
	undo := func() error {
		for i := len(ladder) - 1; i >= 0; i-- {
			if err := c.AddGate(circuit.OpCX, ladder[i].ctrl, ladder[i].tgt); err != nil {
				return err
			}
		}
		return nil
	}
	return target, undo, nil
}

// entangleMultiQ folds pairs of active qubits onto the target with
// XXPhase3 interactions in the X basis; a single leftover qubit folds
// with a plain CX. The uncompute closure mirrors the sequence with
// negated angles.
func entangleMultiQ(c *circuit.Circuit, active []int) (int, func() error, error) {
	target := active[len(active)-1]
	rest := active[:len(active)-1]
	half := symexpr.FromRat(ratHalf())

	var folded [][2]int
	leftover := -1
	i := 0
	for ; i+1 < len(rest); i += 2 {
		folded = append(folded, [2]int{rest[i], rest[i+1]})
	}
	if i < len(rest) {
		leftover = rest[i]
	}

	for _, pair := range folded {
		for _, q := range []int{pair[0], pair[1], target} {
			if err := c.AddGate(circuit.OpH, q); err != nil {
				return 0, nil, err
			}
		}
		if err := c.AddParamGate(circuit.OpXXPhase3, half, pair[0], pair[1], target); err != nil {
			return 0, nil, err
		}
		for _, q := range []int{pair[0], pair[1], target} {
			if err := c.AddGate(circuit.OpH, q); err != nil {
				return 0, nil, err
			}
		}
	}
	if leftover >= 0 {
		if err := c.AddGate(circuit.OpCX, leftover, target); err != nil {
			return 0, nil, err
		}
	}

	undo := func() error {
		if leftover >= 0 {
			if err := c.AddGate(circuit.OpCX, leftover, target); err != nil {
				return err
			}
		}
		for j := len(folded) - 1; j >= 0; j-- {
			pair := folded[j]
			for _, q := range []int{pair[0], pair[1], target} {
				if err := c.AddGate(circuit.OpH, q); err != nil {
					return err
				}
			}
			if err := c.AddParamGate(circuit.OpXXPhase3, half.Neg(), pair[0], pair[1], target); err != nil {
				return err
			}
			for _, q := range []int{pair[0], pair[1], target} {
				if err := c.AddGate(circuit.OpH, q); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return target, undo, nil
}
