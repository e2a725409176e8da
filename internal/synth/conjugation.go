package synth

import (
	"fmt"

	"qirc/internal/circuit"
)

// ConjugationBox represents compute * action * compute-dagger. The
// compute stage must be daggerable (no unflattened boxes).
type ConjugationBox struct {
	compute *circuit.Circuit
	action  *circuit.Circuit
}

// NewConjugationBox wraps a compute/action pair. The action may be
// narrower than the compute stage, never wider.
func NewConjugationBox(compute, action *circuit.Circuit) (*ConjugationBox, error) {
	if action.NQubits() > compute.NQubits() {
		return nil, fmt.Errorf("synth: conjugation action is wider (%d) than compute (%d)",
			action.NQubits(), compute.NQubits())
	}
	return &ConjugationBox{compute: compute, action: action}, nil
}

// NQubits returns the box arity.
func (b *ConjugationBox) NQubits() int {
	return b.compute.NQubits()
}

// Compute returns the compute stage.
func (b *ConjugationBox) Compute() *circuit.Circuit {
	return b.compute
}

// Action returns the action stage.
func (b *ConjugationBox) Action() *circuit.Circuit {
	return b.action
}

// ToCircuit lowers to compute; action; compute-dagger.
func (b *ConjugationBox) ToCircuit() (*circuit.Circuit, error) {
	out := circuit.New(b.compute.NQubits())
	if err := out.Append(b.compute); err != nil {
		return nil, err
	}
	if err := out.Append(b.action); err != nil {
		return nil, err
	}
	undo, err := b.compute.Dagger()
	if err != nil {
		return nil, err
	}
	if err := out.Append(undo); err != nil {
		return nil, err
	}
	return out, nil
}
