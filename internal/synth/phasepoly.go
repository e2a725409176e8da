package synth

import (
	"fmt"

	"qirc/internal/circuit"
	"qirc/internal/symexpr"
)

// PhasePolyBox wraps a CX+Rz circuit as its phase-polynomial
// representation: a set of parity terms with merged angles plus the
// final linear function over GF(2).
type PhasePolyBox struct {
	n      int
	source *circuit.Circuit
}

// NewPhasePolyBox validates that the circuit contains only CX and Rz
// commands (plus global phase) and wraps it.
func NewPhasePolyBox(c *circuit.Circuit) (*PhasePolyBox, error) {
	for _, cmd := range c.Commands() {
		switch cmd.Type {
		case circuit.OpCX, circuit.OpRz:
		default:
			return nil, fmt.Errorf("synth: phase polynomial requires CX/Rz circuit, found %s", cmd.Type)
		}
	}
	return &PhasePolyBox{n: c.NQubits(), source: c}, nil
}

// NQubits returns the box arity.
func (b *PhasePolyBox) NQubits() int {
	return b.n
}

// ToCircuit resynthesises the phase polynomial: rotations on the same
// parity are merged into one term, then the original CX skeleton is
// replayed and each merged rotation is emitted at the first point its
// parity is live on a wire. The final linear function is preserved.
func (b *PhasePolyBox) ToCircuit() (*circuit.Circuit, error) {
	type term struct {
		key   string
		angle symexpr.Expr
	}
	var terms []term
	index := make(map[string]int)

	wires := identityParities(b.n)
	for _, cmd := range b.source.Commands() {
		switch cmd.Type {
		case circuit.OpCX:
			xorInto(wires[cmd.Qubits[1]], wires[cmd.Qubits[0]])
		case circuit.OpRz:
			key := parityKey(wires[cmd.Qubits[0]])
			if i, ok := index[key]; ok {
				terms[i].angle = terms[i].angle.Add(cmd.Param)
			} else {
				index[key] = len(terms)
				terms = append(terms, term{key: key, angle: cmd.Param})
			}
		}
	}

	out := circuit.New(b.n)
	out.AddPhase(b.source.Phase())
	placed := make([]bool, len(terms))
	wires = identityParities(b.n)

	place := func() error {
		for q := 0; q < b.n; q++ {
			i, ok := index[parityKey(wires[q])]
			if !ok || placed[i] {
				continue
			}
			placed[i] = true
			if terms[i].angle.IsZero() {
				continue
			}
			if err := out.AddParamGate(circuit.OpRz, terms[i].angle, q); err != nil {
				return err
			}
		}
		return nil
	}

	if err := place(); err != nil {
		return nil, err
	}
	for _, cmd := range b.source.Commands() {
		if cmd.Type != circuit.OpCX {
			continue
		}
		if err := out.AddGate(circuit.OpCX, cmd.Qubits[0], cmd.Qubits[1]); err != nil {
			return nil, err
		}
		xorInto(wires[cmd.Qubits[1]], wires[cmd.Qubits[0]])
		if err := place(); err != nil {
			return nil, err
		}
	}

	for i := range terms {
		if !placed[i] {
			return nil, fmt.Errorf("synth: phase term %q never became live", terms[i].key)
		}
	}
	return out, nil
}

func identityParities(n int) [][]bool {
	out := make([][]bool, n)
	for i := range out {
		out[i] = make([]bool, n)
		out[i][i] = true
	}
	return out
}

func xorInto(dst, src []bool) {
	for i := range dst {
		dst[i] = dst[i] != src[i]
	}
}

func parityKey(bits []bool) string {
	buf := make([]byte, len(bits))
	for i, b := range bits {
		if b {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
