package synth

import (
	"fmt"
	"math/big"

	"qirc/internal/circuit"
	"qirc/internal/pauli"
)

func ratHalf() *big.Rat {
	return big.NewRat(1, 2)
}

// tableau holds the binary symplectic form of a set of Pauli strings:
// row i represents gadget i, with per-qubit (x, z) bits. I=(0,0),
// X=(1,0), Z=(0,1), Y=(1,1). Sign flips from Clifford conjugation are
// pushed straight into the gadget coefficients.
type tableau struct {
	n       int
	x, z    [][]bool
	gadgets []*pauli.Tensor
	ops     []tableauOp
}

type tableauOp struct {
	op     circuit.OpType
	qubits []int
}

func newTableau(gadgets []*pauli.Tensor, n int) (*tableau, error) {
	t := &tableau{n: n, gadgets: gadgets}
	for i, g := range gadgets {
		if g.Size() != n {
			return nil, fmt.Errorf("synth: gadget %d has length %d, want %d", i, g.Size(), n)
		}
		xs := make([]bool, n)
		zs := make([]bool, n)
		for q, p := range g.String {
			switch p {
			case pauli.X:
				xs[q] = true
			case pauli.Y:
				xs[q], zs[q] = true, true
			case pauli.Z:
				zs[q] = true
			}
		}
		t.x = append(t.x, xs)
		t.z = append(t.z, zs)
	}
	return t, nil
}

func (t *tableau) flipSign(row int) {
	t.gadgets[row].Coeff = t.gadgets[row].Coeff.Neg()
}

// applyH conjugates every row by H on q: (x, z) -> (z, x), sign flips
// on Y.
func (t *tableau) applyH(q int) {
	for i := range t.x {
		if t.x[i][q] && t.z[i][q] {
			t.flipSign(i)
		}
		t.x[i][q], t.z[i][q] = t.z[i][q], t.x[i][q]
	}
	t.ops = append(t.ops, tableauOp{circuit.OpH, []int{q}})
}

// applyS conjugates by S on q: X -> Y, Y -> -X, Z fixed.
func (t *tableau) applyS(q int) {
	for i := range t.x {
		if t.x[i][q] && t.z[i][q] {
			t.flipSign(i)
		}
		t.z[i][q] = t.z[i][q] != t.x[i][q]
	}
	t.ops = append(t.ops, tableauOp{circuit.OpS, []int{q}})
}

// applyCX conjugates by CX(c, t): x_t ^= x_c, z_c ^= z_t, with the
// standard stabilizer sign rule.
func (t *tableau) applyCX(c, tq int) {
	for i := range t.x {
		if t.x[i][c] && t.z[i][tq] && t.x[i][tq] == t.z[i][c] {
			t.flipSign(i)
		}
		t.x[i][tq] = t.x[i][tq] != t.x[i][c]
		t.z[i][c] = t.z[i][c] != t.z[i][tq]
	}
	t.ops = append(t.ops, tableauOp{circuit.OpCX, []int{c, tq}})
}

// applyCZ conjugates by CZ(a, b), composed as H(b); CX(a, b); H(b) on
// the tableau while recording a single CZ gate.
func (t *tableau) applyCZ(a, b int) {
	for i := range t.x {
		// H(b)
		if t.x[i][b] && t.z[i][b] {
			t.flipSign(i)
		}
		t.x[i][b], t.z[i][b] = t.z[i][b], t.x[i][b]
		// CX(a, b)
		if t.x[i][a] && t.z[i][b] && t.x[i][b] == t.z[i][a] {
			t.flipSign(i)
		}
		t.x[i][b] = t.x[i][b] != t.x[i][a]
		t.z[i][a] = t.z[i][a] != t.z[i][b]
		// H(b)
		if t.x[i][b] && t.z[i][b] {
			t.flipSign(i)
		}
		t.x[i][b], t.z[i][b] = t.z[i][b], t.x[i][b]
	}
	t.ops = append(t.ops, tableauOp{circuit.OpCZ, []int{a, b}})
}

// MutualDiagonalise conjugates the mutually-commuting gadgets to Z/I
// form, mutating them in place (strings and coefficient signs), and
// returns the Clifford circuit C such that each original exponential
// equals C * (diagonalised exponential) * C-dagger.
//
// The elimination is a symplectic column sweep: each row's X-support is
// cleared to a single fresh pivot with CX (S first if the pivot holds
// Y), CZ removes Z couplings between pivot columns, and a final H on
// every pivot maps the remaining X to Z. Commutation of the input set
// guarantees rows whose X-support lies inside the pivot columns carry
// no Z there, so the sweep leaves every string diagonal.
//
// The CX configuration is accepted for interface parity with the
// gadget synthesiser; the elimination pattern is fixed.
func MutualDiagonalise(gadgets []*pauli.Tensor, n int, _ CXConfig) (*circuit.Circuit, error) {
	if len(gadgets) == 0 {
		return circuit.New(n), nil
	}
	for i, a := range gadgets {
		for _, b := range gadgets[i+1:] {
			if !a.CommutesWith(*b) {
				return nil, fmt.Errorf("synth: gadgets do not mutually commute")
			}
		}
	}

	t, err := newTableau(gadgets, n)
	if err != nil {
		return nil, err
	}

	isPivot := make([]bool, n)
	var pivots []int
	rowPivot := make([]int, len(gadgets))
	for i := range rowPivot {
		rowPivot[i] = -1
	}

	for i := range gadgets {
		pivot := -1
		for q := 0; q < n; q++ {
			if t.x[i][q] && !isPivot[q] {
				pivot = q
				break
			}
		}
		if pivot == -1 {
			continue
		}
		for q := 0; q < n; q++ {
			if q != pivot && t.x[i][q] {
				t.applyCX(pivot, q)
			}
		}
		if t.z[i][pivot] {
			t.applyS(pivot)
		}
		isPivot[pivot] = true
		pivots = append(pivots, pivot)
		rowPivot[i] = pivot
	}

	// Z couplings between pivot columns block the final basis change;
	// commutation makes them symmetric, so one CZ per pair clears both.
	for i := range gadgets {
		if rowPivot[i] == -1 {
			continue
		}
		for j := i + 1; j < len(gadgets); j++ {
			if rowPivot[j] == -1 {
				continue
			}
			if t.z[i][rowPivot[j]] {
				t.applyCZ(rowPivot[i], rowPivot[j])
			}
		}
	}

	for _, p := range pivots {
		t.applyH(p)
	}

	// Write the diagonalised strings back into the gadgets.
	for i, g := range gadgets {
		for q := 0; q < n; q++ {
			if t.x[i][q] {
				return nil, fmt.Errorf("synth: diagonalisation left X support on row %d qubit %d", i, q)
			}
			if t.z[i][q] {
				g.String[q] = pauli.Z
			} else {
				g.String[q] = pauli.I
			}
		}
	}

	// The recorded ops conjugate tensors as P -> g P g-dagger in
	// sequence; the returned circuit is the inverse: reversed order,
	// each gate daggered.
	cliff := circuit.New(n)
	for i := len(t.ops) - 1; i >= 0; i-- {
		op := t.ops[i]
		typ := op.op
		if typ == circuit.OpS {
			typ = circuit.OpSdg
		}
		if err := cliff.AddGate(typ, op.qubits...); err != nil {
			return nil, err
		}
	}
	return cliff, nil
}
