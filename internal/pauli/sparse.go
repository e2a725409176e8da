package pauli

import (
	"qirc/internal/symexpr"
)

// SparseTensor maps device qubits to Pauli letters, with a symbolic
// coefficient. Identity letters are never stored.
type SparseTensor struct {
	String map[Node]Letter
	Coeff  symexpr.Expr
}

// NewSparseTensor builds a sparse tensor, dropping identity entries.
func NewSparseTensor(letters map[Node]Letter, coeff symexpr.Expr) SparseTensor {
	s := make(map[Node]Letter, len(letters))
	for nd, p := range letters {
		if p != I {
			s[nd] = p
		}
	}
	return SparseTensor{String: s, Coeff: coeff}
}

// Get returns the letter on nd, I if absent.
func (t SparseTensor) Get(nd Node) Letter {
	return t.String[nd]
}

// Set assigns a letter to nd, removing the entry when p is I.
func (t SparseTensor) Set(nd Node, p Letter) {
	if p == I {
		delete(t.String, nd)
	} else {
		t.String[nd] = p
	}
}

// Size returns the number of non-identity entries.
func (t SparseTensor) Size() int {
	return len(t.String)
}

// Nodes returns the support of the tensor in sorted node order.
func (t SparseTensor) Nodes() []Node {
	out := make([]Node, 0, len(t.String))
	for nd := range t.String {
		out = append(out, nd)
	}
	SortNodes(out)
	return out
}

// CommutesWith reports whether the two sparse strings commute; only
// qubits in the support intersection can contribute conflicts.
func (t SparseTensor) CommutesWith(o SparseTensor) bool {
	conflicts := 0
	for nd, p := range t.String {
		if q, ok := o.String[nd]; ok && anticommutes(p, q) {
			conflicts++
		}
	}
	return conflicts%2 == 0
}

// Dense lays the sparse tensor out over the ordered qubit list,
// preserving the coefficient. Qubits outside the support become I.
func (t SparseTensor) Dense(order []Node) Tensor {
	letters := make([]Letter, len(order))
	for i, nd := range order {
		letters[i] = t.String[nd]
	}
	return Tensor{String: letters, Coeff: t.Coeff}
}
