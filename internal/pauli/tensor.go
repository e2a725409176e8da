package pauli

import (
	"qirc/internal/symexpr"
)

// Tensor pairs a dense Pauli string with a symbolic coefficient. The
// operator represented is exp(-i*pi*Coeff/2 * P0 (x) P1 (x) ...) with
// the coefficient in half-turns. Index position is the qubit index.
type Tensor struct {
	String []Letter
	Coeff  symexpr.Expr
}

// NewTensor builds a dense tensor over the given string and coefficient.
func NewTensor(letters []Letter, coeff symexpr.Expr) Tensor {
	s := make([]Letter, len(letters))
	copy(s, letters)
	return Tensor{String: s, Coeff: coeff}
}

// Size returns the length of the dense string.
func (t Tensor) Size() int {
	return len(t.String)
}

// Copy returns a deep copy of the tensor.
func (t Tensor) Copy() Tensor {
	return NewTensor(t.String, t.Coeff)
}

// Transpose mutates the tensor in place. Y is the only antisymmetric
// Pauli, so the coefficient is negated once per Y in the string.
func (t *Tensor) Transpose() {
	for _, p := range t.String {
		if p == Y {
			t.Coeff = t.Coeff.Neg()
		}
	}
}

// Dagger returns a new tensor with the coefficient negated.
func (t Tensor) Dagger() Tensor {
	return Tensor{String: t.String, Coeff: t.Coeff.Neg()}
}

// CommutesWith reports whether the two strings commute: the number of
// positions holding distinct non-identity letters must be even.
// Strings of different length are compared over the shorter prefix,
// the remainder acting as identity.
func (t Tensor) CommutesWith(o Tensor) bool {
	n := len(t.String)
	if len(o.String) < n {
		n = len(o.String)
	}
	conflicts := 0
	for i := 0; i < n; i++ {
		if anticommutes(t.String[i], o.String[i]) {
			conflicts++
		}
	}
	return conflicts%2 == 0
}

// EquivMod reports whether the strings are pointwise equal and the
// coefficients differ by an integer multiple of n.
func (t Tensor) EquivMod(o Tensor, n int64) bool {
	if len(t.String) != len(o.String) {
		return false
	}
	for i := range t.String {
		if t.String[i] != o.String[i] {
			return false
		}
	}
	return t.Coeff.EquivMod(o.Coeff, n)
}

// SymbolSubstitution returns a new tensor with the coefficient
// substituted.
func (t Tensor) SymbolSubstitution(sub map[string]symexpr.Expr) Tensor {
	return Tensor{String: t.String, Coeff: t.Coeff.Substitute(sub)}
}

// FreeSymbols returns the free symbols of the coefficient.
func (t Tensor) FreeSymbols() []string {
	return t.Coeff.FreeSymbols()
}

// Support returns the qubit indices carrying a non-identity letter, in
// index order.
func (t Tensor) Support() []int {
	var out []int
	for i, p := range t.String {
		if p != I {
			out = append(out, i)
		}
	}
	return out
}

// IsIdentity reports whether every letter is I (or the string is empty).
func (t Tensor) IsIdentity() bool {
	for _, p := range t.String {
		if p != I {
			return false
		}
	}
	return true
}
