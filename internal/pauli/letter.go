// Package pauli implements the Pauli-string algebra of the IR: letters,
// qubit unit IDs, and dense/sparse Pauli tensors with symbolic
// coefficients.
package pauli

import (
	"encoding/json"
	"fmt"
)

// Letter is a single-qubit Pauli operator.
type Letter uint8

const (
	I Letter = iota
	X
	Y
	Z
)

// String returns the one-character name of the letter.
func (p Letter) String() string {
	switch p {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return fmt.Sprintf("Letter(%d)", uint8(p))
}

// ParseLetter converts a one-character name to a Letter.
func ParseLetter(s string) (Letter, error) {
	switch s {
	case "I":
		return I, nil
	case "X":
		return X, nil
	case "Y":
		return Y, nil
	case "Z":
		return Z, nil
	}
	return I, fmt.Errorf("pauli: invalid Pauli letter %q", s)
}

// MarshalJSON encodes the letter as its one-character name.
func (p Letter) MarshalJSON() ([]byte, error) {
	if p > Z {
		return nil, fmt.Errorf("pauli: invalid Pauli letter %d", uint8(p))
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a one-character letter name.
func (p *Letter) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseLetter(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// anticommutes reports whether two letters anticommute. Identity
// commutes with everything; distinct non-identity letters anticommute.
func anticommutes(a, b Letter) bool {
	return a != I && b != I && a != b
}
