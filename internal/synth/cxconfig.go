// Package synth builds the gate-level circuits behind the
// Pauli-exponential boxes: single and paired gadget synthesis under a
// configurable entanglement pattern, mutual diagonalisation of
// commuting sets, phase-polynomial resynthesis, and conjugation
// wrapping.
package synth

import (
	"encoding/json"
	"fmt"
)

// CXConfig selects the CNOT-ladder shape used when synthesising a
// Pauli gadget. It changes the emitted circuit, never the unitary.
type CXConfig string

const (
	Snake      CXConfig = "Snake"
	Tree       CXConfig = "Tree"
	Star       CXConfig = "Star"
	MultiQGate CXConfig = "MultiQGate"
)

// Valid reports whether c is one of the defined configurations.
func (c CXConfig) Valid() bool {
	switch c {
	case Snake, Tree, Star, MultiQGate:
		return true
	}
	return false
}

// MarshalJSON encodes the configuration name.
func (c CXConfig) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("synth: invalid CX configuration %q", string(c))
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON decodes and validates a configuration name.
func (c *CXConfig) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := CXConfig(s)
	if !v.Valid() {
		return fmt.Errorf("synth: invalid CX configuration %q", s)
	}
	*c = v
	return nil
}
