// Package boxes implements the Pauli-exponential circuit operators:
// single exponentials, ordered pairs, and mutually-commuting sets.
// Boxes are immutable after construction apart from a lazily populated
// circuit cache, carry a UUID identity, and round-trip through the
// operator factory registry as bit-exact JSON.
package boxes

import (
	"sort"

	"github.com/google/uuid"

	"qirc/internal/circuit"
	"qirc/internal/pauli"
	"qirc/internal/symexpr"
)

// Box is the capability surface shared by all Pauli-exponential
// operators. It extends the circuit collaborator interface with the
// algebraic rewrites the compiler applies to operators.
type Box interface {
	circuit.BoxOp

	// TypeTag returns the operator type tag used by the factory
	// registry and the JSON "type" field.
	TypeTag() string
	// ID returns the stable identity assigned at construction and
	// preserved across serialization.
	ID() uuid.UUID
	// IsClifford reports whether the box is a Clifford operator.
	IsClifford() bool
	// FreeSymbols returns the sorted free symbols of all coefficients.
	FreeSymbols() []string
	// Dagger returns the adjoint box.
	Dagger() Box
	// Transpose returns the transposed box.
	Transpose() Box
	// SymbolSubstitution returns a box with coefficients substituted.
	SymbolSubstitution(sub map[string]symexpr.Expr) Box
	// IsEqual compares boxes: identical UUID short-circuits, otherwise
	// structural equality with coefficients compared modulo 4.
	IsEqual(other Box) bool
}

// tensorIsClifford reports whether one exponential is Clifford: the
// angle is an integer multiple of 1/2 half-turns, or the string acts as
// identity.
func tensorIsClifford(t pauli.Tensor) bool {
	return t.Coeff.ScaleInt(4).EquivZeroMod(2) || t.IsIdentity()
}

// unionSymbols merges sorted symbol lists into one sorted list without
// duplicates.
func unionSymbols(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}
