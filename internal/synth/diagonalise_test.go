package synth

import (
	"testing"

	"qirc/internal/circuit"
	"qirc/internal/pauli"
	"qirc/internal/symexpr"
)

func gadget(coeff float64, letters ...pauli.Letter) *pauli.Tensor {
	t := pauli.NewTensor(letters, symexpr.FromFloat(coeff))
	return &t
}

func assertDiagonal(t *testing.T, gadgets []*pauli.Tensor) {
	t.Helper()
	for i, g := range gadgets {
		for q, p := range g.String {
			if p != pauli.I && p != pauli.Z {
				t.Errorf("gadget %d qubit %d holds %s after diagonalisation", i, q, p)
			}
		}
	}
}

func TestMutualDiagonaliseSingleY(t *testing.T) {
	g := gadget(0.5, pauli.Y)
	cliff, err := MutualDiagonalise([]*pauli.Tensor{g}, 1, Snake)
	if err != nil {
		t.Fatalf("MutualDiagonalise failed: %v", err)
	}
	if g.String[0] != pauli.Z {
		t.Errorf("Y should diagonalise to Z, got %s", g.String[0])
	}
	// S maps Y to -X, H maps -X to -Z: the sign lands in the coefficient.
	if !g.Coeff.Equal(symexpr.FromFloat(-0.5)) {
		t.Errorf("coefficient = %s, want -1/2", g.Coeff)
	}
	cmds := cliff.Commands()
	if len(cmds) != 2 || cmds[0].Type != circuit.OpH || cmds[1].Type != circuit.OpSdg {
		t.Errorf("Clifford = %v, want [H Sdg]", cmds)
	}
}

func TestMutualDiagonaliseXXZZ(t *testing.T) {
	g0 := gadget(0.25, pauli.X, pauli.X)
	g1 := gadget(0.5, pauli.Z, pauli.Z)
	cliff, err := MutualDiagonalise([]*pauli.Tensor{g0, g1}, 2, Snake)
	if err != nil {
		t.Fatalf("MutualDiagonalise failed: %v", err)
	}
	if g0.String[0] != pauli.Z || g0.String[1] != pauli.I {
		t.Errorf("XX diagonalised to %v, want ZI", g0.String)
	}
	if g1.String[0] != pauli.I || g1.String[1] != pauli.Z {
		t.Errorf("ZZ diagonalised to %v, want IZ", g1.String)
	}
	if !g0.Coeff.Equal(symexpr.FromFloat(0.25)) || !g1.Coeff.Equal(symexpr.FromFloat(0.5)) {
		t.Errorf("coefficients changed: %s, %s", g0.Coeff, g1.Coeff)
	}
	cmds := cliff.Commands()
	if len(cmds) != 2 || cmds[0].Type != circuit.OpH || cmds[1].Type != circuit.OpCX {
		t.Errorf("Clifford = %v, want [H CX]", cmds)
	}
}

func TestMutualDiagonaliseLargerSet(t *testing.T) {
	gadgets := []*pauli.Tensor{
		gadget(0.25, pauli.Z, pauli.Z, pauli.I),
		gadget(0.5, pauli.I, pauli.Z, pauli.Z),
		gadget(0.75, pauli.X, pauli.X, pauli.X),
	}
	for i, a := range gadgets {
		for _, b := range gadgets[i+1:] {
			if !a.CommutesWith(*b) {
				t.Fatalf("test set is not commuting at %d", i)
			}
		}
	}
	cliff, err := MutualDiagonalise(gadgets, 3, Snake)
	if err != nil {
		t.Fatalf("MutualDiagonalise failed: %v", err)
	}
	assertDiagonal(t, gadgets)
	for _, cmd := range cliff.Commands() {
		switch cmd.Type {
		case circuit.OpH, circuit.OpS, circuit.OpSdg, circuit.OpCX, circuit.OpCZ:
		default:
			t.Errorf("non-Clifford command %s in diagonalising circuit", cmd.Type)
		}
	}
}

func TestMutualDiagonaliseRejectsAnticommuting(t *testing.T) {
	gadgets := []*pauli.Tensor{
		gadget(0.1, pauli.X),
		gadget(0.1, pauli.Z),
	}
	if _, err := MutualDiagonalise(gadgets, 1, Snake); err == nil {
		t.Error("anticommuting gadgets should be rejected")
	}
}

func TestMutualDiagonaliseEmpty(t *testing.T) {
	cliff, err := MutualDiagonalise(nil, 3, Snake)
	if err != nil {
		t.Fatalf("MutualDiagonalise failed: %v", err)
	}
	if len(cliff.Commands()) != 0 {
		t.Errorf("empty set should yield an empty Clifford, got %d commands", len(cliff.Commands()))
	}
}
