package boxes

import (
	"encoding/json"
	"testing"

	"qirc/internal/circuit"
	"qirc/internal/pauli"
	"qirc/internal/qerrors"
	"qirc/internal/symexpr"
	"qirc/internal/synth"
)

func commutingSet() []pauli.Tensor {
	return []pauli.Tensor{
		pauli.NewTensor([]pauli.Letter{pauli.Z, pauli.Z, pauli.I}, symexpr.FromFloat(0.25)),
		pauli.NewTensor([]pauli.Letter{pauli.I, pauli.Z, pauli.Z}, symexpr.FromFloat(0.5)),
		pauli.NewTensor([]pauli.Letter{pauli.X, pauli.X, pauli.X}, symexpr.Symbol("gamma")),
	}
}

func TestCommutingSetBoxValidation(t *testing.T) {
	if _, err := NewPauliExpCommutingSetBox(nil, synth.Tree); !qerrors.HasCode(err, qerrors.InvalidPauliExp) {
		t.Errorf("empty set: got %v, want %s", err, qerrors.InvalidPauliExp)
	}

	mismatch := []pauli.Tensor{
		pauli.NewTensor([]pauli.Letter{pauli.Z}, symexpr.Zero()),
		pauli.NewTensor([]pauli.Letter{pauli.Z, pauli.Z}, symexpr.Zero()),
	}
	if _, err := NewPauliExpCommutingSetBox(mismatch, synth.Tree); !qerrors.HasCode(err, qerrors.InvalidPauliExp) {
		t.Errorf("length mismatch: got %v, want %s", err, qerrors.InvalidPauliExp)
	}

	anticommuting := []pauli.Tensor{
		pauli.NewTensor([]pauli.Letter{pauli.X}, symexpr.FromFloat(0.1)),
		pauli.NewTensor([]pauli.Letter{pauli.Z}, symexpr.FromFloat(0.1)),
	}
	if _, err := NewPauliExpCommutingSetBox(anticommuting, synth.Tree); !qerrors.HasCode(err, qerrors.InvalidPauliExp) {
		t.Errorf("anticommuting pair: got %v, want %s", err, qerrors.InvalidPauliExp)
	}
}

func TestCommutingSetBoxAccessors(t *testing.T) {
	box, err := NewPauliExpCommutingSetBox(commutingSet(), synth.Tree)
	if err != nil {
		t.Fatalf("NewPauliExpCommutingSetBox failed: %v", err)
	}
	if box.NQubits() != 3 {
		t.Errorf("NQubits() = %d, want 3", box.NQubits())
	}
	gadgets := box.PauliGadgets()
	if len(gadgets) != 3 || gadgets[2].String[0] != pauli.X {
		t.Errorf("PauliGadgets order not preserved: %v", gadgets)
	}
	if syms := box.FreeSymbols(); len(syms) != 1 || syms[0] != "gamma" {
		t.Errorf("FreeSymbols() = %v", syms)
	}
	if box.IsClifford() {
		t.Error("a 1/4 phase gadget is not Clifford")
	}
}

func TestCommutingSetBoxDagger(t *testing.T) {
	box, err := NewPauliExpCommutingSetBox(commutingSet(), synth.Tree)
	if err != nil {
		t.Fatal(err)
	}
	dg := box.Dagger().(*PauliExpCommutingSetBox)
	gadgets := dg.PauliGadgets()
	// Commuting factors: order survives, coefficients negate.
	if !gadgets[0].Coeff.Equal(symexpr.FromFloat(-0.25)) {
		t.Errorf("dagger coeff 0 = %s, want -1/4", gadgets[0].Coeff)
	}
	if gadgets[0].String[0] != pauli.Z {
		t.Error("dagger must not change strings")
	}
	if !box.IsEqual(dg.Dagger()) {
		t.Error("double dagger should equal the original")
	}
}

func TestCommutingSetBoxSubstitution(t *testing.T) {
	box, err := NewPauliExpCommutingSetBox(commutingSet(), synth.Tree)
	if err != nil {
		t.Fatal(err)
	}
	sub := box.SymbolSubstitution(map[string]symexpr.Expr{"gamma": symexpr.FromFloat(0.5)})
	if len(sub.FreeSymbols()) != 0 {
		t.Errorf("substituted box still has symbols: %v", sub.FreeSymbols())
	}
	got := sub.(*PauliExpCommutingSetBox).PauliGadgets()[2].Coeff
	if !got.Equal(symexpr.FromFloat(0.5)) {
		t.Errorf("substituted coeff = %s, want 1/2", got)
	}
}

func TestCommutingSetBoxToCircuit(t *testing.T) {
	box, err := NewPauliExpCommutingSetBox(commutingSet(), synth.Tree)
	if err != nil {
		t.Fatal(err)
	}
	circ, err := box.ToCircuit()
	if err != nil {
		t.Fatalf("ToCircuit failed: %v", err)
	}
	if circ.NQubits() != 3 {
		t.Errorf("lowered width = %d, want 3", circ.NQubits())
	}

	flat := circuit.New(3)
	if err := flat.Append(circ); err != nil {
		t.Fatal(err)
	}
	if err := flat.DecomposeBoxesRecursively(); err != nil {
		t.Fatalf("DecomposeBoxesRecursively failed: %v", err)
	}
	if flat.CountOps(circuit.OpBox) != 0 {
		t.Error("lowering must flatten to concrete gates")
	}
	// Three gadgets on distinct parities: three rotations survive.
	if got := flat.CountOps(circuit.OpRz); got != 3 {
		t.Errorf("%d Rz commands, want 3", got)
	}

	// The box must not mutate its stored gadgets while lowering.
	gadgets := box.PauliGadgets()
	if gadgets[2].String[0] != pauli.X {
		t.Error("ToCircuit mutated the stored gadgets")
	}

	again, err := box.ToCircuit()
	if err != nil {
		t.Fatal(err)
	}
	if again != circ {
		t.Error("ToCircuit should return the cached circuit")
	}
}

func TestCommutingSetBoxJSONRoundTrip(t *testing.T) {
	box, err := NewPauliExpCommutingSetBox(commutingSet(), synth.Snake)
	if err != nil {
		t.Fatal(err)
	}
	data, err := ToJSON(box)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var fields struct {
		PauliGadgets []json.RawMessage `json:"pauli_gadgets"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	if len(fields.PauliGadgets) != 3 {
		t.Fatalf("pauli_gadgets has %d entries, want 3", len(fields.PauliGadgets))
	}
	// Each gadget is an unlabelled [paulis, phase] pair.
	var pair []json.RawMessage
	if err := json.Unmarshal(fields.PauliGadgets[0], &pair); err != nil || len(pair) != 2 {
		t.Fatalf("gadget entry = %s", fields.PauliGadgets[0])
	}

	back, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if back.ID() != box.ID() || !back.IsEqual(box) {
		t.Error("round trip lost identity or content")
	}
}
