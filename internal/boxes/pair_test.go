package boxes

import (
	"encoding/json"
	"testing"

	"qirc/internal/pauli"
	"qirc/internal/qerrors"
	"qirc/internal/symexpr"
	"qirc/internal/synth"
)

func TestPauliExpPairBoxConstruction(t *testing.T) {
	t0 := pauli.NewTensor([]pauli.Letter{pauli.X, pauli.I}, symexpr.FromFloat(0.25))
	t1 := pauli.NewTensor([]pauli.Letter{pauli.I, pauli.Z}, symexpr.FromFloat(0.5))
	box, err := NewPauliExpPairBox(t0, t1, synth.Snake)
	if err != nil {
		t.Fatalf("NewPauliExpPairBox failed: %v", err)
	}
	if box.NQubits() != 2 {
		t.Errorf("NQubits() = %d, want 2", box.NQubits())
	}
	p0, p1 := box.PaulisPair()
	if p0.String[0] != pauli.X || p1.String[1] != pauli.Z {
		t.Error("PaulisPair order must be preserved")
	}

	short := pauli.NewTensor([]pauli.Letter{pauli.X}, symexpr.Zero())
	if _, err := NewPauliExpPairBox(t0, short, synth.Snake); !qerrors.HasCode(err, qerrors.InvalidPauliExp) {
		t.Errorf("length mismatch: got %v, want %s", err, qerrors.InvalidPauliExp)
	}
}

func TestPauliExpPairBoxDaggerReversesOrder(t *testing.T) {
	t0 := pauli.NewTensor([]pauli.Letter{pauli.X}, symexpr.FromFloat(0.25))
	t1 := pauli.NewTensor([]pauli.Letter{pauli.Z}, symexpr.FromFloat(0.5))
	box, err := NewPauliExpPairBox(t0, t1, synth.Snake)
	if err != nil {
		t.Fatal(err)
	}

	dg := box.Dagger().(*PauliExpPairBox)
	d0, d1 := dg.PaulisPair()
	// (U1 U0)^dagger = U0^dagger U1^dagger: slots swap and negate.
	if d0.String[0] != pauli.Z || !d0.Coeff.Equal(symexpr.FromFloat(-0.5)) {
		t.Errorf("dagger slot 0 = %v @ %s, want Z @ -1/2", d0.String, d0.Coeff)
	}
	if d1.String[0] != pauli.X || !d1.Coeff.Equal(symexpr.FromFloat(-0.25)) {
		t.Errorf("dagger slot 1 = %v @ %s, want X @ -1/4", d1.String, d1.Coeff)
	}
	if !box.IsEqual(dg.Dagger()) {
		t.Error("double dagger should equal the original")
	}
}

func TestPauliExpPairBoxTranspose(t *testing.T) {
	t0 := pauli.NewTensor([]pauli.Letter{pauli.Y}, symexpr.FromFloat(0.25))
	t1 := pauli.NewTensor([]pauli.Letter{pauli.X}, symexpr.FromFloat(0.5))
	box, err := NewPauliExpPairBox(t0, t1, synth.Snake)
	if err != nil {
		t.Fatal(err)
	}
	tr := box.Transpose().(*PauliExpPairBox)
	r0, r1 := tr.PaulisPair()
	// (U1 U0)^T = U0^T U1^T: slots swap, each transposed.
	if r0.String[0] != pauli.X || !r0.Coeff.Equal(symexpr.FromFloat(0.5)) {
		t.Errorf("transpose slot 0 = %v @ %s", r0.String, r0.Coeff)
	}
	if r1.String[0] != pauli.Y || !r1.Coeff.Equal(symexpr.FromFloat(-0.25)) {
		t.Errorf("transpose slot 1 = %v @ %s, odd Y count negates", r1.String, r1.Coeff)
	}
}

func TestPauliExpPairBoxJSONRoundTrip(t *testing.T) {
	t0 := pauli.NewTensor([]pauli.Letter{pauli.X, pauli.Y}, symexpr.Symbol("beta"))
	t1 := pauli.NewTensor([]pauli.Letter{pauli.Z, pauli.I}, symexpr.FromFloat(0.5))
	box, err := NewPauliExpPairBox(t0, t1, synth.MultiQGate)
	if err != nil {
		t.Fatal(err)
	}
	data, err := ToJSON(box)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var fields struct {
		PaulisPair [][]string `json:"paulis_pair"`
		PhasePair  []string   `json:"phase_pair"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	if len(fields.PaulisPair) != 2 || len(fields.PhasePair) != 2 {
		t.Fatalf("pair fields = %v / %v", fields.PaulisPair, fields.PhasePair)
	}

	back, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if back.ID() != box.ID() || !back.IsEqual(box) {
		t.Error("round trip lost identity or content")
	}
}

func TestPauliExpPairBoxJSONRejectsBadPairs(t *testing.T) {
	raw := `{"id":"f47ac10b-58cc-4372-a567-0e02b2c3d479","type":"PauliExpPairBox",` +
		`"paulis_pair":[["X"]],"phase_pair":["0.5"],"cx_config":"Tree"}`
	if _, err := FromJSON([]byte(raw)); !qerrors.HasCode(err, qerrors.MalformedJson) {
		t.Errorf("one-entry pairs: got %v, want %s", err, qerrors.MalformedJson)
	}
}
