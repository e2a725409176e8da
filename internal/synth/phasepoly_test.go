package synth

import (
	"testing"

	"qirc/internal/circuit"
	"qirc/internal/symexpr"
)

func TestPhasePolyRejectsOtherGates(t *testing.T) {
	c := circuit.New(1)
	if err := c.AddGate(circuit.OpH, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPhasePolyBox(c); err == nil {
		t.Error("H is not a phase-polynomial gate")
	}
}

func TestPhasePolyMergesEqualParities(t *testing.T) {
	a := symexpr.FromFloat(0.25)
	b := symexpr.FromFloat(0.5)

	// Two rotations on the same parity q0^q1, separated by a ladder
	// round trip.
	c := circuit.New(2)
	steps := []func() error{
		func() error { return c.AddGate(circuit.OpCX, 0, 1) },
		func() error { return c.AddParamGate(circuit.OpRz, a, 1) },
		func() error { return c.AddGate(circuit.OpCX, 0, 1) },
		func() error { return c.AddGate(circuit.OpCX, 0, 1) },
		func() error { return c.AddParamGate(circuit.OpRz, b, 1) },
		func() error { return c.AddGate(circuit.OpCX, 0, 1) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}

	box, err := NewPhasePolyBox(c)
	if err != nil {
		t.Fatalf("NewPhasePolyBox failed: %v", err)
	}
	out, err := box.ToCircuit()
	if err != nil {
		t.Fatalf("ToCircuit failed: %v", err)
	}

	if got := out.CountOps(circuit.OpRz); got != 1 {
		t.Fatalf("%d Rz commands after merging, want 1", got)
	}
	for _, cmd := range out.Commands() {
		if cmd.Type == circuit.OpRz && !cmd.Param.Equal(a.Add(b)) {
			t.Errorf("merged angle = %s, want %s", cmd.Param, a.Add(b))
		}
	}
	// The CX skeleton is preserved, so the final linear function is the
	// identity it started as.
	if got := out.CountOps(circuit.OpCX); got != 4 {
		t.Errorf("%d CX commands, want 4", got)
	}
}

func TestPhasePolyDropsCancelledTerms(t *testing.T) {
	a := symexpr.FromFloat(0.25)
	c := circuit.New(2)
	if err := c.AddGate(circuit.OpCX, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.AddParamGate(circuit.OpRz, a, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.AddParamGate(circuit.OpRz, a.Neg(), 1); err != nil {
		t.Fatal(err)
	}
	if err := c.AddGate(circuit.OpCX, 0, 1); err != nil {
		t.Fatal(err)
	}

	box, err := NewPhasePolyBox(c)
	if err != nil {
		t.Fatal(err)
	}
	out, err := box.ToCircuit()
	if err != nil {
		t.Fatalf("ToCircuit failed: %v", err)
	}
	if got := out.CountOps(circuit.OpRz); got != 0 {
		t.Errorf("%d Rz commands, want 0 (angles cancel)", got)
	}
}

func TestPhasePolyDistinctParities(t *testing.T) {
	a := symexpr.FromFloat(0.25)
	b := symexpr.FromFloat(0.5)
	c := circuit.New(2)
	if err := c.AddParamGate(circuit.OpRz, a, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.AddGate(circuit.OpCX, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.AddParamGate(circuit.OpRz, b, 1); err != nil {
		t.Fatal(err)
	}

	box, err := NewPhasePolyBox(c)
	if err != nil {
		t.Fatal(err)
	}
	out, err := box.ToCircuit()
	if err != nil {
		t.Fatalf("ToCircuit failed: %v", err)
	}
	if got := out.CountOps(circuit.OpRz); got != 2 {
		t.Errorf("%d Rz commands, want 2 (distinct parities stay separate)", got)
	}
}

func TestConjugationBox(t *testing.T) {
	compute := circuit.New(2)
	if err := compute.AddGate(circuit.OpH, 0); err != nil {
		t.Fatal(err)
	}
	if err := compute.AddGate(circuit.OpCX, 0, 1); err != nil {
		t.Fatal(err)
	}
	action := circuit.New(2)
	if err := action.AddParamGate(circuit.OpRz, symexpr.Symbol("beta"), 1); err != nil {
		t.Fatal(err)
	}

	box, err := NewConjugationBox(compute, action)
	if err != nil {
		t.Fatalf("NewConjugationBox failed: %v", err)
	}
	out, err := box.ToCircuit()
	if err != nil {
		t.Fatalf("ToCircuit failed: %v", err)
	}
	cmds := out.Commands()
	if len(cmds) != 5 {
		t.Fatalf("have %d commands, want 5 (compute, action, uncompute)", len(cmds))
	}
	// Uncompute runs in reverse: CX then H.
	if cmds[3].Type != circuit.OpCX || cmds[4].Type != circuit.OpH {
		t.Errorf("uncompute tail = [%s %s], want [CX H]", cmds[3].Type, cmds[4].Type)
	}

	wide := circuit.New(3)
	if _, err := NewConjugationBox(compute, wide); err == nil {
		t.Error("action wider than compute should be rejected")
	}
}
