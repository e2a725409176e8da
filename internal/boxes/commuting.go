package boxes

import (
	"encoding/json"

	"github.com/google/uuid"

	"qirc/internal/circuit"
	"qirc/internal/pauli"
	"qirc/internal/qerrors"
	"qirc/internal/symexpr"
	"qirc/internal/synth"
)

// TypePauliExpCommutingSetBox is the factory type tag for commuting
// sets.
const TypePauliExpCommutingSetBox = "PauliExpCommutingSetBox"

// PauliExpCommutingSetBox represents the product of Pauli exponentials
// that pairwise commute. The product order does not affect the unitary,
// only the synthesised circuit.
type PauliExpCommutingSetBox struct {
	gadgets  []pauli.Tensor
	cxConfig synth.CXConfig
	id       uuid.UUID
	cached   *circuit.Circuit
}

// NewPauliExpCommutingSetBox validates and builds a commuting-set box:
// the list must be non-empty, the strings all of one length, and every
// pair must commute.
func NewPauliExpCommutingSetBox(gadgets []pauli.Tensor, cfg synth.CXConfig) (*PauliExpCommutingSetBox, error) {
	if len(gadgets) == 0 {
		return nil, qerrors.New(qerrors.InvalidPauliExp,
			"a commuting-set box requires at least one Pauli string")
	}
	n := gadgets[0].Size()
	copies := make([]pauli.Tensor, len(gadgets))
	for i, g := range gadgets {
		if g.Size() != n {
			return nil, qerrors.New(qerrors.InvalidPauliExp,
				"the Pauli strings within a commuting-set box must all be the same length")
		}
		copies[i] = g.Copy()
	}
	for i, a := range copies {
		for _, b := range copies[i+1:] {
			if !a.CommutesWith(b) {
				return nil, qerrors.New(qerrors.InvalidPauliExp,
					"the Pauli strings defining a commuting-set box must all commute")
			}
		}
	}
	return &PauliExpCommutingSetBox{gadgets: copies, cxConfig: cfg, id: uuid.New()}, nil
}

// TypeTag implements Box.
func (b *PauliExpCommutingSetBox) TypeTag() string { return TypePauliExpCommutingSetBox }

// ID implements Box.
func (b *PauliExpCommutingSetBox) ID() uuid.UUID { return b.id }

// NQubits returns the box arity.
func (b *PauliExpCommutingSetBox) NQubits() int { return b.gadgets[0].Size() }

// PauliGadgets returns copies of the stored tensors in order.
func (b *PauliExpCommutingSetBox) PauliGadgets() []pauli.Tensor {
	out := make([]pauli.Tensor, len(b.gadgets))
	for i, g := range b.gadgets {
		out[i] = g.Copy()
	}
	return out
}

// CXConfig returns the entanglement pattern used when lowering.
func (b *PauliExpCommutingSetBox) CXConfig() synth.CXConfig { return b.cxConfig }

// IsClifford implements Box.
func (b *PauliExpCommutingSetBox) IsClifford() bool {
	for _, g := range b.gadgets {
		if !tensorIsClifford(g) {
			return false
		}
	}
	return true
}

// FreeSymbols implements Box.
func (b *PauliExpCommutingSetBox) FreeSymbols() []string {
	lists := make([][]string, len(b.gadgets))
	for i, g := range b.gadgets {
		lists[i] = g.FreeSymbols()
	}
	return unionSymbols(lists...)
}

// Dagger negates every coefficient. The list order is preserved, which
// is sound because the exponentials commute.
func (b *PauliExpCommutingSetBox) Dagger() Box {
	out := make([]pauli.Tensor, len(b.gadgets))
	for i, g := range b.gadgets {
		out[i] = g.Dagger()
	}
	return &PauliExpCommutingSetBox{gadgets: out, cxConfig: b.cxConfig, id: uuid.New()}
}

// Transpose transposes every tensor, preserving order.
func (b *PauliExpCommutingSetBox) Transpose() Box {
	out := make([]pauli.Tensor, len(b.gadgets))
	for i, g := range b.gadgets {
		tr := g.Copy()
		tr.Transpose()
		out[i] = tr
	}
	return &PauliExpCommutingSetBox{gadgets: out, cxConfig: b.cxConfig, id: uuid.New()}
}

// SymbolSubstitution substitutes every coefficient.
func (b *PauliExpCommutingSetBox) SymbolSubstitution(sub map[string]symexpr.Expr) Box {
	out := make([]pauli.Tensor, len(b.gadgets))
	for i, g := range b.gadgets {
		out[i] = g.SymbolSubstitution(sub)
	}
	return &PauliExpCommutingSetBox{gadgets: out, cxConfig: b.cxConfig, id: uuid.New()}
}

// IsEqual implements Box; tensors compare positionally modulo 4.
func (b *PauliExpCommutingSetBox) IsEqual(other Box) bool {
	o, ok := other.(*PauliExpCommutingSetBox)
	if !ok {
		return false
	}
	if b.id == o.id {
		return true
	}
	if b.cxConfig != o.cxConfig || len(b.gadgets) != len(o.gadgets) {
		return false
	}
	for i := range b.gadgets {
		if !b.gadgets[i].EquivMod(o.gadgets[i], 4) {
			return false
		}
	}
	return true
}

// ToCircuit lowers the set: mutually diagonalise the gadgets, lower
// each diagonal gadget with the Snake pattern, resynthesise the body as
// a phase polynomial, and wrap it in a conjugation box around the
// diagonalising Clifford. The result is cached.
func (b *PauliExpCommutingSetBox) ToCircuit() (*circuit.Circuit, error) {
	if b.cached != nil {
		return b.cached, nil
	}
	n := b.NQubits()

	diag := make([]*pauli.Tensor, len(b.gadgets))
	for i := range b.gadgets {
		t := b.gadgets[i].Copy()
		diag[i] = &t
	}
	cliff, err := synth.MutualDiagonalise(diag, n, b.cxConfig)
	if err != nil {
		return nil, err
	}

	phasePoly := circuit.New(n)
	for _, g := range diag {
		gadget, err := synth.PauliGadget(*g, synth.Snake)
		if err != nil {
			return nil, err
		}
		if err := phasePoly.Append(gadget); err != nil {
			return nil, err
		}
	}
	if err := phasePoly.DecomposeBoxesRecursively(); err != nil {
		return nil, err
	}

	ppbox, err := synth.NewPhasePolyBox(phasePoly)
	if err != nil {
		return nil, err
	}
	body, err := ppbox.ToCircuit()
	if err != nil {
		return nil, err
	}

	conj, err := synth.NewConjugationBox(cliff, body)
	if err != nil {
		return nil, err
	}
	circ := circuit.New(n)
	if err := circ.AddBox(conj, circ.AllQubits()); err != nil {
		return nil, err
	}
	b.cached = circ
	return circ, nil
}

// gadgetJSON is the unlabelled [paulis, phase] pair encoding.
type gadgetJSON struct {
	letters []pauli.Letter
	phase   string
}

func (g gadgetJSON) MarshalJSON() ([]byte, error) {
	letters := g.letters
	if letters == nil {
		letters = []pauli.Letter{}
	}
	return json.Marshal([]interface{}{letters, g.phase})
}

func (g *gadgetJSON) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return qerrors.New(qerrors.MalformedJson, "pauli gadget must be a [paulis, phase] pair")
	}
	if err := json.Unmarshal(raw[0], &g.letters); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &g.phase)
}

type commutingSetBoxJSON struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	PauliGadgets []gadgetJSON   `json:"pauli_gadgets"`
	CXConfig     synth.CXConfig `json:"cx_config"`
}

func encodeCommutingSetBox(b Box) ([]byte, error) {
	box, ok := b.(*PauliExpCommutingSetBox)
	if !ok {
		return nil, qerrors.New(qerrors.InternalError, "encoder received %T, want *PauliExpCommutingSetBox", b)
	}
	gadgets := make([]gadgetJSON, len(box.gadgets))
	for i, g := range box.gadgets {
		gadgets[i] = gadgetJSON{letters: g.String, phase: g.Coeff.String()}
	}
	return json.Marshal(commutingSetBoxJSON{
		ID:           box.id.String(),
		Type:         TypePauliExpCommutingSetBox,
		PauliGadgets: gadgets,
		CXConfig:     box.cxConfig,
	})
}

func decodeCommutingSetBox(data []byte) (Box, error) {
	var raw struct {
		ID           *string         `json:"id"`
		PauliGadgets *[]gadgetJSON   `json:"pauli_gadgets"`
		CXConfig     *synth.CXConfig `json:"cx_config"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid PauliExpCommutingSetBox JSON")
	}
	if raw.ID == nil || raw.PauliGadgets == nil || raw.CXConfig == nil {
		return nil, qerrors.New(qerrors.MalformedJson, "PauliExpCommutingSetBox JSON missing required field")
	}
	id, err := uuid.Parse(*raw.ID)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid box id")
	}
	gadgets := make([]pauli.Tensor, len(*raw.PauliGadgets))
	for i, g := range *raw.PauliGadgets {
		coeff, err := symexpr.Parse(g.phase)
		if err != nil {
			return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid phase expression")
		}
		gadgets[i] = pauli.NewTensor(g.letters, coeff)
	}
	box, err := NewPauliExpCommutingSetBox(gadgets, *raw.CXConfig)
	if err != nil {
		return nil, err
	}
	box.id = id
	return box, nil
}

func init() {
	Register(TypePauliExpCommutingSetBox, Codec{Encode: encodeCommutingSetBox, Decode: decodeCommutingSetBox})
}
