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

// TypePauliExpBox is the factory type tag for single exponentials.
const TypePauliExpBox = "PauliExpBox"

// PauliExpBox represents exp(-i*pi*t/2 * P) for a dense Pauli string P
// and symbolic phase t in half-turns.
type PauliExpBox struct {
	paulis   pauli.Tensor
	cxConfig synth.CXConfig
	id       uuid.UUID
	cached   *circuit.Circuit
}

// NewPauliExpBox builds a box over the tensor; the arity is the tensor
// length.
func NewPauliExpBox(t pauli.Tensor, cfg synth.CXConfig) *PauliExpBox {
	return &PauliExpBox{paulis: t.Copy(), cxConfig: cfg, id: uuid.New()}
}

// NewEmptyPauliExpBox returns the 0-qubit box with coefficient 0.
func NewEmptyPauliExpBox() *PauliExpBox {
	return NewPauliExpBox(pauli.NewTensor(nil, symexpr.Zero()), synth.Tree)
}

// TypeTag implements Box.
func (b *PauliExpBox) TypeTag() string { return TypePauliExpBox }

// ID implements Box.
func (b *PauliExpBox) ID() uuid.UUID { return b.id }

// NQubits returns the box arity.
func (b *PauliExpBox) NQubits() int { return b.paulis.Size() }

// Paulis returns a copy of the stored tensor.
func (b *PauliExpBox) Paulis() pauli.Tensor { return b.paulis.Copy() }

// CXConfig returns the entanglement pattern used when lowering.
func (b *PauliExpBox) CXConfig() synth.CXConfig { return b.cxConfig }

// IsClifford implements Box.
func (b *PauliExpBox) IsClifford() bool {
	return tensorIsClifford(b.paulis)
}

// FreeSymbols implements Box.
func (b *PauliExpBox) FreeSymbols() []string {
	return b.paulis.FreeSymbols()
}

// Dagger returns a new box with the coefficient negated.
func (b *PauliExpBox) Dagger() Box {
	return &PauliExpBox{paulis: b.paulis.Dagger(), cxConfig: b.cxConfig, id: uuid.New()}
}

// Transpose returns a new box with the tensor transposed.
func (b *PauliExpBox) Transpose() Box {
	tr := b.paulis.Copy()
	tr.Transpose()
	return &PauliExpBox{paulis: tr, cxConfig: b.cxConfig, id: uuid.New()}
}

// SymbolSubstitution returns a new box with the coefficient substituted.
func (b *PauliExpBox) SymbolSubstitution(sub map[string]symexpr.Expr) Box {
	return &PauliExpBox{
		paulis:   b.paulis.SymbolSubstitution(sub),
		cxConfig: b.cxConfig,
		id:       uuid.New(),
	}
}

// IsEqual implements Box. Exponentials are 4-periodic in the phase, so
// coefficients compare modulo 4.
func (b *PauliExpBox) IsEqual(other Box) bool {
	o, ok := other.(*PauliExpBox)
	if !ok {
		return false
	}
	if b.id == o.id {
		return true
	}
	return b.cxConfig == o.cxConfig && b.paulis.EquivMod(o.paulis, 4)
}

// ToCircuit lowers the box, caching the result on first request.
func (b *PauliExpBox) ToCircuit() (*circuit.Circuit, error) {
	if b.cached != nil {
		return b.cached, nil
	}
	circ := circuit.New(b.paulis.Size())
	gadget, err := synth.PauliGadget(b.paulis, b.cxConfig)
	if err != nil {
		return nil, err
	}
	if err := circ.Append(gadget); err != nil {
		return nil, err
	}
	b.cached = circ
	return circ, nil
}

type pauliExpBoxJSON struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Paulis   []pauli.Letter `json:"paulis"`
	Phase    string         `json:"phase"`
	CXConfig synth.CXConfig `json:"cx_config"`
}

func encodePauliExpBox(b Box) ([]byte, error) {
	box, ok := b.(*PauliExpBox)
	if !ok {
		return nil, qerrors.New(qerrors.InternalError, "encoder received %T, want *PauliExpBox", b)
	}
	letters := box.paulis.String
	if letters == nil {
		letters = []pauli.Letter{}
	}
	return json.Marshal(pauliExpBoxJSON{
		ID:       box.id.String(),
		Type:     TypePauliExpBox,
		Paulis:   letters,
		Phase:    box.paulis.Coeff.String(),
		CXConfig: box.cxConfig,
	})
}

func decodePauliExpBox(data []byte) (Box, error) {
	var raw struct {
		ID       *string         `json:"id"`
		Paulis   *[]pauli.Letter `json:"paulis"`
		Phase    *string         `json:"phase"`
		CXConfig *synth.CXConfig `json:"cx_config"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid PauliExpBox JSON")
	}
	if raw.ID == nil || raw.Paulis == nil || raw.Phase == nil || raw.CXConfig == nil {
		return nil, qerrors.New(qerrors.MalformedJson, "PauliExpBox JSON missing required field")
	}
	id, err := uuid.Parse(*raw.ID)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid box id")
	}
	coeff, err := symexpr.Parse(*raw.Phase)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid phase expression")
	}
	box := NewPauliExpBox(pauli.NewTensor(*raw.Paulis, coeff), *raw.CXConfig)
	box.id = id
	return box, nil
}

func init() {
	Register(TypePauliExpBox, Codec{Encode: encodePauliExpBox, Decode: decodePauliExpBox})
}
