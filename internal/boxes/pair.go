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

// TypePauliExpPairBox is the factory type tag for ordered pairs.
const TypePauliExpPairBox = "PauliExpPairBox"

// PauliExpPairBox represents the product U1*U0 of two Pauli
// exponentials that need not commute.
type PauliExpPairBox struct {
	paulis0  pauli.Tensor
	paulis1  pauli.Tensor
	cxConfig synth.CXConfig
	id       uuid.UUID
	cached   *circuit.Circuit
}

// NewPauliExpPairBox builds a pair box; both strings must have the
// same length (pad with identities if necessary).
func NewPauliExpPairBox(t0, t1 pauli.Tensor, cfg synth.CXConfig) (*PauliExpPairBox, error) {
	if t0.Size() != t1.Size() {
		return nil, qerrors.New(qerrors.InvalidPauliExp,
			"Pauli strings within a pair must be of the same length (%d vs %d)",
			t0.Size(), t1.Size())
	}
	return &PauliExpPairBox{paulis0: t0.Copy(), paulis1: t1.Copy(), cxConfig: cfg, id: uuid.New()}, nil
}

// NewEmptyPauliExpPairBox returns the 0-qubit pair with coefficients 0.
func NewEmptyPauliExpPairBox() *PauliExpPairBox {
	empty := pauli.NewTensor(nil, symexpr.Zero())
	box, _ := NewPauliExpPairBox(empty, empty, synth.Tree)
	return box
}

// TypeTag implements Box.
func (b *PauliExpPairBox) TypeTag() string { return TypePauliExpPairBox }

// ID implements Box.
func (b *PauliExpPairBox) ID() uuid.UUID { return b.id }

// NQubits returns the box arity.
func (b *PauliExpPairBox) NQubits() int { return b.paulis0.Size() }

// PaulisPair returns copies of the two stored tensors in order.
func (b *PauliExpPairBox) PaulisPair() (pauli.Tensor, pauli.Tensor) {
	return b.paulis0.Copy(), b.paulis1.Copy()
}

// CXConfig returns the entanglement pattern used when lowering.
func (b *PauliExpPairBox) CXConfig() synth.CXConfig { return b.cxConfig }

// IsClifford implements Box.
func (b *PauliExpPairBox) IsClifford() bool {
	return tensorIsClifford(b.paulis0) && tensorIsClifford(b.paulis1)
}

// FreeSymbols implements Box.
func (b *PauliExpPairBox) FreeSymbols() []string {
	return unionSymbols(b.paulis0.FreeSymbols(), b.paulis1.FreeSymbols())
}

// Dagger reverses the pair and negates both coefficients: the adjoint
// of a product reverses order.
func (b *PauliExpPairBox) Dagger() Box {
	return &PauliExpPairBox{
		paulis0:  b.paulis1.Dagger(),
		paulis1:  b.paulis0.Dagger(),
		cxConfig: b.cxConfig,
		id:       uuid.New(),
	}
}

// Transpose reverses the pair and transposes each tensor.
func (b *PauliExpPairBox) Transpose() Box {
	tr0 := b.paulis0.Copy()
	tr0.Transpose()
	tr1 := b.paulis1.Copy()
	tr1.Transpose()
	return &PauliExpPairBox{paulis0: tr1, paulis1: tr0, cxConfig: b.cxConfig, id: uuid.New()}
}

// SymbolSubstitution returns a new pair with both coefficients
// substituted.
func (b *PauliExpPairBox) SymbolSubstitution(sub map[string]symexpr.Expr) Box {
	return &PauliExpPairBox{
		paulis0:  b.paulis0.SymbolSubstitution(sub),
		paulis1:  b.paulis1.SymbolSubstitution(sub),
		cxConfig: b.cxConfig,
		id:       uuid.New(),
	}
}

// IsEqual implements Box; both tensor slots compare positionally.
func (b *PauliExpPairBox) IsEqual(other Box) bool {
	o, ok := other.(*PauliExpPairBox)
	if !ok {
		return false
	}
	if b.id == o.id {
		return true
	}
	return b.cxConfig == o.cxConfig &&
		b.paulis0.EquivMod(o.paulis0, 4) &&
		b.paulis1.EquivMod(o.paulis1, 4)
}

// ToCircuit lowers the box, caching the result on first request.
func (b *PauliExpPairBox) ToCircuit() (*circuit.Circuit, error) {
	if b.cached != nil {
		return b.cached, nil
	}
	circ := circuit.New(b.paulis0.Size())
	gadget, err := synth.PairGadget(b.paulis0, b.paulis1, b.cxConfig)
	if err != nil {
		return nil, err
	}
	if err := circ.Append(gadget); err != nil {
		return nil, err
	}
	b.cached = circ
	return circ, nil
}

type pauliExpPairBoxJSON struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	PaulisPair [][]pauli.Letter `json:"paulis_pair"`
	PhasePair  []string         `json:"phase_pair"`
	CXConfig   synth.CXConfig   `json:"cx_config"`
}

func encodePauliExpPairBox(b Box) ([]byte, error) {
	box, ok := b.(*PauliExpPairBox)
	if !ok {
		return nil, qerrors.New(qerrors.InternalError, "encoder received %T, want *PauliExpPairBox", b)
	}
	p0 := box.paulis0.String
	if p0 == nil {
		p0 = []pauli.Letter{}
	}
	p1 := box.paulis1.String
	if p1 == nil {
		p1 = []pauli.Letter{}
	}
	return json.Marshal(pauliExpPairBoxJSON{
		ID:         box.id.String(),
		Type:       TypePauliExpPairBox,
		PaulisPair: [][]pauli.Letter{p0, p1},
		PhasePair:  []string{box.paulis0.Coeff.String(), box.paulis1.Coeff.String()},
		CXConfig:   box.cxConfig,
	})
}

func decodePauliExpPairBox(data []byte) (Box, error) {
	var raw struct {
		ID         *string           `json:"id"`
		PaulisPair *[][]pauli.Letter `json:"paulis_pair"`
		PhasePair  *[]string         `json:"phase_pair"`
		CXConfig   *synth.CXConfig   `json:"cx_config"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid PauliExpPairBox JSON")
	}
	if raw.ID == nil || raw.PaulisPair == nil || raw.PhasePair == nil || raw.CXConfig == nil {
		return nil, qerrors.New(qerrors.MalformedJson, "PauliExpPairBox JSON missing required field")
	}
	if len(*raw.PaulisPair) != 2 || len(*raw.PhasePair) != 2 {
		return nil, qerrors.New(qerrors.MalformedJson, "PauliExpPairBox JSON pairs must have exactly two entries")
	}
	id, err := uuid.Parse(*raw.ID)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid box id")
	}
	phase0, err := symexpr.Parse((*raw.PhasePair)[0])
	if err != nil {
		return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid phase expression")
	}
	phase1, err := symexpr.Parse((*raw.PhasePair)[1])
	if err != nil {
		return nil, qerrors.Wrap(qerrors.MalformedJson, err, "invalid phase expression")
	}
	box, err := NewPauliExpPairBox(
		pauli.NewTensor((*raw.PaulisPair)[0], phase0),
		pauli.NewTensor((*raw.PaulisPair)[1], phase1),
		*raw.CXConfig,
	)
	if err != nil {
		return nil, err
	}
	box.id = id
	return box, nil
}

func init() {
	Register(TypePauliExpPairBox, Codec{Encode: encodePauliExpPairBox, Decode: decodePauliExpPairBox})
}
