package pauli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// maxNodeDims bounds the coordinate arity of a unit ID. Grid devices
// use three coordinates (row, column, layer); nothing uses more.
const maxNodeDims = 3

// Node identifies a device qubit: a register name plus an index tuple.
// Register names must begin with a lowercase letter to satisfy the
// assembly formats circuits are eventually exported to. Node is a
// comparable value type and can be used as a map key.
type Node struct {
	reg string
	idx [maxNodeDims]int
	n   uint8
}

// NewNode builds a Node from a register name and up to three indices.
func NewNode(reg string, indices ...int) (Node, error) {
	if reg == "" || reg[0] < 'a' || reg[0] > 'z' {
		return Node{}, fmt.Errorf("pauli: register name %q must begin with a lowercase letter", reg)
	}
	if len(indices) > maxNodeDims {
		return Node{}, fmt.Errorf("pauli: too many indices for node %q", reg)
	}
	nd := Node{reg: reg, n: uint8(len(indices))}
	copy(nd.idx[:], indices)
	return nd, nil
}

// MustNode is NewNode for statically valid arguments.
func MustNode(reg string, indices ...int) Node {
	nd, err := NewNode(reg, indices...)
	if err != nil {
		panic(err)
	}
	return nd
}

// Qubit returns the i-th qubit of the default register "q".
func Qubit(i int) Node {
	return MustNode("q", i)
}

// Reg returns the register name.
func (nd Node) Reg() string {
	return nd.reg
}

// Indices returns a copy of the index tuple.
func (nd Node) Indices() []int {
	out := make([]int, nd.n)
	copy(out, nd.idx[:nd.n])
	return out
}

// String renders the node as reg[i0][i1]...
func (nd Node) String() string {
	var b strings.Builder
	b.WriteString(nd.reg)
	for i := 0; i < int(nd.n); i++ {
		fmt.Fprintf(&b, "[%d]", nd.idx[i])
	}
	return b.String()
}

// Less orders nodes by register name, then index tuple.
func (nd Node) Less(o Node) bool {
	if nd.reg != o.reg {
		return nd.reg < o.reg
	}
	for i := 0; i < int(nd.n) && i < int(o.n); i++ {
		if nd.idx[i] != o.idx[i] {
			return nd.idx[i] < o.idx[i]
		}
	}
	return nd.n < o.n
}

// MarshalJSON encodes the node as [name, [indices...]].
func (nd Node) MarshalJSON() ([]byte, error) {
	idx := nd.Indices()
	if idx == nil {
		idx = []int{}
	}
	return json.Marshal([]interface{}{nd.reg, idx})
}

// UnmarshalJSON decodes the [name, [indices...]] form.
func (nd *Node) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("pauli: node must be a [name, indices] pair")
	}
	var reg string
	if err := json.Unmarshal(raw[0], &reg); err != nil {
		return err
	}
	var indices []int
	if err := json.Unmarshal(raw[1], &indices); err != nil {
		return err
	}
	parsed, err := NewNode(reg, indices...)
	if err != nil {
		return err
	}
	*nd = parsed
	return nil
}

// SortNodes sorts the slice in place by Less.
func SortNodes(nodes []Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Less(nodes[j]) })
}
