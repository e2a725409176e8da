// Package circuit provides the minimal gate-level circuit container the
// Pauli-exponential boxes lower into: sequential gate commands over a
// fixed qubit count, box scheduling, and recursive box flattening.
package circuit

import (
	"fmt"

	"qirc/internal/symexpr"
)

// OpType names a gate or box command.
type OpType string

const (
	OpH        OpType = "H"
	OpS        OpType = "S"
	OpSdg      OpType = "Sdg"
	OpV        OpType = "V"
	OpVdg      OpType = "Vdg"
	OpX        OpType = "X"
	OpZ        OpType = "Z"
	OpCX       OpType = "CX"
	OpCZ       OpType = "CZ"
	OpRz       OpType = "Rz"
	OpRx       OpType = "Rx"
	OpXXPhase3 OpType = "XXPhase3"
	OpBox      OpType = "Box"
)

// BoxOp is any operator that can be scheduled on a circuit and lowered
// to a concrete subcircuit on demand.
type BoxOp interface {
	NQubits() int
	ToCircuit() (*Circuit, error)
}

// Command is one step of a circuit: a gate over qubit indices, with an
// optional symbolic parameter, or a scheduled box.
type Command struct {
	Type   OpType
	Qubits []int
	Param  symexpr.Expr
	Box    BoxOp
}

// Circuit is a sequence of commands over n qubits plus an accumulated
// global phase (in half-turns).
type Circuit struct {
	n        int
	commands []Command
	phase    symexpr.Expr
}

// New returns an empty circuit of width n.
func New(n int) *Circuit {
	return &Circuit{n: n}
}

// NQubits returns the circuit width.
func (c *Circuit) NQubits() int {
	return c.n
}

// Commands returns the command list. Callers must not mutate it.
func (c *Circuit) Commands() []Command {
	return c.commands
}

// Phase returns the accumulated global phase in half-turns.
func (c *Circuit) Phase() symexpr.Expr {
	return c.phase
}

// AddPhase accumulates a global phase contribution.
func (c *Circuit) AddPhase(p symexpr.Expr) {
	c.phase = c.phase.Add(p)
}

// AllQubits returns the qubit indices 0..n-1 in order.
func (c *Circuit) AllQubits() []int {
	out := make([]int, c.n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (c *Circuit) checkQubits(qubits ...int) error {
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= c.n {
			return fmt.Errorf("circuit: qubit %d out of range [0,%d)", q, c.n)
		}
		if seen[q] {
			return fmt.Errorf("circuit: duplicate qubit %d in command", q)
		}
		seen[q] = true
	}
	return nil
}

// AddGate appends an unparameterised gate.
func (c *Circuit) AddGate(op OpType, qubits ...int) error {
	if err := c.checkQubits(qubits...); err != nil {
		return err
	}
	qs := make([]int, len(qubits))
	copy(qs, qubits)
	c.commands = append(c.commands, Command{Type: op, Qubits: qs})
	return nil
}

// AddParamGate appends a gate carrying a symbolic angle in half-turns.
func (c *Circuit) AddParamGate(op OpType, param symexpr.Expr, qubits ...int) error {
	if err := c.checkQubits(qubits...); err != nil {
		return err
	}
	qs := make([]int, len(qubits))
	copy(qs, qubits)
	c.commands = append(c.commands, Command{Type: op, Qubits: qs, Param: param})
	return nil
}

// AddBox schedules a box over the listed qubit subset. The mapping
// length must equal the box arity.
func (c *Circuit) AddBox(box BoxOp, mapping []int) error {
	if len(mapping) != box.NQubits() {
		return fmt.Errorf("circuit: box arity %d does not match mapping of %d qubits",
			box.NQubits(), len(mapping))
	}
	if err := c.checkQubits(mapping...); err != nil {
		return err
	}
	qs := make([]int, len(mapping))
	copy(qs, mapping)
	c.commands = append(c.commands, Command{Type: OpBox, Qubits: qs, Box: box})
	return nil
}

// Append composes other onto c at matching qubit indices. The appended
// circuit may be narrower than c; it may not be wider.
func (c *Circuit) Append(other *Circuit) error {
	if other.n > c.n {
		return fmt.Errorf("circuit: cannot append %d-qubit circuit to %d-qubit circuit",
			other.n, c.n)
	}
	c.commands = append(c.commands, other.commands...)
	c.phase = c.phase.Add(other.phase)
	return nil
}

// DecomposeBoxesRecursively flattens every box command in place,
// remapping the lowered subcircuit through the box's qubit mapping,
// until no box commands remain.
func (c *Circuit) DecomposeBoxesRecursively() error {
	for {
		replaced := false
		var out []Command
		for _, cmd := range c.commands {
			if cmd.Type != OpBox {
				out = append(out, cmd)
				continue
			}
			sub, err := cmd.Box.ToCircuit()
			if err != nil {
				return err
			}
			for _, scmd := range sub.commands {
				mapped := make([]int, len(scmd.Qubits))
				for i, q := range scmd.Qubits {
					mapped[i] = cmd.Qubits[q]
				}
				out = append(out, Command{
					Type:   scmd.Type,
					Qubits: mapped,
					Param:  scmd.Param,
					Box:    scmd.Box,
				})
			}
			c.phase = c.phase.Add(sub.phase)
			replaced = true
		}
		c.commands = out
		if !replaced {
			return nil
		}
	}
}

// Dagger returns the adjoint circuit. Box commands must be flattened
// first.
func (c *Circuit) Dagger() (*Circuit, error) {
	out := New(c.n)
	out.phase = c.phase.Neg()
	for i := len(c.commands) - 1; i >= 0; i-- {
		cmd := c.commands[i]
		switch cmd.Type {
		case OpH, OpX, OpZ, OpCX, OpCZ:
			out.commands = append(out.commands, Command{Type: cmd.Type, Qubits: cmd.Qubits})
		case OpS:
			out.commands = append(out.commands, Command{Type: OpSdg, Qubits: cmd.Qubits})
		case OpSdg:
			out.commands = append(out.commands, Command{Type: OpS, Qubits: cmd.Qubits})
		case OpV:
			out.commands = append(out.commands, Command{Type: OpVdg, Qubits: cmd.Qubits})
		case OpVdg:
			out.commands = append(out.commands, Command{Type: OpV, Qubits: cmd.Qubits})
		case OpRz, OpRx, OpXXPhase3:
			out.commands = append(out.commands, Command{
				Type: cmd.Type, Qubits: cmd.Qubits, Param: cmd.Param.Neg(),
			})
		case OpBox:
			return nil, fmt.Errorf("circuit: cannot dagger a circuit containing boxes")
		default:
			return nil, fmt.Errorf("circuit: cannot dagger op %s", cmd.Type)
		}
	}
	return out, nil
}

// CountOps returns the number of commands with the given op type.
func (c *Circuit) CountOps(op OpType) int {
	count := 0
	for _, cmd := range c.commands {
		if cmd.Type == op {
			count++
		}
	}
	return count
}

// OpCounts returns a histogram of command types.
func (c *Circuit) OpCounts() map[OpType]int {
	out := make(map[OpType]int)
	for _, cmd := range c.commands {
		out[cmd.Type]++
	}
	return out
}
