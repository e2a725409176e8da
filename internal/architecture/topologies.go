package architecture

import "qirc/internal/pauli"

// NewFullyConnected builds the all-to-all architecture over n nodes in
// the "fcNode" register.
func NewFullyConnected(n int) *Architecture {
	a := New()
	for i := 0; i < n; i++ {
		a.AddNode(pauli.MustNode("fcNode", i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a.AddConnection(pauli.MustNode("fcNode", i), pauli.MustNode("fcNode", j), 1.0)
		}
	}
	return a
}

// NewRing builds the n-cycle over the "ringNode" register.
func NewRing(n int) *Architecture {
	a := New()
	for i := 0; i < n; i++ {
		a.AddNode(pauli.MustNode("ringNode", i))
	}
	if n < 2 {
		return a
	}
	for i := 0; i < n; i++ {
		a.AddConnection(pauli.MustNode("ringNode", i), pauli.MustNode("ringNode", (i+1)%n), 1.0)
	}
	return a
}

// SquareGrid is a rows-by-cols grid replicated across layers, with
// nearest-neighbour couplings within a layer and vertical couplings
// between adjacent layers. Nodes live in the "gridNode" register with
// coordinates (row, column, layer).
type SquareGrid struct {
	*Architecture
	rows, cols, layers int
}

// NewSquareGrid builds the grid. layers defaults to 1 when given as 0.
func NewSquareGrid(rows, cols, layers int) *SquareGrid {
	if layers <= 0 {
		layers = 1
	}
	g := &SquareGrid{Architecture: New(), rows: rows, cols: cols, layers: layers}
	for l := 0; l < layers; l++ {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				g.AddNode(gridNode(r, c, l))
			}
		}
	}
	for l := 0; l < layers; l++ {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					g.AddConnection(gridNode(r, c, l), gridNode(r, c+1, l), 1.0)
				}
				if r+1 < rows {
					g.AddConnection(gridNode(r, c, l), gridNode(r+1, c, l), 1.0)
				}
				if l+1 < layers {
					g.AddConnection(gridNode(r, c, l), gridNode(r, c, l+1), 1.0)
				}
			}
		}
	}
	return g
}

func gridNode(r, c, l int) Node {
	return pauli.MustNode("gridNode", r, c, l)
}

// Dimensions returns the grid's rows, columns and layers.
func (g *SquareGrid) Dimensions() (rows, cols, layers int) {
	return g.rows, g.cols, g.layers
}

// Squind converts a flat qubit index into grid coordinates, walking the
// grid in node insertion order.
func (g *SquareGrid) Squind(qubit int) (row, col, layer int, ok bool) {
	if qubit < 0 || qubit >= g.rows*g.cols*g.layers {
		return 0, 0, 0, false
	}
	perLayer := g.rows * g.cols
	layer = qubit / perLayer
	rem := qubit % perLayer
	return rem / g.cols, rem % g.cols, layer, true
}
