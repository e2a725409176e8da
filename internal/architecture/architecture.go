// Package architecture models hardware connectivity: an undirected
// device-coupling graph over qubit unit IDs, with the distance,
// line-extraction and pruning queries placement passes rely on. Node
// insertion order is observable and preserved by serialization.
package architecture

import (
	"qirc/internal/pauli"
	"qirc/internal/qerrors"
)

// Node is a device qubit identifier.
type Node = pauli.Node

// Connection is one undirected weighted edge.
type Connection struct {
	U, V   Node
	Weight float64
}

// Architecture is an undirected simple graph over device qubits.
// Mutation happens only through explicit add/remove calls.
type Architecture struct {
	order []Node
	adj   map[Node]map[Node]float64
	edges []Connection
}

// New returns an empty architecture.
func New() *Architecture {
	return &Architecture{adj: make(map[Node]map[Node]float64)}
}

// NewFromConnections builds an architecture from an edge list, adding
// endpoints in first-appearance order.
func NewFromConnections(conns []Connection) *Architecture {
	a := New()
	for _, c := range conns {
		a.AddConnection(c.U, c.V, c.Weight)
	}
	return a
}

// AddNode inserts a node if not already present.
func (a *Architecture) AddNode(nd Node) {
	if _, ok := a.adj[nd]; ok {
		return
	}
	a.adj[nd] = make(map[Node]float64)
	a.order = append(a.order, nd)
}

// AddConnection inserts an undirected edge with the given weight,
// adding missing endpoints. Re-adding an existing edge (in either
// direction) updates its weight. Self-loops are ignored.
func (a *Architecture) AddConnection(u, v Node, weight float64) {
	if u == v {
		return
	}
	if weight == 0 {
		weight = 1.0
	}
	a.AddNode(u)
	a.AddNode(v)
	if _, ok := a.adj[u][v]; ok {
		a.adj[u][v] = weight
		a.adj[v][u] = weight
		for i := range a.edges {
			if (a.edges[i].U == u && a.edges[i].V == v) || (a.edges[i].U == v && a.edges[i].V == u) {
				a.edges[i].Weight = weight
			}
		}
		return
	}
	a.adj[u][v] = weight
	a.adj[v][u] = weight
	a.edges = append(a.edges, Connection{U: u, V: v, Weight: weight})
}

// RemoveNode deletes a node and its incident edges.
func (a *Architecture) RemoveNode(nd Node) {
	if _, ok := a.adj[nd]; !ok {
		return
	}
	for other := range a.adj[nd] {
		delete(a.adj[other], nd)
	}
	delete(a.adj, nd)
	for i, o := range a.order {
		if o == nd {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	var edges []Connection
	for _, e := range a.edges {
		if e.U != nd && e.V != nd {
			edges = append(edges, e)
		}
	}
	a.edges = edges
}

// RemoveConnection deletes an edge if present, in either direction.
func (a *Architecture) RemoveConnection(u, v Node) {
	if _, ok := a.adj[u][v]; !ok {
		return
	}
	delete(a.adj[u], v)
	delete(a.adj[v], u)
	for i, e := range a.edges {
		if (e.U == u && e.V == v) || (e.U == v && e.V == u) {
			a.edges = append(a.edges[:i], a.edges[i+1:]...)
			break
		}
	}
}

// NodeExists reports whether nd is in the graph.
func (a *Architecture) NodeExists(nd Node) bool {
	_, ok := a.adj[nd]
	return ok
}

// ConnectionExists reports whether an edge joins u and v.
func (a *Architecture) ConnectionExists(u, v Node) bool {
	_, ok := a.adj[u][v]
	return ok
}

// ConnectionWeight returns the weight of the edge between u and v, or
// 0 if absent.
func (a *Architecture) ConnectionWeight(u, v Node) float64 {
	return a.adj[u][v]
}

// NNodes returns the node count.
func (a *Architecture) NNodes() int {
	return len(a.order)
}

// Nodes returns the nodes in insertion order.
func (a *Architecture) Nodes() []Node {
	out := make([]Node, len(a.order))
	copy(out, a.order)
	return out
}

// Connections returns the edges in insertion order.
func (a *Architecture) Connections() []Connection {
	out := make([]Connection, len(a.edges))
	copy(out, a.edges)
	return out
}

// Degree returns the number of neighbours of nd.
func (a *Architecture) Degree(nd Node) int {
	return len(a.adj[nd])
}

// Neighbours returns the neighbours of nd in insertion order.
func (a *Architecture) Neighbours(nd Node) []Node {
	var out []Node
	for _, other := range a.order {
		if _, ok := a.adj[nd][other]; ok {
			out = append(out, other)
		}
	}
	return out
}

// Copy returns a deep copy sharing no state with the original.
func (a *Architecture) Copy() *Architecture {
	out := New()
	for _, nd := range a.order {
		out.AddNode(nd)
	}
	for _, e := range a.edges {
		out.AddConnection(e.U, e.V, e.Weight)
	}
	return out
}

// distancesBFS runs an unweighted BFS from src over insertion-order
// neighbour expansion; unreachable nodes keep distance 0.
func (a *Architecture) distancesBFS(src Node) map[Node]int {
	dist := map[Node]int{src: 0}
	queue := []Node{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range a.Neighbours(cur) {
			if _, seen := dist[next]; !seen {
				dist[next] = dist[cur] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}

// Distance returns the unweighted shortest-path distance between u and
// v. Edge weights are ignored for distance queries.
func (a *Architecture) Distance(u, v Node) (int, error) {
	if !a.NodeExists(u) || !a.NodeExists(v) {
		return 0, qerrors.New(qerrors.InvalidArchitecture, "node not in architecture")
	}
	if u == v {
		return 0, nil
	}
	dist := a.distancesBFS(u)
	d, ok := dist[v]
	if !ok {
		return 0, qerrors.New(qerrors.InvalidArchitecture, "nodes %s and %s are not connected", u, v)
	}
	return d, nil
}

// Distances returns the distance vector from src, indexed by node
// insertion-order position. Unreachable nodes report 0.
func (a *Architecture) Distances(src Node) []int {
	dist := a.distancesBFS(src)
	out := make([]int, len(a.order))
	for i, nd := range a.order {
		out[i] = dist[nd]
	}
	return out
}

// Diameter returns the maximum pairwise distance. It fails on an empty
// or disconnected architecture.
func (a *Architecture) Diameter() (int, error) {
	if len(a.order) == 0 {
		return 0, qerrors.New(qerrors.InvalidArchitecture, "no nodes in architecture")
	}
	max := 0
	for i := 0; i < len(a.order); i++ {
		for j := i + 1; j < len(a.order); j++ {
			d, err := a.Distance(a.order[i], a.order[j])
			if err != nil {
				return 0, err
			}
			if d > max {
				max = d
			}
		}
	}
	return max, nil
}

// Connectivity returns the n-by-n boolean adjacency matrix in node
// insertion order; the matrix is symmetric.
func (a *Architecture) Connectivity() [][]bool {
	n := len(a.order)
	out := make([][]bool, n)
	for i := range out {
		out[i] = make([]bool, n)
		for j := range out[i] {
			out[i][j] = a.ConnectionExists(a.order[i], a.order[j]) ||
				a.ConnectionExists(a.order[j], a.order[i])
		}
	}
	return out
}

// Subarch builds a new architecture over the given nodes with the
// induced edges, preserving this graph's edge weights.
func (a *Architecture) Subarch(nodes []Node) *Architecture {
	sub := New()
	for _, nd := range nodes {
		sub.AddNode(nd)
	}
	for _, e := range a.edges {
		if sub.NodeExists(e.U) && sub.NodeExists(e.V) {
			sub.AddConnection(e.U, e.V, e.Weight)
		}
	}
	return sub
}

// MinDegreeNodes returns the nodes of minimum degree in insertion
// order.
func (a *Architecture) MinDegreeNodes() []Node {
	if len(a.order) == 0 {
		return nil
	}
	min := -1
	for _, nd := range a.order {
		d := a.Degree(nd)
		if min == -1 || d < min {
			min = d
		}
	}
	var out []Node
	for _, nd := range a.order {
		if a.Degree(nd) == min {
			out = append(out, nd)
		}
	}
	return out
}
