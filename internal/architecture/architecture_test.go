package architecture

import (
	"encoding/json"
	"testing"

	"qirc/internal/pauli"
)

func node(i int) Node {
	return pauli.MustNode("n", i)
}

func pathArch(n int) *Architecture {
	a := New()
	for i := 0; i+1 < n; i++ {
		a.AddConnection(node(i), node(i+1), 1.0)
	}
	return a
}

func TestAddRemove(t *testing.T) {
	a := New()
	a.AddConnection(node(0), node(1), 1.0)
	a.AddConnection(node(1), node(2), 1.0)

	if a.NNodes() != 3 {
		t.Errorf("NNodes() = %d, want 3", a.NNodes())
	}
	if !a.ConnectionExists(node(1), node(0)) {
		t.Error("connections are undirected")
	}
	if a.ConnectionExists(node(0), node(2)) {
		t.Error("no edge between 0 and 2")
	}

	a.RemoveNode(node(1))
	if a.NodeExists(node(1)) {
		t.Error("node 1 should be gone")
	}
	if a.ConnectionExists(node(0), node(1)) || a.ConnectionExists(node(1), node(2)) {
		t.Error("incident edges should be gone")
	}
	if len(a.Connections()) != 0 {
		t.Errorf("Connections() = %v, want empty", a.Connections())
	}

	// Self-loops are ignored.
	a.AddConnection(node(0), node(0), 1.0)
	if a.ConnectionExists(node(0), node(0)) {
		t.Error("self-loop should be ignored")
	}
}

func TestConnectionWeight(t *testing.T) {
	a := New()
	a.AddConnection(node(0), node(1), 2.5)
	if w := a.ConnectionWeight(node(1), node(0)); w != 2.5 {
		t.Errorf("ConnectionWeight = %v, want 2.5", w)
	}
	a.AddConnection(node(1), node(0), 4.0)
	if w := a.ConnectionWeight(node(0), node(1)); w != 4.0 {
		t.Errorf("re-adding updates weight: got %v, want 4", w)
	}
	if len(a.Connections()) != 1 {
		t.Errorf("re-adding must not duplicate the edge")
	}
}

func TestDistanceAndDiameter(t *testing.T) {
	ring := NewRing(8)
	diameter, err := ring.Diameter()
	if err != nil {
		t.Fatalf("Diameter failed: %v", err)
	}
	if diameter != 4 {
		t.Errorf("8-ring diameter = %d, want 4", diameter)
	}

	nodes := ring.Nodes()
	d, err := ring.Distance(nodes[0], nodes[3])
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if d != 3 {
		t.Errorf("Distance(0,3) on 8-ring = %d, want 3", d)
	}
	if d, _ := ring.Distance(nodes[0], nodes[5]); d != 3 {
		t.Errorf("Distance(0,5) on 8-ring = %d, want 3 (wraps)", d)
	}

	if _, err := ring.Distance(nodes[0], node(99)); err == nil {
		t.Error("unknown node should fail")
	}

	disconnected := New()
	disconnected.AddNode(node(0))
	disconnected.AddNode(node(1))
	if _, err := disconnected.Distance(node(0), node(1)); err == nil {
		t.Error("distance across components should fail")
	}
	if _, err := disconnected.Diameter(); err == nil {
		t.Error("diameter of a disconnected graph should fail")
	}
	if _, err := New().Diameter(); err == nil {
		t.Error("diameter of an empty graph should fail")
	}

	// Distances reports 0 for unreachable nodes.
	dist := disconnected.Distances(node(0))
	if len(dist) != 2 || dist[0] != 0 || dist[1] != 0 {
		t.Errorf("Distances = %v, want [0 0]", dist)
	}
}

func TestConnectivityMatrix(t *testing.T) {
	a := pathArch(3)
	m := a.Connectivity()
	if len(m) != 3 {
		t.Fatalf("matrix has %d rows, want 3", len(m))
	}
	for i := range m {
		for j := range m {
			if m[i][j] != m[j][i] {
				t.Errorf("matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
	if !m[0][1] || m[0][2] || m[0][0] {
		t.Errorf("row 0 = %v, want [false true false]", m[0])
	}
}

func TestArticulationPoints(t *testing.T) {
	// 0-1-2 path: 1 is the cut vertex.
	a := pathArch(3)
	aps := a.ArticulationPoints()
	if len(aps) != 1 || aps[0] != node(1) {
		t.Errorf("ArticulationPoints = %v, want [n[1]]", aps)
	}

	// A ring has none.
	if aps := NewRing(5).ArticulationPoints(); len(aps) != 0 {
		t.Errorf("ring ArticulationPoints = %v, want none", aps)
	}

	// Two triangles sharing vertex 2.
	b := New()
	b.AddConnection(node(0), node(1), 1)
	b.AddConnection(node(1), node(2), 1)
	b.AddConnection(node(2), node(0), 1)
	b.AddConnection(node(2), node(3), 1)
	b.AddConnection(node(3), node(4), 1)
	b.AddConnection(node(4), node(2), 1)
	aps = b.ArticulationPoints()
	if len(aps) != 1 || aps[0] != node(2) {
		t.Errorf("ArticulationPoints = %v, want [n[2]]", aps)
	}

	// Induced subgraph: dropping the second triangle leaves a cycle.
	sub := b.SubgraphArticulationPoints([]Node{node(0), node(1), node(2)})
	if len(sub) != 0 {
		t.Errorf("SubgraphArticulationPoints = %v, want none", sub)
	}
}

func TestLines(t *testing.T) {
	g := NewSquareGrid(3, 3, 1)
	lines, err := g.Lines([]int{4, 3})
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("have %d lines, want 2", len(lines))
	}
	if len(lines[0]) != 4 {
		t.Errorf("first line has %d nodes, want 4", len(lines[0]))
	}
	if len(lines[1]) != 3 {
		t.Errorf("second line has %d nodes, want 3", len(lines[1]))
	}

	// Lines are vertex-disjoint.
	seen := make(map[Node]bool)
	for _, line := range lines {
		for i, nd := range line {
			if seen[nd] {
				t.Errorf("node %s reused across lines", nd)
			}
			seen[nd] = true
			if i > 0 && !g.ConnectionExists(line[i-1], nd) {
				t.Errorf("line hop %s - %s is not an edge", line[i-1], nd)
			}
		}
	}
}

func TestGridLinesCoverAllNodes(t *testing.T) {
	g := NewSquareGrid(2, 3, 1)
	lines, err := g.Lines([]int{3, 3})
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 2 || len(lines[0]) != 3 || len(lines[1]) != 3 {
		t.Fatalf("Lines = %v, want two length-3 lines", lines)
	}
	seen := make(map[Node]bool)
	for _, line := range lines {
		for _, nd := range line {
			if seen[nd] {
				t.Errorf("node %s reused across lines", nd)
			}
			seen[nd] = true
		}
	}
	if len(seen) != 6 {
		t.Errorf("lines cover %d nodes, want all 6", len(seen))
	}
}

func TestLinesRejectsOverlongRequest(t *testing.T) {
	g := NewSquareGrid(2, 3, 1)
	if _, err := g.Lines([]int{4, 4}); err == nil {
		t.Error("total requested length 8 on 6 nodes should be rejected")
	}
	if _, err := pathArch(3).Lines([]int{5}); err == nil {
		t.Error("requesting more nodes than exist should be rejected")
	}
}

func TestLinesSkipsUnsatisfiableLength(t *testing.T) {
	// Star graph: longest simple path visits 3 of the 4 nodes, so a
	// length-4 line cannot be found even though the node count allows it.
	a := New()
	a.AddConnection(node(0), node(1), 1)
	a.AddConnection(node(0), node(2), 1)
	a.AddConnection(node(0), node(3), 1)
	lines, err := a.Lines([]int{4})
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Lines = %v, want none", lines)
	}
}

func TestRemoveWorstNodes(t *testing.T) {
	// 0-1-2-3-4 path: only the endpoints are removable (interior nodes
	// are cut vertices). Endpoint distance vectors tie sorted, so the
	// original-graph tie-break keeps the outcome deterministic.
	a := pathArch(5)
	removed, err := a.RemoveWorstNodes(2)
	if err != nil {
		t.Fatalf("RemoveWorstNodes failed: %v", err)
	}
	if a.NNodes() != 3 {
		t.Fatalf("NNodes() = %d, want 3", a.NNodes())
	}
	// Round one ties every way and keeps the first candidate, dropping
	// node 0; round two's original-graph tie-break drops node 1.
	if len(removed) != 2 || removed[0] != node(0) || removed[1] != node(1) {
		t.Errorf("removed = %v, want [n[0] n[1]]", removed)
	}
	if !a.NodeExists(node(2)) || !a.NodeExists(node(3)) || !a.NodeExists(node(4)) {
		t.Errorf("nodes 2..4 should survive, have %v", a.Nodes())
	}
	// Still connected.
	if _, err := a.Diameter(); err != nil {
		t.Errorf("pruned graph must stay connected: %v", err)
	}

	if _, err := pathArch(3).RemoveWorstNodes(-1); err == nil {
		t.Error("negative count should be rejected")
	}
}

func TestRemoveWorstNodesStopsWhenExhausted(t *testing.T) {
	// Requesting more removals than nodes is fine: pruning stops once
	// no removable candidate remains.
	a := pathArch(3)
	removed, err := a.RemoveWorstNodes(10)
	if err != nil {
		t.Fatalf("RemoveWorstNodes failed: %v", err)
	}
	if len(removed) != 3 || a.NNodes() != 0 {
		t.Errorf("removed %v leaving %d nodes, want all 3 gone", removed, a.NNodes())
	}
}

func TestMinDegreeNodes(t *testing.T) {
	a := pathArch(4)
	min := a.MinDegreeNodes()
	if len(min) != 2 || min[0] != node(0) || min[1] != node(3) {
		t.Errorf("MinDegreeNodes = %v, want endpoints", min)
	}
}

func TestTopologies(t *testing.T) {
	fc := NewFullyConnected(4)
	if fc.NNodes() != 4 || len(fc.Connections()) != 6 {
		t.Errorf("fc(4): %d nodes, %d edges", fc.NNodes(), len(fc.Connections()))
	}
	if fc.Nodes()[0].Reg() != "fcNode" {
		t.Errorf("fc register = %q", fc.Nodes()[0].Reg())
	}

	ring := NewRing(6)
	if ring.NNodes() != 6 || len(ring.Connections()) != 6 {
		t.Errorf("ring(6): %d nodes, %d edges", ring.NNodes(), len(ring.Connections()))
	}
	if ring.Nodes()[0].Reg() != "ringNode" {
		t.Errorf("ring register = %q", ring.Nodes()[0].Reg())
	}
	for _, nd := range ring.Nodes() {
		if ring.Degree(nd) != 2 {
			t.Errorf("ring degree at %s = %d", nd, ring.Degree(nd))
		}
	}

	grid := NewSquareGrid(2, 3, 2)
	if grid.NNodes() != 12 {
		t.Errorf("grid(2,3,2): %d nodes, want 12", grid.NNodes())
	}
	// Edges: per layer 2*3 grid has 3+4 = 7; between layers 6.
	if len(grid.Connections()) != 20 {
		t.Errorf("grid(2,3,2): %d edges, want 20", len(grid.Connections()))
	}
	if grid.Nodes()[0].Reg() != "gridNode" {
		t.Errorf("grid register = %q", grid.Nodes()[0].Reg())
	}
	rows, cols, layers := grid.Dimensions()
	if rows != 2 || cols != 3 || layers != 2 {
		t.Errorf("Dimensions = (%d,%d,%d)", rows, cols, layers)
	}
	if r, c, l, ok := grid.Squind(7); !ok || r != 0 || c != 1 || l != 1 {
		t.Errorf("Squind(7) = (%d,%d,%d,%v)", r, c, l, ok)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := NewRing(4)
	a.AddConnection(a.Nodes()[0], a.Nodes()[2], 2.0)

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back := New()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	wantNodes := a.Nodes()
	gotNodes := back.Nodes()
	if len(gotNodes) != len(wantNodes) {
		t.Fatalf("node count %d, want %d", len(gotNodes), len(wantNodes))
	}
	for i := range wantNodes {
		if gotNodes[i] != wantNodes[i] {
			t.Errorf("node order lost at %d: %v vs %v", i, gotNodes[i], wantNodes[i])
		}
	}
	wantEdges := a.Connections()
	gotEdges := back.Connections()
	if len(gotEdges) != len(wantEdges) {
		t.Fatalf("edge count %d, want %d", len(gotEdges), len(wantEdges))
	}
	for i := range wantEdges {
		if gotEdges[i] != wantEdges[i] {
			t.Errorf("edge order lost at %d: %v vs %v", i, gotEdges[i], wantEdges[i])
		}
	}

	if err := json.Unmarshal([]byte(`{"nodes":[]}`), back); err == nil {
		t.Error("missing links field should be rejected")
	}
	if err := json.Unmarshal([]byte(`{"nodes":[],"links":[{"link":[["q",[0]],["q",[1]]],"weight":1}]}`), back); err == nil {
		t.Error("link referencing unknown node should be rejected")
	}
}
