package architecture

import (
	"sort"

	"qirc/internal/qerrors"
)

// ArticulationPoints returns the cut vertices of the graph, in node
// insertion order.
func (a *Architecture) ArticulationPoints() []Node {
	return a.articulationPoints(a.order)
}

// SubgraphArticulationPoints returns the cut vertices of the subgraph
// induced by the given nodes. Edges to nodes outside the set are
// ignored.
func (a *Architecture) SubgraphArticulationPoints(nodes []Node) []Node {
	return a.Subarch(nodes).ArticulationPoints()
}

// articulationPoints runs the lowpoint DFS over the listed nodes.
func (a *Architecture) articulationPoints(nodes []Node) []Node {
	disc := make(map[Node]int, len(nodes))
	low := make(map[Node]int, len(nodes))
	isAP := make(map[Node]bool)
	timer := 0

	var dfs func(cur, parent Node, hasParent bool)
	dfs = func(cur, parent Node, hasParent bool) {
		timer++
		disc[cur] = timer
		low[cur] = timer
		children := 0
		for _, next := range a.Neighbours(cur) {
			if hasParent && next == parent {
				continue
			}
			if d, seen := disc[next]; seen {
				if d < low[cur] {
					low[cur] = d
				}
				continue
			}
			children++
			dfs(next, cur, true)
			if low[next] < low[cur] {
				low[cur] = low[next]
			}
			if hasParent && low[next] >= disc[cur] {
				isAP[cur] = true
			}
		}
		if !hasParent && children > 1 {
			isAP[cur] = true
		}
	}

	for _, nd := range nodes {
		if _, seen := disc[nd]; !seen {
			dfs(nd, Node{}, false)
		}
	}

	var out []Node
	for _, nd := range nodes {
		if isAP[nd] {
			out = append(out, nd)
		}
	}
	return out
}

// sortedDistances returns the distance vector from src sorted
// ascending, for lexicographic comparison.
func (a *Architecture) sortedDistances(src Node) []int {
	d := a.Distances(src)
	sort.Ints(d)
	return d
}

// triCompare compares two sorted distance vectors lexicographically:
// -1 if x < y, 0 on tie, 1 if x > y. A shorter vector that is a prefix
// of the longer one compares smaller.
func triCompare(x, y []int) int {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	for i := 0; i < n; i++ {
		if x[i] < y[i] {
			return -1
		}
		if x[i] > y[i] {
			return 1
		}
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return 0
}

// worstNode picks the node to remove: among minimum-degree nodes that
// are not articulation points of the current graph, the one whose
// sorted distance vector is lexicographically smallest. Ties fall back
// to the distance vectors taken in the original (unpruned) graph.
func worstNode(current, original *Architecture) (Node, bool) {
	candidates := current.MinDegreeNodes()
	if len(candidates) == 0 {
		return Node{}, false
	}
	aps := make(map[Node]bool)
	for _, nd := range current.ArticulationPoints() {
		aps[nd] = true
	}
	var filtered []Node
	for _, nd := range candidates {
		if !aps[nd] {
			filtered = append(filtered, nd)
		}
	}
	if len(filtered) == 0 {
		return Node{}, false
	}

	worst := filtered[0]
	worstVec := current.sortedDistances(worst)
	for _, cand := range filtered[1:] {
		candVec := current.sortedDistances(cand)
		switch triCompare(candVec, worstVec) {
		case -1:
			worst, worstVec = cand, candVec
		case 0:
			if triCompare(original.sortedDistances(cand), original.sortedDistances(worst)) == -1 {
				worst, worstVec = cand, candVec
			}
		}
	}
	return worst, true
}

// RemoveWorstNodes prunes up to num nodes, one at a time, never
// removing an articulation point so connectivity survives. Each round
// drops the minimum-degree node with the lexicographically smallest
// sorted distance vector; distance ties are broken against the
// original graph. Pruning stops early if no removable node remains.
// The removed nodes are returned in removal order.
func (a *Architecture) RemoveWorstNodes(num int) ([]Node, error) {
	if num < 0 {
		return nil, qerrors.New(qerrors.InvalidArchitecture, "cannot remove %d nodes", num)
	}
	original := a.Copy()
	var removed []Node
	for i := 0; i < num; i++ {
		nd, ok := worstNode(a, original)
		if !ok {
			break
		}
		a.RemoveNode(nd)
		removed = append(removed, nd)
	}
	return removed, nil
}
