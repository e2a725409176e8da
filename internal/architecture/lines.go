package architecture

import (
	"sort"

	"qirc/internal/qerrors"
)

// longestSimplePath returns the longest simple path in the graph, up to
// maxLen vertices, searching from every start node in insertion order.
// DFS stops early once a path of maxLen is found.
func (a *Architecture) longestSimplePath(maxLen int) []Node {
	if maxLen <= 0 || len(a.order) == 0 {
		return nil
	}
	var best []Node
	visited := make(map[Node]bool, len(a.order))

	var dfs func(cur Node, path []Node) bool
	dfs = func(cur Node, path []Node) bool {
		if len(path) > len(best) {
			best = append(best[:0], path...)
		}
		if len(best) >= maxLen {
			return true
		}
		for _, next := range a.Neighbours(cur) {
			if visited[next] {
				continue
			}
			visited[next] = true
			done := dfs(next, append(path, next))
			visited[next] = false
			if done {
				return true
			}
		}
		return false
	}

	for _, start := range a.order {
		visited[start] = true
		done := dfs(start, []Node{start})
		visited[start] = false
		if done {
			break
		}
	}
	if len(best) > maxLen {
		best = best[:maxLen]
	}
	return best
}

// Lines extracts vertex-disjoint lines of the requested lengths. The
// total requested length must not exceed the node count. Lengths are
// served longest first; each extracted line's vertices are removed
// before the next is sought, so later lines never reuse a qubit. A
// length the remaining graph cannot supply yields no line.
func (a *Architecture) Lines(lengths []int) ([][]Node, error) {
	total := 0
	for _, l := range lengths {
		total += l
	}
	if total > len(a.order) {
		return nil, qerrors.New(qerrors.InvalidArchitecture,
			"not enough nodes to satisfy required lengths: %d requested, %d available",
			total, len(a.order))
	}

	sorted := append([]int(nil), lengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	work := a.Copy()
	out := make([][]Node, 0, len(sorted))
	for _, want := range sorted {
		line := work.longestSimplePath(want)
		if len(line) < want {
			continue
		}
		out = append(out, line)
		for _, nd := range line {
			work.RemoveNode(nd)
		}
	}
	return out, nil
}
