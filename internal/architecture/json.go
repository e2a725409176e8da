package architecture

import (
	"encoding/json"

	"qirc/internal/qerrors"
)

type linkJSON struct {
	Link   [2]Node `json:"link"`
	Weight float64 `json:"weight"`
}

type architectureJSON struct {
	Nodes []Node     `json:"nodes"`
	Links []linkJSON `json:"links"`
}

// MarshalJSON encodes the architecture as {nodes, links}, both in
// insertion order, so decoding reproduces an identical graph.
func (a *Architecture) MarshalJSON() ([]byte, error) {
	nodes := a.order
	if nodes == nil {
		nodes = []Node{}
	}
	links := make([]linkJSON, len(a.edges))
	for i, e := range a.edges {
		links[i] = linkJSON{Link: [2]Node{e.U, e.V}, Weight: e.Weight}
	}
	return json.Marshal(architectureJSON{Nodes: nodes, Links: links})
}

// UnmarshalJSON decodes the {nodes, links} form, preserving node order.
func (a *Architecture) UnmarshalJSON(data []byte) error {
	var raw struct {
		Nodes *[]Node     `json:"nodes"`
		Links *[]linkJSON `json:"links"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return qerrors.Wrap(qerrors.MalformedJson, err, "invalid architecture JSON")
	}
	if raw.Nodes == nil || raw.Links == nil {
		return qerrors.New(qerrors.MalformedJson, "architecture JSON missing required field")
	}
	dec := New()
	for _, nd := range *raw.Nodes {
		dec.AddNode(nd)
	}
	for _, l := range *raw.Links {
		if !dec.NodeExists(l.Link[0]) || !dec.NodeExists(l.Link[1]) {
			return qerrors.New(qerrors.MalformedJson, "architecture link references unknown node")
		}
		dec.AddConnection(l.Link[0], l.Link[1], l.Weight)
	}
	*a = *dec
	return nil
}
