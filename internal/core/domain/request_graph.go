// Package domain contains the core domain models for inspecting a build cache.
package domain

import (
	"iter"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// NodeID is the dense, zero-based index of a node slot in a graph.
type NodeID uint32

// Edge is a typed directed edge between two request graph nodes.
type Edge struct {
	From NodeID
	To   NodeID
	Kind EdgeKind
}

// RequestGraph is the decoded dependency and provenance graph of every request
// the engine has executed. Nodes are stored in insertion order, so a higher
// NodeID was created no earlier than any lower one. The graph is immutable
// once constructed.
type RequestGraph struct {
	nodes       []Node
	edges       []Edge
	outgoing    map[NodeID]map[EdgeKind][]NodeID
	incoming    map[NodeID]map[EdgeKind][]NodeID
	contentKeys map[string]NodeID
}

// NewRequestGraph builds a RequestGraph from decoded node slots, edges and
// content key index. Nil slots denote removed nodes. When contentKeys is nil
// the index is derived from the nodes themselves.
// It returns ErrTopologyMismatch if an edge or index entry refers to a slot
// that does not exist.
func NewRequestGraph(nodes []Node, edges []Edge, contentKeys map[string]NodeID) (*RequestGraph, error) {
	g := &RequestGraph{
		nodes:       nodes,
		edges:       edges,
		outgoing:    make(map[NodeID]map[EdgeKind][]NodeID),
		incoming:    make(map[NodeID]map[EdgeKind][]NodeID),
		contentKeys: contentKeys,
	}

	if g.contentKeys == nil {
		g.contentKeys = make(map[string]NodeID, len(nodes))
		for i, n := range nodes {
			if n != nil && n.ContentKey() != "" {
				g.contentKeys[n.ContentKey()] = NodeID(i) //nolint:gosec // bounded by slice length
			}
		}
	}

	for key, id := range g.contentKeys {
		if !g.valid(id) {
			return nil, zerr.With(zerr.With(ErrTopologyMismatch, "content_key", key), "node_id", id)
		}
	}

	for _, e := range edges {
		if !g.valid(e.From) || !g.valid(e.To) {
			return nil, zerr.With(zerr.With(zerr.With(ErrTopologyMismatch,
				"from", e.From), "to", e.To), "edge_kind", e.Kind.String())
		}
		addAdjacent(g.outgoing, e.From, e.Kind, e.To)
		addAdjacent(g.incoming, e.To, e.Kind, e.From)
	}

	return g, nil
}

func addAdjacent(adj map[NodeID]map[EdgeKind][]NodeID, from NodeID, kind EdgeKind, to NodeID) {
	byKind, ok := adj[from]
	if !ok {
		byKind = make(map[EdgeKind][]NodeID)
		adj[from] = byKind
	}
	byKind[kind] = append(byKind[kind], to)
}

func (g *RequestGraph) valid(id NodeID) bool {
	return int(id) < len(g.nodes) && g.nodes[id] != nil
}

// Len returns the number of node slots, including removed ones.
func (g *RequestGraph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *RequestGraph) EdgeCount() int {
	return len(g.edges)
}

// Node returns the node stored at id.
func (g *RequestGraph) Node(id NodeID) (Node, bool) {
	if !g.valid(id) {
		return nil, false
	}
	return g.nodes[id], true
}

// Nodes yields every present node with its id, in ascending id order.
func (g *RequestGraph) Nodes() iter.Seq2[NodeID, Node] {
	return func(yield func(NodeID, Node) bool) {
		for i, n := range g.nodes {
			if n == nil {
				continue
			}
			if !yield(NodeID(i), n) { //nolint:gosec // bounded by slice length
				return
			}
		}
	}
}

// Edges yields every edge in insertion order.
func (g *RequestGraph) Edges() iter.Seq[Edge] {
	return slices.Values(g.edges)
}

// NodeIDByContentKey resolves a content key to its node id.
// It returns ErrNodeNotFound if no node carries the key.
func (g *RequestGraph) NodeIDByContentKey(key string) (NodeID, error) {
	id, ok := g.contentKeys[key]
	if !ok {
		return 0, zerr.With(ErrNodeNotFound, "content_key", key)
	}
	return id, nil
}

// NodeByContentKey resolves a content key to its node.
func (g *RequestGraph) NodeByContentKey(key string) (NodeID, Node, error) {
	id, err := g.NodeIDByContentKey(key)
	if err != nil {
		return 0, nil, err
	}
	return id, g.nodes[id], nil
}

// ContentKeys returns a copy of the content key index.
func (g *RequestGraph) ContentKeys() map[string]NodeID {
	return maps.Clone(g.contentKeys)
}

// NodeIDsConnectedFrom returns the targets of id's outgoing edges of the given kind,
// in insertion order.
func (g *RequestGraph) NodeIDsConnectedFrom(id NodeID, kind EdgeKind) []NodeID {
	return slices.Clone(g.outgoing[id][kind])
}

// NodeIDsConnectedTo returns the sources of id's incoming edges of the given kind,
// in insertion order.
func (g *RequestGraph) NodeIDsConnectedTo(id NodeID, kind EdgeKind) []NodeID {
	return slices.Clone(g.incoming[id][kind])
}
