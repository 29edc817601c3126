package domain

import (
	"iter"
	"slices"
	"strconv"

	"go.trai.ch/zerr"
)

// GraphNodeType is the tag of an asset or bundle graph node.
type GraphNodeType uint8

// Known asset and bundle graph node types.
const (
	GraphNodeRoot GraphNodeType = iota
	GraphNodeEntrySpecifier
	GraphNodeEntryFile
	GraphNodeAssetGroup
	GraphNodeAsset
	GraphNodeDependency
	GraphNodeBundle
	GraphNodeBundleGroup
)

// String returns the engine's name for the node type.
func (t GraphNodeType) String() string {
	switch t {
	case GraphNodeRoot:
		return "root"
	case GraphNodeEntrySpecifier:
		return "entry_specifier"
	case GraphNodeEntryFile:
		return "entry_file"
	case GraphNodeAssetGroup:
		return "asset_group"
	case GraphNodeAsset:
		return "asset"
	case GraphNodeDependency:
		return "dependency"
	case GraphNodeBundle:
		return "bundle"
	case GraphNodeBundleGroup:
		return "bundle_group"
	default:
		return "node_type(" + strconv.Itoa(int(t)) + ")"
	}
}

// GraphEdgeType is the type of an edge in an asset or bundle graph.
type GraphEdgeType uint8

// Known asset and bundle graph edge types.
const (
	GraphEdgeNull          GraphEdgeType = 1
	GraphEdgeContains      GraphEdgeType = 2
	GraphEdgeBundle        GraphEdgeType = 3
	GraphEdgeReferences    GraphEdgeType = 4
	GraphEdgeInternalAsync GraphEdgeType = 5
)

// GraphNode is a node of an asset or bundle graph. Which fields are set depends on Type.
type GraphNode struct {
	ContentKey string
	Type       GraphNodeType
	// FilePath is set for assets, asset groups and entry files.
	FilePath string
	// Specifier is set for dependencies and entry specifiers.
	Specifier string
	// ValueType is the asset type ("js", "css", ...) or the bundle type.
	ValueType string
	// Size is the asset's output size in bytes.
	Size int64
	// Name and PublicID are set for bundles.
	Name     string
	PublicID string
}

// GraphEdge is a typed directed edge of an asset or bundle graph.
type GraphEdge struct {
	From NodeID
	To   NodeID
	Type GraphEdgeType
}

// ContentGraph is the arena shared by asset and bundle graphs: node slots
// addressed by NodeID plus a typed adjacency index.
type ContentGraph struct {
	root        NodeID
	nodes       []*GraphNode
	edges       []GraphEdge
	contentKeys map[string]NodeID
	outgoing    map[NodeID]map[GraphEdgeType][]NodeID
	incoming    map[NodeID]map[GraphEdgeType][]NodeID
}

// NewContentGraph builds a ContentGraph. Nil slots denote removed nodes.
// It returns ErrTopologyMismatch if the root or an edge refers to a missing slot.
func NewContentGraph(root NodeID, nodes []*GraphNode, edges []GraphEdge) (*ContentGraph, error) {
	g := &ContentGraph{
		root:        root,
		nodes:       nodes,
		edges:       edges,
		contentKeys: make(map[string]NodeID, len(nodes)),
		outgoing:    make(map[NodeID]map[GraphEdgeType][]NodeID),
		incoming:    make(map[NodeID]map[GraphEdgeType][]NodeID),
	}

	if len(nodes) > 0 && !g.valid(root) {
		return nil, zerr.With(ErrTopologyMismatch, "root", root)
	}

	for i, n := range nodes {
		if n != nil {
			g.contentKeys[n.ContentKey] = NodeID(i) //nolint:gosec // bounded by slice length
		}
	}

	for _, e := range edges {
		if !g.valid(e.From) || !g.valid(e.To) {
			return nil, zerr.With(zerr.With(ErrTopologyMismatch, "from", e.From), "to", e.To)
		}
		addTyped(g.outgoing, e.From, e.Type, e.To)
		addTyped(g.incoming, e.To, e.Type, e.From)
	}

	return g, nil
}

func addTyped(adj map[NodeID]map[GraphEdgeType][]NodeID, from NodeID, t GraphEdgeType, to NodeID) {
	byType, ok := adj[from]
	if !ok {
		byType = make(map[GraphEdgeType][]NodeID)
		adj[from] = byType
	}
	byType[t] = append(byType[t], to)
}

func (g *ContentGraph) valid(id NodeID) bool {
	return int(id) < len(g.nodes) && g.nodes[id] != nil
}

// Root returns the id of the root node.
func (g *ContentGraph) Root() NodeID {
	return g.root
}

// Len returns the number of node slots.
func (g *ContentGraph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *ContentGraph) EdgeCount() int {
	return len(g.edges)
}

// Node returns the node stored at id.
func (g *ContentGraph) Node(id NodeID) (*GraphNode, bool) {
	if !g.valid(id) {
		return nil, false
	}
	return g.nodes[id], true
}

// Nodes yields every present node with its id, in ascending id order.
func (g *ContentGraph) Nodes() iter.Seq2[NodeID, *GraphNode] {
	return func(yield func(NodeID, *GraphNode) bool) {
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
func (g *ContentGraph) Edges() iter.Seq[GraphEdge] {
	return slices.Values(g.edges)
}

// NodeByContentKey resolves a content key to its node.
// It returns ErrNodeNotFound if no node carries the key.
func (g *ContentGraph) NodeByContentKey(key string) (NodeID, *GraphNode, error) {
	id, ok := g.contentKeys[key]
	if !ok {
		return 0, nil, zerr.With(ErrNodeNotFound, "content_key", key)
	}
	return id, g.nodes[id], nil
}

// NodeIDsConnectedFrom returns the targets of id's outgoing edges of type t.
func (g *ContentGraph) NodeIDsConnectedFrom(id NodeID, t GraphEdgeType) []NodeID {
	return slices.Clone(g.outgoing[id][t])
}

// NodeIDsConnectedTo returns the sources of id's incoming edges of type t.
func (g *ContentGraph) NodeIDsConnectedTo(id NodeID, t GraphEdgeType) []NodeID {
	return slices.Clone(g.incoming[id][t])
}

// NodesOfType returns the ids of all nodes of type t, in ascending order.
func (g *ContentGraph) NodesOfType(t GraphNodeType) []NodeID {
	var ids []NodeID
	for id, n := range g.Nodes() {
		if n.Type == t {
			ids = append(ids, id)
		}
	}
	return ids
}

// CountByType returns the number of nodes of each type.
func (g *ContentGraph) CountByType() map[GraphNodeType]int {
	counts := make(map[GraphNodeType]int)
	for _, n := range g.Nodes() {
		counts[n.Type]++
	}
	return counts
}

func (g *ContentGraph) filter(ids []NodeID, t GraphNodeType) []NodeID {
	out := ids[:0]
	for _, id := range ids {
		if n, ok := g.Node(id); ok && n.Type == t {
			out = append(out, id)
		}
	}
	return out
}

// AssetGraph is the decoded asset dependency graph of a build.
type AssetGraph struct {
	*ContentGraph
	// Hash identifies the graph's content as computed by the engine.
	Hash string
}

// NewAssetGraph builds an AssetGraph.
func NewAssetGraph(hash string, root NodeID, nodes []*GraphNode, edges []GraphEdge) (*AssetGraph, error) {
	g, err := NewContentGraph(root, nodes, edges)
	if err != nil {
		return nil, err
	}
	return &AssetGraph{ContentGraph: g, Hash: hash}, nil
}

// Assets returns the ids of all asset nodes.
func (g *AssetGraph) Assets() []NodeID {
	return g.NodesOfType(GraphNodeAsset)
}

// Dependencies returns the ids of all dependency nodes.
func (g *AssetGraph) Dependencies() []NodeID {
	return g.NodesOfType(GraphNodeDependency)
}

// BundleGraph is the decoded bundle graph of a build.
type BundleGraph struct {
	*ContentGraph
	// PublicIDs maps bundle public ids to bundle content keys.
	PublicIDs map[string]string
}

// NewBundleGraph builds a BundleGraph.
func NewBundleGraph(root NodeID, nodes []*GraphNode, edges []GraphEdge, publicIDs map[string]string) (*BundleGraph, error) {
	g, err := NewContentGraph(root, nodes, edges)
	if err != nil {
		return nil, err
	}
	return &BundleGraph{ContentGraph: g, PublicIDs: publicIDs}, nil
}

// Bundles returns the ids of all bundle nodes.
func (g *BundleGraph) Bundles() []NodeID {
	return g.NodesOfType(GraphNodeBundle)
}

// BundleByPublicID resolves a bundle's public id to its node.
func (g *BundleGraph) BundleByPublicID(publicID string) (NodeID, *GraphNode, error) {
	key, ok := g.PublicIDs[publicID]
	if !ok {
		return 0, nil, zerr.With(ErrNodeNotFound, "public_id", publicID)
	}
	return g.NodeByContentKey(key)
}

// AssetsInBundle returns the assets a bundle contains.
func (g *BundleGraph) AssetsInBundle(bundle NodeID) []NodeID {
	return g.filter(g.NodeIDsConnectedFrom(bundle, GraphEdgeContains), GraphNodeAsset)
}

// BundlesReferencing returns the bundles that reference the given bundle.
func (g *BundleGraph) BundlesReferencing(bundle NodeID) []NodeID {
	return g.filter(g.NodeIDsConnectedTo(bundle, GraphEdgeReferences), GraphNodeBundle)
}

// SnapshotContainer is a decoded derived-graph snapshot. Either field may be absent.
type SnapshotContainer struct {
	AssetGraph  *AssetGraph
	BundleGraph *BundleGraph
}
