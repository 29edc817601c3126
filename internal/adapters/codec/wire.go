package codec

import (
	"maps"
	"slices"

	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// ValueVersion is the only version accepted for snapshot values inside a container.
const ValueVersion uint16 = 1

type wireRequestGraph struct {
	Nodes       []*wireNode       `msgpack:"nodes"`
	Edges       []wireEdge        `msgpack:"edges"`
	ContentKeys sortedMap[uint32] `msgpack:"contentKeys,omitempty"`
}

// sortedMap encodes with its keys in ascending order. msgpack only sorts the
// keys of its built-in map fast paths, not of arbitrary map types.
type sortedMap[V any] map[string]V

// EncodeMsgpack implements msgpack.CustomEncoder.
func (m sortedMap[V]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if m == nil {
		return enc.EncodeNil()
	}
	if err := enc.EncodeMapLen(len(m)); err != nil {
		return err
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := enc.Encode(m[k]); err != nil {
			return err
		}
	}
	return nil
}

// wireNode carries every node variant. Value holds the variant's single string
// payload: the env value, option hash, glob or config key hash.
type wireNode struct {
	Type           uint8              `msgpack:"type"`
	ID             string             `msgpack:"id"`
	RequestType    uint8              `msgpack:"requestType,omitempty"`
	ResultCacheKey string             `msgpack:"resultCacheKey,omitempty"`
	Result         msgpack.RawMessage `msgpack:"result,omitempty"`
	Generation     uint64             `msgpack:"generation,omitempty"`
	Value          string             `msgpack:"value,omitempty"`
}

type wireEdge struct {
	_msgpack struct{} `msgpack:",as_array"` //nolint:unused // struct tag carrier

	From uint32
	To   uint32
	Type uint8
}

type wireContainer struct {
	AssetGraph  *wireVersioned `msgpack:"assetGraph,omitempty"`
	BundleGraph *wireVersioned `msgpack:"bundleGraph,omitempty"`
}

type wireVersioned struct {
	Version uint16             `msgpack:"version"`
	Value   msgpack.RawMessage `msgpack:"value"`
}

type wireContentGraph struct {
	Hash      string            `msgpack:"hash,omitempty"`
	Root      uint32            `msgpack:"rootNodeId"`
	Nodes     []*wireGraphNode  `msgpack:"nodes"`
	Edges     []wireEdge        `msgpack:"edges"`
	PublicIDs map[string]string `msgpack:"publicIdByBundleId,omitempty"`
}

type wireGraphNode struct {
	ID        string `msgpack:"id"`
	Type      uint8  `msgpack:"type"`
	FilePath  string `msgpack:"filePath,omitempty"`
	Specifier string `msgpack:"specifier,omitempty"`
	ValueType string `msgpack:"valueType,omitempty"`
	Size      int64  `msgpack:"size,omitempty"`
	Name      string `msgpack:"name,omitempty"`
	PublicID  string `msgpack:"publicId,omitempty"`
}

type wirePackagedBundle struct {
	FilePath string          `msgpack:"filePath"`
	Type     string          `msgpack:"type"`
	Stats    wireBundleStats `msgpack:"stats"`
}

type wireBundleStats struct {
	Size int64 `msgpack:"size"`
	Time int64 `msgpack:"time"`
}

func toWireNode(n domain.Node) *wireNode {
	if n == nil {
		return nil
	}

	w := &wireNode{Type: uint8(n.Kind()), ID: n.ContentKey()}
	switch v := n.(type) {
	case domain.RequestNode:
		w.RequestType = uint8(v.RequestType)
		w.ResultCacheKey = v.ResultCacheKey
		w.Result = msgpack.RawMessage(v.Result)
		w.Generation = v.Generation
	case domain.EnvNode:
		w.Value = v.Value
	case domain.OptionNode:
		w.Value = v.Hash
	case domain.GlobNode:
		w.Value = v.Glob
	case domain.ConfigKeyNode:
		w.Value = v.Hash
	}
	return w
}

func fromWireNode(w *wireNode) domain.Node {
	if w == nil {
		return nil
	}

	switch domain.NodeKind(w.Type) {
	case domain.NodeKindRequest:
		n := domain.RequestNode{
			ID:             w.ID,
			RequestType:    domain.RequestType(w.RequestType),
			ResultCacheKey: w.ResultCacheKey,
			Generation:     w.Generation,
		}
		if w.Result != nil {
			n.Result = domain.RawValue(w.Result)
		}
		return n
	case domain.NodeKindFile:
		return domain.FileNode{ID: w.ID}
	case domain.NodeKindFileName:
		return domain.FileNameNode{ID: w.ID}
	case domain.NodeKindEnv:
		return domain.EnvNode{ID: w.ID, Value: w.Value}
	case domain.NodeKindOption:
		return domain.OptionNode{ID: w.ID, Hash: w.Value}
	case domain.NodeKindGlob:
		return domain.GlobNode{ID: w.ID, Glob: w.Value}
	case domain.NodeKindConfigKey:
		return domain.ConfigKeyNode{ID: w.ID, Hash: w.Value}
	default:
		return domain.UnknownNode{ID: w.ID, Tag: domain.NodeKind(w.Type)}
	}
}

func toWireGraphNode(n *domain.GraphNode) *wireGraphNode {
	if n == nil {
		return nil
	}
	return &wireGraphNode{
		ID:        n.ContentKey,
		Type:      uint8(n.Type),
		FilePath:  n.FilePath,
		Specifier: n.Specifier,
		ValueType: n.ValueType,
		Size:      n.Size,
		Name:      n.Name,
		PublicID:  n.PublicID,
	}
}

func fromWireGraphNode(w *wireGraphNode) *domain.GraphNode {
	if w == nil {
		return nil
	}
	return &domain.GraphNode{
		ContentKey: w.ID,
		Type:       domain.GraphNodeType(w.Type),
		FilePath:   w.FilePath,
		Specifier:  w.Specifier,
		ValueType:  w.ValueType,
		Size:       w.Size,
		Name:       w.Name,
		PublicID:   w.PublicID,
	}
}

func toWireContentGraph(g *domain.ContentGraph) *wireContentGraph {
	w := &wireContentGraph{
		Root:  uint32(g.Root()),
		Nodes: make([]*wireGraphNode, g.Len()),
	}
	for i := range g.Len() {
		if n, ok := g.Node(domain.NodeID(i)); ok { //nolint:gosec // bounded by graph length
			w.Nodes[i] = toWireGraphNode(n)
		}
	}
	for e := range g.Edges() {
		w.Edges = append(w.Edges, wireEdge{From: uint32(e.From), To: uint32(e.To), Type: uint8(e.Type)})
	}
	return w
}

func fromWireContentGraph(w *wireContentGraph) (domain.NodeID, []*domain.GraphNode, []domain.GraphEdge) {
	nodes := make([]*domain.GraphNode, len(w.Nodes))
	for i, n := range w.Nodes {
		nodes[i] = fromWireGraphNode(n)
	}

	var edges []domain.GraphEdge
	if w.Edges != nil {
		edges = make([]domain.GraphEdge, len(w.Edges))
		for i, e := range w.Edges {
			edges[i] = domain.GraphEdge{
				From: domain.NodeID(e.From),
				To:   domain.NodeID(e.To),
				Type: domain.GraphEdgeType(e.Type),
			}
		}
	}
	return domain.NodeID(w.Root), nodes, edges
}
