package codec

import (
	"bytes"

	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/zerr"
)

// EncodeOption configures how a blob is encoded.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	compress bool
}

// WithCompression compresses the container payload with zstd.
func WithCompression() EncodeOption {
	return func(o *encodeOptions) {
		o.compress = true
	}
}

func buildOptions(opts []EncodeOption) encodeOptions {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// marshal encodes v with sorted map keys. Typed maps must be sortedMap for
// equal values to produce equal bytes.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, zerr.Wrap(err, "failed to encode value")
	}
	return buf.Bytes(), nil
}

// EncodeRequestGraph encodes g into a container blob readable by DecodeRequestGraph.
func EncodeRequestGraph(g *domain.RequestGraph, opts ...EncodeOption) ([]byte, error) {
	w := wireRequestGraph{
		Nodes: make([]*wireNode, g.Len()),
	}
	for i := range g.Len() {
		if n, ok := g.Node(domain.NodeID(i)); ok { //nolint:gosec // bounded by graph length
			w.Nodes[i] = toWireNode(n)
		}
	}
	for e := range g.Edges() {
		w.Edges = append(w.Edges, wireEdge{From: uint32(e.From), To: uint32(e.To), Type: uint8(e.Kind)})
	}
	if keys := g.ContentKeys(); len(keys) > 0 {
		w.ContentKeys = make(sortedMap[uint32], len(keys))
		for k, id := range keys {
			w.ContentKeys[k] = uint32(id)
		}
	}

	payload, err := marshal(&w)
	if err != nil {
		return nil, err
	}
	return seal(payload, buildOptions(opts).compress)
}

// EncodeContainer encodes c into a container blob readable by DecodeContainer.
func EncodeContainer(c *domain.SnapshotContainer, opts ...EncodeOption) ([]byte, error) {
	var w wireContainer
	if c.AssetGraph != nil {
		cg := toWireContentGraph(c.AssetGraph.ContentGraph)
		cg.Hash = c.AssetGraph.Hash
		v, err := encodeVersioned(cg)
		if err != nil {
			return nil, err
		}
		w.AssetGraph = v
	}
	if c.BundleGraph != nil {
		cg := toWireContentGraph(c.BundleGraph.ContentGraph)
		cg.PublicIDs = c.BundleGraph.PublicIDs
		v, err := encodeVersioned(cg)
		if err != nil {
			return nil, err
		}
		w.BundleGraph = v
	}

	payload, err := marshal(&w)
	if err != nil {
		return nil, err
	}
	return seal(payload, buildOptions(opts).compress)
}

func encodeVersioned(cg *wireContentGraph) (*wireVersioned, error) {
	value, err := marshal(cg)
	if err != nil {
		return nil, err
	}
	return &wireVersioned{Version: ValueVersion, Value: value}, nil
}

// EncodeBundleManifest encodes m as an embedded result readable by DecodeBundleManifest.
func EncodeBundleManifest(m domain.BundleManifest) (domain.RawValue, error) {
	w := make(sortedMap[wirePackagedBundle], len(m))
	for k, b := range m {
		w[k] = wirePackagedBundle{
			FilePath: b.FilePath,
			Type:     b.Type,
			Stats:    wireBundleStats{Size: b.Stats.Size, Time: b.Stats.Time},
		}
	}
	return EncodeValue(w)
}

// EncodeValue encodes an arbitrary value as an embedded result.
func EncodeValue(v any) (domain.RawValue, error) {
	raw, err := marshal(v)
	if err != nil {
		return nil, err
	}
	return domain.RawValue(raw), nil
}
