// Package codec implements the versioned binary container used for request
// graphs and derived graph snapshots.
package codec

import (
	"bytes"
	"fmt"

	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/zerr"
)

// Codec implements ports.GraphCodec. It is safe for concurrent use.
type Codec struct {
	zstd *zstd.Decoder
}

// New creates a Codec.
func New() (*Codec, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create zstd decoder")
	}
	return &Codec{zstd: dec}, nil
}

// DecodeRequestGraph decodes a request graph blob.
func (c *Codec) DecodeRequestGraph(data []byte) (*domain.RequestGraph, error) {
	payload, err := c.open(data)
	if err != nil {
		return nil, zerr.With(err, "structure", domain.StructureRequestGraph)
	}

	var w wireRequestGraph
	if err := msgpack.Unmarshal(payload, &w); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDecode.Error()), "structure", domain.StructureRequestGraph)
	}

	nodes := make([]domain.Node, len(w.Nodes))
	for i, n := range w.Nodes {
		nodes[i] = fromWireNode(n)
	}

	var edges []domain.Edge
	if w.Edges != nil {
		edges = make([]domain.Edge, len(w.Edges))
		for i, e := range w.Edges {
			edges[i] = domain.Edge{From: domain.NodeID(e.From), To: domain.NodeID(e.To), Kind: domain.EdgeKind(e.Type)}
		}
	}

	var keys map[string]domain.NodeID
	if len(w.ContentKeys) > 0 {
		keys = make(map[string]domain.NodeID, len(w.ContentKeys))
		for k, id := range w.ContentKeys {
			keys[k] = domain.NodeID(id)
		}
	}

	return domain.NewRequestGraph(nodes, edges, keys)
}

// DecodeContainer decodes a snapshot container blob. Either graph may be absent.
func (c *Codec) DecodeContainer(data []byte) (*domain.SnapshotContainer, error) {
	payload, err := c.open(data)
	if err != nil {
		return nil, err
	}

	var w wireContainer
	if err := msgpack.Unmarshal(payload, &w); err != nil {
		return nil, zerr.Wrap(err, domain.ErrDecode.Error())
	}

	out := &domain.SnapshotContainer{}
	if w.AssetGraph != nil {
		cg, err := decodeVersioned(w.AssetGraph, domain.StructureAssetGraph)
		if err != nil {
			return nil, err
		}
		root, nodes, edges := fromWireContentGraph(cg)
		out.AssetGraph, err = domain.NewAssetGraph(cg.Hash, root, nodes, edges)
		if err != nil {
			return nil, zerr.With(err, "structure", domain.StructureAssetGraph)
		}
	}
	if w.BundleGraph != nil {
		cg, err := decodeVersioned(w.BundleGraph, domain.StructureBundleGraph)
		if err != nil {
			return nil, err
		}
		root, nodes, edges := fromWireContentGraph(cg)
		out.BundleGraph, err = domain.NewBundleGraph(root, nodes, edges, cg.PublicIDs)
		if err != nil {
			return nil, zerr.With(err, "structure", domain.StructureBundleGraph)
		}
	}

	return out, nil
}

func decodeVersioned(v *wireVersioned, structure string) (*wireContentGraph, error) {
	if v.Version != ValueVersion {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, domain.ErrDecode.Error()),
			"structure", structure), "version", v.Version)
	}

	var cg wireContentGraph
	if err := msgpack.Unmarshal(v.Value, &cg); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDecode.Error()), "structure", structure)
	}
	return &cg, nil
}

// DecodeBundleManifest decodes the embedded result of a bundle-writing request.
func (c *Codec) DecodeBundleManifest(raw domain.RawValue) (domain.BundleManifest, error) {
	if len(raw) == 0 {
		return nil, zerr.With(domain.ErrDecode, "reason", "empty value")
	}

	var w map[string]wirePackagedBundle
	if err := msgpack.Unmarshal(raw, &w); err != nil {
		return nil, zerr.Wrap(err, domain.ErrDecode.Error())
	}
	if w == nil {
		return nil, zerr.With(domain.ErrDecode, "reason", "value is not a map")
	}

	out := make(domain.BundleManifest, len(w))
	for k, b := range w {
		out[k] = domain.PackagedBundleInfo{
			FilePath: b.FilePath,
			Type:     b.Type,
			Stats:    domain.BundleStats{Size: b.Stats.Size, Time: b.Stats.Time},
		}
	}
	return out, nil
}

// DecodeValue decodes an embedded result into generic Go values.
// Integers decode as int64 or uint64. Every map decodes as map[string]any;
// keys that are not strings are formatted with fmt.Sprint.
func (c *Codec) DecodeValue(raw domain.RawValue) (any, error) {
	if len(raw) == 0 {
		return nil, zerr.With(domain.ErrDecode, "reason", "empty value")
	}

	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	dec.UseLooseInterfaceDecoding(true)
	dec.SetMapDecoder(decodeStringKeyedMap)

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, zerr.Wrap(err, domain.ErrDecode.Error())
	}
	return v, nil
}

func decodeStringKeyedMap(dec *msgpack.Decoder) (any, error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}

	m := make(map[string]any, n)
	for range n {
		k, err := dec.DecodeInterfaceLoose()
		if err != nil {
			return nil, err
		}
		v, err := dec.DecodeInterfaceLoose()
		if err != nil {
			return nil, err
		}
		key, ok := k.(string)
		if !ok {
			key = fmt.Sprint(k)
		}
		m[key] = v
	}
	return m, nil
}
