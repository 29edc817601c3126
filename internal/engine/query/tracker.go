package query

import (
	"iter"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/jdot274/parcel/internal/core/ports"
	"go.trai.ch/zerr"
)

// Request is a request node together with its id.
type Request struct {
	ID   domain.NodeID
	Node domain.RequestNode
}

// Invalidation is a node that invalidates a request, and how.
type Invalidation struct {
	Kind domain.EdgeKind
	ID   domain.NodeID
	Node domain.Node
}

// RequestTracker offers read-only queries over a decoded request graph.
// Decoded embedded results are memoised in a bounded LRU cache.
type RequestTracker struct {
	graph   *domain.RequestGraph
	codec   ports.GraphCodec
	results *lru.Cache[domain.NodeID, any]
}

// NewRequestTracker wraps g. A non-positive cacheSize falls back to the default.
func NewRequestTracker(g *domain.RequestGraph, codec ports.GraphCodec, cacheSize int) (*RequestTracker, error) {
	if cacheSize <= 0 {
		cacheSize = domain.DefaultResultCacheSize
	}
	results, err := lru.New[domain.NodeID, any](cacheSize)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create result cache")
	}
	return &RequestTracker{graph: g, codec: codec, results: results}, nil
}

// Graph returns the underlying request graph.
func (t *RequestTracker) Graph() *domain.RequestGraph {
	return t.graph
}

// Requests yields every request node in ascending id order.
func (t *RequestTracker) Requests() iter.Seq[Request] {
	return func(yield func(Request) bool) {
		for id, n := range t.graph.Nodes() {
			req, ok := domain.AsRequest(n)
			if !ok {
				continue
			}
			if !yield(Request{ID: id, Node: req}) {
				return
			}
		}
	}
}

// RequestsOfType returns the requests of type rt in ascending id order.
func (t *RequestTracker) RequestsOfType(rt domain.RequestType) []Request {
	var out []Request
	for r := range t.Requests() {
		if r.Node.RequestType == rt {
			out = append(out, r)
		}
	}
	return out
}

// CountByType returns the number of requests of each type.
func (t *RequestTracker) CountByType() map[domain.RequestType]int {
	counts := make(map[domain.RequestType]int)
	for r := range t.Requests() {
		counts[r.Node.RequestType]++
	}
	return counts
}

// Subrequests returns the requests executed on behalf of id, in edge order.
func (t *RequestTracker) Subrequests(id domain.NodeID) []Request {
	var out []Request
	for _, child := range t.graph.NodeIDsConnectedFrom(id, domain.EdgeSubrequest) {
		n, ok := t.graph.Node(child)
		if !ok {
			continue
		}
		if req, ok := domain.AsRequest(n); ok {
			out = append(out, Request{ID: child, Node: req})
		}
	}
	return out
}

// Invalidations returns the nodes that invalidate id, grouped by edge kind in
// the order of domain.InvalidationEdgeKinds.
func (t *RequestTracker) Invalidations(id domain.NodeID) []Invalidation {
	var out []Invalidation
	for _, kind := range domain.InvalidationEdgeKinds() {
		for _, target := range t.graph.NodeIDsConnectedFrom(id, kind) {
			if n, ok := t.graph.Node(target); ok {
				out = append(out, Invalidation{Kind: kind, ID: target, Node: n})
			}
		}
	}
	return out
}

// Result decodes the result embedded in request id. It returns nil, nil when
// the request has no embedded result.
func (t *RequestTracker) Result(id domain.NodeID) (any, error) {
	if v, ok := t.results.Get(id); ok {
		return v, nil
	}

	n, ok := t.graph.Node(id)
	if !ok {
		return nil, zerr.With(domain.ErrNodeNotFound, "node_id", id)
	}
	req, ok := domain.AsRequest(n)
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrTopologyMismatch, "node_id", id), "reason", "not a request")
	}
	if req.Result == nil {
		return nil, nil
	}

	v, err := t.codec.DecodeValue(req.Result)
	if err != nil {
		return nil, zerr.With(err, "content_key", req.ID)
	}
	t.results.Add(id, v)
	return v, nil
}
