package query

import (
	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/jdot274/parcel/internal/core/ports"
	"go.trai.ch/zerr"
)

// ResolveEmbeddedResult walks from the node with rootContentKey along its
// subrequest edges to the first child request of type child and returns the
// result embedded in it. No blob is fetched.
//
// The returned error describes why nothing was found: ErrNodeNotFound when the
// root is missing, ErrTopologyMismatch when the root is not a request, has no
// matching child, or the child carries no embedded result. Callers treat any
// error as "not available".
func ResolveEmbeddedResult(g *domain.RequestGraph, rootContentKey string, child domain.RequestType) (domain.RawValue, error) {
	rootID, root, err := g.NodeByContentKey(rootContentKey)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.AsRequest(root); !ok {
		return nil, zerr.With(zerr.With(domain.ErrTopologyMismatch, "content_key", rootContentKey),
			"reason", "root is not a request")
	}

	for _, id := range g.NodeIDsConnectedFrom(rootID, domain.EdgeSubrequest) {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		req, ok := domain.AsRequest(n)
		if !ok || req.RequestType != child {
			continue
		}
		if req.Result == nil {
			return nil, zerr.With(zerr.With(domain.ErrTopologyMismatch, "content_key", req.ID),
				"reason", "subrequest has no embedded result")
		}
		return req.Result, nil
	}

	return nil, zerr.With(zerr.With(domain.ErrTopologyMismatch, "content_key", rootContentKey),
		"request_type", child.String())
}

// ResolveBundleManifest recovers the bundle manifest embedded in the
// bundle-writing subrequest of the top-level build request. A root request of
// any other type is a topology mismatch.
func ResolveBundleManifest(g *domain.RequestGraph, codec ports.GraphCodec) (domain.BundleManifest, error) {
	_, root, err := g.NodeByContentKey(domain.BuildRequestContentKey)
	if err != nil {
		return nil, err
	}
	if req, ok := domain.AsRequest(root); ok && req.RequestType != domain.RequestTypeBuild {
		return nil, zerr.With(zerr.With(domain.ErrTopologyMismatch, "content_key", req.ID),
			"reason", "root is not the build request")
	}

	raw, err := ResolveEmbeddedResult(g, domain.BuildRequestContentKey, domain.RequestTypeWriteBundles)
	if err != nil {
		return nil, err
	}
	return codec.DecodeBundleManifest(raw)
}
