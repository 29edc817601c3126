// Package query reconstructs the request graph and the derived graphs of a
// build cache without re-running any request.
package query

import (
	"github.com/jdot274/parcel/internal/core/domain"
)

// Locate returns the result cache key of the most recent persisted request of
// type t. Requests without a result cache key never match.
//
// Nodes are appended in creation order, so the highest-index match is the
// newest. Generations only override that order when both candidates recorded
// one. A missing match is not an error: the build may never have run that
// request type.
func Locate(g *domain.RequestGraph, t domain.RequestType) (string, bool) {
	var (
		best  domain.RequestNode
		found bool
	)
	for _, n := range g.Nodes() {
		req, ok := domain.AsRequest(n)
		if !ok || req.RequestType != t || req.ResultCacheKey == "" {
			continue
		}
		if !found || newer(req, best) {
			best, found = req, true
		}
	}
	return best.ResultCacheKey, found
}

// newer reports whether req, which comes after cur in node order, supersedes it.
func newer(req, cur domain.RequestNode) bool {
	if req.Generation == 0 || cur.Generation == 0 {
		return true
	}
	return req.Generation >= cur.Generation
}
