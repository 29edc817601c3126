package report

import (
	"encoding/json"
	"strconv"

	"github.com/jdot274/parcel/internal/engine/query"
	"go.trai.ch/zerr"
)

// RequestDetail is everything the inspector knows about one request.
type RequestDetail struct {
	Request       query.Request
	Subrequests   []query.Request
	Invalidations []query.Invalidation
	// Result is the decoded embedded result, or nil.
	Result any
}

// Request writes a single request with its subrequests, invalidations and
// embedded result.
func (r *Renderer) Request(d RequestDetail) error {
	t := newTable("  ")
	t.row("id", strconv.FormatUint(uint64(d.Request.ID), 10))
	t.row("content key", d.Request.Node.ID)
	t.row("type", d.Request.Node.RequestType.String())
	t.row("result", result(d.Request.Node))
	parts := []string{r.heading("Request") + t.String()}

	if len(d.Subrequests) > 0 {
		sub := newTable("  ")
		for _, s := range d.Subrequests {
			sub.row(strconv.FormatUint(uint64(s.ID), 10), s.Node.RequestType.String(), s.Node.ID)
		}
		parts = append(parts, "\n"+r.heading("Subrequests")+sub.String())
	}

	if len(d.Invalidations) > 0 {
		inv := newTable("  ")
		for _, i := range d.Invalidations {
			inv.row(i.Kind.String(), i.Node.Kind().String(), i.Node.ContentKey())
		}
		parts = append(parts, "\n"+r.heading("Invalidations")+inv.String())
	}

	if d.Result != nil {
		data, err := json.MarshalIndent(d.Result, "  ", "  ")
		if err != nil {
			return zerr.Wrap(err, "failed to render embedded result")
		}
		parts = append(parts, "\n"+r.heading("Embedded result")+"  "+string(data)+"\n")
	}

	return r.write(parts...)
}
