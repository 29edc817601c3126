// Package report renders inspection results for the terminal.
package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/jdot274/parcel/internal/engine/query"
	"github.com/jdot274/parcel/internal/ui/output"
	"github.com/jdot274/parcel/internal/ui/style"
	"github.com/muesli/termenv"
)

// Source describes where a report was loaded from.
type Source struct {
	Dir     string
	Backend string
}

// Renderer writes reports to a terminal or a pipe.
type Renderer struct {
	out *termenv.Output
}

// New creates a Renderer writing to w. Colors follow NO_COLOR and the
// terminal's capabilities.
func New(w io.Writer) *Renderer {
	return &Renderer{out: output.New(w)}
}

// NewPlain creates a Renderer that never emits escape sequences.
func NewPlain(w io.Writer) *Renderer {
	return &Renderer{out: output.NewWithProfile(w, output.PlainProfile)}
}

func (r *Renderer) heading(title string) string {
	return r.out.String(title).Bold().Foreground(termenv.RGBColor(string(style.Iris))).String() + "\n"
}

func (r *Renderer) write(parts ...string) error {
	for _, p := range parts {
		if _, err := r.out.WriteString(p); err != nil {
			return err
		}
	}
	return nil
}

// Stats writes the cache overview: manifest, recovered structures, graph
// sizes and the notes explaining anything that is missing.
func (r *Renderer) Stats(rep *query.Report, src Source) error {
	parts := []string{
		r.heading("Cache") + r.cache(src) + "\n",
		r.heading("Manifest") + manifest(rep.Manifest) + "\n",
		r.heading("Structures") + structures(rep.CacheInfo) + "\n",
	}

	if rep.RequestTracker != nil {
		parts = append(parts, r.heading("Request graph")+requestGraph(rep.RequestTracker)+"\n")
	}
	if rep.AssetGraph != nil {
		parts = append(parts, r.heading("Asset graph")+assetGraph(rep.AssetGraph)+"\n")
	}
	if rep.BundleGraph != nil {
		parts = append(parts, r.heading("Bundle graph")+bundleGraph(rep.BundleGraph)+"\n")
	}
	if rep.BundleManifest != nil {
		parts = append(parts, r.heading("Bundle manifest")+bundleTotals(rep.BundleManifest)+"\n")
	}
	if notes := rep.Notes(); len(notes) > 0 {
		parts = append(parts, r.heading("Notes")+r.notes(notes))
	}

	return r.write(parts...)
}

func (r *Renderer) cache(src Source) string {
	t := newTable("  ")
	t.row("directory", src.Dir)
	t.row("backend", src.Backend)
	return t.String()
}

func manifest(m *domain.ManifestInfo) string {
	if m == nil {
		return "  none\n"
	}

	t := newTable("  ")
	t.row("request graph", orDash(m.RequestGraphKey))
	t.row("snapshot", orDash(m.SnapshotKey))
	if m.Timestamp > 0 {
		t.row("written", time.UnixMilli(m.Timestamp).UTC().Format(time.RFC3339))
	}
	return t.String()
}

func structures(info *domain.CacheInfo) string {
	t := newTable("  ")
	for _, name := range []string{
		domain.StructureRequestGraph,
		domain.StructureAssetGraph,
		domain.StructureBundleGraph,
	} {
		entry, ok := info.Get(name)
		if !ok {
			t.row(name, "unavailable")
			continue
		}
		//nolint:gosec // blob sizes are non-negative
		t.row(name, humanize.Bytes(uint64(entry.Bytes)), "decoded in "+strconv.FormatInt(entry.DecodeMillis, 10)+" ms")
	}
	return t.String()
}

func requestGraph(tracker *query.RequestTracker) string {
	g := tracker.Graph()
	counts := tracker.CountByType()

	total := 0
	for _, n := range counts {
		total += n
	}

	t := newTable("  ")
	t.row("nodes", strconv.Itoa(g.Len()))
	t.row("edges", strconv.Itoa(g.EdgeCount()))
	t.row("requests", strconv.Itoa(total))
	for _, rt := range slices.Sorted(maps.Keys(counts)) {
		t.row("  "+rt.String(), strconv.Itoa(counts[rt]))
	}
	return t.String()
}

func assetGraph(g *domain.AssetGraph) string {
	t := newTable("  ")
	t.row("hash", orDash(g.Hash))
	t.row("nodes", strconv.Itoa(g.Len()))
	t.row("edges", strconv.Itoa(g.EdgeCount()))
	t.row("assets", strconv.Itoa(len(g.Assets())))
	t.row("dependencies", strconv.Itoa(len(g.Dependencies())))
	return t.String()
}

func bundleGraph(g *domain.BundleGraph) string {
	t := newTable("  ")
	t.row("nodes", strconv.Itoa(g.Len()))
	t.row("edges", strconv.Itoa(g.EdgeCount()))
	t.row("bundles", strconv.Itoa(len(g.Bundles())))
	return t.String()
}

func bundleTotals(m domain.BundleManifest) string {
	var size int64
	for _, info := range m {
		size += info.Stats.Size
	}

	t := newTable("  ")
	t.row("bundles", strconv.Itoa(len(m)))
	//nolint:gosec // bundle sizes are non-negative
	t.row("total size", humanize.Bytes(uint64(size)))
	return t.String()
}

func (r *Renderer) notes(notes []string) string {
	var s string
	for _, n := range notes {
		s += "  " + r.out.String(style.Warning+" "+n).Foreground(termenv.RGBColor(string(style.Yellow))).String() + "\n"
	}
	return s
}

// Requests writes one line per request, in id order.
func (r *Renderer) Requests(requests []query.Request) error {
	if len(requests) == 0 {
		return r.write("no requests\n")
	}

	t := newTable("")
	t.row("ID", "TYPE", "CONTENT KEY", "RESULT")
	for _, req := range requests {
		t.row(
			strconv.FormatUint(uint64(req.ID), 10),
			req.Node.RequestType.String(),
			req.Node.ID,
			result(req.Node),
		)
	}
	return r.write(t.String())
}

func result(n domain.RequestNode) string {
	switch {
	case n.Result != nil && n.ResultCacheKey != "":
		return "embedded, " + n.ResultCacheKey
	case n.Result != nil:
		return "embedded"
	case n.ResultCacheKey != "":
		return n.ResultCacheKey
	default:
		return "-"
	}
}

// Bundles writes the bundle manifest sorted by bundle content key.
func (r *Renderer) Bundles(m domain.BundleManifest) error {
	if m == nil {
		return r.write("bundle manifest unavailable\n")
	}

	t := newTable("")
	t.row("BUNDLE", "TYPE", "FILE", "SIZE", "TIME")
	for _, key := range slices.Sorted(maps.Keys(m)) {
		info := m[key]
		t.row(
			key,
			orDash(info.Type),
			orDash(info.FilePath),
			//nolint:gosec // bundle sizes are non-negative
			humanize.Bytes(uint64(info.Stats.Size)),
			fmt.Sprintf("%d ms", info.Stats.Time),
		)
	}
	return r.write(t.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
