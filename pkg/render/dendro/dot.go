package dendro

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/viewmorph/viewmorph/pkg/cluster"
	"github.com/viewmorph/viewmorph/pkg/render"
)

// Options configures dendrogram generation.
type Options struct {
	// Detailed labels each merge node with its centroid distance.
	// When false, merges render as junction points.
	Detailed bool
}

// ToDOT converts a hierarchical merge sequence to Graphviz DOT format for
// dendrogram visualization. leaves carries one label per clustered point in
// input order; merges must come from [cluster.Hierarchical.PartitionWithMerges].
//
// Merge positions index the shrinking cluster list, so the sequence is
// replayed here the same way the clustering ran: each merge joins positions
// A and B, keeps the joined cluster at A, and removes B.
func ToDOT(leaves []string, merges []cluster.Merge, opts Options) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, leaf := range leaves {
		fmt.Fprintf(&buf, "  %q;\n", leaf)
	}
	buf.WriteString("\n")

	nodes := append([]string(nil), leaves...)
	for k, m := range merges {
		if m.A < 0 || m.B <= m.A || m.B >= len(nodes) {
			return "", fmt.Errorf("merge %d: invalid pair (%d, %d) over %d clusters", k, m.A, m.B, len(nodes))
		}
		parent := fmt.Sprintf("merge#%d", k)
		fmt.Fprintf(&buf, "  %q [%s];\n", parent, mergeAttrs(m, opts.Detailed))
		fmt.Fprintf(&buf, "  %q -> %q;\n", parent, nodes[m.A])
		fmt.Fprintf(&buf, "  %q -> %q;\n", parent, nodes[m.B])
		nodes[m.A] = parent
		nodes = append(nodes[:m.B], nodes[m.B+1:]...)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func mergeAttrs(m cluster.Merge, detailed bool) string {
	if detailed {
		return fmt.Sprintf("label=%q, fillcolor=lightgrey, fontsize=14", fmt.Sprintf("d = %.3g", m.Distance))
	}
	return `label="", shape=point, width=0.12`
}

// RenderSVG renders a DOT dendrogram to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT dendrogram as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT dendrogram as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
