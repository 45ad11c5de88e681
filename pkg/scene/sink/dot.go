package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/roomml/roomml/pkg/layout"
	"github.com/roomml/roomml/pkg/roomml"
)

var dotFill = map[roomml.NodeType]string{
	roomml.TypeHouse:     "#e8e8e8",
	roomml.TypeFloor:     "#e8e8e8",
	roomml.TypeContainer: "#f2f2f2",
	roomml.TypeGroup:     "#f2f2f2",
	roomml.TypeRoom:      "#f6f2ea",
	roomml.TypeFurniture: "#d8c3a5",
}

// ToDOT converts a box tree to a Graphviz digraph, one node per box labelled
// with its id, type, position and size.
func ToDOT(box *layout.Box) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	// Box ids are not guaranteed unique in an invalid document, so DOT
	// node names are pre-order indices.
	names := map[*layout.Box]string{}
	box.Walk(func(b *layout.Box) bool {
		name := "n" + strconv.Itoa(len(names))
		names[b] = name
		fmt.Fprintf(&buf, "  %s [%s];\n", name, strings.Join(dotAttrs(b), ", "))
		return true
	})

	buf.WriteString("\n")
	box.Walk(func(b *layout.Box) bool {
		for _, c := range b.Children {
			fmt.Fprintf(&buf, "  %s -> %s;\n", names[b], names[c])
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func dotAttrs(b *layout.Box) []string {
	label := fmt.Sprintf("%s\n%s\n@ %s, %s, %s\n%s × %s × %s",
		b.ID, b.Type, num(b.X), num(b.Y), num(b.Z), num(b.W), num(b.D), num(b.H))
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := dotFill[b.Type]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	return attrs
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderTreeSVG renders the box tree through Graphviz.
func RenderTreeSVG(ctx context.Context, box *layout.Box) ([]byte, error) {
	return RenderDOTSVG(ctx, ToDOT(box))
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
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

// normalizeViewBox replaces the Graphviz <svg> tag (points, fixed size) with
// one whose viewBox starts at the origin and whose width and height match it.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
