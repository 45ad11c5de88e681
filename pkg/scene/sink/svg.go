package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/roomml"
	"github.com/roomml/roomml/pkg/scene"
)

// Plan view defaults.
const (
	DefaultScale  = 50.0 // pixels per metre
	DefaultMargin = 20.0 // pixels
)

const planCSS = `
    .floor { fill: #f6f2ea; stroke: none; }
    .wall { fill: #3b3b3b; }
    .door { fill: #ffffff; }
    .window { fill: #9fd4f2; }
    .furniture { fill: #d8c3a5; stroke: #8a7355; stroke-width: 1; }
    .room-label { font: bold 14px sans-serif; fill: #333; text-anchor: middle; dominant-baseline: middle; }
    .item-label { font: 10px sans-serif; fill: #5a4a35; text-anchor: middle; dominant-baseline: middle; }`

// SVGOption configures plan rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	margin float64
	labels bool
}

// WithScale sets the number of pixels per metre.
func WithScale(px float64) SVGOption { return func(r *svgRenderer) { r.scale = px } }

// WithMargin sets the blank border around the plan, in pixels.
func WithMargin(px float64) SVGOption { return func(r *svgRenderer) { r.margin = px } }

// WithoutLabels omits room and furniture names.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG draws a top-down floor plan of the scene. World x maps to the
// SVG x axis and world z to the SVG y axis.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{scale: DefaultScale, margin: DefaultMargin, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = DefaultScale
	}

	width := s.Bounds.W*r.scale + 2*r.margin
	height := s.Bounds.D*r.scale + 2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", planCSS)

	for _, room := range s.Rooms {
		r.renderRoom(&buf, s.Bounds, room)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderRoom(buf *bytes.Buffer, bounds geom.AABB, room scene.Room) {
	fmt.Fprintf(buf, `  <g id="room-%s">`+"\n", html.EscapeString(room.ID))
	r.rect(buf, bounds, room.Floor, "floor", "")

	for _, w := range room.Walls {
		r.rect(buf, bounds, w.Box, "wall", "wall-"+room.ID+"-"+string(w.Side))
		for _, h := range w.Holes {
			class := "window"
			if h.Type == roomml.TypeDoor {
				class = "door"
			}
			r.rect(buf, bounds, h.Box, class, h.ID)
		}
	}

	for _, f := range room.Furniture {
		r.rect(buf, bounds, f.Box, "furniture", f.ID)
		if r.labels {
			r.text(buf, bounds, f.Box, "item-label", f.ID)
		}
	}

	if r.labels {
		r.text(buf, bounds, room.Box, "room-label", room.ID)
	}
	buf.WriteString("  </g>\n")
}

// px maps a world x/z pair to plan coordinates.
func (r *svgRenderer) px(bounds geom.AABB, x, z float64) (float64, float64) {
	return (x-bounds.X)*r.scale + r.margin, (z-bounds.Z)*r.scale + r.margin
}

func (r *svgRenderer) rect(buf *bytes.Buffer, bounds geom.AABB, b geom.AABB, class, id string) {
	x, y := r.px(bounds, b.X, b.Z)
	idAttr := ""
	if id != "" {
		idAttr = fmt.Sprintf(` id="%s"`, html.EscapeString(id))
	}
	fmt.Fprintf(buf, `    <rect%s class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		idAttr, class, x, y, b.W*r.scale, b.D*r.scale)
}

func (r *svgRenderer) text(buf *bytes.Buffer, bounds geom.AABB, b geom.AABB, class, label string) {
	x, y := r.px(bounds, b.X+b.W/2, b.Z+b.D/2)
	fmt.Fprintf(buf, `    <text class="%s" x="%.2f" y="%.2f">%s</text>`+"\n", class, x, y, html.EscapeString(label))
}
