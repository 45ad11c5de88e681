// Package pkg provides the core libraries for RoomML floor plans.
//
// # Overview
//
// A RoomML document is a tree: a house holds floors and containers, which
// hold rooms, which hold doors, windows and furniture. Containers lay out
// their children flexbox-style along the x or z axis; rooms have fixed sizes;
// furniture is placed inside its room by offsets or alignment.
//
// The libraries turn a document into checked geometry:
//
//	RoomML text (JSON with comments, or YAML)
//	         ↓
//	    [roomml] package (parse, assign ids)
//	         ↓
//	    [validate] package (errors and warnings with node paths)
//	         ↓
//	    [layout] package (measure + flex distribution → box tree)
//	         ↓
//	    [scene] package (walls with holes, floors, ceilings, furniture)
//	         ↓
//	    [scene/sink] package (SVG plan, JSON, DOT, graphviz SVG, meshes)
//
// # Quick Start
//
//	root, err := roomml.Parse(data)
//	if err != nil {
//	    return err
//	}
//	issues := validate.Validate(root)
//	box := layout.Tree(root)
//	s, err := scene.Build(box, issues) // scene.ErrBlocked when issues has errors
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(s)
//
// # Main Packages
//
// [geom] - Axis-aligned boxes, sizes and float helpers shared by everything
// else.
//
// [roomml] - Node types, parsing and the sample document.
//
// [placement] - Resolves where a piece of furniture sits inside its room.
//
// [layout] - Measures nodes and distributes container space among children.
//
// [validate] - Structural and geometric checks; never fails, only reports.
//
// [scene] and [scene/sink] - Renderable geometry and its output formats.
//
// [pipeline] - Parse → validate → layout → render with caching, used by the
// CLI and the HTTP server alike.
//
// [cache], [codec] - Content-addressed result cache (file or Redis) with
// CBOR values.
//
// [store], [server], [watch] - Document persistence, the HTTP API with its
// live websocket feed, and file watching.
//
// [observability] - Hooks for logging or metrics around pipeline, cache and
// HTTP events.
//
// [geom]: https://pkg.go.dev/github.com/roomml/roomml/pkg/geom
// [roomml]: https://pkg.go.dev/github.com/roomml/roomml/pkg/roomml
// [placement]: https://pkg.go.dev/github.com/roomml/roomml/pkg/placement
// [layout]: https://pkg.go.dev/github.com/roomml/roomml/pkg/layout
// [validate]: https://pkg.go.dev/github.com/roomml/roomml/pkg/validate
// [scene]: https://pkg.go.dev/github.com/roomml/roomml/pkg/scene
// [scene/sink]: https://pkg.go.dev/github.com/roomml/roomml/pkg/scene/sink
// [pipeline]: https://pkg.go.dev/github.com/roomml/roomml/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/roomml/roomml/pkg/cache
// [codec]: https://pkg.go.dev/github.com/roomml/roomml/pkg/codec
// [store]: https://pkg.go.dev/github.com/roomml/roomml/pkg/store
// [server]: https://pkg.go.dev/github.com/roomml/roomml/pkg/server
// [watch]: https://pkg.go.dev/github.com/roomml/roomml/pkg/watch
// [observability]: https://pkg.go.dev/github.com/roomml/roomml/pkg/observability
package pkg
