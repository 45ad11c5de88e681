// Package sink provides output format renderers for laid-out RoomML
// documents.
//
// # Overview
//
// A "sink" turns a computed [layout.Box] tree or a [scene.Scene] into bytes.
// This package provides:
//
//   - JSON: the box tree, validation issues and (optionally) the scene
//   - SVG: a top-down floor plan of every room
//   - DOT: the box tree as a Graphviz digraph, and its SVG rendering
//   - Mesh: a triangle mesh per solid, built by CSG on signed distance fields
//
// # JSON Output
//
// [RenderJSON] is the interchange format used by "roomml layout", the HTTP
// API and the live preview socket:
//
//	data, err := sink.RenderJSON(box,
//	    sink.WithJSONIssues(issues),
//	    sink.WithJSONScene(s),
//	)
//
// # SVG Output
//
// [RenderSVG] draws rooms in plan view, x to the right and z down, with walls
// cut at door and window openings:
//
//	svg := sink.RenderSVG(s, sink.WithScale(80))
//
// # Mesh Output
//
// [RenderMesh] meshes each floor, ceiling, wall and piece of furniture with
// marching cubes. Walls are boxes minus one box per opening. Resolution is
// set with [WithMeshCells]; cost grows with the cube of the cell count.
package sink
