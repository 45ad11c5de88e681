// Package validate checks a RoomML tree for structural and geometric
// problems.
//
// [Validate] walks the source tree once, depth-first, and returns every
// problem it finds as an [Issue]. It never stops early: a document with
// several mistakes reports all of them together.
//
// Issues come in two levels. Errors ([LevelError]) mean the scene cannot be
// built: non-positive sizes, openings that do not fit their wall, furniture
// outside its room, duplicate ids, unknown node types. Warnings
// ([LevelWarn]) are informational: furniture outside any room and
// furniture pieces that overlap.
//
// Each issue carries the path of the offending node, the "/"-joined ids
// (or types, for nodes without an id) of its ancestors and itself:
//
//	house-1/living/sofa
//
// Furniture positions are resolved with [placement.WithClampToRoom], so an
// anchored piece whose offset runs past the end of its wall is checked at
// the clamped position.
package validate
