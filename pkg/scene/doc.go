// Package scene turns a laid-out RoomML tree into room geometry.
//
// [Build] walks the layout box tree and, for every room box, produces the
// parts a renderer draws: a floor slab, a ceiling slab, four walls with
// rectangular holes for the room's doors and windows, and one box per piece
// of furniture. All coordinates are in world space; a room's local origin is
// its box's minimum corner.
//
// Walls stand inside the room's footprint with their thickness measured
// inward:
//
//	north  x [0, w]      z [0, t]
//	south  x [0, w]      z [d-t, d]
//	west   x [0, t]      z [0, d]
//	east   x [w-t, w]    z [0, d]
//
// An opening's offset is measured along its wall in the wall's own running
// direction. North runs east from x=0, east runs south from z=0, south runs
// west from x=w and west runs north from z=d, so a plan view walks the room
// clockwise.
//
// Build refuses to run on a document with validation errors and returns
// [ErrBlocked]. Furniture is placed with the unclamped resolver, exactly as
// declared.
package scene
