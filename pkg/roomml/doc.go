// Package roomml defines the RoomML scene document: a tree of houses,
// floors, containers, groups, rooms, furniture, doors, and windows.
//
// RoomML is authored as JSON (comments and trailing commas allowed) or YAML.
// A minimal document:
//
//	{
//	  "type": "house",
//	  "layout": { "mode": "flex", "dir": "row", "gap": 1 },
//	  "children": [
//	    { "type": "room", "id": "living", "size": { "w": 6, "d": 5, "h": 3 } },
//	    { "type": "room", "id": "kitchen", "size": { "w": 4, "d": 4, "h": 3 } }
//	  ]
//	}
//
// # Node kinds
//
// Every node carries a [NodeType] tag plus the shared fields id, children,
// and flex. The remaining fields are meaningful only for some kinds:
//
//   - house, floor, container: optional partial size and layout settings
//   - group: nothing of its own; its size comes from its children
//   - room: required size and optional wall/floor/ceiling thickness
//   - furniture: required size and optional placement
//   - door, window: wall side, offset along the wall, opening size, sill
//
// Code that dispatches on the tag should switch over all eight [NodeType]
// values and keep a default branch for unknown tags, which arrive from
// hand-written documents and are reported by validation.
//
// # Parsing
//
// [Parse] and [ParseFile] decode a document and give every node without an
// id a deterministic one ("room-1", "furniture-2", ...). Counters are scoped
// to a single call, so concurrent parses are independent.
package roomml
