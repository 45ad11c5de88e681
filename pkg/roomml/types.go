package roomml

import "github.com/roomml/roomml/pkg/geom"

// NodeType is the discriminator of a RoomML node.
type NodeType string

// Node kinds.
const (
	TypeHouse     NodeType = "house"
	TypeFloor     NodeType = "floor"
	TypeContainer NodeType = "container"
	TypeGroup     NodeType = "group"
	TypeRoom      NodeType = "room"
	TypeFurniture NodeType = "furniture"
	TypeDoor      NodeType = "door"
	TypeWindow    NodeType = "window"
)

// Known reports whether t is one of the eight node kinds.
func (t NodeType) Known() bool {
	switch t {
	case TypeHouse, TypeFloor, TypeContainer, TypeGroup,
		TypeRoom, TypeFurniture, TypeDoor, TypeWindow:
		return true
	}
	return false
}

// IsContainer reports whether t measures itself from its children.
func (t NodeType) IsContainer() bool {
	switch t {
	case TypeHouse, TypeFloor, TypeContainer, TypeGroup:
		return true
	}
	return false
}

// IsLayoutParticipant reports whether nodes of kind t take space in their
// parent's flex layout. Doors and windows never do.
func (t NodeType) IsLayoutParticipant() bool {
	return t.IsContainer() || t == TypeRoom || t == TypeFurniture
}

// IsOpening reports whether t is a door or window.
func (t NodeType) IsOpening() bool { return t == TypeDoor || t == TypeWindow }

// WallSide names one of the four walls of a room.
type WallSide string

// Wall sides. North runs along x at z=0, west along z at x=0.
const (
	WallNorth WallSide = "N"
	WallEast  WallSide = "E"
	WallSouth WallSide = "S"
	WallWest  WallSide = "W"
)

// WallSides lists the walls in clockwise order starting at north.
var WallSides = []WallSide{WallNorth, WallEast, WallSouth, WallWest}

// Valid reports whether s is one of N, E, S, W.
func (s WallSide) Valid() bool {
	switch s {
	case WallNorth, WallEast, WallSouth, WallWest:
		return true
	}
	return false
}

// RunsAlongX reports whether the wall is parallel to the x axis (N and S).
func (s WallSide) RunsAlongX() bool { return s == WallNorth || s == WallSouth }

// Label returns the long name of the wall ("North", ...), or the raw value
// for an unknown side.
func (s WallSide) Label() string {
	switch s {
	case WallNorth:
		return "North"
	case WallEast:
		return "East"
	case WallSouth:
		return "South"
	case WallWest:
		return "West"
	}
	return string(s)
}

// WallLength returns the length of wall s in a room of the given size:
// the room width for N/S walls and the room depth for E/W walls.
func WallLength(s WallSide, room geom.Size3D) float64 {
	if s.RunsAlongX() {
		return room.W
	}
	return room.D
}

// FlexSizing carries a node's flex hints. All fields are optional.
type FlexSizing struct {
	Basis  *float64 `json:"basis,omitempty" bson:"basis,omitempty"`
	Grow   *float64 `json:"grow,omitempty" bson:"grow,omitempty"`
	Shrink *float64 `json:"shrink,omitempty" bson:"shrink,omitempty"`
}

// LayoutMode selects a layout algorithm. Only [ModeFlex] exists.
type LayoutMode string

// ModeFlex is the single supported layout mode.
const ModeFlex LayoutMode = "flex"

// Direction selects the main axis of a flex container.
type Direction string

// Flex directions.
const (
	DirRow Direction = "row" // main axis x
	DirCol Direction = "col" // main axis z
)

// Alignment is a start/center/end alignment keyword.
type Alignment string

// Alignment keywords.
const (
	AlignStart  Alignment = "start"
	AlignCenter Alignment = "center"
	AlignEnd    Alignment = "end"
)

// LayoutSettings configures how a container distributes its children.
type LayoutSettings struct {
	Mode LayoutMode `json:"mode,omitempty" bson:"mode,omitempty"`
	Dir  Direction  `json:"dir,omitempty" bson:"dir,omitempty"`
	Gap  *float64   `json:"gap,omitempty" bson:"gap,omitempty"`

	// Wrap, Align and Justify are accepted and preserved when a document is
	// re-encoded, but the layout engine ignores them: children are always
	// placed on a single line, packed at the start of the main axis.
	Wrap    *bool      `json:"wrap,omitempty" bson:"wrap,omitempty"`
	Align   *Alignment `json:"align,omitempty" bson:"align,omitempty"`
	Justify *Alignment `json:"justify,omitempty" bson:"justify,omitempty"`
}

// Thickness overrides a room's wall, floor, and ceiling thickness.
type Thickness struct {
	Wall    *float64 `json:"wall,omitempty" bson:"wall,omitempty"`
	Floor   *float64 `json:"floor,omitempty" bson:"floor,omitempty"`
	Ceiling *float64 `json:"ceiling,omitempty" bson:"ceiling,omitempty"`
}

// Default thicknesses used when a room does not specify them.
const (
	DefaultWallThickness    = 0.12
	DefaultFloorThickness   = 0.08
	DefaultCeilingThickness = 0.04
)

// Default sill heights for openings without an explicit sill.
const (
	DefaultDoorSill   = 0.0
	DefaultWindowSill = 0.9
)

// PlacementMode selects how furniture is positioned inside its room.
type PlacementMode string

// Placement modes.
const (
	PlaceFree   PlacementMode = "free"
	PlaceAnchor PlacementMode = "anchor"
)

// Placement positions a piece of furniture inside its room.
//
// In free mode X, Z and Y are absolute offsets from the room's minimum
// corner. In anchor mode the piece is placed against Anchor, Inset away from
// that wall and Offset along it. Missing values default to 0.
type Placement struct {
	Mode PlacementMode `json:"mode" bson:"mode"`

	X *float64 `json:"x,omitempty" bson:"x,omitempty"`
	Z *float64 `json:"z,omitempty" bson:"z,omitempty"`
	Y *float64 `json:"y,omitempty" bson:"y,omitempty"`

	Anchor WallSide `json:"anchor,omitempty" bson:"anchor,omitempty"`
	Offset *float64 `json:"offset,omitempty" bson:"offset,omitempty"`
	Inset  *float64 `json:"inset,omitempty" bson:"inset,omitempty"`
}
