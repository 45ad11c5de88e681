package scene

import (
	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/roomml"
)

// Scene is the geometry of every room in a document.
type Scene struct {
	Rooms  []Room    `json:"rooms" bson:"rooms"`
	Bounds geom.AABB `json:"bounds" bson:"bounds"`
}

// Room is the geometry of one room.
type Room struct {
	ID        string    `json:"id" bson:"id"`
	Box       geom.AABB `json:"box" bson:"box"`
	Floor     geom.AABB `json:"floor" bson:"floor"`
	Ceiling   geom.AABB `json:"ceiling" bson:"ceiling"`
	Walls     []Wall    `json:"walls" bson:"walls"`
	Furniture []Item    `json:"furniture,omitempty" bson:"furniture,omitempty"`
}

// Wall is one of a room's four walls.
type Wall struct {
	Side      roomml.WallSide `json:"side" bson:"side"`
	Label     string          `json:"label" bson:"label"`
	Length    float64         `json:"length" bson:"length"`
	Height    float64         `json:"height" bson:"height"`
	Thickness float64         `json:"thickness" bson:"thickness"`
	Box       geom.AABB       `json:"box" bson:"box"`
	Holes     []Hole          `json:"holes,omitempty" bson:"holes,omitempty"`
}

// Hole is the cut-out a door or window makes in its wall.
//
// Offset and Sill are in wall coordinates (along the wall from its start,
// and up from the floor). Box is the cut-out in world space, spanning the
// full wall thickness.
type Hole struct {
	ID     string          `json:"id" bson:"id"`
	Type   roomml.NodeType `json:"type" bson:"type"`
	Offset float64         `json:"offset" bson:"offset"`
	Sill   float64         `json:"sill" bson:"sill"`
	W      float64         `json:"w" bson:"w"`
	H      float64         `json:"h" bson:"h"`
	Box    geom.AABB       `json:"box" bson:"box"`
}

// Item is a placed piece of furniture.
type Item struct {
	ID  string    `json:"id" bson:"id"`
	Box geom.AABB `json:"box" bson:"box"`
}

// Room returns the room with the given id, or nil.
func (s *Scene) Room(id string) *Room {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return &s.Rooms[i]
		}
	}
	return nil
}

// Wall returns the wall on the given side.
func (r *Room) Wall(side roomml.WallSide) *Wall {
	for i := range r.Walls {
		if r.Walls[i].Side == side {
			return &r.Walls[i]
		}
	}
	return nil
}

// Parts returns the number of solids in the scene: slabs, walls and
// furniture.
func (s *Scene) Parts() int {
	n := 0
	for _, r := range s.Rooms {
		n += 2 + len(r.Walls) + len(r.Furniture)
	}
	return n
}
