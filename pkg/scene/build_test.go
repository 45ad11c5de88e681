package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/roomml/roomml/pkg/errors"
	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/layout"
	"github.com/roomml/roomml/pkg/roomml"
	"github.com/roomml/roomml/pkg/validate"
)

const eps = 1e-9

func sampleScene(t *testing.T) *Scene {
	t.Helper()
	root := roomml.Sample()
	issues := validate.Validate(root)
	s, err := Build(layout.Tree(root), issues)
	require.NoError(t, err)
	return s
}

func assertBox(t *testing.T, want, got geom.AABB) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
	assert.InDelta(t, want.W, got.W, eps, "w")
	assert.InDelta(t, want.H, got.H, eps, "h")
	assert.InDelta(t, want.D, got.D, eps, "d")
}

func TestBuildSample(t *testing.T) {
	s := sampleScene(t)
	require.Len(t, s.Rooms, 2)
	assert.Equal(t, "living", s.Rooms[0].ID)
	assert.Equal(t, "kitchen", s.Rooms[1].ID)
	assert.Equal(t, 15, s.Parts())

	assertBox(t, geom.AABB{W: 11, H: 3.04, D: 5}, s.Bounds)

	kitchen := s.Room("kitchen")
	require.NotNil(t, kitchen)
	assertBox(t, geom.AABB{X: 7, W: 4, H: 3, D: 4}, kitchen.Box)
	assert.Nil(t, s.Room("garage"))
}

func TestBuildSlabs(t *testing.T) {
	living := sampleScene(t).Room("living")
	assertBox(t, geom.AABB{W: 6, H: 0.08, D: 5}, living.Floor)
	assertBox(t, geom.AABB{Y: 3, W: 6, H: 0.04, D: 5}, living.Ceiling)
}

func TestBuildWalls(t *testing.T) {
	living := sampleScene(t).Room("living")
	require.Len(t, living.Walls, 4)

	tests := []struct {
		side   roomml.WallSide
		label  string
		length float64
		box    geom.AABB
	}{
		{roomml.WallNorth, "North", 6, geom.AABB{W: 6, H: 3, D: 0.12}},
		{roomml.WallEast, "East", 5, geom.AABB{X: 5.88, W: 0.12, H: 3, D: 5}},
		{roomml.WallSouth, "South", 6, geom.AABB{Z: 4.88, W: 6, H: 3, D: 0.12}},
		{roomml.WallWest, "West", 5, geom.AABB{W: 0.12, H: 3, D: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			w := living.Wall(tt.side)
			require.NotNil(t, w)
			assert.Equal(t, tt.label, w.Label)
			assert.InDelta(t, tt.length, w.Length, eps)
			assert.InDelta(t, 3.0, w.Height, eps)
			assert.InDelta(t, 0.12, w.Thickness, eps)
			assertBox(t, tt.box, w.Box)
		})
	}
}

func TestBuildHoles(t *testing.T) {
	s := sampleScene(t)
	living := s.Room("living")

	north := living.Wall(roomml.WallNorth)
	require.Len(t, north.Holes, 1)
	win := north.Holes[0]
	assert.Equal(t, "living-window", win.ID)
	assert.Equal(t, roomml.TypeWindow, win.Type)
	assert.InDelta(t, 0.9, win.Sill, eps)
	assertBox(t, geom.AABB{X: 1.5, Y: 0.9, W: 1.5, H: 1.2, D: 0.12}, win.Box)

	east := living.Wall(roomml.WallEast)
	require.Len(t, east.Holes, 1)
	assertBox(t, geom.AABB{X: 5.88, Z: 2, W: 0.12, H: 2, D: 1}, east.Holes[0].Box)

	assert.Empty(t, living.Wall(roomml.WallSouth).Holes)
	assert.Empty(t, living.Wall(roomml.WallWest).Holes)

	// South runs west from the room's east edge.
	south := s.Room("kitchen").Wall(roomml.WallSouth)
	require.Len(t, south.Holes, 1)
	assertBox(t, geom.AABB{X: 8.8, Y: 1, Z: 3.88, W: 1.2, H: 1, D: 0.12}, south.Holes[0].Box)
}

func TestBuildWestHole(t *testing.T) {
	room := &roomml.Node{
		Type: roomml.TypeRoom,
		ID:   "r",
		Size: geom.Full(geom.Size3D{W: 4, D: 5, H: 3}),
		Children: []*roomml.Node{
			{Type: roomml.TypeWindow, ID: "w", Wall: roomml.WallWest, Offset: 1, Size: &geom.Size3DPartial{W: geom.Ptr(1), H: geom.Ptr(1)}},
		},
	}
	s, err := Build(layout.Tree(room), validate.Validate(room))
	require.NoError(t, err)
	h := s.Rooms[0].Wall(roomml.WallWest).Holes[0]
	// Window default sill.
	assertBox(t, geom.AABB{Y: 0.9, Z: 3, W: 0.12, H: 1, D: 1}, h.Box)
}

func TestBuildFurnitureUnclamped(t *testing.T) {
	s := sampleScene(t)
	living := s.Room("living")
	require.Len(t, living.Furniture, 2)
	assertBox(t, geom.AABB{X: 1.5, Z: 3.8, W: 2, H: 1, D: 1}, living.Furniture[0].Box)
	assertBox(t, geom.AABB{X: 2.5, Z: 2, W: 1, H: 0.4, D: 0.6}, living.Furniture[1].Box)
	assertBox(t, geom.AABB{X: 8.5, Z: 1.5, W: 1.2, H: 0.9, D: 1}, s.Room("kitchen").Furniture[0].Box)

	// An offset past the wall end is rendered where declared.
	room := &roomml.Node{
		Type: roomml.TypeRoom,
		Size: geom.Full(geom.Size3D{W: 4, D: 4, H: 3}),
		Children: []*roomml.Node{{
			Type:  roomml.TypeFurniture,
			Size:  geom.Full(geom.Size3D{W: 2, D: 1, H: 1}),
			Place: &roomml.Placement{Mode: roomml.PlaceAnchor, Anchor: roomml.WallNorth, Offset: geom.Ptr(3)},
		}},
	}
	s, err := Build(layout.Tree(room), nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, s.Rooms[0].Furniture[0].Box.X, eps)
}

func TestBuildBlocked(t *testing.T) {
	issues := []validate.Issue{
		{Level: validate.LevelWarn, Path: "root", Message: "w"},
		{Level: validate.LevelError, Path: "root/room-1", Message: "Room must have positive w, d, h"},
	}
	s, err := Build(layout.Tree(roomml.Sample()), issues)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrBlocked)
	assert.True(t, apperr.Is(err, apperr.ErrCodeBlocked))
}

func TestBuildWarningsDoNotBlock(t *testing.T) {
	issues := []validate.Issue{{Level: validate.LevelWarn, Path: "root", Message: "w"}}
	_, err := Build(layout.Tree(roomml.Sample()), issues)
	assert.NoError(t, err)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(nil, nil)
	assert.Error(t, err)

	_, err = Build(&layout.Box{ID: "r", Type: roomml.TypeRoom}, nil)
	assert.Error(t, err)
}

func TestBuildRoomIsLeaf(t *testing.T) {
	inner := &roomml.Node{Type: roomml.TypeRoom, ID: "inner", Size: geom.Full(geom.Size3D{W: 1, D: 1, H: 1})}
	outer := &roomml.Node{Type: roomml.TypeRoom, ID: "outer", Size: geom.Full(geom.Size3D{W: 3, D: 3, H: 3}), Children: []*roomml.Node{inner}}
	box := &layout.Box{ID: "outer", Type: roomml.TypeRoom, W: 3, D: 3, H: 3, Node: outer, Children: []*layout.Box{
		{ID: "inner", Type: roomml.TypeRoom, W: 1, D: 1, H: 1, Node: inner},
	}}
	s, err := Build(box, nil)
	require.NoError(t, err)
	require.Len(t, s.Rooms, 1)
	assert.Equal(t, "outer", s.Rooms[0].ID)
}
