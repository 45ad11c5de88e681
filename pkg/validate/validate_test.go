package validate

import (
	"path/filepath"
	"testing"

	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/roomml"
)

func room(id string, w, d, h float64, children ...*roomml.Node) *roomml.Node {
	return &roomml.Node{
		Type:     roomml.TypeRoom,
		ID:       id,
		Size:     geom.Full(geom.Size3D{W: w, D: d, H: h}),
		Children: children,
	}
}

func furniture(id string, x, z, w, d, h float64) *roomml.Node {
	return &roomml.Node{
		Type:  roomml.TypeFurniture,
		ID:    id,
		Size:  geom.Full(geom.Size3D{W: w, D: d, H: h}),
		Place: &roomml.Placement{Mode: roomml.PlaceFree, X: geom.Ptr(x), Z: geom.Ptr(z)},
	}
}

func opening(t roomml.NodeType, id string, wall roomml.WallSide, offset, w, h float64) *roomml.Node {
	return &roomml.Node{
		Type:   t,
		ID:     id,
		Wall:   wall,
		Offset: offset,
		Size:   &geom.Size3DPartial{W: geom.Ptr(w), H: geom.Ptr(h)},
	}
}

func house(children ...*roomml.Node) *roomml.Node {
	return &roomml.Node{Type: roomml.TypeHouse, ID: "house", Children: children}
}

func messages(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Message
	}
	return out
}

func TestValidateSample(t *testing.T) {
	issues := Validate(roomml.Sample())
	if len(issues) != 0 {
		t.Errorf("Validate(sample) = %v, want no issues", issues)
	}
}

func TestOpeningContainment(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		want   []string
	}{
		{"fits east wall", 2, nil},
		{"ends at wall end", 4, nil},
		{"exceeds wall", 4.5, []string{"Opening exceeds wall length"}},
		{"negative offset", -0.5, []string{"Opening offset must be >= 0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			door := opening(roomml.TypeDoor, "door", roomml.WallEast, tt.offset, 1, 2)
			issues := Validate(house(room("r", 6, 5, 3, door)))

			got := messages(issues)
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("issue %d = %q, want %q", i, got[i], tt.want[i])
				}
				if issues[i].Path != "house/r/door" {
					t.Errorf("issue %d path = %q, want house/r/door", i, issues[i].Path)
				}
			}
		})
	}
}

func TestOpeningChecks(t *testing.T) {
	sill := func(n *roomml.Node, v float64) *roomml.Node {
		n.Sill = geom.Ptr(v)
		return n
	}
	tests := []struct {
		name string
		node *roomml.Node
		want []string
	}{
		{"north wall uses width", opening(roomml.TypeWindow, "w", roomml.WallNorth, 4.5, 1, 1), nil},
		{"window default sill", opening(roomml.TypeWindow, "w", roomml.WallSouth, 0, 1, 2.2), []string{"Opening exceeds room height"}},
		{"door default sill", opening(roomml.TypeDoor, "d", roomml.WallSouth, 0, 1, 3), nil},
		{"negative sill", sill(opening(roomml.TypeWindow, "w", roomml.WallWest, 0, 1, 1), -1), []string{"Sill must be >= 0"}},
		{"zero size skips the rest", opening(roomml.TypeDoor, "d", roomml.WallEast, 99, 0, 2), []string{"Opening size must be positive"}},
		{
			"several problems",
			sill(opening(roomml.TypeWindow, "w", roomml.WallEast, -1, 7, 3), -0.5),
			[]string{"Opening offset must be >= 0", "Opening exceeds wall length", "Sill must be >= 0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := messages(Validate(room("r", 6, 5, 3, tt.node)))
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("issue %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOpeningOutsideRoom(t *testing.T) {
	issues := Validate(house(opening(roomml.TypeWindow, "w", roomml.WallNorth, 0, 1, 1)))
	if len(issues) != 1 || issues[0].Message != "Opening must be inside a room" || !issues[0].IsError() {
		t.Errorf("Validate() = %v, want one 'Opening must be inside a room' error", issues)
	}
}

func TestOverlapEdgeTouching(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"touching", 1, 0},
		{"overlapping", 0.5, 1},
		{"apart", 2, 0},
		{"same spot", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := room("r", 4, 4, 3,
				furniture("a", 0, 0, 1, 1, 1),
				furniture("b", tt.x, 0, 1, 1, 1))
			issues := Validate(r)

			warns := Filter(issues, LevelWarn)
			if len(warns) != tt.want {
				t.Fatalf("warnings = %v, want %d", warns, tt.want)
			}
			if tt.want == 1 {
				if warns[0].Message != "Furniture 'a' overlaps 'b'" {
					t.Errorf("message = %q", warns[0].Message)
				}
				if warns[0].Path != "r" {
					t.Errorf("path = %q, want r", warns[0].Path)
				}
			}
			if HasErrors(issues) {
				t.Errorf("overlap must not be an error: %v", issues)
			}
		})
	}
}

func TestOverlapsAfterChildren(t *testing.T) {
	r := room("r", 4, 4, 3,
		furniture("a", 0, 0, 2, 2, 1),
		furniture("b", 1, 1, 2, 2, 1),
		furniture("c", 3.5, 0, 1, 1, 1))
	issues := Validate(r)

	// c is out of bounds (error, pre-order) and a/b overlap (warning, after
	// the room's children).
	want := []string{"Furniture placement is out of room bounds", "Furniture 'a' overlaps 'b'"}
	got := messages(issues)
	if len(got) != len(want) {
		t.Fatalf("Validate() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("issue %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOverlapUsesClampedPlacement(t *testing.T) {
	// Both pieces are anchored past the end of the north wall; clamped they
	// both sit at x=3 and overlap.
	anchored := func(id string) *roomml.Node {
		return &roomml.Node{
			Type: roomml.TypeFurniture,
			ID:   id,
			Size: geom.Full(geom.Size3D{W: 1, D: 1, H: 1}),
			Place: &roomml.Placement{
				Mode:   roomml.PlaceAnchor,
				Anchor: roomml.WallNorth,
				Offset: geom.Ptr(5),
			},
		}
	}
	a, b := anchored("a"), anchored("b")
	b.Place.Offset = geom.Ptr(9)

	got := Overlaps(room("r", 4, 4, 3, a, b))
	if len(got) != 1 || got[0] != (Overlap{A: "a", B: "b"}) {
		t.Errorf("Overlaps() = %v, want [{a b}]", got)
	}
	if issues := Validate(room("r", 4, 4, 3, anchored("c"))); HasErrors(issues) {
		t.Errorf("clamped anchor should be in bounds: %v", issues)
	}
}

func TestDuplicateIDs(t *testing.T) {
	root := house(
		room("living", 6, 5, 3, furniture("sofa", 0, 0, 1, 1, 1)),
		room("den", 4, 4, 3, furniture("sofa", 0, 0, 1, 1, 1)),
	)
	errs := Filter(Validate(root), LevelError)
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want 1", errs)
	}
	if errs[0].Message != "Duplicate id 'sofa'" || errs[0].Path != "house/den/sofa" {
		t.Errorf("error = %+v", errs[0])
	}

	// Three occurrences: every one after the first is reported.
	root.Children = append(root.Children, furniture("sofa", 0, 0, 1, 1, 1))
	errs = Filter(Validate(root), LevelError)
	if len(errs) != 2 {
		t.Errorf("errors = %v, want 2", errs)
	}
}

func TestNodeChecks(t *testing.T) {
	neg := geom.Ptr(-1.0)
	tests := []struct {
		name  string
		node  *roomml.Node
		level Level
		want  string
	}{
		{"container width", &roomml.Node{Type: roomml.TypeContainer, Size: &geom.Size3DPartial{W: neg}}, LevelError, "Container width must be positive"},
		{"floor depth", &roomml.Node{Type: roomml.TypeFloor, Size: &geom.Size3DPartial{D: geom.Ptr(0)}}, LevelError, "Container depth must be positive"},
		{"house height", &roomml.Node{Type: roomml.TypeHouse, Size: &geom.Size3DPartial{H: neg}}, LevelError, "Container height must be positive"},
		{"layout mode", &roomml.Node{Type: roomml.TypeContainer, Layout: &roomml.LayoutSettings{Mode: "grid"}}, LevelError, "Unsupported layout mode 'grid'"},
		{"room without size", &roomml.Node{Type: roomml.TypeRoom}, LevelError, "Room must have positive w, d, h"},
		{"room partial size", &roomml.Node{Type: roomml.TypeRoom, Size: &geom.Size3DPartial{W: geom.Ptr(1), D: geom.Ptr(1)}}, LevelError, "Room must have positive w, d, h"},
		{"room zero depth", room("r", 1, 0, 1), LevelError, "Room must have positive w, d, h"},
		{"furniture at top level", furniture("f", 0, 0, 1, 1, 1), LevelWarn, "Furniture not placed inside a room"},
		{"unknown type", &roomml.Node{Type: "stairs"}, LevelError, "Unknown node type 'stairs'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Validate(tt.node)
			if len(issues) != 1 {
				t.Fatalf("Validate() = %v, want 1 issue", issues)
			}
			if issues[0].Level != tt.level || issues[0].Message != tt.want {
				t.Errorf("Validate() = %v, want %s %q", issues[0], tt.level, tt.want)
			}
		})
	}
}

func TestLayoutWithoutModeIsFlex(t *testing.T) {
	c := &roomml.Node{Type: roomml.TypeContainer, Layout: &roomml.LayoutSettings{Dir: roomml.DirCol}}
	if issues := Validate(c); len(issues) != 0 {
		t.Errorf("Validate() = %v, want none", issues)
	}
}

func TestGroupHasNoChecks(t *testing.T) {
	g := &roomml.Node{Type: roomml.TypeGroup, Size: &geom.Size3DPartial{W: geom.Ptr(-3)}, Layout: &roomml.LayoutSettings{Mode: "grid"}}
	if issues := Validate(g); len(issues) != 0 {
		t.Errorf("Validate(group) = %v, want none", issues)
	}
}

func TestFurnitureChecks(t *testing.T) {
	tests := []struct {
		name string
		furn *roomml.Node
		want []string
	}{
		{"inside", furniture("f", 1, 1, 2, 2, 1), nil},
		{"flush with walls", furniture("f", 0, 2, 4, 2, 1), nil},
		{"past east wall", furniture("f", 3, 0, 2, 1, 1), []string{"Furniture placement is out of room bounds"}},
		{"negative z", furniture("f", 0, -0.1, 1, 1, 1), []string{"Furniture placement is out of room bounds"}},
		{"zero size", furniture("f", 99, 99, 0, 1, 1), []string{"Furniture size must be positive"}},
		{"no placement", &roomml.Node{Type: roomml.TypeFurniture, ID: "f", Size: geom.Full(geom.Size3D{W: 1, D: 1, H: 1})}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := messages(Validate(room("r", 4, 4, 3, tt.furn)))
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("issue %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestInvalidRoomChildBounds(t *testing.T) {
	children := func() []*roomml.Node {
		return []*roomml.Node{
			opening(roomml.TypeDoor, "d", roomml.WallNorth, 0, 1, 2),
			furniture("a", 0, 0, 1, 1, 1),
			furniture("b", 0, 0, 1, 1, 1),
		}
	}
	tests := []struct {
		name string
		room *roomml.Node
		want []string
	}{
		{
			"zero width still checks children",
			room("r", 0, 5, 3, children()...),
			[]string{
				"Room must have positive w, d, h",
				"Opening exceeds wall length",
				"Furniture placement is out of room bounds",
				"Furniture placement is out of room bounds",
				"Furniture 'a' overlaps 'b'",
			},
		},
		{
			"missing size skips children",
			&roomml.Node{Type: roomml.TypeRoom, ID: "r", Children: children()},
			[]string{"Room must have positive w, d, h"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := messages(Validate(tt.room))
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("issue %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNilChildrenAreSkipped(t *testing.T) {
	root := house(nil, room("r", 4, 4, 3, nil, furniture("f", 0, 0, 1, 1, 1)))
	if issues := Validate(root); len(issues) != 0 {
		t.Errorf("Validate() = %v, want no issues", issues)
	}
}

func TestPathsUseTypeWithoutID(t *testing.T) {
	root := &roomml.Node{Type: roomml.TypeHouse, Children: []*roomml.Node{
		{Type: roomml.TypeGroup, Children: []*roomml.Node{{Type: "stairs"}}},
	}}
	issues := Validate(root)
	if len(issues) != 1 || issues[0].Path != "house/group/stairs" {
		t.Errorf("Validate() = %v, want path house/group/stairs", issues)
	}
}

func TestCount(t *testing.T) {
	issues := []Issue{
		{Level: LevelError, Path: "a", Message: "x"},
		{Level: LevelWarn, Path: "b", Message: "y"},
		{Level: LevelError, Path: "c", Message: "z"},
	}
	errs, warns := Count(issues)
	if errs != 2 || warns != 1 {
		t.Errorf("Count() = %d, %d, want 2, 1", errs, warns)
	}
	if !HasErrors(issues) || HasErrors(issues[1:2]) {
		t.Error("HasErrors() mismatch")
	}
	if got := issues[0].String(); got != "error a: x" {
		t.Errorf("String() = %q", got)
	}
}

func TestExampleDocuments(t *testing.T) {
	tests := []struct {
		file     string
		warnings []string
	}{
		{"apartment.yaml", nil},
		{"studio.json", []string{"Furniture 'counter' overlaps 'sofa'"}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			root, err := roomml.ParseFile(filepath.Join("..", "..", "examples", tt.file))
			if err != nil {
				t.Fatalf("ParseFile() error: %v", err)
			}
			issues := Validate(root)
			if HasErrors(issues) {
				t.Fatalf("Validate() errors = %v", Filter(issues, LevelError))
			}
			warns := Filter(issues, LevelWarn)
			if len(warns) != len(tt.warnings) {
				t.Fatalf("Validate() warnings = %v, want %v", warns, tt.warnings)
			}
			for i, w := range warns {
				if w.Message != tt.warnings[i] {
					t.Errorf("warning[%d] = %q, want %q", i, w.Message, tt.warnings[i])
				}
			}
		})
	}
}
