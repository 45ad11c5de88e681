package roomml

import (
	"strings"
	"sync"
	"testing"

	apperr "github.com/roomml/roomml/pkg/errors"
	"github.com/roomml/roomml/pkg/geom"
)

func TestParseSample(t *testing.T) {
	root := Sample()

	if root.Type != TypeHouse || root.ID != "house-1" {
		t.Fatalf("root = %s/%s, want house/house-1", root.Type, root.ID)
	}
	if len(root.Children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(root.Children))
	}

	living := root.Children[0]
	if got := living.Size3D(); got != (geom.Size3D{W: 6, D: 5, H: 3}) {
		t.Errorf("living size = %+v", got)
	}
	sofa := living.Children[2]
	if sofa.Place == nil || sofa.Place.Mode != PlaceAnchor || sofa.Place.Anchor != WallSouth {
		t.Errorf("sofa placement = %+v", sofa.Place)
	}
	door := living.Children[0]
	if got := door.OpeningSize(); got != (geom.Size2D{W: 1, H: 2}) {
		t.Errorf("door size = %+v", got)
	}

	ls := root.EffectiveLayout()
	if ls.Mode != ModeFlex || ls.Dir != DirRow || *ls.Gap != 1 {
		t.Errorf("layout = %+v", ls)
	}
}

func TestParseAssignsIDs(t *testing.T) {
	doc := `{"type":"house","children":[
		{"type":"room","size":{"w":1,"d":1,"h":1},"children":[{"type":"furniture"},{"type":"furniture","id":"bed"}]},
		{"type":"room","size":{"w":1,"d":1,"h":1}}
	]}`

	root, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var ids []string
	root.Walk(func(n *Node) bool {
		ids = append(ids, n.ID)
		return true
	})
	want := "house-1,room-1,furniture-1,bed,room-2"
	if got := strings.Join(ids, ","); got != want {
		t.Errorf("ids = %s, want %s", got, want)
	}
}

func TestParseCountersAreScopedPerCall(t *testing.T) {
	doc := []byte(`{"type":"room","size":{"w":1,"d":1,"h":1}}`)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := Parse(doc)
			if err != nil {
				t.Errorf("Parse: %v", err)
				return
			}
			results[i] = n.ID
		}(i)
	}
	wg.Wait()

	for i, id := range results {
		if id != "room-1" {
			t.Errorf("parse %d: id = %q, want room-1", i, id)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"type":`},
		{"null document", `null`},
		{"missing type", `{"id":"x"}`},
		{"null child", `{"type":"house","children":[null]}`},
		{"typeless child", `{"type":"house","children":[{"id":"a"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !apperr.Is(err, apperr.ErrCodeInvalidDocument) {
				t.Errorf("Parse() error code = %v, want %v", apperr.GetCode(err), apperr.ErrCodeInvalidDocument)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	doc := `
type: house
layout: {mode: flex, dir: col, gap: 0.5}
children:
  - type: room
    id: study
    size: {w: 3, d: 3, h: 2.5}
    children:
      - type: window
        wall: W
        offset: 1
        size: {w: 1, h: 1}
`
	root, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if got := root.EffectiveLayout().Dir; got != DirCol {
		t.Errorf("dir = %v, want col", got)
	}
	win := root.Children[0].Children[0]
	if win.ID != "window-1" || win.Wall != WallWest || win.Offset != 1 {
		t.Errorf("window = %+v", win)
	}
	if got := win.SillHeight(); got != DefaultWindowSill {
		t.Errorf("SillHeight() = %v, want %v", got, DefaultWindowSill)
	}
}

func TestEffectiveLayoutDefaults(t *testing.T) {
	tests := []struct {
		name   string
		layout *LayoutSettings
		want   LayoutSettings
	}{
		{"absent", nil, LayoutSettings{Mode: ModeFlex, Dir: DirRow, Gap: geom.Ptr(0)}},
		{"dir only", &LayoutSettings{Dir: DirCol}, LayoutSettings{Mode: ModeFlex, Dir: DirCol, Gap: geom.Ptr(0)}},
		{"other mode kept", &LayoutSettings{Mode: "grid"}, LayoutSettings{Mode: "grid", Dir: DirRow, Gap: geom.Ptr(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := (&Node{Type: TypeContainer, Layout: tt.layout}).EffectiveLayout()
			if got.Mode != tt.want.Mode || got.Dir != tt.want.Dir || *got.Gap != *tt.want.Gap {
				t.Errorf("EffectiveLayout() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNodeTypeSets(t *testing.T) {
	tests := []struct {
		t           NodeType
		participant bool
		container   bool
		opening     bool
	}{
		{TypeHouse, true, true, false},
		{TypeFloor, true, true, false},
		{TypeContainer, true, true, false},
		{TypeGroup, true, true, false},
		{TypeRoom, true, false, false},
		{TypeFurniture, true, false, false},
		{TypeDoor, false, false, true},
		{TypeWindow, false, false, true},
		{"stairs", false, false, false},
	}
	for _, tt := range tests {
		if got := tt.t.IsLayoutParticipant(); got != tt.participant {
			t.Errorf("%s.IsLayoutParticipant() = %v, want %v", tt.t, got, tt.participant)
		}
		if got := tt.t.IsContainer(); got != tt.container {
			t.Errorf("%s.IsContainer() = %v, want %v", tt.t, got, tt.container)
		}
		if got := tt.t.IsOpening(); got != tt.opening {
			t.Errorf("%s.IsOpening() = %v, want %v", tt.t, got, tt.opening)
		}
	}
}

func TestWallLength(t *testing.T) {
	room := geom.Size3D{W: 6, D: 5, H: 3}
	tests := []struct {
		side WallSide
		want float64
	}{
		{WallNorth, 6},
		{WallSouth, 6},
		{WallEast, 5},
		{WallWest, 5},
	}
	for _, tt := range tests {
		if got := WallLength(tt.side, room); got != tt.want {
			t.Errorf("WallLength(%s) = %v, want %v", tt.side, got, tt.want)
		}
	}
	if WallEast.Label() != "East" {
		t.Errorf("Label() = %q, want East", WallEast.Label())
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	root := Sample()
	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := again.Count(), root.Count(); len(got) != len(want) || got[TypeFurniture] != want[TypeFurniture] {
		t.Errorf("Count() = %v, want %v", got, want)
	}
}

func TestMarshalYAML(t *testing.T) {
	root := Sample()
	data, err := MarshalYAML(root)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "{") {
		t.Errorf("MarshalYAML produced flow style:\n%s", text)
	}
	if !strings.HasPrefix(text, "type: house\n") {
		t.Errorf("MarshalYAML does not start with the type field:\n%s", text)
	}

	again, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	want, _ := Marshal(root)
	got, _ := Marshal(again)
	if string(got) != string(want) {
		t.Errorf("YAML round trip changed the document:\ngot  %s\nwant %s", got, want)
	}
}
