package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/layout"
	"github.com/roomml/roomml/pkg/roomml"
	"github.com/roomml/roomml/pkg/scene"
	"github.com/roomml/roomml/pkg/validate"
)

func sample(t *testing.T) (*layout.Box, []validate.Issue, *scene.Scene) {
	t.Helper()
	root := roomml.Sample()
	issues := validate.Validate(root)
	box := layout.Tree(root)
	s, err := scene.Build(box, issues)
	if err != nil {
		t.Fatalf("scene.Build() error: %v", err)
	}
	return box, issues, s
}

func TestRenderJSON(t *testing.T) {
	box, _, s := sample(t)
	issues := []validate.Issue{
		{Level: validate.LevelWarn, Path: "house-1/living", Message: "Furniture 'sofa' overlaps 'coffee-table'"},
	}

	data, err := RenderJSON(box, WithJSONSource("house.json"), WithJSONIssues(issues), WithJSONScene(s))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Source   string           `json:"source"`
		Errors   int              `json:"errors"`
		Warnings int              `json:"warnings"`
		Issues   []validate.Issue `json:"issues"`
		Box      *layout.Box      `json:"box"`
		Scene    *scene.Scene     `json:"scene"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Source != "house.json" {
		t.Errorf("Source = %q, want house.json", out.Source)
	}
	if out.Errors != 0 || out.Warnings != 1 {
		t.Errorf("Errors, Warnings = %d, %d, want 0, 1", out.Errors, out.Warnings)
	}
	if out.Box == nil || out.Box.W != 11 {
		t.Errorf("Box = %+v, want width 11", out.Box)
	}
	if out.Scene == nil || len(out.Scene.Rooms) != 2 {
		t.Errorf("Scene rooms missing")
	}
}

func TestRenderJSONParseFailure(t *testing.T) {
	issues := []validate.Issue{{Level: validate.LevelError, Path: roomml.RootPath, Message: "bad"}}
	data, err := RenderJSON(nil, WithJSONIssues(issues))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if bytes.Contains(data, []byte(`"box"`)) {
		t.Errorf("output has a box: %s", data)
	}
	if !bytes.Contains(data, []byte(`"errors": 1`)) {
		t.Errorf("output missing error count: %s", data)
	}
}

func TestRenderJSONEmptyIssues(t *testing.T) {
	box, _, _ := sample(t)
	data, err := RenderJSON(box)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !bytes.Contains(data, []byte(`"issues": []`)) {
		t.Errorf("issues should be an empty array: %s", data)
	}
}

func TestRenderSVG(t *testing.T) {
	_, _, s := sample(t)
	svg := string(RenderSVG(s))

	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("output does not start with <svg")
	}
	// 11m × 5m at 50px/m plus a 20px margin on each side.
	if !strings.Contains(svg, `viewBox="0 0 590.0 290.0"`) {
		t.Errorf("unexpected viewBox in %s", svg[:120])
	}
	for _, want := range []string{
		`id="room-living"`, `id="room-kitchen"`,
		`id="living-door"`, `id="living-window"`, `id="kitchen-window"`,
		`id="sofa"`, `id="island"`,
		`class="door"`, `class="window"`,
		`>living</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %s", want)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	_, _, s := sample(t)
	svg := string(RenderSVG(s, WithScale(10), WithMargin(0), WithoutLabels()))
	if !strings.Contains(svg, `viewBox="0 0 110.0 50.0"`) {
		t.Errorf("unexpected viewBox in %s", svg[:120])
	}
	if strings.Contains(svg, "<text") {
		t.Errorf("labels rendered despite WithoutLabels")
	}
}

func TestToDOT(t *testing.T) {
	box, _, _ := sample(t)
	dot := ToDOT(box)

	if !strings.HasPrefix(dot, "digraph layout {") {
		t.Errorf("unexpected header: %s", dot)
	}
	if got := strings.Count(dot, " -> "); got != 5 {
		t.Errorf("edge count = %d, want 5", got)
	}
	for _, want := range []string{"house-1", "kitchen", "coffee-table", `fillcolor="#d8c3a5"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s", want)
		}
	}
}

func TestToDOTDuplicateIDs(t *testing.T) {
	box := &layout.Box{ID: "a", Type: roomml.TypeContainer, Children: []*layout.Box{
		{ID: "a", Type: roomml.TypeRoom},
		{ID: "a", Type: roomml.TypeRoom},
	}}
	dot := ToDOT(box)
	for _, want := range []string{"n0 -> n1;", "n0 -> n2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestRenderTreeSVG(t *testing.T) {
	box, _, _ := sample(t)
	svg, err := RenderTreeSVG(context.Background(), box)
	if err != nil {
		t.Fatalf("RenderTreeSVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("viewBox not normalized")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"graphviz tag",
			`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
			`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`,
		},
		{"no viewBox", `<svg><g/></svg>`, `<svg><g/></svg>`},
		{"zero size", `<svg viewBox="0 0 0 10"></svg>`, `<svg viewBox="0 0 0 10"></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWallSolid(t *testing.T) {
	_, _, s := sample(t)
	north := s.Room("living").Wall(roomml.WallNorth)
	solid, err := WallSolid(*north)
	if err != nil {
		t.Fatalf("WallSolid() error: %v", err)
	}

	tests := []struct {
		name   string
		p      v3.Vec
		inside bool
	}{
		{"solid wall", v3.Vec{X: 0.5, Y: 1.5, Z: 0.06}, true},
		{"window centre", v3.Vec{X: 2.25, Y: 1.5, Z: 0.06}, false},
		{"below window", v3.Vec{X: 2.25, Y: 0.5, Z: 0.06}, true},
		{"room interior", v3.Vec{X: 3, Y: 1.5, Z: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := solid.Evaluate(tt.p) < 0; got != tt.inside {
				t.Errorf("Evaluate(%v) < 0 = %v, want %v", tt.p, got, tt.inside)
			}
		})
	}
}

func TestMeshes(t *testing.T) {
	_, _, s := sample(t)
	meshes, err := Meshes(s, WithMeshCells(16), WithMeshParts(PartFurniture))
	if err != nil {
		t.Fatalf("Meshes() error: %v", err)
	}
	if len(meshes) != 3 {
		t.Fatalf("len(meshes) = %d, want 3", len(meshes))
	}

	sofa := meshes[0]
	if sofa.Part != "sofa" || sofa.Kind != PartFurniture || sofa.Room != "living" {
		t.Errorf("meshes[0] = %s/%s/%s, want sofa/furniture/living", sofa.Part, sofa.Kind, sofa.Room)
	}
	if sofa.TriangleCount() == 0 {
		t.Fatalf("sofa mesh is empty")
	}
	if len(sofa.Vertices) != len(sofa.Normals) || len(sofa.Vertices) != 3*len(sofa.Indices) {
		t.Errorf("buffer lengths disagree: %d vertices, %d normals, %d indices",
			len(sofa.Vertices), len(sofa.Normals), len(sofa.Indices))
	}

	want := s.Room("living").Furniture[0].Box
	const tol = 0.2
	for i := 0; i < len(sofa.Vertices); i += 3 {
		x, y, z := float64(sofa.Vertices[i]), float64(sofa.Vertices[i+1]), float64(sofa.Vertices[i+2])
		if x < want.X-tol || x > want.X+want.W+tol ||
			y < want.Y-tol || y > want.Y+want.H+tol ||
			z < want.Z-tol || z > want.Z+want.D+tol {
			t.Fatalf("vertex (%v, %v, %v) outside %+v", x, y, z, want)
		}
	}
}

func TestRenderMesh(t *testing.T) {
	s := &scene.Scene{Rooms: []scene.Room{{
		ID:        "r",
		Furniture: []scene.Item{{ID: "cube", Box: geom.AABB{W: 1, H: 1, D: 1}}},
	}}}
	data, err := RenderMesh(s, WithMeshCells(8), WithMeshParts(PartFurniture))
	if err != nil {
		t.Fatalf("RenderMesh() error: %v", err)
	}
	var out meshOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Cells != 8 || len(out.Meshes) != 1 || out.Meshes[0].Part != "cube" {
		t.Errorf("RenderMesh() = %+v", out)
	}
}

func TestMeshCellsDefault(t *testing.T) {
	if r := newMeshRenderer(WithMeshCells(0)); r.cells != DefaultMeshCells {
		t.Errorf("cells = %d, want %d", r.cells, DefaultMeshCells)
	}
}
